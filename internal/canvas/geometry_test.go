package canvas

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleToFitScreenshotExample(t *testing.T) {
	w, h := ScaleToFit(4000, 3000, 1280, 800)
	assert.Equal(t, 1066, w)
	assert.Equal(t, 800, h)
	assert.Equal(t, 107, CenterOffset(1280, w))
	assert.Equal(t, 0, CenterOffset(800, h))
}

func TestScaleToFitBounds(t *testing.T) {
	sources := [][2]int{
		{10, 10}, {640, 480}, {4000, 3000}, {1280, 800}, {800, 1280},
		{333, 17}, {17, 333}, {1919, 1081}, {3, 7}, {2560, 1600},
	}
	bounds := [][2]int{
		{1280, 800}, {700, 400}, {16, 16}, {128, 128}, {441, 279}, {1, 1000},
	}

	for _, src := range sources {
		for _, bound := range bounds {
			name := fmt.Sprintf("%dx%d_in_%dx%d", src[0], src[1], bound[0], bound[1])
			t.Run(name, func(t *testing.T) {
				w, h := ScaleToFit(src[0], src[1], bound[0], bound[1])
				require.LessOrEqual(t, w, bound[0])
				require.LessOrEqual(t, h, bound[1])
				require.True(t, w == bound[0] || h == bound[1], "one side must touch its bound, got %dx%d", w, h)

				if w == bound[0] && h > 1 {
					assert.Equal(t, src[1]*bound[0]/src[0], h)
				}
				if h == bound[1] && w > 1 && w != bound[0] {
					assert.Equal(t, src[0]*bound[1]/src[1], w)
				}

				// The source ratio sits within one pixel of the result on the floored side.
				ratio := float64(src[0]) / float64(src[1])
				if h > 1 && w > 1 {
					assert.LessOrEqual(t, float64(w)/float64(h+1), ratio+1e-9)
					assert.GreaterOrEqual(t, float64(w+1)/float64(h), ratio-1e-9)
				}
			})
		}
	}
}

func TestScaleToFitDegenerate(t *testing.T) {
	w, h := ScaleToFit(0, 10, 100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)

	w, h = ScaleToFit(10000, 1, 100, 100)
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)
}

func TestCenterOffset(t *testing.T) {
	assert.Equal(t, 0, CenterOffset(100, 100))
	assert.Equal(t, 10, CenterOffset(100, 80))
	assert.Equal(t, 10, CenterOffset(101, 80))
	assert.Equal(t, -2, CenterOffset(80, 83))
}

func TestFitImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	out := FitImage(src, 200, 200)
	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, out.NRGBAAt(100, 25))
}
