package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSpecValidate(t *testing.T) {
	for _, size := range IconSizes {
		require.NoError(t, IconPNG(size).Validate())
		require.NoError(t, IconJPEG(size).Validate())
	}
	require.NoError(t, SmallPromo.Validate())
	require.NoError(t, MarqueePromo.Validate())
	require.NoError(t, Screenshot("shot").Validate())

	tests := []struct {
		name string
		spec OutputSpec
	}{
		{"missing name", OutputSpec{Width: 1, Height: 1, Format: FormatPNG}},
		{"zero width", OutputSpec{Name: "a.png", Height: 1, Format: FormatPNG}},
		{"unknown format", OutputSpec{Name: "a.gif", Width: 1, Height: 1, Format: "gif"}},
		{"jpeg quality", OutputSpec{Name: "a.jpeg", Width: 1, Height: 1, Format: FormatJPEG, Quality: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Validate())
		})
	}
}

func TestAssetNaming(t *testing.T) {
	assert.Equal(t, "icon16.png", IconPNG(16).Name)
	assert.Equal(t, "icon128.jpeg", IconJPEG(128).Name)
	assert.Equal(t, "promo_small_440x280.png", SmallPromo.Name)
	assert.Equal(t, "promo_marquee_1400x560.png", MarqueePromo.Name)
	assert.Equal(t, "home.png", Screenshot("home").Name)
	assert.Equal(t, 1280, Screenshot("home").Width)
	assert.Equal(t, 800, Screenshot("home").Height)
}
