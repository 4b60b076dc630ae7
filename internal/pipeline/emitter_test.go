package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileEmitter_WritesSpecFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	emitter := LocalFileEmitter{OutputDir: outDir}

	img := canvas.New(16, 16, color.NRGBA{R: 0x20, A: 0xff})
	out, err := emitter.Emit(context.Background(), domain.IconPNG(16), img)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "icon16.png"), out.Path)
	assert.Equal(t, domain.FormatPNG, out.Format)
	assert.Equal(t, 16, out.Width)
	assert.Greater(t, out.Bytes, 0)

	f, err := os.Open(out.Path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
}

func TestLocalFileEmitter_OverwritesExisting(t *testing.T) {
	outDir := t.TempDir()
	existing := filepath.Join(outDir, "icon32.jpeg")
	require.NoError(t, os.WriteFile(existing, []byte("stale"), 0o644))

	emitter := LocalFileEmitter{OutputDir: outDir}
	_, err := emitter.Emit(context.Background(), domain.IconJPEG(32), canvas.New(32, 32, color.White))
	require.NoError(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("stale"), data)
}

func TestLocalFileEmitter_RejectsMismatchedCanvas(t *testing.T) {
	emitter := LocalFileEmitter{OutputDir: t.TempDir()}

	_, err := emitter.Emit(context.Background(), domain.IconPNG(48), image.NewNRGBA(image.Rect(0, 0, 47, 48)))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestLocalFileEmitter_RequiresOutputDir(t *testing.T) {
	_, err := LocalFileEmitter{}.Emit(context.Background(), domain.IconPNG(16), canvas.New(16, 16, color.White))
	assert.Error(t, err)
}

func TestLocalFileEmitter_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outDir := filepath.Join(t.TempDir(), "never")
	_, err := LocalFileEmitter{OutputDir: outDir}.Emit(ctx, domain.IconPNG(16), canvas.New(16, 16, color.White))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, outDir)
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}
