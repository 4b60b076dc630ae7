package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/domain"
)

var ErrDimensionMismatch = errors.New("canvas does not match output spec")

type Output struct {
	Name   string
	Format domain.Format
	Path   string
	Bytes  int
	Width  int
	Height int
}

type Emitter interface {
	Emit(ctx context.Context, spec domain.OutputSpec, img image.Image) (Output, error)
}

type LocalFileEmitter struct {
	OutputDir string
}

func (e LocalFileEmitter) Emit(ctx context.Context, spec domain.OutputSpec, img image.Image) (Output, error) {
	if strings.TrimSpace(e.OutputDir) == "" {
		return Output{}, errors.New("output directory is required")
	}
	if err := spec.Validate(); err != nil {
		return Output{}, err
	}

	select {
	case <-ctx.Done():
		return Output{}, ctx.Err()
	default:
	}

	bounds := img.Bounds()
	if bounds.Dx() != spec.Width || bounds.Dy() != spec.Height {
		return Output{}, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
			ErrDimensionMismatch, spec.Name, bounds.Dx(), bounds.Dy(), spec.Width, spec.Height)
	}

	if err := EnsureDir(e.OutputDir); err != nil {
		return Output{}, err
	}

	fullPath := filepath.Join(e.OutputDir, spec.Name)
	n, err := canvas.Save(img, fullPath, spec.Format, canvas.OptionsFor(spec))
	if err != nil {
		return Output{}, err
	}

	return Output{
		Name:   spec.Name,
		Format: spec.Format,
		Path:   fullPath,
		Bytes:  n,
		Width:  spec.Width,
		Height: spec.Height,
	}, nil
}

// EnsureDir creates dir and its parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}
