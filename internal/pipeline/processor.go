package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/domain"
)

var ErrNoSteps = errors.New("pipeline must contain at least one step")

// Transform derives one output canvas from the decoded source.
type Transform func(ctx context.Context, src image.Image) (image.Image, error)

// Step pairs an output spec with the transform that renders it.
type Step struct {
	Spec      domain.OutputSpec
	Transform Transform
}

type Result struct {
	Outputs []Output
}

type Fetcher interface {
	Fetch(ctx context.Context, path string) (image.Image, error)
}

// Processor decodes a source once and runs every step against it in order.
// The first failing stage aborts the run.
type Processor struct {
	fetcher Fetcher
	emitter Emitter
}

func NewProcessor(fetcher Fetcher, emitter Emitter) *Processor {
	if fetcher == nil {
		fetcher = LocalFileFetcher{}
	}
	return &Processor{fetcher: fetcher, emitter: emitter}
}

func NewLocalProcessor(outputDir string) *Processor {
	return NewProcessor(LocalFileFetcher{}, LocalFileEmitter{OutputDir: outputDir})
}

func (p *Processor) Process(ctx context.Context, src string, steps []Step) (Result, error) {
	if len(steps) == 0 {
		return Result{}, ErrNoSteps
	}
	if p.emitter == nil {
		return Result{}, errors.New("emitter is required")
	}

	source, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		return Result{}, fmt.Errorf("fetch stage: %w", err)
	}

	out := Result{Outputs: make([]Output, 0, len(steps))}
	for _, step := range steps {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		rendered, err := step.Transform(ctx, source)
		if err != nil {
			return out, fmt.Errorf("transform stage output=%s: %w", step.Spec.Name, err)
		}

		written, err := p.emitter.Emit(ctx, step.Spec, rendered)
		if err != nil {
			return out, fmt.Errorf("emit stage output=%s: %w", step.Spec.Name, err)
		}
		out.Outputs = append(out.Outputs, written)
	}

	return out, nil
}

// LocalFileFetcher decodes images from the local filesystem.
type LocalFileFetcher struct{}

func (LocalFileFetcher) Fetch(ctx context.Context, path string) (image.Image, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("source path is required")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return canvas.Load(path)
}

// FailureStage labels err by the stage that produced it, for failure metrics.
func FailureStage(err error) string {
	switch {
	case errors.Is(err, canvas.ErrDecode):
		return "decode"
	case errors.Is(err, canvas.ErrEncode):
		return "encode"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
