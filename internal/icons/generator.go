// Package icons renders the store icon set from a single source image.
package icons

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/domain"
	"github.com/dunamismax/storekit/internal/pipeline"
	"github.com/dunamismax/storekit/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const toolName = "icons"

type Result struct {
	Sizes   int
	Outputs []pipeline.Output
}

type Generator struct {
	logger     *log.Logger
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	newEmitter func(outDir string) pipeline.Emitter
}

func NewGenerator(logger *log.Logger, metrics *telemetry.Metrics) *Generator {
	return &Generator{
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("storekit/icons"),
		newEmitter: func(outDir string) pipeline.Emitter {
			return pipeline.LocalFileEmitter{OutputDir: outDir}
		},
	}
}

// Generate writes icon<size>.png and icon<size>.jpeg for every store size.
// The source is decoded before anything touches outDir, so a bad source
// leaves no trace on disk.
func (g *Generator) Generate(ctx context.Context, src, outDir string) (Result, error) {
	startedAt := time.Now()
	defer func() { g.metrics.ObserveRun(toolName, time.Since(startedAt)) }()

	ctx, span := g.tracer.Start(ctx, "icons.generate")
	span.SetAttributes(
		attribute.String("icons.source", src),
		attribute.String("icons.output_dir", outDir),
		attribute.Int("icons.sizes", len(domain.IconSizes)),
	)
	defer span.End()

	processor := pipeline.NewProcessor(pipeline.LocalFileFetcher{}, g.newEmitter(outDir))
	result, err := processor.Process(ctx, src, iconSteps())
	if err != nil {
		g.metrics.RecordFailure(toolName, pipeline.FailureStage(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "icon generation failed")
		return Result{}, fmt.Errorf("generate icons from %s: %w", src, err)
	}

	for _, out := range result.Outputs {
		g.metrics.RecordAsset(toolName, out.Format, out.Width, out.Height)
		g.logger.Printf("wrote path=%s width=%d height=%d bytes=%d", out.Path, out.Width, out.Height, out.Bytes)
	}

	sizes := len(result.Outputs) / 2
	g.logger.Printf("Generated icons sizes=%d output_dir=%s", sizes, outDir)
	return Result{Sizes: sizes, Outputs: result.Outputs}, nil
}

// iconSteps resizes once per size; the JPEG step reuses the PNG step's
// canvas and flattens it onto white.
func iconSteps() []pipeline.Step {
	steps := make([]pipeline.Step, 0, 2*len(domain.IconSizes))
	for _, size := range domain.IconSizes {
		size := size
		var resized *image.NRGBA

		steps = append(steps,
			pipeline.Step{
				Spec: domain.IconPNG(size),
				Transform: func(_ context.Context, src image.Image) (image.Image, error) {
					resized = canvas.Resize(src, size, size)
					return resized, nil
				},
			},
			pipeline.Step{
				Spec: domain.IconJPEG(size),
				Transform: func(_ context.Context, src image.Image) (image.Image, error) {
					if resized == nil {
						resized = canvas.Resize(src, size, size)
					}
					bg := canvas.New(size, size, domain.White)
					return canvas.CompositeOver(bg, resized, 0, 0), nil
				},
			},
		)
	}
	return steps
}
