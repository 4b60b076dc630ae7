// Package screenshots letterboxes arbitrary screenshots onto the store's
// fixed 1280x800 canvas.
package screenshots

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
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

const toolName = "screenshots"

type FileFailure struct {
	Path string
	Err  error
}

type Report struct {
	Processed int
	Outputs   []pipeline.Output
	Failures  []FileFailure
	// OverLimit is set when more screenshots were produced than the store accepts.
	OverLimit bool
}

type Normalizer struct {
	logger     *log.Logger
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	newEmitter func(outDir string) pipeline.Emitter
}

func NewNormalizer(logger *log.Logger, metrics *telemetry.Metrics) *Normalizer {
	return &Normalizer{
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("storekit/screenshots"),
		newEmitter: func(outDir string) pipeline.Emitter {
			return pipeline.LocalFileEmitter{OutputDir: outDir}
		},
	}
}

// Run normalizes every allow-listed image in inDir, in filename order, into
// outDir (inDir when empty). outDir is created before any file is read. A
// file that fails is recorded and skipped; only an unreadable inDir, an
// uncreatable outDir or cancellation fails the run.
func (n *Normalizer) Run(ctx context.Context, inDir, outDir string) (Report, error) {
	startedAt := time.Now()
	defer func() { n.metrics.ObserveRun(toolName, time.Since(startedAt)) }()

	if outDir == "" {
		outDir = inDir
	}

	ctx, span := n.tracer.Start(ctx, "screenshots.run")
	span.SetAttributes(
		attribute.String("screenshots.input_dir", inDir),
		attribute.String("screenshots.output_dir", outDir),
	)
	defer span.End()

	files, err := ListInputs(inDir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list inputs failed")
		return Report{}, err
	}
	span.SetAttributes(attribute.Int("screenshots.candidates", len(files)))
	n.logger.Printf("Found screenshots count=%d input_dir=%s", len(files), inDir)

	if err := pipeline.EnsureDir(outDir); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create output dir failed")
		return Report{}, err
	}

	processor := pipeline.NewProcessor(pipeline.LocalFileFetcher{}, n.newEmitter(outDir))

	var report Report
	for _, path := range files {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		out, err := n.normalizeFile(ctx, processor, path)
		if err != nil {
			n.metrics.RecordFailure(toolName, pipeline.FailureStage(err))
			n.logger.Printf("failed path=%s err=%v", path, err)
			report.Failures = append(report.Failures, FileFailure{Path: path, Err: err})
			continue
		}

		n.metrics.RecordAsset(toolName, out.Format, out.Width, out.Height)
		n.logger.Printf("wrote path=%s width=%d height=%d bytes=%d", out.Path, out.Width, out.Height, out.Bytes)
		report.Outputs = append(report.Outputs, out)
		report.Processed++
	}

	if report.Processed == 0 {
		n.logger.Printf("No image files found to process input_dir=%s failed=%d", inDir, len(report.Failures))
	} else {
		n.logger.Printf("Normalized screenshots processed=%d failed=%d", report.Processed, len(report.Failures))
	}
	if report.Processed > domain.MaxStoreScreens {
		report.OverLimit = true
		n.logger.Printf("advisory: store accepts at most %d screenshots, got %d", domain.MaxStoreScreens, report.Processed)
	}
	span.SetAttributes(
		attribute.Int("screenshots.processed", report.Processed),
		attribute.Int("screenshots.failed", len(report.Failures)),
	)

	return report, nil
}

func (n *Normalizer) normalizeFile(ctx context.Context, processor *pipeline.Processor, path string) (pipeline.Output, error) {
	ctx, span := n.tracer.Start(ctx, "screenshots.file")
	span.SetAttributes(attribute.String("screenshots.path", path))
	defer span.End()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result, err := processor.Process(ctx, path, []pipeline.Step{{
		Spec:      domain.Screenshot(stem),
		Transform: letterbox,
	}})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalize failed")
		return pipeline.Output{}, err
	}
	return result.Outputs[0], nil
}

func letterbox(_ context.Context, src image.Image) (image.Image, error) {
	var flat *image.NRGBA
	if canvas.HasAlpha(src) {
		flat = canvas.Flatten(src, domain.White)
	} else {
		flat = canvas.Opaque(src)
	}

	fitted := canvas.FitImage(flat, domain.ScreenshotWidth, domain.ScreenshotHeight)
	bg := canvas.New(domain.ScreenshotWidth, domain.ScreenshotHeight, domain.White)
	x := canvas.CenterOffset(domain.ScreenshotWidth, fitted.Bounds().Dx())
	y := canvas.CenterOffset(domain.ScreenshotHeight, fitted.Bounds().Dy())
	return canvas.CompositeOver(bg, fitted, x, y), nil
}

// ListInputs returns the allow-listed image files directly inside dir,
// sorted by name. Extensions match case-insensitively.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !domain.ScreenshotExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
