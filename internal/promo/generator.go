// Package promo composes the small and marquee promotional tiles from an
// icon, a title, a tagline and an optional screenshot.
package promo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/config"
	"github.com/dunamismax/storekit/internal/domain"
	"github.com/dunamismax/storekit/internal/pipeline"
	"github.com/dunamismax/storekit/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	toolName = "promo"

	DefaultTitle   = "My Extension"
	DefaultTagline = "A helpful browser extension"
)

type Request struct {
	IconPath       string
	OutputDir      string
	Title          string
	Tagline        string
	ScreenshotPath string
}

type Result struct {
	Outputs []pipeline.Output
	// Screenshot reports whether the marquee tile includes the screenshot.
	Screenshot bool
}

type Generator struct {
	logger     *log.Logger
	cfg        config.Config
	fonts      *canvas.Fonts
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
	newEmitter func(outDir string) pipeline.Emitter
}

func NewGenerator(logger *log.Logger, cfg config.Config, metrics *telemetry.Metrics) *Generator {
	g := &Generator{
		logger:  logger,
		cfg:     cfg,
		fonts:   canvas.NewFonts(fontPaths(cfg.Fonts)),
		metrics: metrics,
		tracer:  otel.Tracer("storekit/promo"),
		newEmitter: func(outDir string) pipeline.Emitter {
			return pipeline.LocalFileEmitter{OutputDir: outDir}
		},
	}
	g.logger.Printf("Fonts resolved bold=%q regular=%q", g.fonts.Source(canvas.Bold), g.fonts.Source(canvas.Regular))
	return g
}

func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	startedAt := time.Now()
	defer func() { g.metrics.ObserveRun(toolName, time.Since(startedAt)) }()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle
	}
	tagline := strings.TrimSpace(req.Tagline)
	if tagline == "" {
		tagline = DefaultTagline
	}

	ctx, span := g.tracer.Start(ctx, "promo.generate")
	span.SetAttributes(
		attribute.String("promo.icon", req.IconPath),
		attribute.String("promo.output_dir", req.OutputDir),
		attribute.Bool("promo.screenshot_requested", req.ScreenshotPath != ""),
	)
	defer span.End()

	var withShot bool
	steps := []pipeline.Step{
		{
			Spec: domain.SmallPromo,
			Transform: func(_ context.Context, icon image.Image) (image.Image, error) {
				return g.renderTile(domain.SmallPromo, g.cfg.Small, icon, title, tagline, nil), nil
			},
		},
		{
			Spec: domain.MarqueePromo,
			Transform: func(ctx context.Context, icon image.Image) (image.Image, error) {
				shot := g.loadScreenshot(ctx, req.ScreenshotPath)
				withShot = shot != nil
				return g.renderTile(domain.MarqueePromo, g.cfg.Marquee, icon, title, tagline, shot), nil
			},
		},
	}

	processor := pipeline.NewProcessor(pipeline.LocalFileFetcher{}, g.newEmitter(req.OutputDir))
	result, err := processor.Process(ctx, req.IconPath, steps)
	if err != nil {
		g.metrics.RecordFailure(toolName, pipeline.FailureStage(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "promo generation failed")
		return Result{}, fmt.Errorf("generate promo tiles from %s: %w", req.IconPath, err)
	}

	for _, out := range result.Outputs {
		g.metrics.RecordAsset(toolName, out.Format, out.Width, out.Height)
		g.logger.Printf("wrote path=%s width=%d height=%d bytes=%d", out.Path, out.Width, out.Height, out.Bytes)
	}
	span.SetAttributes(attribute.Bool("promo.screenshot", withShot))

	return Result{Outputs: result.Outputs, Screenshot: withShot}, nil
}

// renderTile lays out one tile: gradient, icon, title, underline, tagline,
// then the screenshot region when shot is non-nil and the layout has one.
func (g *Generator) renderTile(spec domain.OutputSpec, layout config.Layout, icon image.Image, title, tagline string, shot image.Image) *image.NRGBA {
	palette := g.cfg.Palette
	w, h := spec.Width, spec.Height

	tile := canvas.VerticalGradient(w, h, palette.Background, layout.GradientFactor)

	scaledIcon := canvas.Resize(icon, layout.IconSize, layout.IconSize)
	tile = canvas.CompositeOver(tile, scaledIcon, layout.IconX, canvas.CenterOffset(h, layout.IconSize))

	titleFace := g.fonts.Face(canvas.Bold, layout.TitleSize)
	canvas.DrawText(tile, layout.TextX, layout.TitleY, title, palette.Text, titleFace)

	underline := image.Rect(layout.TextX, layout.UnderlineY, layout.TextX+layout.UnderlineWidth, layout.UnderlineY+layout.UnderlineHeight)
	canvas.FillRect(tile, underline, palette.Accent)

	taglineFace := g.fonts.Face(canvas.Regular, layout.TaglineSize)
	canvas.DrawText(tile, layout.TextX, layout.TaglineY, tagline, palette.Accent, taglineFace)

	textLimit := w
	if shot != nil && layout.Screenshot.MaxHeight > 0 {
		var left int
		tile, left = placeScreenshot(tile, shot, layout.Screenshot, palette.Accent)
		textLimit = left
	}

	if right := layout.TextX + canvas.MeasureText(titleFace, title); right > textLimit {
		g.logger.Printf("warning: title overflows tile=%s right=%d limit=%d", spec.Name, right, textLimit)
	}
	if right := layout.TextX + canvas.MeasureText(taglineFace, tagline); right > textLimit {
		g.logger.Printf("warning: tagline overflows tile=%s right=%d limit=%d", spec.Name, right, textLimit)
	}

	return tile
}

// placeScreenshot fits shot into the layout box, draws the accent border as a
// filled rectangle behind it and pastes it Margin px from the right edge,
// vertically centered. It returns the new tile and the border's left edge.
func placeScreenshot(tile *image.NRGBA, shot image.Image, layout config.ScreenshotLayout, accent color.Color) (*image.NRGBA, int) {
	w, h := tile.Bounds().Dx(), tile.Bounds().Dy()

	if canvas.HasAlpha(shot) {
		shot = canvas.Flatten(shot, domain.White)
	}
	fitted := canvas.FitImage(shot, layout.MaxWidth, layout.MaxHeight)
	sw, sh := fitted.Bounds().Dx(), fitted.Bounds().Dy()

	x := w - layout.Margin - sw
	y := canvas.CenterOffset(h, sh)

	border := image.Rect(x, y, x+sw, y+sh).Inset(-layout.Border)
	canvas.FillRect(tile, border, accent)

	return canvas.CompositeOver(tile, fitted, x, y), border.Min.X
}

// loadScreenshot returns nil when path is empty, missing or undecodable. The
// marquee tile is still produced without it.
func (g *Generator) loadScreenshot(ctx context.Context, path string) image.Image {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	_, span := g.tracer.Start(ctx, "promo.screenshot")
	span.SetAttributes(attribute.String("promo.screenshot_path", path))
	defer span.End()

	shot, err := canvas.Load(path)
	if err != nil {
		span.RecordError(err)
		g.logger.Printf("warning: screenshot omitted path=%s err=%v", path, err)
		return nil
	}
	return shot
}

func fontPaths(cfg config.FontConfig) map[canvas.FontStyle][]string {
	return map[canvas.FontStyle][]string{
		canvas.Regular: append(append([]string(nil), cfg.Regular...), canvas.DefaultFontPaths[canvas.Regular]...),
		canvas.Bold:    append(append([]string(nil), cfg.Bold...), canvas.DefaultFontPaths[canvas.Bold]...),
	}
}
