package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/cli"
	"github.com/dunamismax/storekit/internal/config"
	"github.com/dunamismax/storekit/internal/promo"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		cli.Fatal(err, printUsage)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("storepromo", flag.ContinueOnError)

	var (
		title      string
		tagline    string
		screenshot string
		stylePath  string
		tel        cli.Telemetry
	)
	fs.StringVar(&title, "title", promo.DefaultTitle, "Title text")
	fs.StringVar(&tagline, "tagline", promo.DefaultTagline, "Tagline text")
	fs.StringVar(&screenshot, "screenshot", "", "Screenshot for the marquee tile (optional)")
	fs.StringVar(&stylePath, "style", "", "YAML style file overriding palette, fonts and layout (optional)")
	tel.Register(fs)
	fs.Usage = printUsage

	positionals, err := cli.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cli.RequireArgs(positionals, "icon_path", "output_folder"); err != nil {
		return err
	}
	iconPath, outDir := positionals[0], positionals[1]
	if err := cli.RequirePath(iconPath, false); err != nil {
		return err
	}

	cfg := config.Default()
	if stylePath != "" {
		if cfg, err = config.LoadFile(stylePath); err != nil {
			return err
		}
	}

	logger := log.New(os.Stdout, "[promo] ", log.LstdFlags|log.Lmsgprefix)
	ctx := context.Background()

	metrics, finish, err := tel.Start(ctx, "promo", logger)
	if err != nil {
		return err
	}
	defer finish()

	if err := canvas.Startup(); err != nil {
		return fmt.Errorf("start image runtime: %w", err)
	}
	defer canvas.Shutdown()

	logger.Printf("Generating promo tiles icon=%s output_dir=%s title=%q", iconPath, outDir, title)
	result, err := promo.NewGenerator(logger, cfg, metrics).Generate(ctx, promo.Request{
		IconPath:       iconPath,
		OutputDir:      outDir,
		Title:          title,
		Tagline:        tagline,
		ScreenshotPath: screenshot,
	})
	if err != nil {
		return err
	}
	logger.Printf("Done files=%d screenshot=%t", len(result.Outputs), result.Screenshot)
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `storepromo - generate web store promo tiles

Usage:
  storepromo <icon_path> <output_folder> [flags]

Writes promo_small_440x280.png and promo_marquee_1400x560.png.

Flags:
  --title <text>        Title (default "My Extension")
  --tagline <text>      Tagline (default "A helpful browser extension")
  --screenshot <path>   Screenshot shown on the marquee tile
  --style <path>        YAML style file
  -metrics-file <path>  Write run metrics in Prometheus text format
  -trace none|stdout    Trace exporter (default none)
`)
}
