package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/cli"
	"github.com/dunamismax/storekit/internal/screenshots"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		cli.Fatal(err, printUsage)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("storeshots", flag.ContinueOnError)
	var tel cli.Telemetry
	tel.Register(fs)
	fs.Usage = printUsage

	positionals, err := cli.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cli.RequireArgs(positionals, "input_folder"); err != nil {
		return err
	}
	inDir := positionals[0]
	outDir := inDir
	if len(positionals) > 1 {
		outDir = positionals[1]
	}
	if err := cli.RequirePath(inDir, true); err != nil {
		return err
	}

	logger := log.New(os.Stdout, "[shots] ", log.LstdFlags|log.Lmsgprefix)
	ctx := context.Background()

	metrics, finish, err := tel.Start(ctx, "screenshots", logger)
	if err != nil {
		return err
	}
	defer finish()

	if err := canvas.Startup(); err != nil {
		return fmt.Errorf("start image runtime: %w", err)
	}
	defer canvas.Shutdown()

	report, err := screenshots.NewNormalizer(logger, metrics).Run(ctx, inDir, outDir)
	if err != nil {
		return err
	}
	logger.Printf("Done processed=%d failed=%d output_dir=%s", report.Processed, len(report.Failures), outDir)
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `storeshots - normalize screenshots to 1280x800

Usage:
  storeshots <input_folder> [output_folder] [flags]

Every .png/.jpg/.jpeg/.webp/.bmp in input_folder is letterboxed onto a white
1280x800 canvas and written as <name>.png. Output defaults to input_folder.

Flags:
  -metrics-file <path>  Write run metrics in Prometheus text format
  -trace none|stdout    Trace exporter (default none)
`)
}
