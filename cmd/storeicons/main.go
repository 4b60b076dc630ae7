package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dunamismax/storekit/internal/canvas"
	"github.com/dunamismax/storekit/internal/cli"
	"github.com/dunamismax/storekit/internal/icons"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		cli.Fatal(err, printUsage)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("storeicons", flag.ContinueOnError)
	var tel cli.Telemetry
	tel.Register(fs)
	fs.Usage = printUsage

	positionals, err := cli.Parse(fs, args)
	if err != nil {
		return err
	}
	if err := cli.RequireArgs(positionals, "source_image", "output_folder"); err != nil {
		return err
	}
	src, outDir := positionals[0], positionals[1]
	if err := cli.RequirePath(src, false); err != nil {
		return err
	}

	logger := log.New(os.Stdout, "[icons] ", log.LstdFlags|log.Lmsgprefix)
	ctx := context.Background()

	metrics, finish, err := tel.Start(ctx, "icons", logger)
	if err != nil {
		return err
	}
	defer finish()

	if err := canvas.Startup(); err != nil {
		return fmt.Errorf("start image runtime: %w", err)
	}
	defer canvas.Shutdown()

	logger.Printf("Generating icons source=%s output_dir=%s", src, outDir)
	result, err := icons.NewGenerator(logger, metrics).Generate(ctx, src, outDir)
	if err != nil {
		return err
	}
	logger.Printf("Done sizes=%d files=%d", result.Sizes, len(result.Outputs))
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `storeicons - generate web store icons

Usage:
  storeicons <source_image> <output_folder> [flags]

Writes icon16/32/48/128 as both .png and .jpeg.

Flags:
  -metrics-file <path>  Write run metrics in Prometheus text format
  -trace none|stdout    Trace exporter (default none)
`)
}
