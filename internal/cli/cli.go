// Package cli holds the argument handling shared by the storekit commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dunamismax/storekit/internal/telemetry"
)

var (
	ErrArgument     = errors.New("missing required argument")
	ErrPathNotFound = errors.New("path not found")
)

// Parse parses args with fs, accepting flags before, between or after the
// positionals. Everything after "--" is positional.
func Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	flags, positionals := SplitArgs(fs, args)
	if err := fs.Parse(flags); err != nil {
		return nil, err
	}
	return append(positionals, fs.Args()...), nil
}

// SplitArgs separates flag tokens from positionals. A flag defined in fs that
// takes a value consumes the next token unless given as -name=value.
func SplitArgs(fs *flag.FlagSet, args []string) (flags, positionals []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positionals = append(positionals, arg)
			continue
		}

		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if takesValue(fs, name) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, positionals
}

func takesValue(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

// RequireArgs checks that there is a positional for every name.
func RequireArgs(positionals []string, names ...string) error {
	if len(positionals) < len(names) {
		return fmt.Errorf("%w: %s", ErrArgument, strings.Join(names[len(positionals):], ", "))
	}
	return nil
}

// RequirePath checks that path exists, and is a directory when wantDir is set.
func RequirePath(path string, wantDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if wantDir && !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, path)
	}
	if !wantDir && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPathNotFound, path)
	}
	return nil
}

// ExitCode maps a run error to the process exit status. A help request is
// not a failure.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

// Telemetry carries the observability flags every command accepts.
type Telemetry struct {
	MetricsFile string
	Trace       string
}

func (t *Telemetry) Register(fs *flag.FlagSet) {
	fs.StringVar(&t.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this path")
	fs.StringVar(&t.Trace, "trace", telemetry.ExporterNone, "Trace exporter: none or stdout")
}

// Start sets up tracing and metrics for one run of tool. The returned finish
// func flushes spans and writes the metrics file. Failures there are logged,
// not returned.
func (t Telemetry) Start(ctx context.Context, tool string, logger *log.Logger) (*telemetry.Metrics, func(), error) {
	shutdown, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		Tool:     tool,
		Exporter: t.Trace,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	metrics := telemetry.NewMetrics()
	finish := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Printf("trace shutdown failed: %v", err)
		}
		if err := metrics.WriteTextfile(t.MetricsFile); err != nil {
			logger.Printf("%v", err)
		} else if t.MetricsFile != "" {
			logger.Printf("wrote metrics path=%s", t.MetricsFile)
		}
	}
	return metrics, finish, nil
}

// Fatal prints err to stderr, with usage for argument errors, and exits.
func Fatal(err error, usage func()) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(ExitCode(err))
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, ErrArgument) && usage != nil {
		usage()
	}
	os.Exit(ExitCode(err))
}
