// Command movieratings cleans a movie ratings table, computes per-genre,
// per-year and top-rated summaries, renders two bar charts and writes the
// results into an output directory.
//
// With no arguments it reads movies.csv (writing a bundled sample there when
// the file is missing) and writes into ok/.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"movieratings/internal/config"
	"movieratings/internal/logger"

	// register all backends with the storage factory.
	_ "movieratings/internal/storage/all"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// realMain parses configuration, validates it, installs logging and metrics
// and runs the pipeline. It returns the process exit code.
func realMain(args []string, getenv config.Getenv, stdout, stderr io.Writer) int {
	cfg, cli, err := config.Parse(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger.Setup(stderr, cfg.Log.Level, cfg.Log.Format)

	issues := config.ValidatePipeline(cfg)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fmt.Fprintln(stderr, "error: configuration is invalid")
		return 1
	}
	if cli.Validate {
		fmt.Fprintln(stdout, "Configuration is valid")
		return 0
	}

	flush := setupMetrics(cfg.Job, cfg.Metrics)
	defer flush()

	start := time.Now()
	slog.Debug("pipeline: starting",
		"job", cfg.Job, "input", cfg.Input.Path, "output", cfg.Output.Dir,
		"top_n", cfg.Analysis.TopN, "charts", cfg.Charts.Enabled, "storage", cfg.Storage.Kind)

	if err := run(context.Background(), cfg, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	slog.Debug("pipeline: completed", "elapsed", time.Since(start).Truncate(time.Millisecond))
	return 0
}
