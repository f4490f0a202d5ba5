package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"movieratings/internal/analysis"
	"movieratings/internal/chart"
	"movieratings/internal/config"
	"movieratings/internal/datasource/file"
	"movieratings/internal/datasource/sample"
	"movieratings/internal/export"
	"movieratings/internal/metrics"
	"movieratings/internal/movie"
	csvparser "movieratings/internal/parser/csv"
	"movieratings/internal/records"
	"movieratings/internal/storage"
	"movieratings/internal/table"
)

// Table names used for exported tables and the SQL sink.
const (
	detailsTable = "details_movies"
	genreTable   = "genre_avg_ratings"
	topTable     = "top5_movies"
	yearTable    = "movies_per_year"
)

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newRepositoryFn = storage.New
	ensureSampleFn  = sample.Ensure
	renderChartFn   = chart.Render
)

// results carries the intermediate products between stages.
type results struct {
	records  []records.Record
	skipped  int
	movies   []movie.Movie
	dropped  int
	exploded []analysis.Exploded
	genres   []analysis.GenreRating
	years    []analysis.YearCount
	top      []analysis.Ranked
	tables   []table.Table
}

// run executes provision → load → clean → explode → aggregate → render →
// export → publish for cfg and prints the completion line to stdout. Every
// stage is timed and reported to metrics; the first failing stage aborts the
// run and earlier outputs are left in place.
func run(ctx context.Context, cfg config.Pipeline, stdout io.Writer) error {
	job := cfg.Job
	dir := cfg.Output.Dir
	var res results

	step := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		metrics.RecordStep(job, name, err, time.Since(start))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"prepare", func() error {
			return os.MkdirAll(dir, 0o755)
		}},
		{"provision", func() error {
			if !cfg.Input.ProvisionSample {
				return nil
			}
			created, err := ensureSampleFn(cfg.Input.Path)
			if created {
				slog.Info("provision: wrote sample dataset", "path", cfg.Input.Path, "rows", len(sample.Movies))
			}
			return err
		}},
		{"load", func() error {
			return load(ctx, job, cfg.Input, &res)
		}},
		{"clean", func() error {
			res.movies, res.dropped = movie.Clean(res.records)
			metrics.RecordRow(job, "dropped", int64(res.dropped))
			metrics.RecordRow(job, "cleaned", int64(len(res.movies)))
			slog.Info("clean: done", "kept", len(res.movies), "dropped", res.dropped)
			return nil
		}},
		{"explode", func() error {
			res.exploded = analysis.Explode(res.movies)
			metrics.RecordRow(job, "exploded", int64(len(res.exploded)))
			slog.Debug("explode: done", "rows", len(res.exploded))
			return nil
		}},
		{"aggregate", func() error {
			res.genres = analysis.GenreAverages(res.exploded)
			res.years = analysis.CountByYear(res.movies)
			res.top = analysis.TopRated(res.movies, cfg.Analysis.TopN)
			res.tables = []table.Table{
				movie.Table(detailsTable, res.movies),
				analysis.GenreTable(genreTable, res.genres),
				analysis.TopTable(topTable, res.top),
				analysis.YearTable(yearTable, res.years),
			}
			slog.Info("aggregate: done", "genres", len(res.genres), "years", len(res.years), "top", len(res.top))
			return nil
		}},
		{"render", func() error {
			if !cfg.Charts.Enabled {
				return nil
			}
			return render(job, dir, cfg.Charts, res)
		}},
		{"export", func() error {
			return exportTables(job, dir, res.tables)
		}},
		{"publish", func() error {
			if !cfg.Storage.Enabled() {
				return nil
			}
			return publish(ctx, job, cfg.Storage, res.tables)
		}},
	}

	for _, s := range steps {
		if err := step(s.name, s.fn); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Done! Outputs in: %s\n", dir)
	return nil
}

// load opens the input table and parses it into raw records.
func load(ctx context.Context, job string, in config.Input, res *results) error {
	src := file.NewLocal(in.Path)
	rc, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	p := csvparser.NewParser(csvparser.Options{
		Comma:      in.Options.Rune("comma", ','),
		TrimSpace:  in.Options.Bool("trim_space", false),
		LazyQuotes: in.Options.Bool("lazy_quotes", true),
		HeaderMap:  in.Options.StringMap("header_map"),
	})
	recs, skipped, err := p.Parse(rc)
	if err != nil {
		return fmt.Errorf("parse %s: %w", src.Name(), err)
	}
	res.records, res.skipped = recs, skipped

	metrics.RecordRow(job, "parsed", int64(len(recs)))
	metrics.RecordRow(job, "parse_errors", int64(skipped))
	slog.Info("load: done", "source", src.Name(), "rows", len(recs), "skipped", skipped)
	return nil
}

// render draws both charts into dir.
func render(job, dir string, c config.Charts, res results) error {
	specs := []struct {
		file string
		spec chart.Spec
	}{
		{export.GenreChartFile, chart.GenreRatings(res.genres, c.Width, c.Height)},
		{export.YearChartFile, chart.MoviesPerYear(res.years, c.Width, c.Height)},
	}
	for _, s := range specs {
		path := filepath.Join(dir, s.file)
		if err := renderChartFn(path, s.spec); err != nil {
			return err
		}
		metrics.RecordOutput(job, "png")
		slog.Debug("render: wrote chart", "path", path, "bars", len(s.spec.Bars))
	}
	return nil
}

// exportFiles maps table names to their output files.
var exportFiles = map[string]string{
	detailsTable: export.DetailsFile,
	genreTable:   export.GenreAvgFile,
	topTable:     export.TopFile,
	yearTable:    export.PerYearFile,
}

// exportTables writes every table as CSV into dir.
func exportTables(job, dir string, tables []table.Table) error {
	w := export.NewWriter(dir)
	for _, t := range tables {
		name, ok := exportFiles[t.Name]
		if !ok {
			return fmt.Errorf("no output file for table %q", t.Name)
		}
		res, err := w.Write(name, t)
		if err != nil {
			return err
		}
		metrics.RecordOutput(job, "csv")
		slog.Info("export: wrote file", "path", res.Path, "rows", res.Rows, "bytes", res.Bytes, "xxh3", res.DigestHex())
	}
	return nil
}

// publish mirrors the tables into the configured SQL sink.
func publish(ctx context.Context, job string, s config.Storage, tables []table.Table) error {
	repo, err := newRepositoryFn(ctx, storage.Config{Kind: s.Kind, DSN: s.DSN})
	if err != nil {
		return err
	}
	defer repo.Close()

	pub, err := storage.Publish(ctx, repo, s.TablePrefix, tables...)
	for _, p := range pub {
		metrics.RecordOutput(job, "table")
		slog.Info("publish: replaced table", "kind", s.Kind, "table", p.Table, "rows", p.Rows)
	}
	return err
}
