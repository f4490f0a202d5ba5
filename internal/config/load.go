package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CLI holds the flags that steer the process rather than the pipeline.
type CLI struct {
	ConfigPath string
	Validate   bool
	Verbose    bool
}

// Getenv looks up an environment variable; os.Getenv in production.
type Getenv func(string) string

// Parse builds the effective Pipeline from args (without the program name),
// the environment and an optional pipeline file, applying precedence
// flag → env → file → default. With no arguments and a clean environment it
// returns Default().
func Parse(args []string, getenv Getenv, stderr io.Writer) (Pipeline, CLI, error) {
	var cli CLI
	if getenv == nil {
		getenv = os.Getenv
	}

	fs := flag.NewFlagSet("movieratings", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cli.ConfigPath, "config", "", "pipeline config file (.json, .yaml, .yml)")
	fs.BoolVar(&cli.Validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&cli.Verbose, "v", false, "enable verbose (debug) logs")
	input := fs.String("input", "", "input CSV path (default: movies.csv)")
	output := fs.String("output", "", "output directory (default: ok)")
	topN := fs.String("top", "", "size of the top-rated table (default: 5)")
	noCharts := fs.Bool("no-charts", false, "skip PNG chart rendering")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "log format (pretty, json)")
	metricsBackend := fs.String("metrics-backend", "", "metrics backend (none, pushgateway, datadog)")
	pushgatewayURL := fs.String("pushgateway-url", "", "Pushgateway base URL")
	datadogAddr := fs.String("datadog-addr", "", "DogStatsD address")
	storageKind := fs.String("storage-kind", "", "optional SQL sink (sqlite, postgres, mssql)")
	storageDSN := fs.String("storage-dsn", "", "SQL sink connection string")

	if err := fs.Parse(args); err != nil {
		return Pipeline{}, cli, err
	}
	if fs.NArg() > 0 {
		return Pipeline{}, cli, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if cli.ConfigPath == "" {
		cli.ConfigPath = getenv("MOVIES_CONFIG")
	}

	p := Default()
	if cli.ConfigPath != "" {
		var err error
		if p, err = LoadFile(cli.ConfigPath); err != nil {
			return Pipeline{}, cli, err
		}
	}

	if err := applyEnv(&p, getenv); err != nil {
		return Pipeline{}, cli, err
	}

	// Flags win over everything else.
	setIf(&p.Input.Path, *input)
	setIf(&p.Output.Dir, *output)
	setIf(&p.Log.Level, *logLevel)
	setIf(&p.Log.Format, *logFormat)
	setIf(&p.Metrics.Backend, *metricsBackend)
	setIf(&p.Metrics.PushgatewayURL, *pushgatewayURL)
	setIf(&p.Metrics.DatadogAddr, *datadogAddr)
	setIf(&p.Storage.Kind, *storageKind)
	setIf(&p.Storage.DSN, *storageDSN)
	if *topN != "" {
		n, err := strconv.Atoi(*topN)
		if err != nil {
			return Pipeline{}, cli, fmt.Errorf("-top: %w", err)
		}
		p.Analysis.TopN = n
	}
	if *noCharts {
		p.Charts.Enabled = false
	}
	if cli.Verbose {
		p.Log.Level = "debug"
	}

	return p, cli, nil
}

// LoadFile decodes a pipeline file over Default(). Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON. Unknown fields are
// rejected.
func LoadFile(path string) (Pipeline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	p := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && err != io.EOF {
			return Pipeline{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return Pipeline{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if p.Input.Options == nil {
		p.Input.Options = Options{}
	}
	return p, nil
}

func applyEnv(p *Pipeline, getenv Getenv) error {
	setIf(&p.Input.Path, getenv("MOVIES_INPUT"))
	setIf(&p.Output.Dir, getenv("MOVIES_OUTPUT"))
	setIf(&p.Log.Level, getenv("LOG_LEVEL"))
	setIf(&p.Log.Format, getenv("LOG_FORMAT"))
	setIf(&p.Metrics.Backend, getenv("METRICS_BACKEND"))
	setIf(&p.Metrics.PushgatewayURL, getenv("PUSHGATEWAY_URL"))
	setIf(&p.Metrics.DatadogAddr, getenv("DD_AGENT_ADDR"))
	setIf(&p.Storage.Kind, getenv("STORAGE_KIND"))
	setIf(&p.Storage.DSN, getenv("STORAGE_DSN"))
	if v := getenv("MOVIES_TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MOVIES_TOP_N: %w", err)
		}
		p.Analysis.TopN = n
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
