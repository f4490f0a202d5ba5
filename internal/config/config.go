// Package config defines the configuration model for a movie ratings run.
//
// A run is described by a Pipeline value. Defaults reproduce the classic
// behavior (read movies.csv, write into ok/); a JSON or YAML pipeline file,
// environment variables and command-line flags can override any field, with
// precedence flag → env → file → default.
//
// Example (JSON):
//
//	{
//	  "job":      "movie_ratings",
//	  "input":    { "path": "data/movies.csv", "options": { "comma": ";" } },
//	  "output":   { "dir": "out" },
//	  "analysis": { "top_n": 10 },
//	  "storage":  { "kind": "sqlite", "dsn": "out/movies.db" },
//	  "metrics":  { "backend": "pushgateway", "pushgateway_url": "http://localhost:9091" }
//	}
package config

import "encoding/json"

// Default values.
const (
	DefaultJob          = "movie_ratings"
	DefaultInputPath    = "movies.csv"
	DefaultOutputDir    = "ok"
	DefaultTopN         = 5
	DefaultChartWidth   = 1500
	DefaultChartHeight  = 900
	DefaultMetrics      = "none"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "pretty"
	DefaultPushgateway  = "http://localhost:9091"
	DefaultDatadogAgent = "127.0.0.1:8125"
)

// Pipeline describes one analyzer run.
type Pipeline struct {
	// Job names the run in logs and metrics.
	Job string `json:"job" yaml:"job"`

	Input    Input    `json:"input" yaml:"input"`
	Output   Output   `json:"output" yaml:"output"`
	Analysis Analysis `json:"analysis" yaml:"analysis"`
	Charts   Charts   `json:"charts" yaml:"charts"`
	Storage  Storage  `json:"storage" yaml:"storage"`
	Metrics  Metrics  `json:"metrics" yaml:"metrics"`
	Log      Log      `json:"log" yaml:"log"`
}

// Input locates the raw movie table.
type Input struct {
	// Path is the local filesystem path of the delimited input table.
	Path string `json:"path" yaml:"path"`

	// ProvisionSample writes the bundled sample dataset to Path when no
	// file exists there.
	ProvisionSample bool `json:"provision_sample" yaml:"provision_sample"`

	// Options tune the CSV parser:
	//   comma (string), trim_space (bool), lazy_quotes (bool, default true),
	//   header_map (object)
	Options Options `json:"options" yaml:"options"`
}

// Output locates the output directory.
type Output struct {
	Dir string `json:"dir" yaml:"dir"`
}

// Analysis tunes the aggregates.
type Analysis struct {
	// TopN is the size of the top-rated table.
	TopN int `json:"top_n" yaml:"top_n"`
}

// Charts controls the PNG renderers.
type Charts struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Width   int  `json:"width" yaml:"width"`
	Height  int  `json:"height" yaml:"height"`
}

// Storage configures the optional SQL sink. An empty Kind disables it.
type Storage struct {
	// Kind selects the backend: sqlite, postgres or mssql.
	Kind string `json:"kind" yaml:"kind"`

	// DSN is passed to the backend driver.
	DSN string `json:"dsn" yaml:"dsn"`

	// TablePrefix is prepended to every published table name.
	TablePrefix string `json:"table_prefix" yaml:"table_prefix"`
}

// Enabled reports whether a SQL sink is configured.
func (s Storage) Enabled() bool { return s.Kind != "" }

// Metrics selects the metrics backend.
type Metrics struct {
	// Backend is one of none, pushgateway, datadog.
	Backend        string `json:"backend" yaml:"backend"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr" yaml:"datadog_addr"`
}

// Log configures the process logger.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Pipeline {
	return Pipeline{
		Job: DefaultJob,
		Input: Input{
			Path:            DefaultInputPath,
			ProvisionSample: true,
			Options:         Options{},
		},
		Output:   Output{Dir: DefaultOutputDir},
		Analysis: Analysis{TopN: DefaultTopN},
		Charts: Charts{
			Enabled: true,
			Width:   DefaultChartWidth,
			Height:  DefaultChartHeight,
		},
		Metrics: Metrics{Backend: DefaultMetrics},
		Log:     Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Options is a small helper to fetch typed values from free-form option maps
// decoded from JSON or YAML. It performs only minimal type coercion and
// returns the provided default when a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// YAML integers as int; both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for the CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty map
// when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON makes a missing or null "options" object decode to a
// non-nil, empty Options map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
