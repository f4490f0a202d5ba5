package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a problem worth surfacing that does not block
	// execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "input.options.comma"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Known backend names.
var (
	StorageKinds   = []string{"sqlite", "postgres", "mssql"}
	MetricsKinds   = []string{"none", "pushgateway", "datadog"}
	logLevelNames  = []string{"debug", "info", "warn", "warning", "error"}
	logFormatNames = []string{"pretty", "json"}
)

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(p.Job) == "" {
		add(SeverityError, "job", "job must not be empty; it labels logs and metrics")
	}
	if strings.TrimSpace(p.Input.Path) == "" {
		add(SeverityError, "input.path", "input path must not be empty")
	}
	if strings.TrimSpace(p.Output.Dir) == "" {
		add(SeverityError, "output.dir", "output directory must not be empty")
	}

	if v, ok := p.Input.Options["comma"]; ok {
		s, isStr := v.(string)
		switch {
		case !isStr:
			add(SeverityError, "input.options.comma", "comma must be a string")
		case len([]rune(s)) != 1:
			add(SeverityError, "input.options.comma", "comma must be exactly one character, got %q", s)
		case s == "\"" || s == "\r" || s == "\n":
			add(SeverityError, "input.options.comma", "comma %q is not a valid delimiter", s)
		}
	}

	for _, key := range []string{"trim_space", "lazy_quotes"} {
		if v, ok := p.Input.Options[key]; ok {
			if _, isBool := v.(bool); !isBool {
				add(SeverityError, "input.options."+key, "%s must be a boolean", key)
			}
		}
	}

	if p.Analysis.TopN <= 0 {
		add(SeverityError, "analysis.top_n", "top_n must be positive, got %d", p.Analysis.TopN)
	}

	if p.Charts.Enabled {
		if p.Charts.Width < 200 {
			add(SeverityError, "charts.width", "chart width must be at least 200 pixels, got %d", p.Charts.Width)
		}
		if p.Charts.Height < 200 {
			add(SeverityError, "charts.height", "chart height must be at least 200 pixels, got %d", p.Charts.Height)
		}
	}

	if p.Storage.Enabled() {
		if !contains(StorageKinds, p.Storage.Kind) {
			add(SeverityError, "storage.kind", "unknown storage kind %q; want one of %v", p.Storage.Kind, StorageKinds)
		}
		if strings.TrimSpace(p.Storage.DSN) == "" {
			add(SeverityError, "storage.dsn", "storage kind %q requires a dsn", p.Storage.Kind)
		}
	} else if p.Storage.DSN != "" {
		add(SeverityWarning, "storage.dsn", "dsn is set but storage.kind is empty; the SQL sink is disabled")
	}

	if p.Metrics.Backend != "" && !contains(MetricsKinds, p.Metrics.Backend) {
		add(SeverityWarning, "metrics.backend", "unknown metrics backend %q; metrics will be disabled", p.Metrics.Backend)
	}

	if p.Log.Level != "" && !contains(logLevelNames, strings.ToLower(p.Log.Level)) {
		add(SeverityWarning, "log.level", "unknown log level %q; info will be used", p.Log.Level)
	}
	if p.Log.Format != "" && !contains(logFormatNames, p.Log.Format) {
		add(SeverityWarning, "log.format", "unknown log format %q; pretty will be used", p.Log.Format)
	}

	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
