package main

import (
	"log/slog"

	"movieratings/internal/config"
	"movieratings/internal/metrics"
	"movieratings/internal/metrics/datadog"
	"movieratings/internal/metrics/prompush"
)

// setupMetrics installs the configured metrics backend and returns a function
// that flushes it and restores the nop backend. Backend failures never fail
// the run; they are logged and metrics stay disabled.
func setupMetrics(job string, m config.Metrics) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case "pushgateway":
		url := m.PushgatewayURL
		if url == "" {
			url = config.DefaultPushgateway
		}
		b, err = newPromBackend(job, url)
		if err == nil {
			slog.Debug("metrics: pushgateway", "url", url, "job", job)
		}

	case "datadog":
		addr := m.DatadogAddr
		if addr == "" {
			addr = config.DefaultDatadogAgent
		}
		b, err = newDatadogBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "movies.",
			GlobalTags: []string{"job:" + job},
		})
		if err == nil {
			slog.Debug("metrics: datadog", "addr", addr, "job", job)
		}

	case "", "none":
		slog.Debug("metrics: disabled")
		return func() {}

	default:
		slog.Warn("metrics: unknown backend; metrics disabled", "backend", m.Backend)
		return func() {}
	}

	if err != nil {
		slog.Warn("metrics: backend init failed; using nop", "backend", m.Backend, "err", err)
		return func() {}
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			slog.Warn("metrics: flush failed", "backend", m.Backend, "err", err)
		}
		metrics.Reset()
	}
}

// Test seams for backend construction.
var (
	newPromBackend = func(job, url string) (metrics.Backend, error) {
		return prompush.NewBackend(job, url)
	}
	newDatadogBackend = func(cfg datadog.Config) (metrics.Backend, error) {
		return datadog.NewBackend(cfg)
	}
)
