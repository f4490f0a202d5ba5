// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from an analyzer run.
//
// A global backend defaults to a no-op implementation, so every Record call is
// safe even when no metrics system is configured. Concrete systems live in
// subpackages (prompush, datadog) and are installed with SetBackend.
package metrics

import "time"

// Metric names shared by all backends.
const (
	StepTotal           = "movies_step_total"
	StepDurationSeconds = "movies_step_duration_seconds"
	RowsTotal           = "movies_rows_total"
	OutputsTotal        = "movies_outputs_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Reset restores the no-op backend.
func Reset() { backend = nopBackend{} }

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one execution of a pipeline step and observes its
// duration, labelled by outcome.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRow increments a row-level counter for the given job and kind.
//
// Kinds used by the pipeline:
//   - "parsed"
//   - "parse_errors"
//   - "dropped"
//   - "cleaned"
//   - "exploded"
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordOutput counts one written artifact; kind is "csv", "png" or "table".
func RecordOutput(job, kind string) {
	backend.IncCounter(OutputsTotal, 1, Labels{
		"job":  job,
		"kind": kind,
	})
}
