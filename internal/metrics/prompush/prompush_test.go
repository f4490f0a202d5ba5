package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movieratings/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// readCounterValue reads the current value of a Counter for assertions in tests.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

// readSummaryCountSum reads sample count and sum from a SummaryVec.
func readSummaryCountSum(t *testing.T, v *prometheus.SummaryVec, labels ...string) (uint64, float64) {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	return m.GetSummary().GetSampleCount(), m.GetSummary().GetSampleSum()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL returns error", jobName: "job", wantErr: true},
		{name: "empty job name uses default", gatewayURL: "http://pushgateway:9091", wantJobName: DefaultJob},
		{name: "explicit job name is preserved", jobName: "nightly", gatewayURL: "http://pushgateway:9091", wantJobName: "nightly"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend(%q, %q) = %v, %v; want nil, error", tt.jobName, tt.gatewayURL, b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend: %v", err)
			}
			if b.jobName != tt.wantJobName || b.gatewayURL != tt.gatewayURL {
				t.Fatalf("backend = %q/%q; want %q/%q", b.jobName, b.gatewayURL, tt.wantJobName, tt.gatewayURL)
			}
		})
	}
}

/*
TestIncCounter verifies that IncCounter routes each shared metric name to its
collector and ignores names it does not know.
*/
func TestIncCounter(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "load", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 20, metrics.Labels{"kind": "parsed"})
	b.IncCounter(metrics.RowsTotal, 13, metrics.Labels{"kind": "exploded"})
	b.IncCounter(metrics.RowsTotal, 20, metrics.Labels{"kind": "exploded"})
	b.IncCounter(metrics.OutputsTotal, 4, metrics.Labels{"kind": "csv"})
	b.IncCounter("unknown_metric", 10, metrics.Labels{"kind": "csv"})

	if got := readCounterValue(t, b.stepCounter.WithLabelValues("load", "success")); got != 1 {
		t.Fatalf("step counter = %v, want 1", got)
	}
	if got := readCounterValue(t, b.rowCounter.WithLabelValues("parsed")); got != 20 {
		t.Fatalf("parsed rows = %v, want 20", got)
	}
	if got := readCounterValue(t, b.rowCounter.WithLabelValues("exploded")); got != 33 {
		t.Fatalf("exploded rows = %v, want 33", got)
	}
	if got := readCounterValue(t, b.outputCounter.WithLabelValues("csv")); got != 4 {
		t.Fatalf("csv outputs = %v, want 4", got)
	}
}

func TestIncCounterNilMetrics(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "s", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{"kind": "parsed"})
	b.IncCounter(metrics.OutputsTotal, 1, metrics.Labels{"kind": "png"})
	b.ObserveHistogram(metrics.StepDurationSeconds, 1, metrics.Labels{})
}

func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("job", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	lbls := metrics.Labels{"step": "render", "status": "success"}
	b.ObserveHistogram(metrics.StepDurationSeconds, 1.5, lbls)
	b.ObserveHistogram("other_metric", 2.0, lbls)

	count, sum := readSummaryCountSum(t, b.stepDuration, "render", "success")
	if count != 1 || sum != 1.5 {
		t.Fatalf("summary = %d/%v; want 1/1.5", count, sum)
	}
}

// TestFlush verifies that Flush pushes the registry to the Pushgateway under
// the job grouping key.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushed struct {
		method string
		path   string
		body   string
	}
	reqCh := make(chan pushed, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushed{method: r.Method, path: r.URL.Path, body: string(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("movie_ratings", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.RowsTotal, 20, metrics.Labels{"kind": "parsed"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushed
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() did not send a request to the Pushgateway")
	}
	if got.method != http.MethodPut {
		t.Fatalf("method = %s, want PUT", got.method)
	}
	if !strings.Contains(got.path, "/job/movie_ratings") {
		t.Fatalf("path = %q, want job grouping key", got.path)
	}
	if len(got.body) == 0 {
		t.Fatalf("empty push body")
	}
}

func TestFlush_GatewayError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("movie_ratings", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if err := b.Flush(); err == nil {
		t.Fatalf("expected error from failing gateway")
	}
}
