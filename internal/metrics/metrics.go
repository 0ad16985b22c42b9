// Package metrics records transform counters and durations in a private
// Prometheus registry and writes them in node-exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels for the duration histogram.
const (
	OpFingerprint  = "fingerprint"
	OpCanonicalize = "canonicalize"
	OpGroup        = "group"
)

// Recorder collects counters for one process. A nil *Recorder ignores all
// observations.
type Recorder struct {
	registry *prometheus.Registry
	inputs   prometheus.Counter
	groups   prometheus.Counter
	replaced prometheus.Counter
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the textwrangler collectors in a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		inputs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "textwrangler_inputs_total",
			Help: "Input values processed",
		}),
		groups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "textwrangler_groups_total",
			Help: "Fingerprint groups formed",
		}),
		replaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "textwrangler_replaced_total",
			Help: "Values replaced by a different canonical value",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "textwrangler_errors_total",
			Help: "Failed transform calls",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "textwrangler_transform_duration_seconds",
			Help:    "Duration of transform calls",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10), // 0.5ms to ~131s
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.inputs, r.groups, r.replaced, r.errors, r.duration)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveInputs counts processed values.
func (r *Recorder) ObserveInputs(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.inputs.Add(float64(n))
}

// ObserveGroups counts groups formed and values replaced by one call.
func (r *Recorder) ObserveGroups(groups, replaced int) {
	if r == nil {
		return
	}
	if groups > 0 {
		r.groups.Add(float64(groups))
	}
	if replaced > 0 {
		r.replaced.Add(float64(replaced))
	}
}

// ObserveError counts a failed call.
func (r *Recorder) ObserveError(operation string) {
	if r == nil {
		return
	}
	r.errors.WithLabelValues(operation).Inc()
}

// ObserveDuration records the time since start for operation.
func (r *Recorder) ObserveDuration(operation string, start time.Time) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes the registry in textfile-collector format to path,
// creating parent directories as needed.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
