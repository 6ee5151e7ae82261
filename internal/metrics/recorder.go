// internal/metrics/recorder.go

// Package metrics records per-session query statistics. Counters and
// histograms live in a private Prometheus registry that can be written to a
// node_exporter textfile; a running summary backs the interactive stats view.
package metrics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mwiater/tccc/internal/logging"
)

// Recorder collects metrics for one process.
type Recorder struct {
	registry *prometheus.Registry

	queriesTotal       *prometheus.CounterVec
	queryDuration      prometheus.Histogram
	querySources       prometheus.Histogram
	generationDuration *prometheus.HistogramVec
	generationFailures *prometheus.CounterVec

	mutex    sync.Mutex
	snapshot Snapshot
}

// NewRecorder creates a Recorder with its own registry.
//
// Metrics:
//   - tccc_queries_total{urgent} - answered queries
//   - tccc_query_duration_seconds - end to end answer time
//   - tccc_query_sources - sources attributed per answer
//   - tccc_generation_duration_seconds{backend} - backend call time
//   - tccc_generation_failures_total{backend,kind} - failed backend calls
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tccc_queries_total",
				Help: "Total number of answered queries",
			},
			[]string{"urgent"},
		),
		queryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tccc_query_duration_seconds",
				Help:    "Duration of a full query from retrieval to answer",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 11), // 50ms to ~51s
			},
		),
		querySources: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tccc_query_sources",
				Help:    "Number of handbook sources attributed per answer",
				Buckets: prometheus.LinearBuckets(0, 1, 6),
			},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tccc_generation_duration_seconds",
				Help:    "Duration of generation backend calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 11),
			},
			[]string{"backend"},
		),
		generationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tccc_generation_failures_total",
				Help: "Total number of failed generation backend calls",
			},
			[]string{"backend", "kind"},
		),
	}
}

// ObserveAnswer records one answered query.
func (r *Recorder) ObserveAnswer(urgent bool, elapsed time.Duration, sources int, failed bool) {
	r.queriesTotal.WithLabelValues(strconv.FormatBool(urgent)).Inc()
	r.queryDuration.Observe(elapsed.Seconds())
	r.querySources.Observe(float64(sources))

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.snapshot.Queries++
	if urgent {
		r.snapshot.UrgentQueries++
	}
	if failed {
		r.snapshot.FailedAnswers++
	}
	updateRunningStat(&r.snapshot.ResponseTime, elapsed.Seconds())
	updateRunningStat(&r.snapshot.SourcesPerHit, float64(sources))
}

// ObserveGeneration records one backend call. kind is empty on success.
func (r *Recorder) ObserveGeneration(backend string, elapsed time.Duration, kind string) {
	r.generationDuration.WithLabelValues(backend).Observe(elapsed.Seconds())
	if kind != "" {
		r.generationFailures.WithLabelValues(backend, kind).Inc()
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	updateRunningStat(&r.snapshot.GenerationTime, elapsed.Seconds())
}

// Snapshot returns a copy of the running summary.
func (r *Recorder) Snapshot() Snapshot {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.snapshot
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	logging.LogEvent("[METRICS] Writing metrics to %s", path)
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

// FormatSnapshot renders s for the interactive stats command.
func FormatSnapshot(s Snapshot) string {
	if s.Queries == 0 {
		return "No queries answered yet."
	}
	return fmt.Sprintf(
		"Queries: %d (urgent: %d, failed: %d)\nResponse time: mean %.1fs, min %.1fs, max %.1fs\nSources per answer: mean %.1f",
		s.Queries, s.UrgentQueries, s.FailedAnswers,
		s.ResponseTime.Mean, s.ResponseTime.Min, s.ResponseTime.Max,
		s.SourcesPerHit.Mean,
	)
}
