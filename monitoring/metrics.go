// Package monitoring exposes Prometheus metrics for slot supervision:
// per-slot lifecycle counters, a live-task gauge and the time spent waiting
// for a previous occupant to unwind.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	TasksStarted   *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TasksCancelled *prometheus.CounterVec
	SlotsReplaced  *prometheus.CounterVec

	TasksActive prometheus.Gauge
	ReplaceWait prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a metrics collector registered with registerer; passing nil
// creates a private registry, available via Registry for exposition.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{}
	if registerer == nil {
		m.registry = prometheus.NewRegistry()
		registerer = m.registry
	}
	factory := promauto.With(registerer)

	m.TasksStarted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotor_tasks_started_total",
			Help: "Total number of tasks whose body began executing",
		},
		[]string{"slot"},
	)
	m.TasksCompleted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotor_tasks_completed_total",
			Help: "Total number of tasks that returned normally",
		},
		[]string{"slot"},
	)
	m.TasksFailed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotor_tasks_failed_total",
			Help: "Total number of tasks that returned an error or panicked",
		},
		[]string{"slot"},
	)
	m.TasksCancelled = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotor_tasks_cancelled_total",
			Help: "Total number of tasks terminated by cancellation",
		},
		[]string{"slot"},
	)
	m.SlotsReplaced = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotor_slots_replaced_total",
			Help: "Total number of times a live occupant was stopped to make room",
		},
		[]string{"slot"},
	)
	m.TasksActive = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "slotor_tasks_active",
			Help: "Number of tasks currently registered in the handle table",
		},
	)
	m.ReplaceWait = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slotor_replace_wait_seconds",
			Help:    "Time spent waiting for a previous occupant to fully unwind",
			Buckets: []float64{.0001, .001, .01, .1, .5, 1, 5, 30, 60, 300},
		},
	)
	return m
}

// Registry returns the private registry when New was called with nil, so
// hosts can expose it; nil otherwise.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReplaceWait records how long a start call waited for the previous
// occupant.
func (m *Metrics) ObserveReplaceWait(d time.Duration) {
	m.ReplaceWait.Observe(d.Seconds())
}
