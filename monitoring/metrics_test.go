package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_PrivateRegistry(t *testing.T) {
	metrics := New(nil)
	assert.NotNil(t, metrics.Registry())

	metrics.TasksStarted.WithLabelValues("worker1").Inc()
	metrics.TasksStarted.WithLabelValues("worker1").Inc()
	metrics.TasksCompleted.WithLabelValues("worker1").Inc()
	metrics.TasksActive.Set(2)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.TasksStarted.WithLabelValues("worker1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.TasksCompleted.WithLabelValues("worker1")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.TasksFailed.WithLabelValues("worker1")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.TasksActive))
}

func TestNew_ProvidedRegisterer(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	assert.Nil(t, metrics.Registry())

	metrics.SlotsReplaced.WithLabelValues("worker1").Inc()
	metrics.ObserveReplaceWait(50 * time.Millisecond)

	families, err := registry.Gather()
	assert.Nil(t, err)
	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["slotor_slots_replaced_total"])
	assert.True(t, names["slotor_replace_wait_seconds"])
}

func TestNew_IndependentInstances(t *testing.T) {
	first := New(nil)
	second := New(nil)
	first.TasksStarted.WithLabelValues("a").Inc()
	assert.Equal(t, float64(0), testutil.ToFloat64(second.TasksStarted.WithLabelValues("a")))
}
