package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteTransition(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RouteTransition("completed")
	m.RouteTransition("completed")
	m.OrderCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RouteTransitions.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCreated))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RouteTransition("pending")
		m.OrderCreated()
	})
}
