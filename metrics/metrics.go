// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	RouteTransitions *prometheus.CounterVec
	OrdersCreated    prometheus.Counter
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RouteTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_status_transitions_total",
			Help: "Total number of route status changes by target status",
		}, []string{"status"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.RouteTransitions, m.OrdersCreated)
	return m
}

// RouteTransition records a route entering status
func (m *Metrics) RouteTransition(status string) {
	if m == nil {
		return
	}
	m.RouteTransitions.WithLabelValues(status).Inc()
}

// OrderCreated records a new order
func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
}
