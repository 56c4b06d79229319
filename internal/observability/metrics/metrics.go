package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics exposes counters/histograms for app state store actions.
type StoreMetrics struct {
	actionsTotal    *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		actionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "store",
			Name:      "actions_total",
			Help:      "Total store actions by entity, action and outcome",
		}, []string{"entity", "action", "status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "practice",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "practice",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP request handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.actionsTotal, m.requestsTotal, m.requestDuration)
	return m
}

// ObserveAction records one store action outcome.
func (m *StoreMetrics) ObserveAction(entity, action string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.actionsTotal.WithLabelValues(entity, action, status).Inc()
}

// ObserveRequest records one handled HTTP request.
func (m *StoreMetrics) ObserveRequest(method, path, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveRequestDuration records HTTP handling latency.
func (m *StoreMetrics) ObserveRequestDuration(method, path string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path).Observe(seconds)
}
