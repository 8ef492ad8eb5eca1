package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for upstream calls. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics registers provider metrics with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers provider metrics with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_provider_requests_total",
			Help: "Total upstream provider requests by provider",
		}, []string{"provider"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_provider_failures_total",
			Help: "Total upstream provider failures by provider and category",
		}, []string{"provider", "category"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countries_provider_request_duration_seconds",
			Help:    "Duration of upstream provider requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
	}
}

// Observe records one finished call.
func (m *Metrics) Observe(provider string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(provider).Inc()
	m.Latency.WithLabelValues(provider).Observe(d.Seconds())
	if err != nil {
		m.Failures.WithLabelValues(provider, string(GetCategory(err))).Inc()
	}
}
