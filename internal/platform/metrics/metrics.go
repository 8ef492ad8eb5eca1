package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP and record metrics of the API.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	CountryUpdates  prometheus.Counter
	QuotaRejections *prometheus.CounterVec
}

// New registers the metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countries_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		CountryUpdates: f.NewCounter(prometheus.CounterOpts{
			Name: "countries_updates_total",
			Help: "Total number of country records updated",
		}),
		QuotaRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_quota_rejections_total",
			Help: "Requests refused because a provider quota was spent",
		}, []string{"provider"}),
	}
}

// ObserveRequest records one request latency in seconds.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

func (m *Metrics) IncrementCountryUpdates() {
	if m == nil {
		return
	}
	m.CountryUpdates.Inc()
}

func (m *Metrics) IncrementQuotaRejections(provider string) {
	if m == nil {
		return
	}
	m.QuotaRejections.WithLabelValues(provider).Inc()
}
