package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	GrantsIssued       *prometheus.CounterVec
	GrantsDenied       *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		GrantsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roomgate_access_grants_issued_total",
			Help: "Total number of access credentials issued, by resolved role",
		}, []string{"role"}),
		GrantsDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roomgate_access_grants_denied_total",
			Help: "Total number of access requests denied, by rejection code",
		}, []string{"reason"}),
		ResolutionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "roomgate_access_resolution_duration_seconds",
			Help:    "End-to-end grant resolution and issuance latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) ObserveIssued(role string, elapsed time.Duration) {
	m.GrantsIssued.WithLabelValues(role).Inc()
	m.ResolutionDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementDenied(reason string) {
	m.GrantsDenied.WithLabelValues(reason).Inc()
}
