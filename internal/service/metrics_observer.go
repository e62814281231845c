package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver counts use cases by outcome and records their latency.
type MetricsObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsObserver registers the use-case collectors on reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	m := &MetricsObserver{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safend_use_case_total",
			Help: "Service use cases executed, by use case and outcome.",
		}, []string{"use_case", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "safend_use_case_duration_seconds",
			Help:    "Service use case latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"use_case"}),
	}
	if err := reg.Register(m.total); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	m.total.WithLabelValues(event.Name, event.ResolvedOutcome()).Inc()
	m.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}
