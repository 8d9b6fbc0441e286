package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"weatheros/manager"
)

// Collector provides application metrics collection
type Collector struct {
	// Upstream API metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	PipelinesTotal *prometheus.CounterVec
}

// NewCollector creates a collector registered on reg. Passing nil uses the
// default registry.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream API requests by service and result",
			},
			[]string{"service", "result"},
		),

		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream API request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"service"},
		),

		PipelinesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipelines_total",
				Help:      "Total number of finished lookups by kind and final status",
			},
			[]string{"kind", "status"},
		),
	}
}

// RecordUpstream records one upstream call
func (c *Collector) RecordUpstream(service string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.UpstreamRequestsTotal.WithLabelValues(service, result).Inc()
	c.UpstreamRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// Pipeline implements manager.Recorder
func (c *Collector) Pipeline(kind string, status manager.Status) {
	c.PipelinesTotal.WithLabelValues(kind, status.String()).Inc()
}
