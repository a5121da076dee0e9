// Package observability provides Prometheus metrics for the AgriSight service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DatastoreMetrics contains Prometheus metrics for record store operations.
type DatastoreMetrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ErrorsTotal       *prometheus.CounterVec
	RecordCountGauge  prometheus.Gauge
}

// HTTPMetrics contains Prometheus metrics for the API server.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// SyncMetrics contains Prometheus metrics for report sync publishing.
type SyncMetrics struct {
	PublishedTotal prometheus.Counter
	ErrorsTotal    prometheus.Counter
}

// Metrics aggregates all metric groups behind a single registry.
type Metrics struct {
	registry  *prometheus.Registry
	Datastore *DatastoreMetrics
	HTTP      *HTTPMetrics
	Sync      *SyncMetrics
}

// NewMetrics creates and registers all application metrics.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		Datastore: &DatastoreMetrics{
			OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "agrisight_datastore_operations_total",
				Help: "Total number of datastore operations by operation and status",
			}, []string{"operation", "status"}),
			OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "agrisight_datastore_operation_duration_seconds",
				Help:    "Duration of datastore operations",
				Buckets: prometheus.DefBuckets,
			}, []string{"operation"}),
			ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "agrisight_datastore_errors_total",
				Help: "Total number of datastore errors by operation",
			}, []string{"operation"}),
			RecordCountGauge: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "agrisight_crop_health_records",
				Help: "Number of crop health records currently stored",
			}),
		},
		HTTP: &HTTPMetrics{
			RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "agrisight_http_requests_total",
				Help: "Total number of HTTP requests by method, path and code",
			}, []string{"method", "path", "code"}),
			RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "agrisight_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "path"}),
		},
		Sync: &SyncMetrics{
			PublishedTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "agrisight_reports_published_total",
				Help: "Total number of LGU reports published to the sync broker",
			}),
			ErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "agrisight_report_publish_errors_total",
				Help: "Total number of failed LGU report publish attempts",
			}),
		},
	}

	cs := []prometheus.Collector{
		m.Datastore.OperationsTotal,
		m.Datastore.OperationDuration,
		m.Datastore.ErrorsTotal,
		m.Datastore.RecordCountGauge,
		m.HTTP.RequestsTotal,
		m.HTTP.RequestDuration,
		m.Sync.PublishedTotal,
		m.Sync.ErrorsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
