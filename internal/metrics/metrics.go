// Package metrics exposes sync and HTTP metrics through a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feedcache/internal/domain"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

type Collector struct {
	registry *prometheus.Registry

	SyncRuns       *prometheus.CounterVec
	SyncDuration   prometheus.Histogram
	RemoteFailures prometheus.Counter
	PublishErrors  prometheus.Counter
	ImagesServed   prometheus.Gauge
	LastSuccess    prometheus.Gauge

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		SyncRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_runs_total",
				Help:      "Total number of sync runs by feed source and status",
			},
			[]string{"source", "status"},
		),
		SyncDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_duration_seconds",
				Help:      "Sync run duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RemoteFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_failures_total",
				Help:      "Total number of failed remote feed loads",
			},
		),
		PublishErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_errors_total",
				Help:      "Total number of snapshot publish failures",
			},
		),
		ImagesServed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "feed_images_served",
				Help:      "Number of images served by the last successful sync",
			},
		),
		LastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_successful_sync_timestamp_seconds",
				Help:      "Unix time of the last successful sync",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	c.registry.MustRegister(
		c.SyncRuns,
		c.SyncDuration,
		c.RemoteFailures,
		c.PublishErrors,
		c.ImagesServed,
		c.LastSuccess,
		c.HTTPRequests,
		c.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveSync records the outcome of one sync run.
func (c *Collector) ObserveSync(stats *domain.SyncStats, err error) {
	status := statusSuccess
	if err != nil {
		status = statusFailure
	}

	source := "none"
	if stats != nil {
		if stats.Source != "" {
			source = stats.Source
		}
		c.SyncDuration.Observe(stats.Duration.Seconds())
		if stats.RemoteErr != nil {
			c.RemoteFailures.Inc()
		}
		c.PublishErrors.Add(float64(stats.Errors))
	}
	c.SyncRuns.WithLabelValues(source, status).Inc()

	if err == nil && stats != nil {
		c.ImagesServed.Set(float64(stats.Served))
		c.LastSuccess.SetToCurrentTime()
	}
}

func (c *Collector) ObserveHTTP(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
