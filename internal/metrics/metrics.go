package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fieldmate",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldmate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fieldmate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	imagesStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldmate",
			Subsystem: "storage",
			Name:      "images_stored_total",
			Help:      "Total number of task images written to storage.",
		},
	)

	imageBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldmate",
			Subsystem: "storage",
			Name:      "image_bytes_total",
			Help:      "Total bytes of task images written to storage.",
		},
	)

	orphansRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldmate",
			Subsystem: "jobs",
			Name:      "orphan_images_removed_total",
			Help:      "Image files removed by the orphan sweep.",
		},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldmate",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Events published to the hub, by kind.",
		},
		[]string{"kind"},
	)

	eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldmate",
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Events not delivered because a subscriber buffer was full.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		imagesStored,
		imageBytes,
		orphansRemoved,
		eventsPublished,
		eventsDropped,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the matched route,
// so path parameters do not explode label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func RecordImageStored(size int64) {
	imagesStored.Inc()
	if size > 0 {
		imageBytes.Add(float64(size))
	}
}

func RecordOrphansRemoved(n int) {
	if n > 0 {
		orphansRemoved.Add(float64(n))
	}
}

func RecordEventPublished(kind string) {
	eventsPublished.WithLabelValues(kind).Inc()
}

func RecordEventDropped() {
	eventsDropped.Inc()
}
