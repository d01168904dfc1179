package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type requestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newRequestMetrics(registerer prometheus.Registerer) *requestMetrics {
	factory := promauto.With(registerer)
	return &requestMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coachdesk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coachdesk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// middleware labels by the matched route pattern so ids in paths do not
// explode the label set.
func (metrics *requestMetrics) middleware(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if fiberErr, ok := err.(*fiber.Error); ok {
		status = fiberErr.Code
	}
	route := c.Route().Path
	if status == fiber.StatusNotFound {
		route = "unmatched"
	}

	metrics.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	metrics.duration.WithLabelValues(c.Method(), route).Observe(time.Since(started).Seconds())
	return err
}
