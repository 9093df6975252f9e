package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techBikashRepo/jobbee-api/pkg/config"
)

// Counter metrics
var (
	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Job operation counter
	JobOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_operations_total",
			Help: "Total number of job operations",
		},
		[]string{"operation"}, // "create", "update", "delete", "apply", "list", "radius", "stats"
	)

	// Application submissions
	ApplicationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_applications_total",
			Help: "Total number of accepted job applications",
		},
	)

	// Authentication error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_token", "forbidden_role", "login_failure", etc.
	)

	// Cascade delete counter
	CascadeDeleteCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_cascade_deletes_total",
			Help: "Total number of cascade delete runs by account role",
		},
		[]string{"role"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobs_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobs_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)

	// Geocoder call duration
	GeocodeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobs_geocode_duration_seconds",
			Help:    "Duration of geocoding provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// InitMetrics registers all metrics with the default registry.
func InitMetrics(_ *config.Config) {
	prometheus.MustRegister(
		HTTPRequestCounter,
		JobOperationCounter,
		ApplicationCounter,
		AuthErrorCounter,
		CascadeDeleteCounter,
		RequestDuration,
		DBOperationDuration,
		GeocodeDuration,
	)
}

// RecordAuthError increments the auth error counter for the given type.
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// TrackDBOperation returns a function that records the duration of a
// database operation when invoked: defer TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// MetricsMiddleware returns an Echo middleware recording request counts and
// durations.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			HTTPRequestCounter.WithLabelValues(endpoint, method, status).Inc()
			RequestDuration.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// GetPrometheusHandler returns the HTTP handler serving /metrics.
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
