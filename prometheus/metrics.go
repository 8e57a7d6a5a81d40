package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// ClienteOperationCounter counts cliente operations
	ClienteOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supply_cliente_operations_total",
			Help: "Total number of cliente operations",
		},
		[]string{"operation"}, // operation can be "create", "update", "delete", "list", "get"
	)

	// LojaOperationCounter counts loja operations
	LojaOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supply_loja_operations_total",
			Help: "Total number of loja operations",
		},
		[]string{"operation"},
	)

	// LimiteRejectionCounter counts requests rejected by the plan store limit
	LimiteRejectionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supply_limite_rejections_total",
			Help: "Total number of requests rejected by the plan store limit",
		},
		[]string{"operation"}, // "loja_create", "loja_move", "plano_change"
	)

	// ValidationErrorCounter counts validation failures by type
	ValidationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supply_validation_errors_total",
			Help: "Total number of validation errors",
		},
		[]string{"type"}, // type can be "duplicate_email", "invalid_input", "not_found"
	)

	// HTTPRequestCounter counts HTTP requests by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supply_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// RequestDuration records HTTP request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supply_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// DBOperationDuration records database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supply_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

func init() {
	prometheus.MustRegister(
		ClienteOperationCounter,
		LojaOperationCounter,
		LimiteRejectionCounter,
		ValidationErrorCounter,
		HTTPRequestCounter,
		RequestDuration,
		DBOperationDuration,
	)
}

// RecordClienteOperation increments the cliente operation counter
func RecordClienteOperation(operation string) {
	ClienteOperationCounter.WithLabelValues(operation).Inc()
}

// RecordLojaOperation increments the loja operation counter
func RecordLojaOperation(operation string) {
	LojaOperationCounter.WithLabelValues(operation).Inc()
}

// RecordLimiteRejection increments the limit rejection counter
func RecordLimiteRejection(operation string) {
	LimiteRejectionCounter.WithLabelValues(operation).Inc()
}

// RecordValidationError increments the validation error counter
func RecordValidationError(errType string) {
	ValidationErrorCounter.WithLabelValues(errType).Inc()
}

// TrackDBOperation returns a function that records the duration of a database
// operation when called. Intended usage:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// Middleware creates an Echo middleware function that records HTTP request metrics
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			HTTPRequestCounter.WithLabelValues(path, method, statusStr).Inc()
			RequestDuration.WithLabelValues(path, method, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
