package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Analysis metrics
	AnalysisRequestsTotal *prometheus.CounterVec
	AnalysisDuration      *prometheus.HistogramVec
	AnalysisErrorsTotal   *prometheus.CounterVec

	// Validation metrics
	ValidationRejectionsTotal *prometheus.CounterVec

	// Sentiment pipeline metrics
	MalformedTimestampsTotal    *prometheus.CounterVec
	UnknownSentimentLabelsTotal *prometheus.CounterVec
	SentimentItems              *prometheus.HistogramVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// itemBuckets are histogram buckets for sentiment item counts per run
var itemBuckets = []float64{0, 1, 2, 5, 10, 25, 50, 100}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		AnalysisRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "analysis",
				Name:      "requests_total",
				Help:      "Total number of analysis submissions",
			},
			[]string{"ticker"},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_sentiment",
				Subsystem: "analysis",
				Name:      "duration_seconds",
				Help:      "Duration of one analysis pass in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"ticker", "status"},
		),
		AnalysisErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "analysis",
				Name:      "errors_total",
				Help:      "Total number of failed analysis passes",
			},
			[]string{"ticker", "error_type"},
		),
		ValidationRejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "validation",
				Name:      "rejections_total",
				Help:      "Total number of submissions rejected by input validation",
			},
			[]string{"reason"},
		),
		MalformedTimestampsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "sentiment",
				Name:      "malformed_timestamps_total",
				Help:      "Sentiment series dropped because a time_published value did not parse",
			},
			[]string{"ticker"},
		),
		UnknownSentimentLabelsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "sentiment",
				Name:      "unknown_labels_total",
				Help:      "News items dropped because the service sent a sentiment label outside positive/neutral/negative",
			},
			[]string{"ticker"},
		),
		SentimentItems: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_sentiment",
				Subsystem: "sentiment",
				Name:      "items",
				Help:      "Distribution of sentiment item counts per run",
				Buckets:   itemBuckets,
			},
			[]string{"ticker"},
		),
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_sentiment",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_sentiment",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_sentiment",
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Size of HTTP responses in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stock_sentiment",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_sentiment",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordAnalysisRequest records an analysis submission
func (m *Metrics) RecordAnalysisRequest(ticker string) {
	m.AnalysisRequestsTotal.WithLabelValues(ticker).Inc()
}

// RecordAnalysisDuration records the duration of one analysis pass
func (m *Metrics) RecordAnalysisDuration(ticker, status string, duration time.Duration) {
	m.AnalysisDuration.WithLabelValues(ticker, status).Observe(duration.Seconds())
}

// RecordAnalysisError records a failed analysis pass
func (m *Metrics) RecordAnalysisError(ticker, errorType string) {
	m.AnalysisErrorsTotal.WithLabelValues(ticker, errorType).Inc()
}

// RecordValidationRejection records a submission rejected by validation
func (m *Metrics) RecordValidationRejection(reason string) {
	m.ValidationRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordMalformedTimestamp records a sentiment series dropped on a bad timestamp
func (m *Metrics) RecordMalformedTimestamp(ticker string) {
	m.MalformedTimestampsTotal.WithLabelValues(ticker).Inc()
}

// RecordUnknownSentimentLabel records a news item dropped on an off-enum label
func (m *Metrics) RecordUnknownSentimentLabel(ticker string) {
	m.UnknownSentimentLabelsTotal.WithLabelValues(ticker).Inc()
}

// RecordSentimentItems records how many sentiment items a run produced
func (m *Metrics) RecordSentimentItems(ticker string, count int) {
	m.SentimentItems.WithLabelValues(ticker).Observe(float64(count))
}

// RecordExternalAPIRequest records an external API request
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordExternalAPIDuration records the duration of an external API call
func (m *Metrics) RecordExternalAPIDuration(service, operation string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveAnalysis records the analysis duration and status
func (t *Timer) ObserveAnalysis(ticker, status string) {
	t.metrics.RecordAnalysisDuration(ticker, status, time.Since(t.start))
}

// ObserveExternalAPI records the external API duration
func (t *Timer) ObserveExternalAPI(service, operation string) {
	t.metrics.RecordExternalAPIDuration(service, operation, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
