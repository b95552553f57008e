package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Common label names for consistent metrics
const (
	LabelStatus  = "status"
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelOutcome = "outcome"
	LabelSuccess = "success"
)

// Ticket validation outcomes
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeMissing = "missing"
	OutcomeError   = "error"
)

var (
	// RequestsTotal counts all HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	// RequestDuration tracks the duration of HTTP requests
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketgate_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	// TicketValidationsTotal counts session ticket validations by outcome
	TicketValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_ticket_validations_total",
			Help: "Total number of session ticket validations",
		},
		[]string{LabelOutcome},
	)

	// TokenExchangesTotal counts one-time token exchanges by outcome
	TokenExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_token_exchanges_total",
			Help: "Total number of one-time authorization token exchanges",
		},
		[]string{LabelSuccess},
	)

	// LogoutsTotal counts logout requests
	LogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketgate_logouts_total",
			Help: "Total number of logout requests",
		},
	)

	// UpstreamRequestTotal counts requests proxied to the upstream application
	UpstreamRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketgate_upstream_requests_total",
			Help: "Total number of requests proxied to the upstream application",
		},
		[]string{LabelMethod, "upstream", LabelStatus},
	)

	// UpstreamRequestDuration tracks the duration of upstream requests
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticketgate_upstream_request_duration_seconds",
			Help:    "Duration of proxied upstream requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, "upstream"},
	)
)

// Collector provides methods for recording metrics
type Collector struct{}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{}
}

// RecordRequest records metrics for an HTTP request
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, path, http.StatusText(status)).Inc()
	RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordTicketValidation records a session ticket validation outcome
func (c *Collector) RecordTicketValidation(outcome string) {
	TicketValidationsTotal.WithLabelValues(outcome).Inc()
}

// RecordTokenExchange records a one-time token exchange attempt
func (c *Collector) RecordTokenExchange(success bool) {
	TokenExchangesTotal.WithLabelValues(boolToString(success)).Inc()
}

// RecordLogout records a logout request
func (c *Collector) RecordLogout() {
	LogoutsTotal.Inc()
}

// RecordUpstreamRequest records a request proxied to the upstream application
func (c *Collector) RecordUpstreamRequest(method, upstream string, status int, duration time.Duration) {
	UpstreamRequestTotal.WithLabelValues(method, upstream, http.StatusText(status)).Inc()
	UpstreamRequestDuration.WithLabelValues(method, upstream).Observe(duration.Seconds())
}

// Handler returns an HTTP handler for exposing metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// boolToString converts a boolean to a string representation
func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
