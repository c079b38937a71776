package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"buildsite-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// LLM call metrics
	LlmCallsTotal   prometheus.CounterVec
	LlmCallDuration prometheus.HistogramVec

	// Schedule generation metrics
	ScheduleGenerationsCounter prometheus.CounterVec
	TasksPersistedCounter      prometheus.Counter

	// Chat metrics
	ChatMessagesCounter prometheus.CounterVec

	// Lead metrics
	LeadOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// LLM call metrics
	LlmCallsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_llm_calls_total",
			Help: "Total number of language model calls",
		},
		[]string{"task", "outcome"},
	)

	LlmCallDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_llm_call_duration_seconds",
			Help:    "Duration of language model calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"task"},
	)

	// Schedule generation metrics
	ScheduleGenerationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_schedule_generations_total",
			Help: "Total number of schedule generation runs",
		},
		[]string{"outcome"},
	)

	TasksPersistedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tasks_persisted_total",
			Help: "Total number of task rows created by the schedule persister",
		},
	)

	// Chat metrics
	ChatMessagesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_chat_messages_total",
			Help: "Total number of chat messages processed",
		},
		[]string{"context"},
	)

	// Lead metrics
	LeadOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_lead_operations_total",
			Help: "Total number of lead operations",
		},
		[]string{"source"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordLlmCall increments the LLM call counter for a task and outcome
func RecordLlmCall(task string, outcome string, duration time.Duration) {
	LlmCallsTotal.WithLabelValues(task, outcome).Inc()
	LlmCallDuration.WithLabelValues(task).Observe(duration.Seconds())
}

// RecordScheduleGeneration increments the schedule generation counter
func RecordScheduleGeneration(outcome string) {
	ScheduleGenerationsCounter.WithLabelValues(outcome).Inc()
}

// RecordChatMessage increments the chat message counter for a context tag
func RecordChatMessage(context string) {
	ChatMessagesCounter.WithLabelValues(context).Inc()
}

// RecordLeadOperation increments the lead operation counter for a source
func RecordLeadOperation(source string) {
	LeadOperationsCounter.WithLabelValues(source).Inc()
}
