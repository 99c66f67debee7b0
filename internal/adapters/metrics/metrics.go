package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Interactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rules_bot_interactions_total",
		Help: "Total number of handled slash-command interactions",
	}, []string{"command", "status"})

	CompletionRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rules_bot_completion_duration_seconds",
		Help:    "Duration of completion requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	CompletionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rules_bot_completion_requests_total",
		Help: "Total number of completion requests",
	}, []string{"status"})

	AnswersTruncated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rules_bot_answers_truncated_total",
		Help: "The total number of answers cut to the reply limit",
	})

	CommandRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rules_bot_command_registrations_total",
		Help: "Total number of command create calls",
	}, []string{"command", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rules_bot_http_request_duration_seconds",
		Help:    "Duration of outbound HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream", "endpoint", "status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rules_bot_http_requests_total",
		Help: "Total number of outbound HTTP requests",
	}, []string{"upstream", "endpoint", "status"})
)
