package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess       = "success"
	statusError         = "error"
	statusEmptyResponse = "error_empty_response"
)

var (
	llmRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scamper_llm_requests_total",
			Help: "Total number of requests to the LLM provider.",
		},
		[]string{"provider", "model", "status"},
	)
	llmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scamper_llm_request_duration_seconds",
			Help:    "Histogram of LLM request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
	llmPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scamper_llm_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"provider", "model"},
	)
	llmCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scamper_llm_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(50, 50, 20),
		},
		[]string{"provider", "model"},
	)
	llmRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scamper_llm_retries_total",
			Help: "Total number of retried LLM generations.",
		},
		[]string{"provider"},
	)
)

func observeRequest(provider, model, status string, started time.Time) {
	llmRequestsTotal.WithLabelValues(provider, model, status).Inc()
	if status == statusSuccess {
		llmRequestDuration.WithLabelValues(provider, model).Observe(time.Since(started).Seconds())
	}
}

func observeUsage(provider, model string, promptTokens, completionTokens int) {
	if promptTokens+completionTokens == 0 {
		return
	}
	llmPromptTokens.WithLabelValues(provider, model).Observe(float64(promptTokens))
	llmCompletionTokens.WithLabelValues(provider, model).Observe(float64(completionTokens))
}
