package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LLMRequests counts completion calls by provider and outcome.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthplanner_llm_requests_total",
		Help: "Total number of completion provider calls",
	}, []string{"provider", "outcome"})

	// LLMLatency records completion call latency by provider.
	LLMLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "healthplanner_llm_latency_seconds",
		Help:    "Completion provider latency in seconds",
		Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"provider"})

	// PlanSteps counts executed orchestrator steps by tool.
	PlanSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthplanner_plan_steps_total",
		Help: "Total number of orchestrator steps executed by tool",
	}, []string{"tool"})

	// PlanFailures counts rejected orchestrations by error kind.
	PlanFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthplanner_plan_failures_total",
		Help: "Total number of failed orchestrations by error kind",
	}, []string{"kind"})

	// AuthEvents counts register, login and identify outcomes.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthplanner_auth_events_total",
		Help: "Total authentication events by action and outcome",
	}, []string{"action", "outcome"})

	// RateLimited counts requests rejected by the rate limiter by route.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthplanner_rate_limited_total",
		Help: "Total requests rejected by the rate limiter",
	}, []string{"route"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ObserveLLM records one completion call.
func ObserveLLM(provider string, start time.Time, err error) {
	LLMLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	LLMRequests.WithLabelValues(provider, outcome).Inc()
}

// ObserveAuth records one authentication event.
func ObserveAuth(action string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	AuthEvents.WithLabelValues(action, outcome).Inc()
}
