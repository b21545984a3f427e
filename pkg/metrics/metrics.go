// Package metrics exposes prometheus instrumentation for the audit
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsAnalyzed counts completed analyses by outcome.
	DocumentsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docaudit_documents_analyzed_total",
		Help: "Documents analyzed, labeled by outcome (ok, error).",
	}, []string{"outcome"})

	// IssuesPublished counts issues that made it into final reports.
	IssuesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docaudit_issues_published_total",
		Help: "Issues published in final reports.",
	})

	// IssuesDiscarded counts issues dropped before publication, labeled by
	// the stage that dropped them.
	IssuesDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docaudit_issues_discarded_total",
		Help: "Issues discarded before publication, labeled by stage (evidence, threshold, rejected, duplicate).",
	}, []string{"stage"})

	// StageDuration observes per-stage pipeline latency.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docaudit_stage_duration_seconds",
		Help:    "Pipeline stage latency in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"stage"})

	// TokensUsed counts LLM tokens by provider and direction.
	TokensUsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docaudit_llm_tokens_total",
		Help: "LLM tokens consumed, labeled by provider and direction (input, output).",
	}, []string{"provider", "direction"})
)
