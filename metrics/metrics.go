// Package metrics exposes Prometheus instrumentation for the conversion
// pipeline. Collectors are registered on the default registry at init so
// any package can increment them without wiring.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oscalgen"

var (
	// TablesClassified counts tables seen by the recognizer, by kind
	// (summary, statement, none).
	TablesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tables_classified_total",
		Help:      "Tables classified by the control-table recognizer, by kind.",
	}, []string{"kind"})

	// ControlsExtracted counts canonical control records produced by pairing.
	ControlsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "controls_extracted_total",
		Help:      "Canonical control records extracted from documents.",
	})

	// BudgetTruncations counts prompt payloads cut down to the content budget.
	BudgetTruncations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_truncations_total",
		Help:      "Prompt payloads truncated to fit the content budget.",
	})

	// ConversionRuns counts conversion pipeline runs by artifact and outcome.
	ConversionRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversion_runs_total",
		Help:      "Conversion runs by artifact type and outcome.",
	}, []string{"artifact", "outcome"})

	// LLMRequests counts individual LLM endpoint requests by provider and outcome.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_requests_total",
		Help:      "LLM endpoint requests by provider and outcome.",
	}, []string{"provider", "outcome"})

	// LLMTokens counts tokens consumed, split by direction (prompt, completion).
	LLMTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_tokens_total",
		Help:      "Tokens consumed by LLM calls, by direction.",
	}, []string{"direction"})

	// InboxEvents counts watch-inbox filesystem events by disposition
	// (queued, converted, failed, skipped).
	InboxEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inbox_events_total",
		Help:      "Watched-inbox file events by disposition.",
	}, []string{"disposition"})
)

// Handler returns the HTTP handler that serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
