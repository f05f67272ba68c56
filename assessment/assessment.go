package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360studio/oscalgen/evidence"
	"github.com/c360studio/oscalgen/llm"
	"github.com/c360studio/oscalgen/model"
)

// fallbackSummary marks a run whose oracle response carried no structured
// payload. The run still yields a report so batch pipelines can continue.
const fallbackSummary = "Assessment did not return structured output."

// Oracle is the completion surface the runner needs from the LLM layer.
type Oracle interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Runner executes assessments against a single oracle.
type Runner struct {
	oracle Oracle
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock overrides the assessment-date clock for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner backed by the given oracle.
func NewRunner(oracle Oracle, opts ...Option) *Runner {
	r := &Runner{
		oracle: oracle,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes one assessment: resolve and load evidence, build the
// orchestrator prompt, call the oracle, and decode the structured report.
// A response with no extractable JSON degrades to the fallback report.
func (r *Runner) Run(ctx context.Context, inp Input) (*Report, error) {
	if inp.Framework == "" {
		return nil, fmt.Errorf("framework is required")
	}

	paths, err := evidence.ResolveInputs(inp.InputPaths)
	if err != nil {
		return nil, fmt.Errorf("resolve evidence inputs: %w", err)
	}

	entries := evidence.Load(paths)
	summaries := evidence.Summarize(entries)
	prompt := BuildPrompt(inp, summaries)

	r.logger.Info("running assessment",
		"framework", inp.Framework, "baseline", inp.Baseline,
		"evidence_files", len(summaries))

	resp, err := r.oracle.Complete(ctx, llm.Request{
		Capability: string(model.CapabilityAssessment),
		Messages:   []llm.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("oracle completion: %w", err)
	}

	payload := llm.ExtractJSON(resp.Content)
	if strings.TrimSpace(payload) == "" {
		r.logger.Warn("assessment returned no structured output",
			"framework", inp.Framework, "model", resp.Model)
		return r.fallbackReport(inp), nil
	}

	var report Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		r.logger.Warn("assessment payload failed to decode",
			"framework", inp.Framework, "error", err)
		return r.fallbackReport(inp), nil
	}

	if report.Metadata.AssessmentDate == "" {
		report.Metadata.AssessmentDate = r.now().UTC().Format(time.RFC3339)
	}

	return &report, nil
}

// fallbackReport is the documented no-output result: empty findings, a
// fixed summary, and a zeroed compliance percentage.
func (r *Runner) fallbackReport(inp Input) *Report {
	return &Report{
		Metadata: Metadata{
			Framework:       inp.Framework,
			BaselineOrLevel: inp.Baseline,
			AssessmentDate:  r.now().UTC().Format(time.RFC3339),
			Scope:           inp.Scope,
		},
		Findings:          []Finding{},
		Summary:           fallbackSummary,
		OverallPercentage: 0,
	}
}
