// Package convert orchestrates document-to-OSCAL conversion. It wires the
// parsing, extraction, and budgeting stages into a single oracle round
// trip and enforces the output contract on the response: the artifact is
// either complete and valid or the conversion fails.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/oscalgen/budget"
	"github.com/c360studio/oscalgen/document/parser"
	"github.com/c360studio/oscalgen/extract"
	"github.com/c360studio/oscalgen/llm"
	"github.com/c360studio/oscalgen/metrics"
	"github.com/c360studio/oscalgen/model"
	"github.com/c360studio/oscalgen/oscal"
)

// Artifact type labels used for capability resolution and metrics.
const (
	ArtifactSSP     = "oscal-ssp"
	ArtifactMapping = "oscal-mapping"
)

// Oracle is the completion surface the converter needs from the LLM layer.
type Oracle interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Result holds a validated conversion artifact and run diagnostics.
type Result struct {
	// Artifact is the pretty-printed OSCAL JSON document.
	Artifact []byte

	// Controls is the number of control records extracted from tables.
	// Zero for markdown input and for the plain-text fallback.
	Controls int

	// Warnings lists non-fatal conditions (truncation, extraction
	// fallback) surfaced during the run.
	Warnings []string
}

// Converter runs conversion workflows against a single oracle.
type Converter struct {
	oracle      Oracle
	parsers     *parser.Registry
	budgeter    *budget.Budgeter
	logger      *slog.Logger
	temperature *float64
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithBudgeter overrides the default content budgeter.
func WithBudgeter(b *budget.Budgeter) Option {
	return func(c *Converter) {
		c.budgeter = b
	}
}

// WithTemperature sets the sampling temperature for oracle calls.
func WithTemperature(t float64) Option {
	return func(c *Converter) {
		c.temperature = &t
	}
}

// New creates a Converter backed by the given oracle.
func New(oracle Oracle, opts ...Option) *Converter {
	c := &Converter{
		oracle:   oracle,
		parsers:  parser.NewRegistry(),
		budgeter: budget.NewDefault(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SSP converts an SSP document (markdown or layout-table export) into a
// validated OSCAL SSP artifact.
func (c *Converter) SSP(ctx context.Context, inputPath string) (*Result, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		metrics.ConversionRuns.WithLabelValues(ArtifactSSP, "error").Inc()
		return nil, fmt.Errorf("read input: %w", err)
	}

	doc, err := c.parsers.Parse(inputPath, content)
	if err != nil {
		metrics.ConversionRuns.WithLabelValues(ArtifactSSP, "error").Inc()
		return nil, fmt.Errorf("parse input: %w", err)
	}

	result := &Result{}
	var prompt string

	if doc.HasTables() {
		for _, table := range doc.Tables {
			kind, _ := extract.Classify(table.CellTexts())
			metrics.TablesClassified.WithLabelValues(kind.String()).Inc()
		}

		controls := extract.Controls(doc.Tables)
		metrics.ControlsExtracted.Add(float64(len(controls)))

		if len(controls) > 0 {
			result.Controls = len(controls)
			prompt = StructuredPrompt(controls, inputPath)
			c.logger.Info("extracted controls from tables",
				"input", inputPath, "controls", len(controls))
		} else {
			warning := "no controls extracted from tables, falling back to plain text"
			result.Warnings = append(result.Warnings, warning)
			c.logger.Warn(warning, "input", inputPath)
			prompt = ConversionPrompt(c.applyBudget(doc.Body, result), inputPath)
		}
	} else {
		prompt = ConversionPrompt(c.applyBudget(doc.Body, result), inputPath)
	}

	artifact, err := c.complete(ctx, ArtifactSSP, prompt, func(raw []byte) error {
		_, verr := oscal.ValidateSSP(raw)
		return verr
	})
	if err != nil {
		metrics.ConversionRuns.WithLabelValues(ArtifactSSP, "error").Inc()
		return nil, err
	}

	metrics.ConversionRuns.WithLabelValues(ArtifactSSP, "ok").Inc()
	result.Artifact = artifact
	return result, nil
}

// Mapping converts a framework-mappings JSON file into a validated OSCAL
// mapping-collection artifact.
func (c *Converter) Mapping(ctx context.Context, inputPath string) (*Result, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		metrics.ConversionRuns.WithLabelValues(ArtifactMapping, "error").Inc()
		return nil, fmt.Errorf("read input: %w", err)
	}

	var data MappingsFile
	if err := json.Unmarshal(content, &data); err != nil {
		metrics.ConversionRuns.WithLabelValues(ArtifactMapping, "error").Inc()
		return nil, fmt.Errorf("parse mappings file: %w", err)
	}
	if len(data.Mappings) == 0 {
		metrics.ConversionRuns.WithLabelValues(ArtifactMapping, "error").Inc()
		return nil, fmt.Errorf("mappings file %s contains no mapping groups", inputPath)
	}

	prompt := MappingPrompt(&data, inputPath)

	artifact, err := c.complete(ctx, ArtifactMapping, prompt, func(raw []byte) error {
		_, verr := oscal.ValidateMapping(raw)
		return verr
	})
	if err != nil {
		metrics.ConversionRuns.WithLabelValues(ArtifactMapping, "error").Inc()
		return nil, err
	}

	metrics.ConversionRuns.WithLabelValues(ArtifactMapping, "ok").Inc()
	return &Result{Artifact: artifact}, nil
}

// applyBudget trims content to the budget and records the truncation.
func (c *Converter) applyBudget(content string, result *Result) string {
	br := c.budgeter.Apply(content)
	if br.Truncated {
		metrics.BudgetTruncations.Inc()
		warning := fmt.Sprintf(
			"input document is %d KB, truncating to %d KB to fit within context limits; some controls near the end may be omitted",
			br.OriginalChars/1024, br.BudgetChars/1024)
		result.Warnings = append(result.Warnings, warning)
		c.logger.Warn("content truncated to budget",
			"original_chars", br.OriginalChars, "budget_chars", br.BudgetChars)
	}
	return br.Content
}

// complete runs one oracle round trip and enforces the output contract.
func (c *Converter) complete(ctx context.Context, artifact, prompt string, validate func([]byte) error) ([]byte, error) {
	resp, err := c.oracle.Complete(ctx, llm.Request{
		Capability:  string(model.CapabilityForArtifact(artifact)),
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("oracle completion: %w", err)
	}

	payload := llm.ExtractJSON(resp.Content)
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("%s conversion: %w", artifact, oscal.ErrNoStructuredOutput)
	}

	if err := validate([]byte(payload)); err != nil {
		return nil, fmt.Errorf("%s validation: %w", artifact, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(payload), "", "  "); err != nil {
		return nil, fmt.Errorf("format artifact: %w", err)
	}
	pretty.WriteByte('\n')

	return pretty.Bytes(), nil
}

// DefaultOutputPath derives the artifact path from the input:
// sample-ssp.md becomes sample-ssp-oscal.json.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + "-oscal.json"
}

// WriteArtifact writes a conversion artifact to disk.
func WriteArtifact(artifact []byte, outputPath string) error {
	if err := os.WriteFile(outputPath, artifact, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
