// Package budget enforces the content budget for payloads handed to the
// conversion model. Structured records are bounded by construction, so
// budgeting applies only to unstructured narrative text.
package budget

import "fmt"

// charsPerToken is the approximate average characters per token for GPT
// tokenizers.
const charsPerToken = 4

// DefaultMaxChars keeps a full prompt within context limits:
// ~200K chars ≈ ~50K tokens, leaving room for instructions and output.
const DefaultMaxChars = 200_000

// Config holds budgeting configuration.
type Config struct {
	// MaxChars is the maximum character count before truncation.
	MaxChars int
}

// DefaultConfig returns the default content budget.
func DefaultConfig() Config {
	return Config{MaxChars: DefaultMaxChars}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxChars <= 0 {
		return fmt.Errorf("MaxChars must be positive, got %d", c.MaxChars)
	}
	return nil
}

// Budgeter applies a character budget to narrative text.
type Budgeter struct {
	config Config
}

// New creates a Budgeter with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*Budgeter, error) {
	if cfg.MaxChars == 0 {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Budgeter{config: cfg}, nil
}

// MustNew creates a Budgeter, panicking on invalid config.
// Use for known-good configurations.
func MustNew(cfg Config) *Budgeter {
	b, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

// NewDefault creates a Budgeter with the default configuration.
func NewDefault() *Budgeter {
	return MustNew(DefaultConfig())
}

// Result reports what the budgeter did to a piece of text.
type Result struct {
	// Content is the (possibly truncated) text.
	Content string

	// Truncated is true when Content is a prefix of the input.
	Truncated bool

	// OriginalChars and BudgetChars carry sizes for diagnostics.
	OriginalChars int
	BudgetChars   int
}

// Apply returns the text unchanged when it fits the budget, otherwise the
// exact MaxChars-byte prefix. Truncation is deterministic: the same input
// always yields the same output. Callers surface Truncated as a warning,
// never an error.
func (b *Budgeter) Apply(text string) Result {
	result := Result{
		Content:       text,
		OriginalChars: len(text),
		BudgetChars:   b.config.MaxChars,
	}
	if len(text) > b.config.MaxChars {
		result.Content = text[:b.config.MaxChars]
		result.Truncated = true
	}
	return result
}

// MaxChars returns the configured budget.
func (b *Budgeter) MaxChars() int {
	return b.config.MaxChars
}

// EstimateTokens estimates token count using the chars/token heuristic.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}
	return (len(content) + charsPerToken - 1) / charsPerToken
}
