package llm

import "time"

// RetryConfig controls how transient oracle failures are retried.
// Conversions are long single requests, so attempts stay low and the
// backoff window generous.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per endpoint.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns the retry defaults used for conversion and
// assessment requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}
