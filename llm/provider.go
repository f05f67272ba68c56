package llm

import (
	"net/http"
	"sync"
)

// Provider translates neutral requests into one vendor's wire format.
// Implementations live in llm/providers and register themselves at init
// time; the client looks them up by the endpoint's provider name.
type Provider interface {
	// Name returns the provider identifier (e.g., "anthropic", "ollama").
	Name() string

	// BuildURL constructs the full API endpoint URL.
	BuildURL(baseURL string) string

	// SetHeaders adds provider-specific headers to the request.
	SetHeaders(req *http.Request)

	// BuildRequestBody creates the JSON request body. A nil temperature
	// defers to the provider default; zero means deterministic.
	BuildRequestBody(model string, messages []Message, temperature *float64, maxTokens int) ([]byte, error)

	// ParseResponse extracts the response from provider-specific JSON.
	ParseResponse(body []byte, model string) (*Response, error)
}

var (
	providerRegistry = make(map[string]Provider)
	providerMu       sync.RWMutex
)

// RegisterProvider adds a provider to the registry.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providerRegistry[p.Name()] = p
}

// GetProvider retrieves a provider by name, nil if unregistered.
func GetProvider(name string) Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return providerRegistry[name]
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	providerMu.RLock()
	defer providerMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	return names
}
