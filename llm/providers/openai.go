package providers

import (
	"net/http"
	"os"
	"strings"

	"github.com/c360studio/oscalgen/llm"
)

// OpenAIProvider targets the hosted OpenAI API, or OpenRouter through the
// same wire format. Kept separate from OllamaProvider so defaults and auth
// differ while the request/response codec is shared.
type OpenAIProvider struct {
	OllamaProvider // shared OpenAI-compatible codec
}

func init() {
	llm.RegisterProvider(&OpenAIProvider{})
}

// Name returns the provider identifier.
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// BuildURL constructs the OpenAI API endpoint.
func (o *OpenAIProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}

	return baseURL + "/chat/completions"
}

// SetHeaders adds OpenAI authentication headers, plus the attribution
// headers OpenRouter expects when routing through it.
func (o *OpenAIProvider) SetHeaders(req *http.Request) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	if siteURL := os.Getenv("OPENROUTER_SITE_URL"); siteURL != "" {
		req.Header.Set("HTTP-Referer", siteURL)
	}
	if siteName := os.Getenv("OPENROUTER_SITE_NAME"); siteName != "" {
		req.Header.Set("X-Title", siteName)
	}
}
