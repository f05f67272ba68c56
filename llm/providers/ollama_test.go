package providers

import (
	"testing"

	"github.com/c360studio/oscalgen/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_BuildURL(t *testing.T) {
	p := &OllamaProvider{}

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "empty uses default",
			baseURL: "",
			want:    "http://localhost:11434/v1/chat/completions",
		},
		{
			name:    "custom base URL",
			baseURL: "http://gpu-box:8080/v1",
			want:    "http://gpu-box:8080/v1/chat/completions",
		},
		{
			name:    "trailing slash handled",
			baseURL: "http://localhost:11434/v1/",
			want:    "http://localhost:11434/v1/chat/completions",
		},
		{
			name:    "already has endpoint",
			baseURL: "http://localhost:11434/v1/chat/completions",
			want:    "http://localhost:11434/v1/chat/completions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.BuildURL(tt.baseURL)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOllamaProvider_BuildRequestBody(t *testing.T) {
	p := &OllamaProvider{}

	messages := []llm.Message{
		{Role: "system", Content: "You are a compliance analyst."},
		{Role: "user", Content: "Convert this SSP to OSCAL."},
	}

	temp := 0.2
	body, err := p.BuildRequestBody("qwen2.5:14b", messages, &temp, 2048)
	require.NoError(t, err)

	assert.Contains(t, string(body), `"model":"qwen2.5:14b"`)

	// OpenAI format keeps the system prompt in the message list
	assert.Contains(t, string(body), `"role":"system"`)
	assert.Contains(t, string(body), `"role":"user"`)

	assert.Contains(t, string(body), `"temperature":0.2`)
	assert.Contains(t, string(body), `"max_tokens":2048`)
}

func TestOllamaProvider_BuildRequestBody_NoOptionalParams(t *testing.T) {
	p := &OllamaProvider{}

	messages := []llm.Message{
		{Role: "user", Content: "Convert this SSP to OSCAL."},
	}

	body, err := p.BuildRequestBody("test-model", messages, nil, 0)
	require.NoError(t, err)

	// Unset params stay out of the body so the server applies its defaults
	assert.NotContains(t, string(body), `"temperature"`)
	assert.NotContains(t, string(body), `"max_tokens"`)
}

func TestOllamaProvider_BuildRequestBody_ZeroTemperature(t *testing.T) {
	p := &OllamaProvider{}

	messages := []llm.Message{
		{Role: "user", Content: "Convert this SSP to OSCAL."},
	}

	temp := 0.0
	body, err := p.BuildRequestBody("test-model", messages, &temp, 0)
	require.NoError(t, err)

	// Zero is a real value (deterministic), not an omission
	assert.Contains(t, string(body), `"temperature":0`)
}

func TestOllamaProvider_ParseResponse(t *testing.T) {
	p := &OllamaProvider{}

	responseBody := []byte(`{
		"id": "chatcmpl-123",
		"object": "chat.completion",
		"created": 1677652288,
		"model": "qwen2.5:14b",
		"choices": [{
			"index": 0,
			"message": {
				"role": "assistant",
				"content": "{\"system-security-plan\": {}}"
			},
			"finish_reason": "stop"
		}],
		"usage": {
			"prompt_tokens": 1200,
			"completion_tokens": 480,
			"total_tokens": 1680
		}
	}`)

	resp, err := p.ParseResponse(responseBody, "test-model")
	require.NoError(t, err)

	assert.Equal(t, `{"system-security-plan": {}}`, resp.Content)
	assert.Equal(t, "qwen2.5:14b", resp.Model)
	assert.Equal(t, 1680, resp.TokensUsed)
	assert.Equal(t, "stop", resp.FinishReason)

	assert.Equal(t, 1200, resp.Usage.PromptTokens)
	assert.Equal(t, 480, resp.Usage.CompletionTokens)
	assert.Equal(t, 1680, resp.Usage.TotalTokens)
}

func TestOllamaProvider_ParseResponse_NoChoices(t *testing.T) {
	p := &OllamaProvider{}

	responseBody := []byte(`{
		"id": "chatcmpl-123",
		"choices": []
	}`)

	_, err := p.ParseResponse(responseBody, "test-model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
