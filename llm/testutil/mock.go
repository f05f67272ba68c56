// Package testutil provides a mock oracle for exercising conversion and
// assessment workflows without a model server.
package testutil

import (
	"context"
	"sync"

	"github.com/c360studio/oscalgen/llm"
)

// MockLLMClient is a thread-safe stand-in for the llm client. It returns
// configured responses in sequence and records what it was asked, so
// tests can hand it a canned artifact and then inspect the prompt that
// requested it.
//
//	mock := &testutil.MockLLMClient{
//	    Responses: []*llm.Response{
//	        {Content: `{"system-security-plan": {}}`, Model: "test-model"},
//	    },
//	}
//
// Setting Err makes every call fail, which covers the oracle-unreachable
// paths. Err takes precedence over Responses.
type MockLLMClient struct {
	mu              sync.Mutex
	capturedContext context.Context
	capturedRequest llm.Request
	Responses       []*llm.Response // returned in sequence
	Err             error           // takes precedence over Responses
	callCount       int
	responseIndex   int
}

// Complete returns the next configured response, or Err if set. The
// context and request are captured for later inspection.
func (m *MockLLMClient) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.capturedContext = ctx
	m.capturedRequest = req
	m.callCount++

	if m.Err != nil {
		return nil, m.Err
	}

	if m.responseIndex < len(m.Responses) {
		resp := m.Responses[m.responseIndex]
		m.responseIndex++
		return resp, nil
	}

	// Nothing configured reads as an empty completion
	return &llm.Response{Content: "", Model: "test-model"}, nil
}

// GetCapturedContext returns the last context passed to Complete.
func (m *MockLLMClient) GetCapturedContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capturedContext
}

// GetCapturedRequest returns the last request passed to Complete.
func (m *MockLLMClient) GetCapturedRequest() llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capturedRequest
}

// GetCallCount returns how many times Complete was called.
func (m *MockLLMClient) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears captured state so one mock can serve several test cases.
func (m *MockLLMClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.responseIndex = 0
	m.capturedContext = nil
	m.capturedRequest = llm.Request{}
}
