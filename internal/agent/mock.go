package agent

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockCaller.
type MockResponse struct {
	Payload json.RawMessage
	Err     error
}

// MockCaller is a deterministic Caller for testing.
// It returns canned responses in FIFO order and records all requests.
type MockCaller struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockCaller creates a MockCaller with the given canned responses.
func NewMockCaller(responses ...MockResponse) *MockCaller {
	return &MockCaller{responses: responses}
}

// Call returns the next canned response, or a RequestError carrying
// DefaultErrorMessage if the queue is empty.
func (m *MockCaller) Call(_ context.Context, req Request) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &RequestError{RequestType: req.RequestType, Message: DefaultErrorMessage}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Payload, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockCaller) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Call invocations made.
func (m *MockCaller) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, if any.
func (m *MockCaller) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
