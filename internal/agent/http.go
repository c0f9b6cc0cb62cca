package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes caps how much of an agent response body is read.
const maxResponseBytes = 8 << 20

// Envelope is the JSON wrapper around every agent response.
type Envelope struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    json.RawMessage `json:"error,omitempty"`
	Details  json.RawMessage `json:"details,omitempty"`
}

// HTTPCaller posts requests to an agent endpoint over HTTP.
type HTTPCaller struct {
	url    string
	client *http.Client
}

// HTTPOption configures an HTTPCaller.
type HTTPOption func(*HTTPCaller)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPCaller) {
		c.client = client
	}
}

// WithTimeout sets a transport-level timeout on the default client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPCaller) {
		if d > 0 {
			c.client = &http.Client{Timeout: d}
		}
	}
}

// NewHTTPCaller creates a caller for the agent endpoint at url.
func NewHTTPCaller(url string, opts ...HTTPOption) *HTTPCaller {
	c := &HTTPCaller{
		url:    url,
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint this caller posts to.
func (c *HTTPCaller) URL() string { return c.url }

func (c *HTTPCaller) Call(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &RequestError{RequestType: req.RequestType, Message: err.Error(), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{RequestType: req.RequestType, Message: err.Error(), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &RequestError{RequestType: req.RequestType, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &RequestError{
			RequestType: req.RequestType,
			StatusCode:  resp.StatusCode,
			Message:     err.Error(),
			Err:         fmt.Errorf("read response: %w", err),
		}
	}

	return parseEnvelope(req.RequestType, resp.StatusCode, respBody)
}

// parseEnvelope applies the agent's failure rules to a response body and
// returns the payload of a successful response.
func parseEnvelope(rt RequestType, status int, body []byte) (json.RawMessage, error) {
	ok := status >= 200 && status < 300

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if !ok {
			return nil, &RequestError{RequestType: rt, StatusCode: status, Message: StatusErrorMessage, Err: err}
		}
		return nil, &RequestError{
			RequestType: rt,
			StatusCode:  status,
			Message:     err.Error(),
			Err:         fmt.Errorf("decode envelope: %w", err),
		}
	}

	if !ok {
		return nil, &RequestError{
			RequestType: rt,
			StatusCode:  status,
			Message:     firstNonEmpty(rawText(env.Error), rawText(env.Details), StatusErrorMessage),
		}
	}
	if !env.Success {
		return nil, &RequestError{
			RequestType: rt,
			StatusCode:  status,
			Message:     firstNonEmpty(rawText(env.Details), rawText(env.Error), FailureMessage),
		}
	}
	return env.Response, nil
}

// rawText renders an error/details field. Strings are unquoted; any other
// non-null JSON value is returned verbatim.
func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(trimmed)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
