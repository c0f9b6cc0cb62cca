package agent

import (
	"context"
	"encoding/json"
	"strings"
)

// Client issues the three agent requests and decodes their payloads.
type Client struct {
	caller  Caller
	agentID string
}

// NewClient creates a Client. An empty agentID selects DefaultAgentID.
func NewClient(caller Caller, agentID string) *Client {
	if strings.TrimSpace(agentID) == "" {
		agentID = DefaultAgentID
	}
	return &Client{caller: caller, agentID: agentID}
}

// AgentID returns the id sent with every request.
func (c *Client) AgentID() string { return c.agentID }

// Explain requests an explanation of topic.
func (c *Client) Explain(ctx context.Context, topic string) (*ExplainPayload, error) {
	raw, err := c.call(ctx, RequestExplain, ExplainMessage(topic))
	if err != nil {
		return nil, err
	}
	p, err := DecodeExplain(raw, topic)
	if err != nil {
		return nil, decodeError(RequestExplain, err)
	}
	return p, nil
}

// Quiz requests a fresh set of questions on topic. The returned payload may
// hold zero questions; deciding whether that is acceptable is left to the
// caller.
func (c *Client) Quiz(ctx context.Context, topic string) (*QuizPayload, error) {
	raw, err := c.call(ctx, RequestQuiz, QuizMessage(topic))
	if err != nil {
		return nil, err
	}
	p, err := DecodeQuiz(raw)
	if err != nil {
		return nil, decodeError(RequestQuiz, err)
	}
	return p, nil
}

// Evaluate requests feedback on a student's answer.
func (c *Client) Evaluate(ctx context.Context, in EvaluateInput) (*EvaluatePayload, error) {
	raw, err := c.call(ctx, RequestEvaluate, EvaluateMessage(in))
	if err != nil {
		return nil, err
	}
	p, err := DecodeEvaluate(raw, in.CorrectAnswer)
	if err != nil {
		return nil, decodeError(RequestEvaluate, err)
	}
	return p, nil
}

func (c *Client) call(ctx context.Context, rt RequestType, message string) (json.RawMessage, error) {
	raw, err := c.caller.Call(ctx, Request{
		Message:     message,
		AgentID:     c.agentID,
		RequestType: rt,
	})
	if err != nil {
		return nil, asRequestError(rt, err)
	}
	return raw, nil
}

func decodeError(rt RequestType, err error) error {
	return &RequestError{RequestType: rt, Message: err.Error(), Err: err}
}
