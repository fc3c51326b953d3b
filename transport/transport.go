// Package transport performs the single request/response exchange with the
// remote chat endpoint.
package transport

import (
	"context"
	"fmt"
)

// Client sends one chat message and returns the decoded reply.
type Client interface {
	Send(ctx context.Context, req *Request) (*Reply, error)
}

// Request is the JSON body posted to the chat endpoint.
type Request struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// Reply is the decoded chat endpoint response. Fields other than
// "response" are ignored.
type Reply struct {
	Text    string // value of "response"
	HasText bool   // "response" was present and a string
	Raw     string // raw response body
}

// TransportError reports a failed exchange: the request could not be sent,
// the status was not 2xx, or the body was not JSON.
type TransportError struct {
	Op         string // "encode", "post", "status", "read", "decode"
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Op == "status" {
		return fmt.Sprintf("transport error: %s %s: http status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
