package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/linanwx/supportchat/logger"
)

const (
	chatPath        = "/chat"
	maxReplyBytes   = 4 << 20
	contentTypeJSON = "application/json"
)

var errNotJSON = errors.New("response body is not valid JSON")

// HTTPClient posts chat messages to {baseURL}/chat. It makes exactly one
// attempt per call and sets no timeout of its own; cancel ctx to abandon a
// request.
type HTTPClient struct {
	endpoint string
	http     *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewHTTPClient creates a client for the chat service at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint: ChatEndpoint(baseURL),
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChatEndpoint joins baseURL and the chat path without doubling slashes.
func ChatEndpoint(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + chatPath
}

// Endpoint returns the URL requests are posted to.
func (c *HTTPClient) Endpoint() string { return c.endpoint }

// Send posts req and decodes the reply.
func (c *HTTPClient) Send(ctx context.Context, req *Request) (*Reply, error) {
	start := time.Now()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: "encode", URL: c.endpoint, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "post", URL: c.endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)

	logger.Debug("chat request", "url", c.endpoint, "conversationId", req.ConversationID, "chars", len(req.Message))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "post", URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxReplyBytes))
		return nil, &TransportError{Op: "status", URL: c.endpoint, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, &TransportError{Op: "read", URL: c.endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if !gjson.ValidBytes(data) {
		return nil, &TransportError{Op: "decode", URL: c.endpoint, StatusCode: resp.StatusCode, Err: errNotJSON}
	}

	field := gjson.GetBytes(data, "response")
	reply := &Reply{
		Text:    field.String(),
		HasText: field.Type == gjson.String,
		Raw:     string(data),
	}
	if !reply.HasText {
		reply.Text = ""
	}

	logger.Debug("chat reply", "status", resp.StatusCode, "hasText", reply.HasText, "elapsed", time.Since(start))
	return reply, nil
}
