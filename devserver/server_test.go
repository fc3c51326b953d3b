package devserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"github.com/linanwx/supportchat/transport"
)

func setupRouter(responder Responder) *chi.Mux {
	r := chi.NewRouter()
	New(responder).RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestChatEchoesConversationID(t *testing.T) {
	r := setupRouter(ResponderFunc(func(_ context.Context, message, conv string) (string, error) {
		return "got " + message + " on " + conv, nil
	}))

	resp := postChat(t, r, `{"message":"hi","conversation_id":"conv_1_abc"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := resp.Body.Bytes()
	if got := gjson.GetBytes(body, "response").String(); got != "got hi on conv_1_abc" {
		t.Fatalf("unexpected response %q", got)
	}
	if got := gjson.GetBytes(body, "conversation_id").String(); got != "conv_1_abc" {
		t.Fatalf("unexpected conversation_id %q", got)
	}
}

func TestChatMissingConversationIDIsNull(t *testing.T) {
	resp := postChat(t, setupRouter(nil), `{"message":"where is my package?"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	conv := gjson.GetBytes(resp.Body.Bytes(), "conversation_id")
	if !conv.Exists() || conv.Type != gjson.Null {
		t.Fatalf("conversation_id = %s, want null", conv.Raw)
	}
}

func TestChatRejectsBlankMessage(t *testing.T) {
	for _, body := range []string{`{"message":""}`, `{"message":"   \n"}`} {
		resp := postChat(t, setupRouter(nil), body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.Code)
		}
		if got := gjson.GetBytes(resp.Body.Bytes(), "detail").String(); got != "Message cannot be empty." {
			t.Fatalf("%s: unexpected detail %q", body, got)
		}
	}
}

func TestChatRejectsBadBodies(t *testing.T) {
	cases := []struct {
		body string
		code int
	}{
		{`not json`, http.StatusBadRequest},
		{`{}`, http.StatusUnprocessableEntity},
		{`{"message":42}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		resp := postChat(t, setupRouter(nil), tc.body)
		if resp.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.body, tc.code, resp.Code)
		}
	}
}

func TestChatFallbackAndResponderError(t *testing.T) {
	empty := setupRouter(ResponderFunc(func(context.Context, string, string) (string, error) {
		return "", nil
	}))
	resp := postChat(t, empty, `{"message":"hi"}`)
	if got := gjson.GetBytes(resp.Body.Bytes(), "response").String(); got != FallbackReply {
		t.Fatalf("unexpected response %q", got)
	}

	failing := setupRouter(ResponderFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("model offline")
	}))
	resp = postChat(t, failing, `{"message":"hi"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if got := gjson.GetBytes(resp.Body.Bytes(), "detail").String(); got != "model offline" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Topic{
		"Where is my order?":              TopicOrder,
		"When will my parcel arrive?":     TopicDelivery,
		"I was charged twice":             TopicPayment,
		"I forgot my password":            TopicAccount,
		"hello":                           TopicOrder,
		"Can I get a REFUND for my order": TopicPayment,
	}
	for msg, want := range cases {
		if got := Classify(msg); got != want {
			t.Errorf("Classify(%q) = %s, want %s", msg, got, want)
		}
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	resp := httptest.NewRecorder()
	NewRouter(nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestHTTPClientAgainstRouter(t *testing.T) {
	srv := httptest.NewServer(NewRouter(nil))
	defer srv.Close()

	client := transport.NewHTTPClient(srv.URL + "/")
	reply, err := client.Send(context.Background(), &transport.Request{
		Message:        "my card was declined",
		ConversationID: "conv_1_abcdefghi",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !reply.HasText || reply.Text != cannedReplies[TopicPayment] {
		t.Fatalf("unexpected reply %+v", reply)
	}

	_, err = client.Send(context.Background(), &transport.Request{Message: " "})
	var terr *transport.TransportError
	if !errors.As(err, &terr) || terr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 transport error, got %v", err)
	}
}

func TestHealthCountsChatRequests(t *testing.T) {
	r := setupRouter(nil)
	postChat(t, r, `{"message":"hi"}`)
	postChat(t, r, `{"message":""}`)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.Bytes()
	if got := gjson.GetBytes(body, "status").String(); got != "healthy" {
		t.Fatalf("unexpected status %q", got)
	}
	if got := gjson.GetBytes(body, "requests").Int(); got != 2 {
		t.Fatalf("requests = %d, want 2", got)
	}
}
