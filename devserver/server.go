// Package devserver serves a local /chat endpoint with the same contract as
// the support backend, for trying the widget without network access.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/linanwx/supportchat/internal/health"
	"github.com/linanwx/supportchat/logger"
)

const (
	// FallbackReply is sent when the responder produces no text.
	FallbackReply = "Sorry, I could not generate a response."

	emptyMessageDetail = "Message cannot be empty."
	maxRequestBytes    = 1 << 20
	shutdownTimeout    = 5 * time.Second
)

// Handler serves the chat routes.
type Handler struct {
	responder Responder
	startedAt time.Time
	requests  atomic.Int64
}

// New creates a handler. A nil responder uses CannedResponder.
func New(responder Responder) *Handler {
	if responder == nil {
		responder = CannedResponder{}
	}
	return &Handler{responder: responder, startedAt: time.Now()}
}

// RegisterRoutes registers the chat routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/health", h.handleHealth)
}

// NewRouter wires the dev routes with request logging and panic recovery.
func NewRouter(responder Responder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	New(responder).RegisterRoutes(r)
	return r
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil || !gjson.ValidBytes(body) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := gjson.GetBytes(body, "message")
	if message.Type != gjson.String {
		respondError(w, http.StatusUnprocessableEntity, "message must be a string")
		return
	}
	if strings.TrimSpace(message.Str) == "" {
		respondError(w, http.StatusBadRequest, emptyMessageDetail)
		return
	}
	conv := gjson.GetBytes(body, "conversation_id")

	reply, err := h.responder.Respond(r.Context(), message.Str, conv.String())
	if err != nil {
		logger.Error("responder failed", "conversationId", conv.String(), "err", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reply == "" {
		reply = FallbackReply
	}

	out, err := buildReply(reply, conv)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "encode response")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := health.Collect(health.Options{
		StartedAt: h.startedAt,
		Requests:  h.requests.Load(),
	})
	body, err := json.Marshal(snap)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "encode health")
		return
	}
	respondJSON(w, http.StatusOK, body)
}

// buildReply returns {"response": reply, "conversation_id": id}. A missing
// or non-string id is echoed as null.
func buildReply(reply string, conv gjson.Result) ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "response", reply)
	if err != nil {
		return nil, err
	}
	if conv.Type == gjson.String {
		return sjson.SetBytes(out, "conversation_id", conv.Str)
	}
	return sjson.SetRawBytes(out, "conversation_id", []byte("null"))
}

func respondJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	body, _ := sjson.SetBytes([]byte(`{}`), "detail", detail)
	respondJSON(w, status, body)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}

// cors allows any origin, like the hosted backend.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves the dev routes on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, responder Responder) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(responder),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dev server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("dev server stopped")
	return nil
}
