package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-cuenca/adapters/gologger"
	"github.com/goliatone/go-cuenca/core"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Event is a verified webhook delivery.
type Event struct {
	ID      string
	Type    string
	Payload map[string]any
	Raw     []byte
}

type EventFunc func(ctx context.Context, event Event) error

type Handler struct {
	verifier     Verifier
	onEvent      EventFunc
	logger       core.Logger
	maxBodyBytes int64
}

type HandlerOption func(*Handler)

func WithLogger(logger core.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) HandlerOption {
	return func(h *Handler) {
		_, h.logger = gologger.Resolve("cuenca.webhooks", provider, h.logger)
	}
}

func WithMaxBodyBytes(limit int64) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.maxBodyBytes = limit
		}
	}
}

// NewHandler returns an http.Handler that verifies each delivery before
// passing it to onEvent.
func NewHandler(verifier Verifier, onEvent EventFunc, opts ...HandlerOption) *Handler {
	h := &Handler{verifier: verifier, onEvent: onEvent, maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	_, h.logger = gologger.Resolve("cuenca.webhooks", nil, h.logger)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeStatus(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}
	event, err := h.Parse(r)
	if err != nil {
		h.logger.Warn("cuenca webhook rejected", "error", err)
		switch {
		case core.IsSignatureError(err):
			writeStatus(w, http.StatusUnauthorized, "invalid_signature")
		case core.IsBadInput(err), core.IsDecodeError(err):
			writeStatus(w, http.StatusBadRequest, "invalid_payload")
		default:
			writeStatus(w, http.StatusInternalServerError, "error")
		}
		return
	}
	if h.onEvent != nil {
		if err := h.onEvent(r.Context(), event); err != nil {
			h.logger.Error("cuenca webhook handler failed", "event_id", event.ID, "event_type", event.Type, "error", err)
			writeStatus(w, http.StatusInternalServerError, "error")
			return
		}
	}
	h.logger.Info("cuenca webhook processed", "event_id", event.ID, "event_type", event.Type)
	writeStatus(w, http.StatusOK, "ok")
}

// Parse reads, verifies and decodes a delivery without dispatching it.
func (h *Handler) Parse(r *http.Request) (Event, error) {
	if r.Body == nil {
		return Event{}, core.NewBadInputError("webhooks: request body is required", nil)
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes+1))
	if err != nil {
		return Event{}, core.NewTransportError(err, "webhooks: read body", nil)
	}
	if int64(len(body)) > h.maxBodyBytes {
		return Event{}, core.NewBadInputError("webhooks: body exceeds limit", map[string]any{"limit": h.maxBodyBytes})
	}
	if err := h.verifier.Verify(r.Context(), r.Header, body); err != nil {
		return Event{}, err
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return Event{}, core.NewDecodeError(err, "webhooks: payload is not a JSON object", nil)
	}
	if payload == nil {
		return Event{}, core.NewDecodeError(errors.New("null payload"), "webhooks: payload is not a JSON object", nil)
	}
	id, _ := payload["id"].(string)
	eventType, _ := payload["type"].(string)
	return Event{
		ID:      strings.TrimSpace(id),
		Type:    strings.TrimSpace(eventType),
		Payload: payload,
		Raw:     body,
	}, nil
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": message})
}

var _ http.Handler = (*Handler)(nil)
