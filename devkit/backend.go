// Package devkit provides an in-process fake of the Cuenca API for tests.
package devkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-cuenca/core"
)

const defaultPageSize = 50

// RecordedRequest is a request as the backend received it.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
	Username string
	Password string
}

// Failure is a scripted response returned instead of the normal handler.
type Failure struct {
	Status int
	Body   string
}

type Backend struct {
	mu        sync.Mutex
	router    chi.Router
	records   map[string]map[string]map[string]any
	order     map[string][]string
	requests  []RecordedRequest
	failures  map[string]Failure
	pageSize  int
	apiKey    string
	apiSecret string
	now       func() time.Time
}

type BackendOption func(*Backend)

// WithCredentials makes the backend reject requests with any other pair.
func WithCredentials(apiKey, apiSecret string) BackendOption {
	return func(b *Backend) {
		b.apiKey = apiKey
		b.apiSecret = apiSecret
	}
}

func WithPageSize(size int) BackendOption {
	return func(b *Backend) {
		if size > 0 {
			b.pageSize = size
		}
	}
}

func WithClock(now func() time.Time) BackendOption {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBackend(opts ...BackendOption) *Backend {
	b := &Backend{
		records:  map[string]map[string]map[string]any{},
		order:    map[string][]string{},
		failures: map[string]Failure{},
		pageSize: defaultPageSize,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.router = b.routes()
	return b
}

func (b *Backend) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(b.recordMiddleware)
	r.Use(b.failureMiddleware)
	r.Use(b.authMiddleware)

	r.Get("/{collection}", b.list)
	r.Post("/{collection}", b.create)
	r.Get("/{collection}/{id}", b.retrieve)
	r.Delete("/{collection}/{id}", b.deactivate)
	return r
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// Doer serves requests in process, ignoring scheme and host, so a
// transport.Client pointed at either Cuenca origin talks to this backend.
func (b *Backend) Doer() core.HTTPDoer {
	return doerFunc(func(req *http.Request) (*http.Response, error) {
		if err := req.Context().Err(); err != nil {
			return nil, err
		}
		recorder := httptest.NewRecorder()
		b.ServeHTTP(recorder, req)
		return recorder.Result(), nil
	})
}

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Seed stores an object in a collection, e.g. "transactions". The object must
// carry an "id".
func (b *Backend) Seed(collection string, object map[string]any) {
	collection = strings.Trim(collection, "/")
	id, _ := object["id"].(string)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.putLocked(collection, id, cloneObject(object))
}

func (b *Backend) Object(collection, id string) (map[string]any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	object, ok := b.records[strings.Trim(collection, "/")][id]
	if !ok {
		return nil, false
	}
	return cloneObject(object), true
}

// Fail scripts a response for method and path until ClearFailures is called.
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[failureKey(method, path)] = Failure{Status: status, Body: body}
}

func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = map[string]Failure{}
}

func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *Backend) LastRequest() (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}, false
	}
	return b.requests[len(b.requests)-1], true
}

func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = map[string]map[string]map[string]any{}
	b.order = map[string][]string{}
	b.requests = nil
	b.failures = map[string]Failure{}
}

func (b *Backend) putLocked(collection, id string, object map[string]any) {
	if b.records[collection] == nil {
		b.records[collection] = map[string]map[string]any{}
	}
	if _, exists := b.records[collection][id]; !exists {
		b.order[collection] = append(b.order[collection], id)
	}
	b.records[collection][id] = object
}

func (b *Backend) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		user, pass, _ := r.BasicAuth()
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
			Username: user,
			Password: pass,
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		failure, ok := b.failures[failureKey(r.Method, r.URL.Path)]
		b.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(failure.Status)
		_, _ = io.WriteString(w, failure.Body)
	})
}

func (b *Backend) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.apiKey == "" && b.apiSecret == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != b.apiKey || pass != b.apiSecret {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{"error": code})
}

func failureKey(method, path string) string {
	return strings.ToUpper(strings.TrimSpace(method)) + " " + strings.TrimSpace(path)
}

func cloneObject(object map[string]any) map[string]any {
	out := make(map[string]any, len(object))
	for key, value := range object {
		out[key] = value
	}
	return out
}

var _ http.Handler = (*Backend)(nil)
