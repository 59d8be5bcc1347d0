package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/goliatone/go-cuenca/core"
)

// rewriteDoer sends every request to a local test server while keeping the
// original URL so tests can assert which origin was selected.
type rewriteDoer struct {
	target *url.URL
	client *http.Client

	mu   sync.Mutex
	urls []string
}

func (d *rewriteDoer) Do(req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	d.urls = append(d.urls, req.URL.String())
	d.mu.Unlock()

	out := req.Clone(req.Context())
	out.URL.Scheme = d.target.Scheme
	out.URL.Host = d.target.Host
	out.Host = d.target.Host
	out.RequestURI = ""
	return d.client.Do(out)
}

func (d *rewriteDoer) lastURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.urls) == 0 {
		return ""
	}
	return d.urls[len(d.urls)-1]
}

type capturedRequest struct {
	method  string
	path    string
	query   url.Values
	header  http.Header
	body    string
	user    string
	pass    string
	hasAuth bool
}

type recordingHandler struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	payload, _ := io.ReadAll(r.Body)
	h.mu.Lock()
	h.requests = append(h.requests, capturedRequest{
		method:  r.Method,
		path:    r.URL.Path,
		query:   r.URL.Query(),
		header:  r.Header.Clone(),
		body:    string(payload),
		user:    user,
		pass:    pass,
		hasAuth: ok,
	})
	status, body := h.status, h.body
	h.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	if body == "" {
		body = `{"id":"tx_1","amount":100}`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (h *recordingHandler) last(t *testing.T) capturedRequest {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.requests) == 0 {
		t.Fatalf("expected at least one request")
	}
	return h.requests[len(h.requests)-1]
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *rewriteDoer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	doer := &rewriteDoer{target: target, client: server.Client()}
	base := []Option{
		WithHTTPClient(doer),
		WithConfigLoader(core.StaticConfigLoader{Values: map[string]any{
			"api_key":    "AK_ENV",
			"api_secret": "SECRET_ENV",
		}}),
	}
	client, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, doer
}

type capturedCounter struct {
	name string
	tags map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms int
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, _ int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, tags: core.CloneTags(tags)})
}

func (m *captureMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms++
}

type capturedLog struct {
	level  string
	msg    string
	fields map[string]any
	args   int
}

type captureLogger struct {
	mu      *sync.Mutex
	records *[]capturedLog
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records}
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *captureLogger) WithContext(context.Context) core.Logger {
	return l
}

func (l *captureLogger) record(level string, msg string, args ...any) {
	fields := map[string]any{}
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields, args: len(args)})
}

func (l *captureLogger) snapshot() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]capturedLog, len(*l.records))
	copy(out, *l.records)
	return out
}

// fieldsCaptureLogger supports WithFields; bound fields are recorded
// alongside the args count so duplicated fields can be detected.
type fieldsCaptureLogger struct {
	*captureLogger
	bound map[string]any
}

func newFieldsCaptureLogger() *fieldsCaptureLogger {
	return &fieldsCaptureLogger{captureLogger: newCaptureLogger()}
}

func (l *fieldsCaptureLogger) WithFields(fields map[string]any) core.Logger {
	return &fieldsCaptureLogger{captureLogger: l.captureLogger, bound: fields}
}

func (l *fieldsCaptureLogger) WithContext(context.Context) core.Logger {
	return l
}

func (l *fieldsCaptureLogger) Info(msg string, args ...any)  { l.recordBound("info", msg, args) }
func (l *fieldsCaptureLogger) Error(msg string, args ...any) { l.recordBound("error", msg, args) }

func (l *fieldsCaptureLogger) recordBound(level string, msg string, args []any) {
	fields := make(map[string]any, len(l.bound))
	for key, value := range l.bound {
		fields[key] = value
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields, args: len(args)})
}

// reconfiguringDoer runs during before forwarding each request.
type reconfiguringDoer struct {
	next   core.HTTPDoer
	during func()
}

func (d *reconfiguringDoer) Do(req *http.Request) (*http.Response, error) {
	if d.during != nil {
		d.during()
	}
	return d.next.Do(req)
}
