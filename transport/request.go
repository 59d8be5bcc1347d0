package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-cuenca/core"
)

type requestParams struct {
	timeout time.Duration
	headers map[string]string
}

type RequestOption func(*requestParams)

// WithTimeout bounds a single request. It overrides the client timeout.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(p *requestParams) {
		p.timeout = timeout
	}
}

// WithHeader adds a header to a single request. Standard headers and
// authentication cannot be overridden.
func WithHeader(key, value string) RequestOption {
	return func(p *requestParams) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if p.headers == nil {
			p.headers = map[string]string{}
		}
		p.headers[key] = strings.TrimSpace(value)
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, opts ...RequestOption) (map[string]any, error) {
	return c.Request(ctx, http.MethodGet, endpoint, params, nil, opts...)
}

func (c *Client) Post(ctx context.Context, endpoint string, data any, opts ...RequestOption) (map[string]any, error) {
	return c.Request(ctx, http.MethodPost, endpoint, nil, data, opts...)
}

// Delete issues a DELETE. A nil data sends no body.
func (c *Client) Delete(ctx context.Context, endpoint string, data any, opts ...RequestOption) (map[string]any, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, data, opts...)
}

// Request is the primitive behind Get, Post and Delete. It authenticates with
// the configured credential pair, sends params as the query string and data as
// a JSON body, and decodes the JSON object in the response.
func (c *Client) Request(
	ctx context.Context,
	method string,
	endpoint string,
	params map[string]string,
	data any,
	opts ...RequestOption,
) (map[string]any, error) {
	if c == nil || c.httpClient == nil {
		return nil, core.NewInternalError("transport: client requires an http client")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	endpoint = normalizeEndpoint(endpoint)

	// one snapshot per request: the origin and pair sent are the ones logged
	conn := c.snapshot()
	startedAt := time.Now()
	statusCode, body, err := c.send(ctx, conn, method, endpoint, params, data, opts)
	if err == nil {
		var decoded map[string]any
		decoded, err = decodeObject(body, method, endpoint)
		if err == nil {
			c.observeRequest(ctx, startedAt, conn.baseURL, method, endpoint, statusCode, nil)
			return decoded, nil
		}
	}
	c.observeRequest(ctx, startedAt, conn.baseURL, method, endpoint, statusCode, err)
	return nil, err
}

func (c *Client) send(
	ctx context.Context,
	conn connection,
	method string,
	endpoint string,
	params map[string]string,
	data any,
	opts []RequestOption,
) (int, []byte, error) {
	reqParams := requestParams{timeout: c.timeout}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&reqParams)
	}

	fields := map[string]any{"method": method, "endpoint": endpoint}

	parsedURL, err := url.Parse(conn.baseURL + endpoint)
	if err != nil {
		return 0, nil, core.NewBadInputError("transport: invalid endpoint", fields)
	}
	query := parsedURL.Query()
	for key, value := range params {
		if strings.TrimSpace(key) == "" {
			continue
		}
		query.Set(strings.TrimSpace(key), value)
	}
	parsedURL.RawQuery = query.Encode()

	payload, err := encodeBody(data)
	if err != nil {
		return 0, nil, core.NewBadInputError("transport: encode request body: "+err.Error(), fields)
	}

	requestCtx := ctx
	cancel := func() {}
	if reqParams.timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, reqParams.timeout)
	}
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, method, parsedURL.String(), bodyReader)
	if err != nil {
		return 0, nil, core.NewBadInputError("transport: create http request: "+err.Error(), fields)
	}
	for key, value := range reqParams.headers {
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set(core.HeaderAPIVersion, core.APIVersion)
	httpReq.Header.Set(core.HeaderUserAgent, core.UserAgent())
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.SetBasicAuth(conn.apiKey, conn.apiSecret)

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, core.NewTransportError(err, "transport: execute http request", fields)
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpRes.Body, c.maxResponseBodyBytes+1))
	if err != nil {
		fields["status_code"] = httpRes.StatusCode
		return httpRes.StatusCode, nil, core.NewTransportError(err, "transport: read response body", fields)
	}
	if int64(len(body)) > c.maxResponseBodyBytes {
		fields["status_code"] = httpRes.StatusCode
		fields["response_limit_b"] = c.maxResponseBodyBytes
		return httpRes.StatusCode, nil, core.NewTransportError(
			nil,
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", c.maxResponseBodyBytes),
			fields,
		)
	}
	if err := checkResponse(method, endpoint, httpRes.StatusCode, body); err != nil {
		return httpRes.StatusCode, body, err
	}
	return httpRes.StatusCode, body, nil
}

// checkResponse accepts any status below 400; redirects are followed by the
// http client before we get here.
func checkResponse(method, endpoint string, statusCode int, body []byte) error {
	if statusCode < http.StatusBadRequest {
		return nil
	}
	return core.NewStatusError(
		fmt.Sprintf("transport: %s %s returned status %d", method, endpoint, statusCode),
		statusCode,
		body,
		map[string]any{"method": method, "endpoint": endpoint},
	)
}

func encodeBody(data any) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(payload, []byte("null")) {
		return nil, nil
	}
	return payload, nil
}

// decodeObject keeps numbers as json.Number so integer amounts survive intact.
func decodeObject(body []byte, method, endpoint string) (map[string]any, error) {
	fields := map[string]any{"method": method, "endpoint": endpoint, "body": string(body)}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, core.NewDecodeError(err, "transport: decode response body", fields)
	}
	if out == nil {
		return nil, core.NewDecodeError(errors.New("json null"), "transport: response body is not a JSON object", fields)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, core.NewDecodeError(errors.New("trailing data"), "transport: response body has trailing data", fields)
	}
	return out, nil
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return endpoint
}
