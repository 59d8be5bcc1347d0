package transport

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/goliatone/go-cuenca/core"
)

const (
	metricRequestTotal    = "cuenca.request.total"
	metricRequestDuration = "cuenca.request.duration_ms"
)

func (c *Client) observeRequest(
	ctx context.Context,
	startedAt time.Time,
	baseURL string,
	method string,
	endpoint string,
	statusCode int,
	err error,
) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	durationMS := time.Since(startedAt).Milliseconds()

	fields := map[string]any{
		"method":      method,
		"endpoint":    endpoint,
		"base_url":    baseURL,
		"status":      status,
		"status_code": statusCode,
		"duration_ms": durationMS,
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	tags := map[string]string{
		"method":      method,
		"status":      status,
		"status_code": strconv.Itoa(statusCode),
	}
	c.recordCounter(ctx, metricRequestTotal, 1, tags)
	c.recordHistogram(ctx, metricRequestDuration, float64(durationMS), tags)

	if err != nil {
		c.logError(ctx, "cuenca request failed", fields)
		return
	}
	c.logInfo(ctx, "cuenca request succeeded", fields)
}

func (c *Client) logInfo(ctx context.Context, message string, fields map[string]any) {
	if logger, args := c.fieldLogger(ctx, fields); logger != nil {
		logger.Info(message, args...)
	}
}

func (c *Client) logError(ctx context.Context, message string, fields map[string]any) {
	if logger, args := c.fieldLogger(ctx, fields); logger != nil {
		logger.Error(message, args...)
	}
}

// fieldLogger attaches fields once: through WithFields when the logger
// supports it, otherwise as sorted key/value args.
func (c *Client) fieldLogger(ctx context.Context, fields map[string]any) (core.Logger, []any) {
	if c == nil || c.logger == nil {
		return nil, nil
	}
	logger := c.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		return fieldsLogger.WithFields(cloneFields(fields)), nil
	}
	return logger, flattenFields(fields)
}

func (c *Client) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if c.metricsRecorder == nil {
		return
	}
	c.metricsRecorder.IncCounter(ctx, name, value, core.CloneTags(tags))
}

func (c *Client) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if c.metricsRecorder == nil {
		return
	}
	c.metricsRecorder.ObserveHistogram(ctx, name, value, core.CloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
