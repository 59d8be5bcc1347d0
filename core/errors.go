package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorHTTPStatus        = "CUENCA_HTTP_STATUS"
	ErrorDecode            = "CUENCA_DECODE_FAILED"
	ErrorTransport         = "CUENCA_TRANSPORT_FAILED"
	ErrorBadInput          = "CUENCA_BAD_INPUT"
	ErrorContractViolation = "CUENCA_CONTRACT_VIOLATION"
	ErrorNoResult          = "CUENCA_NO_RESULT_FOUND"
	ErrorMultipleResults   = "CUENCA_MULTIPLE_RESULTS_FOUND"
	ErrorInternal          = "CUENCA_INTERNAL_ERROR"
	ErrorSignatureInvalid  = "CUENCA_SIGNATURE_INVALID"
)

const (
	metadataBody       = "body"
	metadataStatusCode = "status_code"
)

// StatusError is the inspectable view of a non-success HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func NewStatusError(message string, statusCode int, body []byte, metadata map[string]any) error {
	fields := cloneMetadata(metadata)
	fields[metadataStatusCode] = statusCode
	fields[metadataBody] = string(body)
	return goerrors.New(message, statusCategory(statusCode)).
		WithCode(statusCode).
		WithTextCode(ErrorHTTPStatus).
		WithMetadata(fields)
}

func NewDecodeError(source error, message string, metadata map[string]any) error {
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorDecode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NewTransportError(source error, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryExternal)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, message)
	}
	err.WithCode(http.StatusBadGateway).WithTextCode(ErrorTransport)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NewBadInputError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NewContractViolation(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorContractViolation)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NewNoResultError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorNoResult)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NewMultipleResultsError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(ErrorMultipleResults)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// NewSignatureError reports a webhook payload whose signature could not be
// verified.
func NewSignatureError(source error, message string) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryAuth)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryAuth, message)
	}
	return err.WithCode(http.StatusUnauthorized).WithTextCode(ErrorSignatureInvalid)
}

func NewInternalError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

// AsStatusError reports whether err is a status error and returns its code and body.
func AsStatusError(err error) (StatusError, bool) {
	rich, ok := richWithTextCode(err, ErrorHTTPStatus)
	if !ok {
		return StatusError{}, false
	}
	body, _ := rich.Metadata[metadataBody].(string)
	return StatusError{StatusCode: rich.Code, Body: body}, true
}

func IsStatusError(err error) bool {
	_, ok := richWithTextCode(err, ErrorHTTPStatus)
	return ok
}

func IsDecodeError(err error) bool {
	_, ok := richWithTextCode(err, ErrorDecode)
	return ok
}

func IsTransportError(err error) bool {
	_, ok := richWithTextCode(err, ErrorTransport)
	return ok
}

func IsBadInput(err error) bool {
	_, ok := richWithTextCode(err, ErrorBadInput)
	return ok
}

func IsContractViolation(err error) bool {
	_, ok := richWithTextCode(err, ErrorContractViolation)
	return ok
}

func IsNoResult(err error) bool {
	_, ok := richWithTextCode(err, ErrorNoResult)
	return ok
}

func IsMultipleResults(err error) bool {
	_, ok := richWithTextCode(err, ErrorMultipleResults)
	return ok
}

func IsInternal(err error) bool {
	_, ok := richWithTextCode(err, ErrorInternal)
	return ok
}

func IsSignatureError(err error) bool {
	_, ok := richWithTextCode(err, ErrorSignatureInvalid)
	return ok
}

func richWithTextCode(err error, textCode string) (*goerrors.Error, bool) {
	if err == nil {
		return nil, false
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich == nil {
		return nil, false
	}
	return rich, strings.TrimSpace(rich.TextCode) == textCode
}

func statusCategory(statusCode int) goerrors.Category {
	switch {
	case statusCode == http.StatusBadRequest, statusCode == http.StatusUnprocessableEntity:
		return goerrors.CategoryBadInput
	case statusCode == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case statusCode == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case statusCode == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case statusCode == http.StatusConflict:
		return goerrors.CategoryConflict
	case statusCode == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	case statusCode >= 500:
		return goerrors.CategoryExternal
	default:
		return goerrors.CategoryOperation
	}
}

func cloneMetadata(metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata)+2)
	for key, value := range metadata {
		out[key] = value
	}
	return out
}
