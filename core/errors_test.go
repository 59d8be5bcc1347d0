package core

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestStatusErrorCarriesCodeAndBody(t *testing.T) {
	err := NewStatusError("transport: GET /transfers/tr_1 returned 404", http.StatusNotFound, []byte(`{"error":"not_found"}`), nil)

	status, ok := AsStatusError(err)
	if !ok {
		t.Fatalf("expected status error")
	}
	if status.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status.StatusCode)
	}
	if status.Body != `{"error":"not_found"}` {
		t.Fatalf("unexpected body %q", status.Body)
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryNotFound {
		t.Fatalf("expected not found category, got %q", rich.Category)
	}
	if IsDecodeError(err) {
		t.Fatalf("status error must not be reported as decode error")
	}
}

func TestStatusCategoryMapping(t *testing.T) {
	cases := map[int]goerrors.Category{
		http.StatusBadRequest:            goerrors.CategoryBadInput,
		http.StatusUnauthorized:          goerrors.CategoryAuth,
		http.StatusForbidden:             goerrors.CategoryAuthz,
		http.StatusConflict:              goerrors.CategoryConflict,
		http.StatusTooManyRequests:       goerrors.CategoryRateLimit,
		http.StatusServiceUnavailable:    goerrors.CategoryExternal,
		http.StatusRequestEntityTooLarge: goerrors.CategoryOperation,
	}
	for code, expected := range cases {
		if got := statusCategory(code); got != expected {
			t.Fatalf("status %d: expected %q, got %q", code, expected, got)
		}
	}
}

func TestDecodeErrorIsDistinctFromStatusError(t *testing.T) {
	err := NewDecodeError(errors.New("invalid character"), "transport: decode response body", nil)
	if !IsDecodeError(err) {
		t.Fatalf("expected decode error")
	}
	if IsStatusError(err) {
		t.Fatalf("decode error must not be reported as status error")
	}
	if _, ok := AsStatusError(err); ok {
		t.Fatalf("decode error must not expose a status view")
	}
}

func TestErrorHelpersIgnorePlainErrors(t *testing.T) {
	plain := errors.New("boom")
	if IsStatusError(plain) || IsDecodeError(plain) || IsTransportError(plain) || IsBadInput(plain) || IsContractViolation(plain) {
		t.Fatalf("plain errors must not match any kind")
	}
	if IsStatusError(nil) {
		t.Fatalf("nil must not match")
	}
}

func TestContractViolationTextCode(t *testing.T) {
	err := NewContractViolation("resources: refresh requires an id", map[string]any{"endpoint": "/transfers"})
	if !IsContractViolation(err) {
		t.Fatalf("expected contract violation")
	}
	if IsBadInput(err) {
		t.Fatalf("contract violation must not be bad input")
	}
}

func TestInternalErrorHelper(t *testing.T) {
	if !IsInternal(NewInternalError("core: boom")) {
		t.Fatalf("expected internal error to be recognised")
	}
	if IsInternal(NewBadInputError("core: bad", nil)) {
		t.Fatalf("expected bad input not to be internal")
	}
}
