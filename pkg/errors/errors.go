package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across the service. Wrap them with fmt.Errorf("...: %w")
// and test with errors.Is at the boundary.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternal             = errors.New("internal error")
	ErrCurrencyNotFound     = errors.New("currency not found")
	ErrStoreUnavailable     = errors.New("catalog store unavailable")
	ErrMalformedCatalogData = errors.New("malformed catalog data")
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error for a missing resource.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// CurrencyNotFound reports a syntactically valid ISO code with no matching
// stored currency. Fatal to the search call; never retried locally.
func CurrencyNotFound(isoCode string) *AppError {
	return &AppError{
		Code:    "CURRENCY_NOT_FOUND",
		Message: fmt.Sprintf("no active currency matches ISO code %q", isoCode),
		Status:  http.StatusNotFound,
		Err:     ErrCurrencyNotFound,
	}
}

// StoreUnavailable wraps a collaborator I/O failure. The caller decides retry
// policy; nothing is recovered locally.
func StoreUnavailable(op string, err error) *AppError {
	return &AppError{
		Code:    "STORE_UNAVAILABLE",
		Message: fmt.Sprintf("catalog store failed during %s", op),
		Status:  http.StatusServiceUnavailable,
		Err:     fmt.Errorf("%w: %w", ErrStoreUnavailable, err),
	}
}

// MalformedCatalogData reports a structurally inconsistent catalog record.
// Propagated rather than skipped so catalog corruption is never masked.
func MalformedCatalogData(detail string) *AppError {
	return &AppError{
		Code:    "MALFORMED_CATALOG_DATA",
		Message: detail,
		Status:  http.StatusInternalServerError,
		Err:     ErrMalformedCatalogData,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// HTTPStatus returns the HTTP status code mapped to the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCurrencyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
