package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyNotFound(t *testing.T) {
	err := CurrencyNotFound("ZZZ")

	assert.True(t, errors.Is(err, ErrCurrencyNotFound))
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Error(), "ZZZ")
}

func TestStoreUnavailable_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreUnavailable("resolve currency", cause)

	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
}

func TestMalformedCatalogData(t *testing.T) {
	err := MalformedCatalogData("customization field 7 has no record for language 1")

	assert.True(t, errors.Is(err, ErrMalformedCatalogData))
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", CurrencyNotFound("ZZZ"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("handle search: %w", CurrencyNotFound("ZZZ")), http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("load product: %w", ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"invalid input sentinel", fmt.Errorf("query: %w", ErrInvalidInput), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)

	require.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}
