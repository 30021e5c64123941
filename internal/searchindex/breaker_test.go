package searchindex

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyIndex struct {
	err   error
	calls int
}

func (f *flakyIndex) SearchByName(context.Context, int64, string, int) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []string{"prod-1"}, nil
}

func (f *flakyIndex) Index(context.Context, *ProductDocument) error { return f.err }
func (f *flakyIndex) Delete(context.Context, string) error          { return f.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBreakerIndex_PassesThrough(t *testing.T) {
	inner := &flakyIndex{}
	idx := NewBreakerIndex(inner, DefaultBreakerConfig("test"), testLogger())

	ids, err := idx.SearchByName(context.Background(), 1, "mug", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-1"}, ids)
	assert.Equal(t, 1, inner.calls)
}

func TestBreakerIndex_OpensAfterFailures(t *testing.T) {
	inner := &flakyIndex{err: errors.New("cluster gone")}
	cfg := BreakerConfig{
		Name:         "test-open",
		MaxRequests:  1,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
	idx := NewBreakerIndex(inner, cfg, testLogger())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := idx.SearchByName(ctx, 1, "mug", 10)
		require.Error(t, err)
	}

	// Breaker is now open: the inner index must not be called again.
	callsBefore := inner.calls
	_, err := idx.SearchByName(ctx, 1, "mug", 10)
	require.Error(t, err)
	assert.Equal(t, callsBefore, inner.calls)
}
