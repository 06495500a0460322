package utils

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/CPU-commits/Intranet_BAttainment/res"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrencyRunsEveryIndex(t *testing.T) {
	var calls int64
	var inFlight, peak int64

	errRes := Concurrency(context.Background(), 2, 10, func(ctx context.Context, index int, setError func(*res.ErrorRes)) {
		current := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if current <= old || atomic.CompareAndSwapInt64(&peak, old, current) {
				break
			}
		}
		atomic.AddInt64(&calls, 1)
		atomic.AddInt64(&inFlight, -1)
	})

	assert.Nil(t, errRes)
	assert.EqualValues(t, 10, calls)
	assert.LessOrEqual(t, peak, int64(2))
}

func TestConcurrencyReturnsFirstError(t *testing.T) {
	failure := &res.ErrorRes{
		Err:        errors.New("storage down"),
		StatusCode: http.StatusServiceUnavailable,
	}

	errRes := Concurrency(context.Background(), 1, 5, func(ctx context.Context, index int, setError func(*res.ErrorRes)) {
		if index == 0 {
			setError(failure)
		}
	})

	require.NotNil(t, errRes)
	assert.Equal(t, failure.StatusCode, errRes.StatusCode)
}

func TestConcurrencyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	errRes := Concurrency(ctx, 1, 3, func(ctx context.Context, index int, setError func(*res.ErrorRes)) {
		atomic.AddInt64(&calls, 1)
	})

	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusServiceUnavailable, errRes.StatusCode)
	assert.Zero(t, calls)
}
