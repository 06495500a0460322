package utils

import (
	"context"
	"net/http"
	"sync"

	"github.com/CPU-commits/Intranet_BAttainment/res"
	"golang.org/x/sync/semaphore"
)

// Runs do for every index with at most semWeight calls in flight.
// The first error cancels the context given to the remaining calls and is returned.
func Concurrency(
	ctx context.Context,
	semWeight int64,
	count int,
	do func(ctx context.Context, index int, setError func(errRes *res.ErrorRes)),
) *res.ErrorRes {
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr *res.ErrorRes

	sem := semaphore.NewWeighted(semWeight)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	setError := func(errRes *res.ErrorRes) {
		once.Do(func() {
			firstErr = errRes
			cancel()
		})
	}

	for i := 0; i < count; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Canceled by a failed call or by the caller
			setError(&res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			})
			break
		}
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer sem.Release(1)

			do(ctx, index, setError)
		}(i)
	}
	wg.Wait()
	return firstErr
}
