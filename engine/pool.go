package engine

import (
	"context"
	"sync"
)

// runPool runs fn(i) for i in [0,n) across up to workers goroutines,
// honoring ctx cancellation between items. In-flight calls to fn are
// allowed to finish; no new ones are started once ctx is done or once
// any call has returned an error. The first error observed is returned.
func runPool(ctx context.Context, workers, n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	indices := make(chan int, n)
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				select {
				case <-ctx.Done():
					once.Do(func() { firstErr = ctx.Err() })
					return
				default:
				}
				if err := fn(i); err != nil {
					once.Do(func() { firstErr = err })
					cancel()
					return
				}
			}
		}()
	}

	wg.Wait()
	return firstErr
}
