package services

import (
	"context"
	"log"
	"sync"
)

// runBounded fans n tasks out over at most concurrency goroutines and
// blocks until every task has finished. Tasks receive their index so the
// caller can collect results without locking. When ctx is cancelled the
// remaining tasks still run; each task decides how to handle a dead
// context.
func runBounded(ctx context.Context, concurrency, n int, task func(ctx context.Context, i int)) {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > n {
		concurrency = n
	}

	jobQueue := make(chan int, n)
	for i := 0; i < n; i++ {
		jobQueue <- i
	}
	close(jobQueue)

	var wg sync.WaitGroup
	for w := 1; w <= concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobQueue {
				task(ctx, i)
			}
		}(w)
	}

	wg.Wait()
	log.Printf("✅ Processed %d tasks with %d workers\n", n, concurrency)
}
