// Package workers runs independent per-element jobs on a shared goroutine pool.
package workers

import (
	"context"
	"runtime"

	"github.com/alitto/pond/v2"
)

// Pool wraps a bounded pond pool.
type Pool struct {
	pool pond.Pool
}

// New creates a pool with the given concurrency. Zero or negative means one
// worker per CPU.
func New(concurrency int) *Pool {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Pool{pool: pond.NewPool(concurrency)}
}

// ForEach calls fn(i) for every i in [0, n) and waits for all calls to finish.
// Calls run concurrently and must not depend on each other. Cancelling ctx
// skips calls that have not started yet and returns ctx.Err().
func (p *Pool) ForEach(ctx context.Context, n int, fn func(i int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	group := p.pool.NewGroupContext(ctx)
	for i := range n {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	return group.Wait()
}

// Go runs fn in the background on the pool.
func (p *Pool) Go(fn func()) {
	p.pool.Submit(fn)
}

// Close waits for queued work and stops the workers.
func (p *Pool) Close() {
	p.pool.StopAndWait()
}
