// Package worker runs indexed tasks with bounded concurrency and an optional
// start-rate limit.
package worker

import (
	"cmp"
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Task is one unit of work; i is its submission index.
type Task func(ctx context.Context, i int) error

type Result struct {
	Index int
	Err   error
}

type Pool struct {
	workers int
	rps     int
}

// NewPool returns a pool running at most workers tasks at once. rps > 0 caps
// how many tasks start per second.
func NewPool(workers, rps int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, rps: max(rps, 0)}
}

// Run executes fn for every index in [0, n) and returns one Result per index,
// in index order. Task errors do not stop the others. Tasks not started
// before ctx is done report ctx.Err().
func (p *Pool) Run(ctx context.Context, n int, fn Task) []Result {
	results := make([]Result, n)
	for i := range results {
		results[i] = Result{Index: i}
	}
	if n == 0 || fn == nil {
		return results
	}

	var limiter *rate.Limiter
	if p.rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.rps), 1)
	}

	var g errgroup.Group
	g.SetLimit(p.workers)

	var stopErr error
	next := 0
	for ; next < n; next++ {
		if stopErr = ctx.Err(); stopErr != nil {
			break
		}
		if limiter != nil {
			// Wait fails early when the deadline leaves no room for the
			// next token.
			if stopErr = limiter.Wait(ctx); stopErr != nil {
				break
			}
		}
		i := next
		g.Go(func() error {
			results[i].Err = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	for i := next; i < n; i++ {
		results[i].Err = cmp.Or(ctx.Err(), stopErr)
	}
	return results
}
