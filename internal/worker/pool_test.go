package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsEveryIndex(t *testing.T) {
	var seen [10]atomic.Bool
	results := NewPool(3, 0).Run(context.Background(), 10, func(_ context.Context, i int) error {
		seen[i].Store(true)
		if i == 4 {
			return errors.New("four")
		}
		return nil
	})

	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.True(t, seen[i].Load())
		if i == 4 {
			assert.EqualError(t, r.Err, "four")
		} else {
			assert.NoError(t, r.Err)
		}
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	NewPool(2, 0).Run(context.Background(), 8, func(context.Context, int) error {
		cur := running.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return nil
	})
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPool_RateLimit(t *testing.T) {
	start := time.Now()
	NewPool(4, 50).Run(context.Background(), 4, func(context.Context, int) error { return nil })
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}

func TestPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewPool(1, 10).Run(ctx, 3, func(context.Context, int) error { return nil })
	require.Len(t, results, 3)
	assert.ErrorIs(t, results[2].Err, context.Canceled)
}

func TestPool_DeadlineShorterThanRate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var started atomic.Int32
	results := NewPool(2, 1).Run(ctx, 3, func(context.Context, int) error {
		started.Add(1)
		return nil
	})

	require.Len(t, results, 3)
	assert.Equal(t, int32(1), started.Load())
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)
}

func TestPool_Empty(t *testing.T) {
	assert.Empty(t, NewPool(0, 0).Run(context.Background(), 0, nil))
}
