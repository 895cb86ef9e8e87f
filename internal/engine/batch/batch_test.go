package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessorProcess(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("sequential", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		var processed, batches int32
		callback := func(_ context.Context, batch []int, _ int) error {
			atomic.AddInt32(&batches, 1)
			atomic.AddInt32(&processed, int32(len(batch)))
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback))
		assert.Equal(t, int32(25), processed)
		assert.Equal(t, int32(3), batches)
	})

	t.Run("sequential preserves order", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		var seen []int
		callback := func(_ context.Context, batch []int, _ int) error {
			seen = append(seen, batch...)
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback))
		assert.Equal(t, items, seen)
	})

	t.Run("concurrent", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)

		var processed int32
		callback := func(_ context.Context, batch []int, _ int) error {
			atomic.AddInt32(&processed, int32(len(batch)))
			return nil
		}

		require.NoError(t, p.ProcessConcurrent(context.Background(), items, callback, 2))
		assert.Equal(t, int32(25), processed)
	})

	t.Run("sequential stops on error", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		callback := func(_ context.Context, _ []int, batchIndex int) error {
			if batchIndex == 1 {
				return errors.New("fail")
			}
			return nil
		}

		err = p.Process(context.Background(), items, callback)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("concurrent collects errors", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)

		boom := errors.New("boom")
		callback := func(_ context.Context, _ []int, batchIndex int) error {
			if batchIndex%2 == 0 {
				return boom
			}
			return nil
		}

		err = p.ProcessConcurrent(context.Background(), items, callback, 3)
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = p.Process(ctx, items, func(_ context.Context, _ []int, _ int) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty items", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrEmptyItems, p.Process(context.Background(), nil, nil))
	})

	t.Run("nil callback", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrNilCallback, p.Process(context.Background(), items, nil))
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		require.ErrorIs(t, err, ErrInvalidSize)
		_, err = NewProcessor[int](2000)
		require.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestProcessorProgress(t *testing.T) {
	items := make([]string, 30)
	p, err := NewProcessor[string](10)
	require.NoError(t, err)

	var updates []float64
	p.WithProgress(func(progress *Progress) {
		updates = append(updates, progress.PercentComplete())
	})

	callback := func(_ context.Context, _ []string, _ int) error { return nil }
	require.NoError(t, p.Process(context.Background(), items, callback))

	require.Len(t, updates, 3)
	assert.InDelta(t, 33.3, updates[0], 0.1)
	assert.InDelta(t, 66.7, updates[1], 0.1)
	assert.InDelta(t, 100, updates[2], 1e-9)
}

func TestProgress(t *testing.T) {
	p := NewProgress(100, 10, 10)

	assert.Zero(t, p.PercentComplete())
	assert.False(t, p.IsComplete())

	p.AddProcessed(10)
	assert.InDelta(t, 10.0, p.PercentComplete(), 1e-9)
	processed, total := p.Items()
	assert.Equal(t, 10, processed)
	assert.Equal(t, 100, total)
	assert.Equal(t, 1, p.ProcessedBatches)

	p.AddProcessed(90)
	assert.InDelta(t, 100.0, p.PercentComplete(), 1e-9)
	assert.True(t, p.IsComplete())
}

func TestProcessorSize(t *testing.T) {
	assert.Equal(t, DefaultSize, NewProcessorWithDefaults[int]().Size())

	p, err := NewProcessor[int](250)
	require.NoError(t, err)
	assert.Equal(t, 250, p.Size())
}
