package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Batch sizing limits.
const (
	// DefaultSize is the number of items per batch when none is configured.
	DefaultSize = 100

	// MinSize is the smallest allowed batch size.
	MinSize = 1

	// MaxSize is the largest allowed batch size.
	MaxSize = 1000
)

// Sentinel errors returned by the processor.
var (
	ErrInvalidSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback = errors.New("batch callback cannot be nil")
	ErrEmptyItems  = errors.New("items slice cannot be empty")
)

// Callback processes one batch. batchIndex is zero-based; returning an error
// stops sequential processing.
type Callback[T any] func(ctx context.Context, items []T, batchIndex int) error

// ProgressFunc is invoked after each completed batch.
type ProgressFunc func(progress *Progress)

// Processor splits a slice into fixed-size batches and runs a callback over
// them, sequentially or with bounded concurrency.
type Processor[T any] struct {
	size       int
	onProgress ProgressFunc
}

// NewProcessor returns a processor with the given batch size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Processor[T]{size: size}, nil
}

// NewProcessorWithDefaults returns a processor with DefaultSize batches.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{size: DefaultSize}
}

// WithProgress sets a callback invoked after each batch completes.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// Size returns the configured batch size.
func (p *Processor[T]) Size() int {
	return p.size
}

// Process runs callback over each batch in order, stopping at the first
// error or context cancellation. Ordering makes this the right mode when
// output must line up with input.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	total, progress, err := p.prepare(items, callback)
	if err != nil {
		return err
	}

	for batchIndex := 0; batchIndex < total; batchIndex++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start, end := p.bounds(batchIndex, len(items))
		if err := callback(ctx, items[start:end], batchIndex); err != nil {
			return fmt.Errorf("batch %d failed: %w", batchIndex, err)
		}

		progress.AddProcessed(end - start)
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}

	return nil
}

// ProcessConcurrent runs batches concurrently, at most maxConcurrency at a
// time. All started batches are attempted; errors are collected and reported
// together.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	total, progress, err := p.prepare(items, callback)
	if err != nil {
		return err
	}

	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	errChan := make(chan error, total)
	var wg sync.WaitGroup

	for batchIndex := 0; batchIndex < total; batchIndex++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start, end := p.bounds(batchIndex, len(items))
		wg.Add(1)
		go func(idx, start, end int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := callback(ctx, items[start:end], idx); err != nil {
				errChan <- fmt.Errorf("batch %d failed: %w", idx, err)
				return
			}

			progress.AddProcessed(end - start)
			if p.onProgress != nil {
				p.onProgress(progress)
			}
		}(batchIndex, start, end)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("batch processing failed with %d errors: %w", len(errs), errors.Join(errs...))
	}

	return nil
}

// prepare validates inputs and builds the shared progress tracker.
func (p *Processor[T]) prepare(items []T, callback Callback[T]) (int, *Progress, error) {
	if len(items) == 0 {
		return 0, nil, ErrEmptyItems
	}
	if callback == nil {
		return 0, nil, ErrNilCallback
	}

	total := (len(items) + p.size - 1) / p.size
	return total, NewProgress(len(items), total, p.size), nil
}

// bounds returns the [start, end) slice indices for a batch.
func (p *Processor[T]) bounds(batchIndex, totalItems int) (int, int) {
	start := batchIndex * p.size
	end := min(start+p.size, totalItems)
	return start, end
}
