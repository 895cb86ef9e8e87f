// Package batch processes large coordinate sets in fixed-size batches.
//
// The bulk conversion path feeds CSV rows through a Processor so memory use
// stays proportional to the batch size rather than the input, with progress
// callbacks for logging. Sequential processing preserves input ordering;
// ProcessConcurrent trades ordering for throughput.
package batch
