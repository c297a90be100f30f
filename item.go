package framepipe

import "context"

// Source yields the payloads of a sequential stream. Next must be callable
// repeatedly; it returns ErrEndOfStream exactly once to terminate the stream
// and must not yield further payloads afterwards. The ingest stage assigns
// sequence numbers in arrival order, so Sources only produce payloads.
//
// Next is called from a single goroutine. A Source that blocks must honor
// ctx cancellation, otherwise cancellation cannot reach the ingest stage.
type Source[P any] interface {
	Next(ctx context.Context) (P, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[P any] func(ctx context.Context) (P, error)

func (f SourceFunc[P]) Next(ctx context.Context) (P, error) { return f(ctx) }

// Transform converts one payload. It is applied concurrently by N workers
// and must not mutate state shared with other pipeline stages. It may take
// arbitrarily long; no pipeline lock is held across a Transform call.
type Transform[P, R any] func(ctx context.Context, payload P) (R, error)

// Delivery is one in-order unit handed to the Sink. Err is non-nil when the
// transform failed for this sequence number; the slot is delivered anyway so
// the sink observes an explicit failure rather than a silent gap.
type Delivery[R any] struct {
	Seq     uint64
	Payload R
	Err     error
}

// Sink consumes transformed frames. Deliver is called exactly once per real
// sequence number, in strictly increasing order, never concurrently.
type Sink[R any] interface {
	Deliver(ctx context.Context, d Delivery[R]) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc[R any] func(ctx context.Context, d Delivery[R]) error

func (f SinkFunc[R]) Deliver(ctx context.Context, d Delivery[R]) error { return f(ctx, d) }

// frame is the envelope moving through the pipeline. Exactly one stage owns
// a frame at a time; ownership transfers at each queue boundary.
//
// marker frames signal stream termination. They carry no payload and use
// sequence numbers continuing the real sequence, so the first marker is
// exactly the delivery cursor value after the last real frame and markers
// are only dequeued behind all real frames ahead of them in FIFO order.
type frame[T any] struct {
	seq     uint64
	payload T
	err     error
	marker  bool
}

func markerFrame[T any](seq uint64) frame[T] {
	return frame[T]{seq: seq, marker: true}
}
