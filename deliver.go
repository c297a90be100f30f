package framepipe

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// deliverer is the single in-order consumer. It extracts frames from the
// reorder buffer strictly by ascending sequence number and hands them to the
// sink one at a time. The cursor advances by one per real frame (including
// failure frames, which keep their slot) and never for markers.
//
// The first marker extracted terminates the stage: markers sort behind all
// real frames, so one marker is proof no real frame remains undelivered.
// Leftover markers from the other workers are discarded by the controller.
type deliverer[R any] struct {
	buf      *reorderBuffer[R]
	sink     Sink[R]
	next     uint64 // cursor: next expected sequence number
	strategy Strategy
	pollMin  time.Duration
	pollMax  time.Duration
	abort    bool
	cancel   context.CancelFunc
	state    *runState
	log      zerolog.Logger
	ins      *instruments

	// read by the controller after all stages have joined
	delivered  uint64
	failed     uint64
	sinkErrors uint64
}

func (d *deliverer[R]) run(ctx context.Context) error {
	var waiter *pollWaiter
	if d.strategy == StrategyPolling {
		waiter = newPollWaiter(d.pollMin, d.pollMax)
	}

	var abortErr error

	for {
		var f frame[R]
		if waiter == nil {
			f = d.buf.waitTakeHead(d.next)
		} else {
			var ok bool
			if f, ok = d.buf.takeIfHeadIs(d.next); !ok {
				waiter.wait()
				continue
			}
			waiter.reset()
		}

		if f.marker {
			d.state.advance(stateTerminated)
			d.log.Debug().Uint64("delivered", d.delivered).Msg("delivery drained")
			if abortErr != nil {
				return fmt.Errorf("%w: %w", ErrSinkAborted, abortErr)
			}
			return nil
		}

		d.next++

		// Past an abort or cancellation point, frames are consumed to keep
		// the drain moving but no longer delivered.
		if abortErr != nil || ctx.Err() != nil {
			continue
		}

		if f.err != nil {
			d.failed++
		}
		if err := d.sink.Deliver(ctx, Delivery[R]{Seq: f.seq, Payload: f.payload, Err: f.err}); err != nil {
			d.sinkErrors++
			if d.abort {
				d.log.Error().Uint64("seq", f.seq).Err(err).Msg("sink failed; aborting pipeline")
				abortErr = err
				d.cancel()
				continue
			}
			d.log.Warn().Uint64("seq", f.seq).Err(err).Msg("sink rejected frame; continuing")
			continue
		}
		if f.err == nil {
			d.delivered++
			d.ins.delivered.Add(1)
		}
	}
}
