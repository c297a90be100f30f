package framepipe

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/framepipe/framepipe/stats"
)

// pipeWorker is one of N parallel transform loops: pop a frame from the
// input queue, apply the transform, insert the result into the reorder
// buffer. Workers never talk to each other; all coordination goes through
// the two queues. A worker exits after forwarding the first end marker it
// dequeues.
//
// A transform failure never leaves a gap: the frame is forwarded with the
// error attached so its sequence slot still reaches the delivery stage.
// No queue lock is ever held across the transform call.
type pipeWorker[P, R any] struct {
	id       int
	in       *inputQueue[P]
	out      *reorderBuffer[R]
	fn       Transform[P, R]
	strategy Strategy
	pollMin  time.Duration
	pollMax  time.Duration
	log      zerolog.Logger
	ins      *instruments
	stats    *stats.Recorder
}

func (w *pipeWorker[P, R]) run(ctx context.Context) error {
	w.ins.workersActive.Add(1)
	defer w.ins.workersActive.Add(-1)

	var waiter *pollWaiter
	if w.strategy == StrategyPolling {
		waiter = newPollWaiter(w.pollMin, w.pollMax)
	}

	for {
		var f frame[P]
		if waiter == nil {
			f = w.in.pop()
		} else {
			var ok bool
			if f, ok = w.in.tryPop(); !ok {
				waiter.wait()
				continue
			}
			waiter.reset()
		}
		w.ins.queueDepth.Add(-1)

		if f.marker {
			w.out.insert(markerFrame[R](f.seq))
			w.log.Debug().Int("worker", w.id).Msg("worker drained")
			return nil
		}

		start := time.Now()
		res, err := w.apply(ctx, f.payload)
		elapsed := time.Since(start)

		w.ins.transformSeconds.Record(elapsed.Seconds())
		if w.stats != nil {
			w.stats.Record(elapsed)
		}

		if err != nil {
			w.ins.failures.Add(1)
			w.log.Warn().Int("worker", w.id).Uint64("seq", f.seq).Err(err).Msg("transform failed")
			w.out.insert(frame[R]{seq: f.seq, err: fmt.Errorf("%w: frame %d: %w", ErrTransform, f.seq, err)})
			continue
		}

		w.ins.transformed.Add(1)
		w.out.insert(frame[R]{seq: f.seq, payload: res})
	}
}

// apply runs the transform with panic recovery: a panicking transform is a
// per-frame failure, not a lost sequence slot.
func (w *pipeWorker[P, R]) apply(ctx context.Context, payload P) (res R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrTransformPanicked, rec)
		}
	}()
	return w.fn(ctx, payload)
}
