package framepipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline owns a validated configuration. A Pipeline is stateless between
// runs: each Run builds its own queues and goroutines, so a Pipeline may be
// reused (sequentially or concurrently) for independent streams.
type Pipeline[P, R any] struct {
	cfg config
}

// New creates a Pipeline from functional options. Configuration errors are
// reported here, before any goroutine starts.
func New[P, R any](opts ...Option) (*Pipeline[P, R], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &Pipeline[P, R]{cfg: cfg}, nil
}

// Run is a convenience wrapper constructing a Pipeline and running it once.
func Run[P, R any](
	ctx context.Context,
	src Source[P],
	fn Transform[P, R],
	sink Sink[R],
	opts ...Option,
) (Summary, error) {
	p, err := New[P, R](opts...)
	if err != nil {
		return Summary{}, err
	}
	return p.Run(ctx, src, fn, sink)
}

// Run executes the pipeline until the source signals end of stream (or ctx
// is cancelled) and every surviving frame has been delivered in order. It
// blocks the caller for the whole run and returns a Summary either way.
//
// On ctx cancellation the pipeline drains deterministically: ingestion
// stops, end markers fan out, in-flight frames are consumed but not
// delivered past the cancellation point, and Run returns ctx.Err().
func (p *Pipeline[P, R]) Run(
	ctx context.Context,
	src Source[P],
	fn Transform[P, R],
	sink Sink[R],
) (Summary, error) {
	if src == nil || fn == nil || sink == nil {
		return Summary{}, errInvalidOption("Run", "source, transform and sink are required")
	}

	start := time.Now()
	runID := uuid.NewString()
	log := p.cfg.Logger.With().Str("run_id", runID).Logger()
	ins := newInstruments(p.cfg.Metrics)
	state := newRunState(log)

	in := newInputQueue[P]()
	out := newReorderBuffer[R]()

	g, gctx := errgroup.WithContext(ctx)
	// Stages run under a context the delivery stage can cancel to force an
	// early drain (abort-on-sink-error policy).
	ictx, cancel := context.WithCancel(gctx)
	defer cancel()

	ing := &ingester[P]{
		src:     src,
		queue:   in,
		workers: p.cfg.Workers,
		nextSeq: p.cfg.SequenceOrigin,
		state:   state,
		log:     log,
		ins:     ins,
	}
	del := &deliverer[R]{
		buf:      out,
		sink:     sink,
		next:     p.cfg.SequenceOrigin,
		strategy: p.cfg.Strategy,
		pollMin:  p.cfg.PollMinInterval,
		pollMax:  p.cfg.PollMaxInterval,
		abort:    p.cfg.AbortOnSinkError,
		cancel:   cancel,
		state:    state,
		log:      log,
		ins:      ins,
	}

	log.Info().
		Uint("workers", p.cfg.Workers).
		Stringer("strategy", p.cfg.Strategy).
		Uint64("sequence_origin", p.cfg.SequenceOrigin).
		Msg("pipeline started")

	g.Go(func() error { return ing.run(ictx) })
	for i := uint(0); i < p.cfg.Workers; i++ {
		w := &pipeWorker[P, R]{
			id:       int(i),
			in:       in,
			out:      out,
			fn:       fn,
			strategy: p.cfg.Strategy,
			pollMin:  p.cfg.PollMinInterval,
			pollMax:  p.cfg.PollMaxInterval,
			log:      log,
			ins:      ins,
			stats:    p.cfg.Stats,
		}
		g.Go(func() error { return w.run(ictx) })
	}
	g.Go(func() error { return del.run(ictx) })

	err := g.Wait()

	// Teardown: the delivery stage stops on the first marker; the markers
	// forwarded by the remaining workers are discarded without ordering
	// checks since no real frame can sort behind them.
	leftover := out.drain()
	clean := err == nil && ctx.Err() == nil
	for _, f := range leftover {
		if !f.marker && clean {
			panic(fmt.Sprintf("%s: frame %d left undelivered after clean termination", Namespace, f.seq))
		}
	}
	if n := in.len(); n != 0 && clean {
		panic(fmt.Sprintf("%s: %d frames left in input queue after clean termination", Namespace, n))
	}

	s := Summary{
		RunID:      runID,
		Submitted:  ing.submitted,
		Delivered:  del.delivered,
		Failed:     del.failed,
		SinkErrors: del.sinkErrors,
		Elapsed:    time.Since(start),
	}

	log.Info().
		Uint64("submitted", s.Submitted).
		Uint64("delivered", s.Delivered).
		Uint64("failed", s.Failed).
		Uint64("sink_errors", s.SinkErrors).
		Dur("elapsed", s.Elapsed).
		Msg("pipeline terminated")

	switch {
	case err != nil:
		return s, err
	case ctx.Err() != nil:
		return s, ctx.Err()
	default:
		return s, nil
	}
}
