package framepipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ingester is the single producer feeding the input queue. It pulls
// payloads from the Source, tags them with contiguous sequence numbers and,
// when the stream ends (or the run is cancelled), fans out one end marker
// per worker so every consumer drains deterministically.
type ingester[P any] struct {
	src     Source[P]
	queue   *inputQueue[P]
	workers uint
	nextSeq uint64
	state   *runState
	log     zerolog.Logger
	ins     *instruments

	// submitted counts real frames pushed; read by the controller after
	// all stages have joined.
	submitted uint64
}

func (g *ingester[P]) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			g.log.Debug().Uint64("submitted", g.submitted).Msg("ingest cancelled")
			g.fanOutMarkers()
			return nil
		}

		payload, err := g.src.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrEndOfStream):
				g.log.Debug().Uint64("submitted", g.submitted).Msg("end of stream")
				g.fanOutMarkers()
				return nil
			case ctx.Err() != nil:
				// Source surfaced the cancellation; same drain path.
				g.fanOutMarkers()
				return nil
			default:
				g.log.Error().Err(err).Msg("source failed; draining pipeline")
				g.fanOutMarkers()
				return fmt.Errorf("%w: %w", ErrSource, err)
			}
		}

		g.queue.push(frame[P]{seq: g.nextSeq, payload: payload})
		g.nextSeq++
		g.submitted++
		g.ins.ingested.Add(1)
		g.ins.queueDepth.Add(1)
	}
}

// fanOutMarkers pushes one end marker per worker. Marker sequence numbers
// continue the real sequence, strictly increasing, so they sort behind every
// real frame and the first one lands exactly on the delivery cursor.
func (g *ingester[P]) fanOutMarkers() {
	g.state.advance(stateDraining)
	for i := uint(0); i < g.workers; i++ {
		g.queue.push(markerFrame[P](g.nextSeq))
		g.nextSeq++
		g.ins.queueDepth.Add(1)
	}
}
