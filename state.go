package framepipe

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Pipeline lifecycle per run: stateRunning while the source still yields
// frames, stateDraining once end markers have been fanned out, and
// stateTerminated once the delivery stage consumed its marker. Only the
// controller observes the terminal state; stages advance it.
const (
	stateRunning int32 = iota
	stateDraining
	stateTerminated
)

func stateName(s int32) string {
	switch s {
	case stateRunning:
		return "running"
	case stateDraining:
		return "draining"
	case stateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type runState struct {
	v   atomic.Int32
	log zerolog.Logger
}

func newRunState(log zerolog.Logger) *runState {
	return &runState{log: log}
}

// advance moves the state forward. Transitions are monotonic; a stale
// advance (e.g. draining reported after termination) is ignored.
func (s *runState) advance(to int32) {
	for {
		cur := s.v.Load()
		if cur >= to {
			return
		}
		if s.v.CompareAndSwap(cur, to) {
			s.log.Debug().
				Str("from", stateName(cur)).
				Str("to", stateName(to)).
				Msg("pipeline state changed")
			return
		}
	}
}

func (s *runState) current() int32 { return s.v.Load() }
