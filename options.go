package framepipe

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/framepipe/framepipe/metrics"
	"github.com/framepipe/framepipe/stats"
)

// Option configures a Pipeline. Options returning an error reject invalid
// input at construction time, before any stage goroutine starts.
type Option func(*config) error

func errInvalidOption(name, msg string) error {
	return errorc.With(ErrInvalidConfig, errorc.String(name, msg))
}

// WithWorkers sets the number of parallel transform workers (must be > 0).
func WithWorkers(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errInvalidOption("WithWorkers", "requires n > 0")
		}
		cfg.Workers = n
		return nil
	}
}

// WithStrategy selects the synchronization strategy for idle consumers.
func WithStrategy(s Strategy) Option {
	return func(cfg *config) error {
		if s != StrategyBlocking && s != StrategyPolling {
			return errInvalidOption("WithStrategy", "unknown strategy")
		}
		cfg.Strategy = s
		return nil
	}
}

// WithSequenceOrigin sets the sequence number assigned to the first frame
// (default 0).
func WithSequenceOrigin(origin uint64) Option {
	return func(cfg *config) error { cfg.SequenceOrigin = origin; return nil }
}

// WithAbortOnSinkError drains the pipeline early when the sink rejects a
// delivery. The default policy logs the failure and continues.
func WithAbortOnSinkError() Option {
	return func(cfg *config) error { cfg.AbortOnSinkError = true; return nil }
}

// WithPollInterval bounds the backoff between polling attempts under
// StrategyPolling (defaults 50µs..5ms). Requires 0 < min <= max.
func WithPollInterval(min, max time.Duration) Option {
	return func(cfg *config) error {
		if min <= 0 || max < min {
			return errInvalidOption("WithPollInterval", "requires 0 < min <= max")
		}
		cfg.PollMinInterval = min
		cfg.PollMaxInterval = max
		return nil
	}
}

// WithLogger attaches a zerolog logger to the pipeline (default no-op).
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics attaches a metrics provider (default no-op).
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errInvalidOption("WithMetrics", "requires a non-nil provider")
		}
		cfg.Metrics = p
		return nil
	}
}

// WithStatsRecorder records per-frame transform durations into r.
func WithStatsRecorder(r *stats.Recorder) Option {
	return func(cfg *config) error {
		if r == nil {
			return errInvalidOption("WithStatsRecorder", "requires a non-nil recorder")
		}
		cfg.Stats = r
		return nil
	}
}
