package framepipe

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/framepipe/framepipe/metrics"
	"github.com/framepipe/framepipe/stats"
)

// config holds pipeline configuration.
type config struct {
	// Workers defines how many transform workers run in parallel.
	// Must be >= 1.
	// Default: runtime.NumCPU().
	Workers uint

	// Strategy selects how idle consumers wait for work: parked on a
	// condition variable (StrategyBlocking) or retrying non-blocking reads
	// with backoff (StrategyPolling). Orthogonal to correctness.
	// Default: StrategyBlocking.
	Strategy Strategy

	// SequenceOrigin is the sequence number assigned to the first frame.
	// Default: 0.
	SequenceOrigin uint64

	// AbortOnSinkError makes a sink delivery failure drain the pipeline
	// early instead of logging and continuing.
	// Default: false (log and continue).
	AbortOnSinkError bool

	// PollMinInterval and PollMaxInterval bound the backoff between
	// polling attempts when Strategy is StrategyPolling.
	// Defaults: 50µs and 5ms.
	PollMinInterval time.Duration
	PollMaxInterval time.Duration

	// Logger receives stage lifecycle and per-frame failure events.
	// Default: zerolog.Nop().
	Logger zerolog.Logger

	// Metrics constructs the pipeline's instruments.
	// Default: metrics.Noop.
	Metrics metrics.Provider

	// Stats optionally records per-frame transform durations.
	// Default: nil (disabled).
	Stats *stats.Recorder
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers:          uint(runtime.NumCPU()),
		Strategy:         StrategyBlocking,
		SequenceOrigin:   0,
		AbortOnSinkError: false,
		PollMinInterval:  50 * time.Microsecond,
		PollMaxInterval:  5 * time.Millisecond,
		Logger:           zerolog.Nop(),
		Metrics:          metrics.Noop{},
	}
}

// validateConfig checks invariants that options cannot catch individually.
func validateConfig(cfg *config) error {
	if cfg.Workers == 0 {
		return errInvalidOption("Workers", "worker count must be >= 1")
	}
	if cfg.Strategy != StrategyBlocking && cfg.Strategy != StrategyPolling {
		return errInvalidOption("Strategy", "unknown strategy")
	}
	if cfg.PollMinInterval <= 0 || cfg.PollMaxInterval < cfg.PollMinInterval {
		return errInvalidOption("PollInterval", "intervals must satisfy 0 < min <= max")
	}
	return nil
}
