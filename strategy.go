package framepipe

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Strategy selects how idle pipeline consumers wait for work.
//
// Both strategies satisfy identical ordering and termination guarantees;
// they differ only in idle-CPU behavior and latency under load. Blocking is
// the default; polling remains for environments where parking on condition
// variables is undesirable.
type Strategy int

const (
	// StrategyBlocking parks idle consumers on a condition variable
	// signaled by producers. No CPU is used while idle.
	StrategyBlocking Strategy = iota

	// StrategyPolling retries non-blocking reads under the structure's
	// lock, sleeping with exponential backoff between empty attempts.
	StrategyPolling
)

func (s Strategy) String() string {
	switch s {
	case StrategyBlocking:
		return "blocking"
	case StrategyPolling:
		return "polling"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "blocking":
		return StrategyBlocking, nil
	case "polling":
		return StrategyPolling, nil
	default:
		return 0, errInvalidOption("Strategy", "must be \"blocking\" or \"polling\"")
	}
}

// pollWaiter spaces out polling attempts with exponential backoff so an idle
// consumer does not spin at full speed on the shared lock. reset is called
// after every successful read to restore the minimum interval.
type pollWaiter struct {
	b *backoff.ExponentialBackOff
}

func newPollWaiter(min, max time.Duration) *pollWaiter {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = min
	b.MaxInterval = max
	b.MaxElapsedTime = 0 // retry indefinitely; termination comes via markers
	b.RandomizationFactor = 0.2
	b.Reset()
	return &pollWaiter{b: b}
}

// wait sleeps the next backoff interval. Polling consumers are always
// unblocked by incoming frames or markers, never by cancellation, so the
// sleep does not need to observe a context.
func (w *pollWaiter) wait() { time.Sleep(w.b.NextBackOff()) }

func (w *pollWaiter) reset() { w.b.Reset() }
