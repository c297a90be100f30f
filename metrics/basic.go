package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// Basic is an in-memory Provider. Instruments are created on demand by name
// and reused for the same name. Safe for concurrent use.
type Basic struct {
	counters   registry[*BasicCounter]
	updowns    registry[*BasicUpDownCounter]
	histograms registry[*BasicHistogram]
}

// NewBasic constructs an empty in-memory provider.
func NewBasic() *Basic { return &Basic{} }

// registry is a lazily initialized name->instrument map.
type registry[T any] struct {
	mu sync.Mutex
	m  map[string]T
}

func (r *registry[T]) getOrCreate(name string, newFn func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[string]T)
	}
	if v, ok := r.m[name]; ok {
		return v
	}
	v := newFn()
	r.m[name] = v
	return v
}

// Counter returns the monotonic counter registered under name.
// Options are advisory and ignored by the in-memory provider.
func (p *Basic) Counter(name string, _ ...InstrumentOption) Counter {
	return p.counters.getOrCreate(name, func() *BasicCounter { return &BasicCounter{} })
}

// UpDownCounter returns the up/down counter registered under name.
func (p *Basic) UpDownCounter(name string, _ ...InstrumentOption) UpDownCounter {
	return p.updowns.getOrCreate(name, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

// Histogram returns the histogram registered under name.
func (p *Basic) Histogram(name string, _ ...InstrumentOption) Histogram {
	return p.histograms.getOrCreate(name, func() *BasicHistogram {
		return &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
	})
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe up/down counter.
type BasicUpDownCounter struct {
	val atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min and max of recorded values.
// It keeps no buckets; it is a lightweight aggregator, not a full histogram.
type BasicHistogram struct {
	mu       sync.Mutex
	count    int64
	sum      float64
	min, max float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	if v < h.min {
		h.min = v
	}
	if v > h.max {
		h.max = v
	}
}

// HistogramSnapshot is a point-in-time view of a BasicHistogram.
type HistogramSnapshot struct {
	Count    int64
	Sum      float64
	Min, Max float64
}

// Snapshot returns the current aggregate values. Min and Max are NaN when
// nothing has been recorded.
func (h *BasicHistogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := HistogramSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	if h.count == 0 {
		s.Min, s.Max = math.NaN(), math.NaN()
	}
	return s
}
