// Package stats records per-frame transform timings and summarizes them.
// It also provides the log-averaging helper used to post-process timing
// logs produced by repeated pipeline runs.
package stats

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrNoSamples is returned when a summary is requested over an empty input.
var ErrNoSamples = errors.New("stats: no samples")

// Recorder accumulates transform durations from concurrent workers.
// The zero value is not usable; construct with NewRecorder.
type Recorder struct {
	mu      sync.Mutex
	seconds []float64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{seconds: make([]float64, 0, 1024)}
}

// Record adds one transform duration. Safe for concurrent use.
func (r *Recorder) Record(d time.Duration) {
	r.mu.Lock()
	r.seconds = append(r.seconds, d.Seconds())
	r.mu.Unlock()
}

// Count reports the number of recorded samples.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seconds)
}

// Summary aggregates recorded durations, in seconds.
type Summary struct {
	Count    int
	Mean     float64
	StdDev   float64
	Min, Max float64
}

// Snapshot summarizes all samples recorded so far.
func (r *Recorder) Snapshot() (Summary, error) {
	r.mu.Lock()
	samples := make([]float64, len(r.seconds))
	copy(samples, r.seconds)
	r.mu.Unlock()

	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	s := Summary{
		Count:  len(samples),
		Mean:   stat.Mean(samples, nil),
		StdDev: stat.StdDev(samples, nil),
		Min:    samples[0],
		Max:    samples[0],
	}
	for _, v := range samples[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s, nil
}

// MeanFromReader averages whitespace-separated float samples read from r,
// e.g. a timing log with one duration per line.
func MeanFromReader(r io.Reader) (float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var samples []float64
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return 0, err
		}
		samples = append(samples, v)
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	return stat.Mean(samples, nil), nil
}
