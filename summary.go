package framepipe

import "time"

// Summary reports the outcome of one pipeline run.
//
// Submitted counts real frames accepted from the source (markers excluded).
// Delivered counts frames the sink accepted; Failed counts frames whose
// transform failed and that were delivered as explicit failure slots.
// In a clean run Submitted == Delivered + Failed.
type Summary struct {
	// RunID uniquely identifies the run in logs and metrics.
	RunID string

	Submitted  uint64
	Delivered  uint64
	Failed     uint64
	SinkErrors uint64

	Elapsed time.Duration
}
