package framepipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framepipe/framepipe/metrics"
	"github.com/framepipe/framepipe/stats"
)

func TestRun_RecordsMetrics(t *testing.T) {
	provider := metrics.NewBasic()
	sink := &captureSink{}

	_, err := Run(context.Background(), intSource(seqInts(20)), jittered, sink,
		WithWorkers(4),
		WithMetrics(provider),
	)
	require.NoError(t, err)

	assert.Equal(t, int64(20), provider.Counter("framepipe.frames.ingested").(*metrics.BasicCounter).Snapshot())
	assert.Equal(t, int64(20), provider.Counter("framepipe.frames.transformed").(*metrics.BasicCounter).Snapshot())
	assert.Equal(t, int64(20), provider.Counter("framepipe.frames.delivered").(*metrics.BasicCounter).Snapshot())
	assert.Zero(t, provider.Counter("framepipe.transform.failures").(*metrics.BasicCounter).Snapshot())

	// queue fully drained and all workers retired
	assert.Zero(t, provider.UpDownCounter("framepipe.input_queue.depth").(*metrics.BasicUpDownCounter).Snapshot())
	assert.Zero(t, provider.UpDownCounter("framepipe.workers.active").(*metrics.BasicUpDownCounter).Snapshot())

	h := provider.Histogram("framepipe.transform.duration").(*metrics.BasicHistogram).Snapshot()
	assert.Equal(t, int64(20), h.Count)
}

func TestRun_RecordsTransformTimings(t *testing.T) {
	rec := stats.NewRecorder()
	sink := &captureSink{}

	_, err := Run(context.Background(), intSource(seqInts(30)), jittered, sink,
		WithWorkers(4),
		WithStatsRecorder(rec),
	)
	require.NoError(t, err)

	s, err := rec.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 30, s.Count)
	assert.Greater(t, s.Max, 0.0)
}
