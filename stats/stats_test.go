package stats

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	r.Record(100 * time.Millisecond)
	r.Record(200 * time.Millisecond)
	r.Record(300 * time.Millisecond)

	s, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 0.2, s.Mean, 1e-9)
	assert.InDelta(t, 0.1, s.StdDev, 1e-9)
	assert.InDelta(t, 0.1, s.Min, 1e-9)
	assert.InDelta(t, 0.3, s.Max, 1e-9)
}

func TestRecorder_EmptySnapshot(t *testing.T) {
	r := NewRecorder()
	_, err := r.Snapshot()
	require.ErrorIs(t, err, ErrNoSamples)
}

func TestRecorder_ConcurrentRecords(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, r.Count())
}

func TestMeanFromReader(t *testing.T) {
	mean, err := MeanFromReader(strings.NewReader("1.0 2.0\n3.0\n"))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-9)
}

func TestMeanFromReader_Errors(t *testing.T) {
	_, err := MeanFromReader(strings.NewReader(""))
	require.ErrorIs(t, err, ErrNoSamples)

	_, err = MeanFromReader(strings.NewReader("1.0 not-a-number"))
	require.Error(t, err)
}
