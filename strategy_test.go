package framepipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("blocking")
	require.NoError(t, err)
	assert.Equal(t, StrategyBlocking, s)

	s, err = ParseStrategy("polling")
	require.NoError(t, err)
	assert.Equal(t, StrategyPolling, s)

	_, err = ParseStrategy("spinning")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "blocking", StrategyBlocking.String())
	assert.Equal(t, "polling", StrategyPolling.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}

func TestPollWaiterBacksOffAndResets(t *testing.T) {
	w := newPollWaiter(time.Microsecond, 100*time.Microsecond)

	// intervals grow while idle
	first := w.b.NextBackOff()
	second := w.b.NextBackOff()
	assert.GreaterOrEqual(t, second, first)

	// and return to the minimum after a successful read
	w.reset()
	assert.LessOrEqual(t, w.b.NextBackOff(), second)
}
