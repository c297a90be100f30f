package framepipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderBuffer_TakeInSequence(t *testing.T) {
	b := newReorderBuffer[string]()
	// completions arrive out of order
	b.insert(frame[string]{seq: 2, payload: "c"})
	b.insert(frame[string]{seq: 0, payload: "a"})
	b.insert(frame[string]{seq: 1, payload: "b"})

	for want, payload := range []string{"a", "b", "c"} {
		f, ok := b.takeIfHeadIs(uint64(want))
		require.True(t, ok)
		assert.Equal(t, payload, f.payload)
	}
	assert.Equal(t, 0, b.size())
}

func TestReorderBuffer_TakeIfHeadIs_EmptyNoMutation(t *testing.T) {
	b := newReorderBuffer[int]()
	_, ok := b.takeIfHeadIs(0)
	require.False(t, ok)
	assert.Equal(t, 0, b.size())
}

func TestReorderBuffer_TakeIfHeadIs_MismatchNoMutation(t *testing.T) {
	b := newReorderBuffer[int]()
	b.insert(frame[int]{seq: 5, payload: 50})

	// head is 5, expected 3: nothing must be extracted or dropped
	for i := 0; i < 3; i++ {
		_, ok := b.takeIfHeadIs(3)
		require.False(t, ok)
		require.Equal(t, 1, b.size())
	}

	head, ok := b.headSeq()
	require.True(t, ok)
	assert.Equal(t, uint64(5), head)
}

func TestReorderBuffer_WaitTakeHeadUnblocksOnExpectedInsert(t *testing.T) {
	b := newReorderBuffer[int]()
	got := make(chan frame[int], 1)
	go func() { got <- b.waitTakeHead(1) }()

	// a later frame must not wake the consumer into taking out of order
	b.insert(frame[int]{seq: 2, payload: 20})
	b.insert(frame[int]{seq: 1, payload: 10})

	f := <-got
	assert.Equal(t, uint64(1), f.seq)
	assert.Equal(t, 10, f.payload)

	head, ok := b.headSeq()
	require.True(t, ok)
	assert.Equal(t, uint64(2), head)
}

func TestReorderBuffer_HeadBehindCursorPanics(t *testing.T) {
	b := newReorderBuffer[int]()
	b.insert(frame[int]{seq: 1, payload: 10})
	require.Panics(t, func() { b.takeIfHeadIs(2) })
}

func TestReorderBuffer_DrainReturnsEverything(t *testing.T) {
	b := newReorderBuffer[int]()
	b.insert(markerFrame[int](4))
	b.insert(markerFrame[int](3))
	b.insert(frame[int]{seq: 2, payload: 2})

	out := b.drain()
	require.Len(t, out, 3)
	assert.Equal(t, uint64(2), out[0].seq)
	assert.True(t, out[1].marker)
	assert.True(t, out[2].marker)
	assert.Equal(t, 0, b.size())
}
