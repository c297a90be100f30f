package framepipe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputQueue_FIFO(t *testing.T) {
	q := newInputQueue[int]()
	for i := 0; i < 10; i++ {
		q.push(frame[int]{seq: uint64(i), payload: i})
	}
	require.Equal(t, 10, q.len())

	for i := 0; i < 10; i++ {
		f := q.pop()
		assert.Equal(t, uint64(i), f.seq)
		assert.Equal(t, i, f.payload)
	}
	assert.Equal(t, 0, q.len())
}

func TestInputQueue_TryPopEmpty(t *testing.T) {
	q := newInputQueue[string]()
	_, ok := q.tryPop()
	require.False(t, ok)
	// an empty tryPop must not disturb subsequent pushes
	q.push(frame[string]{seq: 7, payload: "x"})
	f, ok := q.tryPop()
	require.True(t, ok)
	assert.Equal(t, uint64(7), f.seq)
}

func TestInputQueue_BlockingPopWaitsForPush(t *testing.T) {
	q := newInputQueue[int]()
	got := make(chan frame[int], 1)
	go func() { got <- q.pop() }()

	q.push(frame[int]{seq: 1, payload: 41})
	f := <-got
	assert.Equal(t, uint64(1), f.seq)
}

func TestInputQueue_ConcurrentNoLossNoDup(t *testing.T) {
	const (
		producers = 4
		consumers = 4
		perProd   = 500
	)
	q := newInputQueue[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				q.push(frame[int]{seq: uint64(p*perProd + i)})
			}
		}(p)
	}

	var mu sync.Mutex
	seen := make(map[uint64]int)
	var cg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		cg.Add(1)
		go func() {
			defer cg.Done()
			for i := 0; i < producers*perProd/consumers; i++ {
				f := q.pop()
				mu.Lock()
				seen[f.seq]++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	cg.Wait()

	require.Len(t, seen, producers*perProd)
	for seq, n := range seen {
		require.Equalf(t, 1, n, "seq %d consumed %d times", seq, n)
	}
	assert.Equal(t, 0, q.len())
}
