package framepipe

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// reorderBuffer reconciles out-of-order worker completions back into
// sequence order. Workers insert completed frames in any order; the single
// delivery consumer extracts them strictly by ascending sequence number.
//
// Frames are kept in a min-heap keyed by sequence number (O(log k) insert).
// The check-and-remove in takeIfHeadIs is a single critical section: under
// concurrent inserts the consumer can never extract a frame out of order or
// observe a half-updated heap.
type reorderBuffer[T any] struct {
	mu       sync.Mutex
	headSeqC *sync.Cond
	heap     *binaryheap.Heap
}

func newReorderBuffer[T any]() *reorderBuffer[T] {
	b := &reorderBuffer[T]{
		heap: binaryheap.NewWith(func(a, b interface{}) int {
			sa, sb := a.(frame[T]).seq, b.(frame[T]).seq
			switch {
			case sa < sb:
				return -1
			case sa > sb:
				return 1
			default:
				return 0
			}
		}),
	}
	b.headSeqC = sync.NewCond(&b.mu)
	return b
}

// insert adds f keeping the minimum extractable and wakes the consumer so it
// can re-check whether the expected head arrived.
func (b *reorderBuffer[T]) insert(f frame[T]) {
	b.mu.Lock()
	b.heap.Push(f)
	b.mu.Unlock()
	b.headSeqC.Broadcast()
}

// headSeq reports the minimum buffered sequence number, if any.
func (b *reorderBuffer[T]) headSeq() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.heap.Peek()
	if !ok {
		return 0, false
	}
	return v.(frame[T]).seq, true
}

// takeIfHeadIs atomically removes and returns the minimum frame when its
// sequence number equals expected. When the buffer is empty or the head
// differs, it reports false without mutating the buffer.
func (b *reorderBuffer[T]) takeIfHeadIs(expected uint64) (frame[T], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.takeLocked(expected)
}

// waitTakeHead blocks until the frame with the expected sequence number is
// the buffer minimum, then removes and returns it.
func (b *reorderBuffer[T]) waitTakeHead(expected uint64) frame[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		if f, ok := b.takeLocked(expected); ok {
			return f
		}
		b.headSeqC.Wait()
	}
}

func (b *reorderBuffer[T]) takeLocked(expected uint64) (frame[T], bool) {
	var zero frame[T]
	v, ok := b.heap.Peek()
	if !ok {
		return zero, false
	}
	head := v.(frame[T]).seq
	if head < expected {
		// A frame below the delivery cursor means a duplicated or replayed
		// sequence number: a synchronization bug, not a data condition.
		panic(fmt.Sprintf("%s: reorder buffer head %d behind delivery cursor %d", Namespace, head, expected))
	}
	if head != expected {
		return zero, false
	}
	v, _ = b.heap.Pop()
	return v.(frame[T]), true
}

// drain removes and returns all buffered frames. Called by the controller
// during teardown, after the delivery stage has stopped on the first marker;
// only leftover markers remain at that point in a clean run.
func (b *reorderBuffer[T]) drain() []frame[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]frame[T], 0, b.heap.Size())
	for {
		v, ok := b.heap.Pop()
		if !ok {
			return out
		}
		out = append(out, v.(frame[T]))
	}
}

func (b *reorderBuffer[T]) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.heap.Size()
}
