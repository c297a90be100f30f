package framepipe

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// inputQueue is the unbounded thread-safe FIFO connecting the ingest stage
// to the workers. The ingest stage is the only producer; workers are the
// consumers. A frame belongs to the queue from push until pop returns it.
//
// All mutation happens under mu. push never blocks; pop blocks on a
// condition variable until a frame arrives, tryPop returns immediately.
type inputQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	items    *linkedlistqueue.Queue
}

func newInputQueue[T any]() *inputQueue[T] {
	q := &inputQueue[T]{items: linkedlistqueue.New()}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// push appends f at the tail and wakes one waiting consumer.
func (q *inputQueue[T]) push(f frame[T]) {
	q.mu.Lock()
	q.items.Enqueue(f)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// pop removes and returns the head, blocking while the queue is empty.
func (q *inputQueue[T]) pop() frame[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Empty() {
		q.notEmpty.Wait()
	}
	v, _ := q.items.Dequeue()
	return v.(frame[T])
}

// tryPop removes and returns the head, or reports false when empty.
// The polling strategy re-checks instead of blocking.
func (q *inputQueue[T]) tryPop() (frame[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.items.Dequeue()
	if !ok {
		var zero frame[T]
		return zero, false
	}
	return v.(frame[T]), true
}

func (q *inputQueue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Size()
}
