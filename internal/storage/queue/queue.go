// Package queue runs store operations with a single-writer, multi-reader
// discipline. Tasks are admitted strictly in the order they were scheduled:
// a barrier task waits for every earlier task and holds back every later
// one, while consecutive async tasks run side by side.
package queue

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned when scheduling on a closed queue.
var ErrClosed = errors.New("queue closed")

type task struct {
	fn     func()
	weight int64
}

type Queue struct {
	mu      sync.Mutex
	pending []task
	closed  bool
	notify  chan struct{}
	done    chan struct{}

	sem  *semaphore.Weighted
	size int64
}

// New starts a queue that runs up to maxReaders async tasks at once.
func New(maxReaders int64) *Queue {
	if maxReaders < 1 {
		maxReaders = 1
	}
	q := &Queue{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		sem:    semaphore.NewWeighted(maxReaders),
		size:   maxReaders,
	}
	go q.run()
	return q
}

// Async schedules a task that may overlap other async tasks.
func (q *Queue) Async(fn func()) error {
	return q.schedule(task{fn: fn, weight: 1})
}

// Barrier schedules a task that runs alone.
func (q *Queue) Barrier(fn func()) error {
	return q.schedule(task{fn: fn, weight: q.size})
}

// Close stops accepting tasks and waits for scheduled ones to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
	<-q.done
}

func (q *Queue) schedule(t task) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.pending = append(q.pending, t)
	q.mu.Unlock()
	q.wake()
	return nil
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue) next() (task, bool) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			t := q.pending[0]
			q.pending[0] = task{}
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return t, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return task{}, false
		}
		<-q.notify
	}
}

func (q *Queue) run() {
	defer close(q.done)
	ctx := context.Background()

	for {
		t, ok := q.next()
		if !ok {
			break
		}
		// Acquire only fails on a cancelled context.
		_ = q.sem.Acquire(ctx, t.weight)
		go func() {
			defer q.sem.Release(t.weight)
			t.fn()
		}()
	}

	_ = q.sem.Acquire(ctx, q.size)
	q.sem.Release(q.size)
}
