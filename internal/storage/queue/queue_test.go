package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_BarriersRunInIssuanceOrder(t *testing.T) {
	q := New(4)
	defer q.Close()

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, q.Barrier(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	require.Len(t, order, 50)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestQueue_AsyncTasksOverlap(t *testing.T) {
	q := New(2)
	defer q.Close()

	started := make(chan struct{}, 2)
	release := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		require.NoError(t, q.Async(func() {
			defer wg.Done()
			started <- struct{}{}
			<-release
		}))
	}

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("async tasks did not run concurrently")
		}
	}
	close(release)
	wg.Wait()
}

func TestQueue_BarrierExcludesAsyncTasks(t *testing.T) {
	q := New(8)
	defer q.Close()

	var (
		active    atomic.Int32
		violation atomic.Bool
		wg        sync.WaitGroup
	)
	read := func() {
		defer wg.Done()
		active.Add(1)
		time.Sleep(time.Millisecond)
		active.Add(-1)
	}
	write := func() {
		defer wg.Done()
		if active.Load() != 0 {
			violation.Store(true)
		}
		time.Sleep(time.Millisecond)
		if active.Load() != 0 {
			violation.Store(true)
		}
	}

	for i := 0; i < 30; i++ {
		wg.Add(4)
		require.NoError(t, q.Async(read))
		require.NoError(t, q.Async(read))
		require.NoError(t, q.Barrier(write))
		require.NoError(t, q.Async(read))
	}
	wg.Wait()

	assert.False(t, violation.Load())
}

func TestQueue_AsyncAfterBarrierWaitsForIt(t *testing.T) {
	q := New(4)
	defer q.Close()

	var written atomic.Bool
	seen := make(chan bool, 1)
	require.NoError(t, q.Barrier(func() {
		time.Sleep(10 * time.Millisecond)
		written.Store(true)
	}))
	require.NoError(t, q.Async(func() { seen <- written.Load() }))

	assert.True(t, <-seen)
}

func TestQueue_TasksMayScheduleMoreTasks(t *testing.T) {
	q := New(1)
	defer q.Close()

	done := make(chan struct{})
	require.NoError(t, q.Barrier(func() {
		_ = q.Barrier(func() { close(done) })
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested task never ran")
	}
}

func TestQueue_CloseWaitsAndRejects(t *testing.T) {
	q := New(2)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Barrier(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		}))
	}
	q.Close()

	assert.Equal(t, int32(5), ran.Load())
	assert.ErrorIs(t, q.Async(func() {}), ErrClosed)
	assert.ErrorIs(t, q.Barrier(func() {}), ErrClosed)
}
