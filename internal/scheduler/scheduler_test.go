package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedcache/internal/domain"
)

type syncerStub struct {
	calls    atomic.Int32
	deadline chan time.Time
	err      error
}

func (s *syncerStub) Sync(ctx context.Context) (*domain.SyncStats, error) {
	s.calls.Add(1)
	if d, ok := ctx.Deadline(); ok {
		select {
		case s.deadline <- d:
		default:
		}
	}
	return &domain.SyncStats{}, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsImmediatelyAndOnEveryTick(t *testing.T) {
	syncer := &syncerStub{deadline: make(chan time.Time, 1)}
	sched := NewScheduler(syncer, 10*time.Millisecond, time.Minute, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	require.Eventually(t, func() bool { return syncer.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_BoundsEachRunByTimeout(t *testing.T) {
	syncer := &syncerStub{deadline: make(chan time.Time, 1)}
	sched := NewScheduler(syncer, time.Hour, 50*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	start := time.Now()
	go sched.Start(ctx)

	select {
	case d := <-syncer.deadline:
		assert.WithinDuration(t, start.Add(50*time.Millisecond), d, 40*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("sync was not run")
	}
}

func TestScheduler_KeepsRunningAfterFailedSync(t *testing.T) {
	syncer := &syncerStub{deadline: make(chan time.Time, 1), err: errors.New("load feed: connectivity")}
	sched := NewScheduler(syncer, 10*time.Millisecond, time.Minute, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Start(ctx)

	require.Eventually(t, func() bool { return syncer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
