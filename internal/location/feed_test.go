package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/logger"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFeed_PushReachesAllWatchers(t *testing.T) {
	t.Parallel()

	f := NewFeed(logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _, err := f.Watch(ctx, WatchOptions{})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	b, _, _ := f.Watch(ctx, WatchOptions{})

	fix := domain.PositionFix{Latitude: 13.08, Longitude: 80.27}
	if n := f.Push(fix); n != 2 {
		t.Fatalf("expected 2 deliveries, got %d", n)
	}
	if got := <-a; got.Latitude != 13.08 {
		t.Fatalf("unexpected fix %+v", got)
	}
	if got := <-b; got.Longitude != 80.27 {
		t.Fatalf("unexpected fix %+v", got)
	}
}

func TestFeed_CancelClosesChannels(t *testing.T) {
	t.Parallel()

	f := NewFeed(logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	fixes, errs, _ := f.Watch(ctx, WatchOptions{})
	cancel()

	waitFor(t, func() bool { return f.Watchers() == 0 })

	if _, ok := <-fixes; ok {
		t.Fatalf("expected fixes channel closed")
	}
	if _, ok := <-errs; ok {
		t.Fatalf("expected errs channel closed")
	}
	if n := f.Push(domain.PositionFix{}); n != 0 {
		t.Fatalf("push after cancel delivered %d", n)
	}
}

func TestFeed_FailDeliversError(t *testing.T) {
	t.Parallel()

	f := NewFeed(logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, errs, _ := f.Watch(ctx, WatchOptions{})
	boom := errors.New("gps lost")
	f.Fail(boom)

	if err := <-errs; !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestFeed_FullWatcherDrops(t *testing.T) {
	t.Parallel()

	f := NewFeed(logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, _, _ = f.Watch(ctx, WatchOptions{})
	for i := 0; i < watchBuffer; i++ {
		if n := f.Push(domain.PositionFix{}); n != 1 {
			t.Fatalf("push %d: expected delivery", i)
		}
	}
	if n := f.Push(domain.PositionFix{}); n != 0 {
		t.Fatalf("expected drop on full buffer, got %d", n)
	}
}
