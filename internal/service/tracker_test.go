package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/location"
	"github.com/Harissh-lab/arm-scout/internal/service"
	"github.com/Harissh-lab/arm-scout/internal/storage"
	"github.com/Harissh-lab/arm-scout/internal/storage/memory"
)

type brokenSource struct{}

func (brokenSource) Watch(context.Context, location.WatchOptions) (<-chan domain.PositionFix, <-chan error, error) {
	return nil, nil, errors.New("no gps hardware")
}

func newTracker(t *testing.T, src location.Source, timeout time.Duration) (*service.Tracker, *memory.KV) {
	t.Helper()
	kv := memory.New()
	return service.NewTracker(context.Background(), src, kv, newTestLogger(), service.TrackerConfig{AcquireTimeout: timeout}), kv
}

func pushWhenWatched(feed *location.Feed, fix domain.PositionFix) {
	go func() {
		for feed.Watchers() == 0 {
			time.Sleep(time.Millisecond)
		}
		feed.Push(fix)
	}()
}

func TestTracker_StartWithoutSource(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, nil, 50*time.Millisecond)
	if tr.Start(context.Background()) {
		t.Fatalf("expected false without a source")
	}
	if tr.IsActive() {
		t.Fatalf("tracker should be inactive")
	}
}

func TestTracker_StartWatchError(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, brokenSource{}, 50*time.Millisecond)
	if tr.Start(context.Background()) {
		t.Fatalf("expected false when watch fails")
	}
}

func TestTracker_StartTimesOutButKeepsWatching(t *testing.T) {
	t.Parallel()

	feed := location.NewFeed(newTestLogger())
	tr, _ := newTracker(t, feed, 30*time.Millisecond)

	if tr.Start(context.Background()) {
		t.Fatalf("expected false on acquisition timeout")
	}
	if _, ok := tr.Current(); ok {
		t.Fatalf("no fix expected")
	}
	if feed.Watchers() != 1 {
		t.Fatalf("watch should stay open after a timeout, watchers=%d", feed.Watchers())
	}
	if tr.Start(context.Background()) {
		t.Fatalf("start on a pending watch should report inactive")
	}

	if n := feed.Push(domain.PositionFix{Latitude: 13.05, Longitude: 80.25}); n != 1 {
		t.Fatalf("late fix delivered to %d watchers", n)
	}
	waitUntil(t, tr.IsActive)
	if f, ok := tr.Current(); !ok || f.Latitude != 13.05 {
		t.Fatalf("late fix not picked up: %+v %v", f, ok)
	}

	tr.Stop()
	waitUntil(t, func() bool { return feed.Watchers() == 0 })
}

func TestTracker_RunAcceptsFixAfterTimeout(t *testing.T) {
	t.Parallel()

	feed := location.NewFeed(newTestLogger())
	tr, _ := newTracker(t, feed, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx, 500*time.Millisecond)
		close(done)
	}()

	waitUntil(t, func() bool { return feed.Watchers() == 1 })
	time.Sleep(150 * time.Millisecond)

	if n := feed.Push(domain.PositionFix{Latitude: 12.97, Longitude: 77.59}); n != 1 {
		t.Fatalf("fix after timeout delivered to %d watchers", n)
	}
	waitUntil(t, func() bool {
		f, ok := tr.Current()
		return ok && f.Latitude == 12.97
	})
	waitUntil(t, tr.IsActive)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if tr.IsActive() {
		t.Fatalf("expected inactive after Run returned")
	}
	waitUntil(t, func() bool { return feed.Watchers() == 0 })
}

func TestTracker_StartErrorBeforeFirstFix(t *testing.T) {
	t.Parallel()

	feed := location.NewFeed(newTestLogger())
	tr, _ := newTracker(t, feed, time.Second)

	go func() {
		for feed.Watchers() == 0 {
			time.Sleep(time.Millisecond)
		}
		feed.Fail(errors.New("permission denied"))
	}()

	if tr.Start(context.Background()) {
		t.Fatalf("expected false when the source errors first")
	}
	waitUntil(t, func() bool { return feed.Watchers() == 0 })
}

func TestTracker_FirstFixAndUpdates(t *testing.T) {
	t.Parallel()

	feed := location.NewFeed(newTestLogger())
	tr, kv := newTracker(t, feed, time.Second)

	var seen atomic.Int32
	unsub := tr.Subscribe(func(domain.PositionFix) error {
		seen.Add(1)
		return nil
	})
	defer unsub()

	first := domain.PositionFix{Latitude: 13.0820, Longitude: 80.2700, SpeedMPS: 10, Timestamp: time.Now()}
	pushWhenWatched(feed, first)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !tr.Start(ctx) {
		t.Fatalf("expected start to succeed")
	}
	if !tr.IsActive() {
		t.Fatalf("expected active after first fix")
	}
	got, ok := tr.Current()
	if !ok || got.Latitude != first.Latitude || got.Longitude != first.Longitude {
		t.Fatalf("unexpected current fix: %+v %v", got, ok)
	}
	if !tr.Start(ctx) {
		t.Fatalf("start while running should return true")
	}
	if feed.Watchers() != 1 {
		t.Fatalf("second start opened another watch")
	}

	feed.Push(domain.PositionFix{Latitude: 13.0830, Longitude: 80.2710})
	waitUntil(t, func() bool {
		f, _ := tr.Current()
		return f.Latitude == 13.0830
	})
	waitUntil(t, func() bool { return seen.Load() == 2 })

	b, _ := kv.Load(context.Background(), storage.KeyPosition)
	if b == nil {
		t.Fatalf("fix not persisted")
	}
	reloaded := service.NewTracker(context.Background(), nil, kv, newTestLogger(), service.TrackerConfig{})
	if f, ok := reloaded.Current(); !ok || f.Latitude != 13.0830 {
		t.Fatalf("persisted fix not restored: %+v %v", f, ok)
	}
}

func TestTracker_StopIsIdempotentAndKeepsFix(t *testing.T) {
	t.Parallel()

	feed := location.NewFeed(newTestLogger())
	tr, _ := newTracker(t, feed, time.Second)
	pushWhenWatched(feed, domain.PositionFix{Latitude: 1, Longitude: 2})

	if !tr.Start(context.Background()) {
		t.Fatalf("start failed")
	}
	tr.Stop()
	tr.Stop()

	if tr.IsActive() {
		t.Fatalf("expected inactive after stop")
	}
	if f, ok := tr.Current(); !ok || f.Longitude != 2 {
		t.Fatalf("fix should be retained after stop")
	}
	waitUntil(t, func() bool { return feed.Watchers() == 0 })
}

func TestTracker_StopFromSubscriber(t *testing.T) {
	t.Parallel()

	feed := location.NewFeed(newTestLogger())
	tr, _ := newTracker(t, feed, time.Second)

	done := make(chan struct{})
	tr.Subscribe(func(domain.PositionFix) error {
		tr.Stop()
		close(done)
		return nil
	})
	pushWhenWatched(feed, domain.PositionFix{Latitude: 1, Longitude: 1})

	tr.Start(context.Background())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stop from subscriber deadlocked")
	}
	if tr.IsActive() {
		t.Fatalf("expected inactive")
	}
}

func TestTracker_UpdateValidates(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, nil, time.Second)
	if err := tr.Update(context.Background(), domain.PositionFix{Latitude: 100}); err == nil {
		t.Fatalf("expected error for out-of-range fix")
	}
	if err := tr.Update(context.Background(), domain.PositionFix{Latitude: 13, Longitude: 80}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f, ok := tr.Current()
	if !ok || f.Latitude != 13 || f.Timestamp.IsZero() {
		t.Fatalf("unexpected fix: %+v", f)
	}
	if tr.IsActive() {
		t.Fatalf("direct updates do not open a watch")
	}
}

func TestTracker_CorruptStoredFixIgnored(t *testing.T) {
	t.Parallel()

	kv := memory.New()
	_ = kv.Save(context.Background(), storage.KeyPosition, []byte("not-json"))

	tr := service.NewTracker(context.Background(), nil, kv, newTestLogger(), service.TrackerConfig{})
	if _, ok := tr.Current(); ok {
		t.Fatalf("corrupt fix should be ignored")
	}
}
