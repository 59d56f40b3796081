package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/location"
	"github.com/Harissh-lab/arm-scout/internal/storage"
	"github.com/Harissh-lab/arm-scout/pkg/geo"
	"github.com/Harissh-lab/arm-scout/pkg/pubsub"
)

const (
	positionKind          = "position"
	DefaultAcquireTimeout = 5 * time.Second
)

type TrackerConfig struct {
	AcquireTimeout time.Duration
}

type watch struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Tracker owns the vehicle's current position fix.
type Tracker struct {
	source location.Source
	kv     storage.KV
	logger *slog.Logger
	cfg    TrackerConfig
	subs   *pubsub.Registry[domain.PositionFix]

	mu     sync.Mutex
	fix    domain.PositionFix
	hasFix bool
	active bool
	watch  *watch
}

func NewTracker(ctx context.Context, source location.Source, kv storage.KV, logger *slog.Logger, cfg TrackerConfig) *Tracker {
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = DefaultAcquireTimeout
	}
	t := &Tracker{
		source: source,
		kv:     kv,
		logger: logger,
		cfg:    cfg,
		subs:   pubsub.NewRegistry[domain.PositionFix]("position", logger),
	}
	t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) {
	const op = "service.Tracker.load"

	b, err := t.kv.Load(ctx, storage.KeyPosition)
	if err != nil || b == nil {
		if err != nil {
			t.logger.Error("position load failed", slog.String("op", op), slog.Any("error", err))
		}
		return
	}
	var fix domain.PositionFix
	if err := storage.Decode(positionKind, b, &fix); err != nil {
		t.logger.Error("position payload unreadable", slog.String("op", op), slog.Any("error", err))
		return
	}
	if geo.ValidateCoordinates(fix.Latitude, fix.Longitude) != nil {
		t.logger.Warn("stored position out of range, ignoring", slog.String("op", op))
		return
	}
	t.fix, t.hasFix = fix, true
}

// Start opens a position watch and waits for the first fix. It returns
// false if there is no source, the watch fails or errors before the first
// fix; the watch is cancelled in those cases. When no fix arrives within
// the acquisition timeout Start also returns false, but the watch stays
// open and a later fix still activates tracking. Calling Start while a
// watch is open reports whether tracking is active.
func (t *Tracker) Start(ctx context.Context) bool {
	t.mu.Lock()
	if t.watch != nil {
		active := t.active
		t.mu.Unlock()
		return active
	}
	if t.source == nil {
		t.mu.Unlock()
		t.logger.Warn("position tracking unavailable: no location source")
		return false
	}
	watchCtx, cancel := context.WithCancel(ctx)
	w := &watch{cancel: cancel, done: make(chan struct{})}
	t.watch = w
	t.mu.Unlock()

	fixes, errs, err := t.source.Watch(watchCtx, location.WatchOptions{
		HighAccuracy: true,
		MaximumAge:   0,
		Timeout:      t.cfg.AcquireTimeout,
	})
	if err != nil {
		t.logger.Warn("position watch failed", slog.Any("error", err))
		t.abort(w)
		return false
	}

	timer := time.NewTimer(t.cfg.AcquireTimeout)
	defer timer.Stop()

	select {
	case fix, ok := <-fixes:
		if !ok {
			t.abort(w)
			return false
		}
		t.accept(watchCtx, fix, w)
	case err, ok := <-errs:
		if ok {
			t.logger.Warn("position watch error before first fix", slog.Any("error", err))
		}
		t.abort(w)
		return false
	case <-timer.C:
		t.logger.Warn("position acquisition timed out, still watching", slog.Duration("timeout", t.cfg.AcquireTimeout))
		go t.follow(watchCtx, w, fixes, errs)
		return false
	case <-watchCtx.Done():
		t.abort(w)
		return false
	}

	go t.follow(watchCtx, w, fixes, errs)
	return true
}

func (t *Tracker) follow(ctx context.Context, w *watch, fixes <-chan domain.PositionFix, errs <-chan error) {
	defer t.abort(w)

	for {
		select {
		case <-ctx.Done():
			return
		case fix, ok := <-fixes:
			if !ok {
				return
			}
			t.accept(ctx, fix, w)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			t.logger.Warn("position watch error", slog.Any("error", err))
		}
	}
}

// abort cancels w and clears it if it is still the current watch.
func (t *Tracker) abort(w *watch) {
	w.cancel()

	t.mu.Lock()
	if t.watch == w {
		t.watch = nil
		t.active = false
		close(w.done)
	}
	t.mu.Unlock()
}

// Stop cancels the watch. The last fix is kept. Stop never blocks and may
// be called from a position subscriber.
func (t *Tracker) Stop() {
	t.mu.Lock()
	w := t.watch
	t.mu.Unlock()
	if w != nil {
		t.abort(w)
	}
}

// Run keeps a watch open until ctx is done. A watch that timed out waiting
// for its first fix is left running; Run only reopens after the watch ends.
func (t *Tracker) Run(ctx context.Context, retry time.Duration) {
	for ctx.Err() == nil {
		t.Start(ctx)

		t.mu.Lock()
		w := t.watch
		t.mu.Unlock()
		if w != nil {
			select {
			case <-w.done:
			case <-ctx.Done():
			}
		}
		select {
		case <-ctx.Done():
		case <-time.After(retry):
		}
	}
	t.Stop()
}

// Update injects a fix directly. Out-of-range fixes are rejected.
func (t *Tracker) Update(ctx context.Context, fix domain.PositionFix) error {
	if err := geo.ValidateCoordinates(fix.Latitude, fix.Longitude); err != nil {
		return err
	}
	t.accept(ctx, fix, nil)
	return nil
}

// accept stores fix. A fix from w marks tracking active only while w is the open watch.
func (t *Tracker) accept(ctx context.Context, fix domain.PositionFix, w *watch) {
	const op = "service.Tracker.accept"

	if err := geo.ValidateCoordinates(fix.Latitude, fix.Longitude); err != nil {
		t.logger.Warn("dropping invalid fix", slog.String("op", op), slog.Any("error", err))
		return
	}
	if fix.Timestamp.IsZero() {
		fix.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	t.fix, t.hasFix = fix, true
	if w != nil && t.watch == w {
		t.active = true
	}
	b, err := storage.Encode(positionKind, fix)
	if err == nil {
		err = t.kv.Save(context.WithoutCancel(ctx), storage.KeyPosition, b)
	}
	t.mu.Unlock()

	if err != nil {
		t.logger.Error("position persist failed", slog.String("op", op), slog.Any("error", err))
	}
	t.subs.Publish(fix)
}

func (t *Tracker) Current() (domain.PositionFix, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fix, t.hasFix
}

func (t *Tracker) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tracker) Subscribe(fn func(domain.PositionFix) error) func() {
	return t.subs.Subscribe(fn)
}
