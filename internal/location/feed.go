package location

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

const watchBuffer = 16

type watcher struct {
	fixes chan domain.PositionFix
	errs  chan error
}

// Feed fans pushed fixes out to every open watch. Slow watchers drop fixes
// rather than block the pusher.
type Feed struct {
	mu       sync.Mutex
	watchers map[uint64]*watcher
	next     uint64
	logger   *slog.Logger
}

func NewFeed(logger *slog.Logger) *Feed {
	return &Feed{
		watchers: make(map[uint64]*watcher),
		logger:   logger,
	}
}

func (f *Feed) Watch(ctx context.Context, _ WatchOptions) (<-chan domain.PositionFix, <-chan error, error) {
	w := &watcher{
		fixes: make(chan domain.PositionFix, watchBuffer),
		errs:  make(chan error, 1),
	}

	f.mu.Lock()
	id := f.next
	f.next++
	f.watchers[id] = w
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.watchers, id)
		close(w.fixes)
		close(w.errs)
		f.mu.Unlock()
	}()

	return w.fixes, w.errs, nil
}

// Push delivers fix to all watchers and reports how many received it.
func (f *Feed) Push(fix domain.PositionFix) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	delivered := 0
	for id, w := range f.watchers {
		select {
		case w.fixes <- fix:
			delivered++
		default:
			f.logger.Warn("position watcher is full, dropping fix", slog.Uint64("watcher", id))
		}
	}
	return delivered
}

// Fail signals a source error to all watchers.
func (f *Feed) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, w := range f.watchers {
		select {
		case w.errs <- err:
		default:
		}
	}
}

func (f *Feed) Watchers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers)
}
