// Package pubsub is a small observer registry with unsubscribe handles.
package pubsub

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

type Handler[T any] func(T) error

type Registry[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]Handler[T]
	next   uint64
	name   string
	logger *slog.Logger
}

func NewRegistry[T any](name string, logger *slog.Logger) *Registry[T] {
	return &Registry[T]{
		subs:   make(map[uint64]Handler[T]),
		name:   name,
		logger: logger,
	}
}

// Subscribe registers fn and returns a function removing exactly this
// registration. Calling the returned function more than once is a no-op.
func (r *Registry[T]) Subscribe(fn Handler[T]) func() {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Publish delivers v to a snapshot of the current subscribers in
// registration order. A failing or panicking subscriber is logged and skipped.
// It returns the number of subscribers that accepted v.
func (r *Registry[T]) Publish(v T) int {
	r.mu.Lock()
	ids := make([]uint64, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]Handler[T], 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, r.subs[id])
	}
	r.mu.Unlock()

	delivered := 0
	for i, h := range handlers {
		if err := r.call(h, v); err != nil {
			r.logger.Error("subscriber failed",
				slog.String("registry", r.name),
				slog.Uint64("subscriber", ids[i]),
				slog.Any("error", err),
			)
			continue
		}
		delivered++
	}
	return delivered
}

func (r *Registry[T]) call(h Handler[T], v T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return h(v)
}
