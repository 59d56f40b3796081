package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/storage"
)

const (
	detectionsKind      = "detections"
	DefaultDetectionCap = 1000
)

// DetectionLog is a bounded audit trail of raw detections. When full, the
// oldest entries are evicted first.
type DetectionLog struct {
	mu       sync.Mutex
	entries  []domain.Detection
	capacity int
	kv       storage.KV
	logger   *slog.Logger
}

func NewDetectionLog(ctx context.Context, kv storage.KV, logger *slog.Logger, capacity int) *DetectionLog {
	if capacity < 1 {
		capacity = DefaultDetectionCap
	}
	l := &DetectionLog{capacity: capacity, kv: kv, logger: logger}
	l.load(ctx)
	return l
}

func (l *DetectionLog) load(ctx context.Context) {
	const op = "service.DetectionLog.load"

	b, err := l.kv.Load(ctx, storage.KeyDetections)
	if err != nil {
		l.logger.Error("detection log load failed", slog.String("op", op), slog.Any("error", err))
		return
	}
	if b == nil {
		return
	}
	var entries []domain.Detection
	if err := storage.Decode(detectionsKind, b, &entries); err != nil {
		l.logger.Error("detection log unreadable, starting empty", slog.String("op", op), slog.Any("error", err))
		return
	}
	if len(entries) > l.capacity {
		entries = entries[len(entries)-l.capacity:]
	}
	l.entries = entries
}

func (l *DetectionLog) persistLocked(ctx context.Context) {
	const op = "service.DetectionLog.persist"

	b, err := storage.Encode(detectionsKind, l.entries)
	if err == nil {
		err = l.kv.Save(context.WithoutCancel(ctx), storage.KeyDetections, b)
	}
	if err != nil {
		l.logger.Error("detection log persist failed", slog.String("op", op), slog.Any("error", err))
	}
}

func (l *DetectionLog) Append(ctx context.Context, d domain.Detection) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, d)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	l.persistLocked(ctx)
}

// List returns the entries newest first.
func (l *DetectionLog) List() []domain.Detection {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Detection, len(l.entries))
	for i, d := range l.entries {
		out[len(l.entries)-1-i] = d
	}
	return out
}

func (l *DetectionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *DetectionLog) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.persistLocked(ctx)
}
