package service

import (
	"sync"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

// RepeatFilter drops alerts for hazards already forwarded within Interval.
// Each outbound sink keeps its own filter.
type RepeatFilter struct {
	mu       sync.Mutex
	interval time.Duration
	sent     map[string]time.Time
}

func NewRepeatFilter(interval time.Duration) *RepeatFilter {
	return &RepeatFilter{interval: interval, sent: make(map[string]time.Time)}
}

// Filter returns the part of batch that should be forwarded at now and
// records it as sent. ok is false when nothing is left.
func (f *RepeatFilter) Filter(batch domain.AlertBatch, now time.Time) (out domain.AlertBatch, ok bool) {
	if f.interval <= 0 {
		return batch, len(batch.Alerts) > 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for id, at := range f.sent {
		if now.Sub(at) >= f.interval {
			delete(f.sent, id)
		}
	}

	out = batch
	out.Alerts = make([]domain.ProximityAlert, 0, len(batch.Alerts))
	for _, a := range batch.Alerts {
		if _, seen := f.sent[a.Hazard.ID]; seen {
			continue
		}
		f.sent[a.Hazard.ID] = now
		out.Alerts = append(out.Alerts, a)
	}
	return out, len(out.Alerts) > 0
}
