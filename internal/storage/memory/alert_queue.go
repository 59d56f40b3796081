package memory

import (
	"context"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
)

// AlertQueue is a bounded in-process queue. When full, the oldest batch is
// dropped to make room.
type AlertQueue struct {
	ch chan domain.AlertBatch
}

func NewAlertQueue(size int) *AlertQueue {
	if size < 1 {
		size = 64
	}
	return &AlertQueue{ch: make(chan domain.AlertBatch, size)}
}

func (q *AlertQueue) Enqueue(ctx context.Context, batch domain.AlertBatch) error {
	for {
		select {
		case q.ch <- batch:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		select {
		case <-q.ch:
		default:
		}
	}
}

func (q *AlertQueue) Dequeue(ctx context.Context, timeout time.Duration) (domain.AlertBatch, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case b := <-q.ch:
		return b, nil
	case <-timer.C:
		return domain.AlertBatch{}, e.ErrAlertQueueEmpty
	case <-ctx.Done():
		return domain.AlertBatch{}, ctx.Err()
	}
}

func (q *AlertQueue) Len() int { return len(q.ch) }
