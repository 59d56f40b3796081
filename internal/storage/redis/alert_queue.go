package redis

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
)

// AlertQueue hands alert batches from the proximity monitor to the
// outbound sender.
type AlertQueue struct {
	client *goredis.Client
	key    string
}

func NewAlertQueue(r *Redis, key string) *AlertQueue {
	return &AlertQueue{client: r.Client, key: r.prefix + key}
}

func (q *AlertQueue) Enqueue(ctx context.Context, batch domain.AlertBatch) error {
	b, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *AlertQueue) Dequeue(ctx context.Context, timeout time.Duration) (domain.AlertBatch, error) {
	var batch domain.AlertBatch

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return batch, e.ErrAlertQueueEmpty
		}
		return batch, err
	}
	if len(res) < 2 {
		return batch, e.ErrAlertQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &batch); err != nil {
		return batch, err
	}
	return batch, nil
}
