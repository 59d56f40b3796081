package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Harissh-lab/arm-scout/pkg/e"
)

// KV stores engine payloads as plain string keys under a common prefix.
type KV struct {
	client *goredis.Client
	prefix string
}

func NewKV(r *Redis) *KV {
	return &KV{client: r.Client, prefix: r.prefix}
}

func (k *KV) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "redis.KV.Load"

	data, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return data, nil
}

func (k *KV) Save(ctx context.Context, key string, value []byte) error {
	const op = "redis.KV.Save"

	if err := k.client.Set(ctx, k.prefix+key, value, 0).Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}
