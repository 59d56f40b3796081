package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harissh-lab/arm-scout/pkg/e"
)

type KV struct {
	pool *pgxpool.Pool
}

func NewKV(pool *pgxpool.Pool) *KV {
	return &KV{pool: pool}
}

func (k *KV) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "postgres.KV.Load"

	var value []byte
	err := k.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return value, nil
}

func (k *KV) Save(ctx context.Context, key string, value []byte) error {
	const op = "postgres.KV.Save"

	_, err := k.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}
