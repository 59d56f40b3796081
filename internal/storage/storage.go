package storage

import (
	"context"
	"time"
)

// Logical keys used by the engine.
const (
	KeyHazards    = "hazards:records"
	KeyPosition   = "position:last"
	KeyDetections = "detections:log"
)

//go:generate mockgen -source=storage.go -destination=mocks/mock.go

// KV is the durable key-value capability the engine persists through.
// Load returns (nil, nil) for an absent key.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

type timeoutKV struct {
	kv      KV
	timeout time.Duration
}

// WithTimeout bounds every call on kv by d. A non-positive d returns kv.
func WithTimeout(kv KV, d time.Duration) KV {
	if d <= 0 {
		return kv
	}
	return timeoutKV{kv: kv, timeout: d}
}

func (t timeoutKV) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.kv.Load(ctx, key)
}

func (t timeoutKV) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.kv.Save(ctx, key, value)
}
