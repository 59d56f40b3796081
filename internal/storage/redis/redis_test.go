//go:build integration

package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
)

var testRedis *Redis

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithDeadline(60 * time.Second),
	}

	tc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "6379/tcp")

	client := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, mappedPort.Port())})
	if err := client.Ping(ctx).Err(); err != nil {
		fmt.Println("redis ping:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}
	testRedis = &Redis{Client: client, prefix: "test:"}

	code := m.Run()

	_ = client.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func TestKV_LoadMissingAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(testRedis)

	b, err := kv.Load(ctx, "missing")
	if err != nil || b != nil {
		t.Fatalf("expected (nil, nil) for missing key, got %v %v", b, err)
	}

	if err := kv.Save(ctx, "hazards:records", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err = kv.Load(ctx, "hazards:records")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(b) != `{"version":1}` {
		t.Fatalf("unexpected payload %q", b)
	}

	raw, err := testRedis.Client.Get(ctx, "test:hazards:records").Result()
	if err != nil || raw == "" {
		t.Fatalf("expected prefixed key, got %q %v", raw, err)
	}
}

func TestAlertQueue_FIFOAndEmpty(t *testing.T) {
	ctx := context.Background()
	q := NewAlertQueue(testRedis, "alerts:test")

	for _, id := range []string{"v-1", "v-2"} {
		if err := q.Enqueue(ctx, domain.AlertBatch{VehicleID: id}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	first, err := q.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	second, err := q.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if first.VehicleID != "v-1" || second.VehicleID != "v-2" {
		t.Fatalf("expected FIFO order, got %s then %s", first.VehicleID, second.VehicleID)
	}

	_, err = q.Dequeue(ctx, time.Second)
	if !errors.Is(err, e.ErrAlertQueueEmpty) {
		t.Fatalf("expected ErrAlertQueueEmpty, got %v", err)
	}
}
