//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := EnsureSchema(ctx, testPool); err != nil {
		fmt.Println("EnsureSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func truncateKV(t *testing.T) {
	t.Helper()
	if _, err := testPool.Exec(context.Background(), `TRUNCATE TABLE kv_store`); err != nil {
		t.Fatalf("truncate kv_store: %v", err)
	}
}

func TestKV_LoadMissing(t *testing.T) {
	truncateKV(t)

	b, err := NewKV(testPool).Load(context.Background(), "hazards:records")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil payload, got %q", b)
	}
}

func TestKV_SaveOverwrites(t *testing.T) {
	truncateKV(t)

	ctx := context.Background()
	kv := NewKV(testPool)

	if err := kv.Save(ctx, "position:last", []byte("first")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := kv.Save(ctx, "position:last", []byte("second")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b, err := kv.Load(ctx, "position:last")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("expected overwrite, got %q", b)
	}

	var n int
	if err := testPool.QueryRow(ctx, `SELECT count(*) FROM kv_store`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	if err := EnsureSchema(context.Background(), testPool); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}
