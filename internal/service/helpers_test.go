package service_test

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/logger"
)

func newTestLogger() *slog.Logger {
	return logger.Discard()
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func sampleHazard(t domain.HazardType, lat, lon float64) domain.Hazard {
	return domain.Hazard{
		Type:        t,
		Coordinates: domain.Coordinates{Latitude: lat, Longitude: lon},
		DetectedBy:  domain.SourceUserReport,
		Confidence:  90,
		Severity:    domain.SeverityMedium,
	}
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
