package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/service"
	"github.com/Harissh-lab/arm-scout/pkg/pubsub"
)

const DefaultProximityInterval = 2 * time.Second

type PositionSource interface {
	Current() (domain.PositionFix, bool)
}

type HazardLister interface {
	ListActive() []domain.Hazard
}

type ProximityMonitorConfig struct {
	VehicleID         string
	Interval          time.Duration
	AlertRadiusMeters float64
	Now               func() time.Time
}

// ProximityMonitor periodically checks the vehicle's fix against live
// hazards and publishes non-empty alert batches.
type ProximityMonitor struct {
	positions PositionSource
	hazards   HazardLister
	logger    *slog.Logger
	cfg       ProximityMonitorConfig
	subs      *pubsub.Registry[domain.AlertBatch]

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	wg     sync.WaitGroup
}

func NewProximityMonitor(positions PositionSource, hazards HazardLister, logger *slog.Logger, cfg ProximityMonitorConfig) *ProximityMonitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultProximityInterval
	}
	if cfg.AlertRadiusMeters <= 0 {
		cfg.AlertRadiusMeters = service.DefaultAlertRadiusMeters
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ProximityMonitor{
		positions: positions,
		hazards:   hazards,
		logger:    logger,
		cfg:       cfg,
		subs:      pubsub.NewRegistry[domain.AlertBatch]("alerts", logger),
	}
}

// Start begins periodic evaluation. A second call while running is a no-op.
func (m *ProximityMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.gen++
	gen := m.gen

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.loop(runCtx)
		m.finish(gen)
	}()
}

// finish clears the run state when the loop of run gen exits on its own,
// e.g. because the parent context was cancelled.
func (m *ProximityMonitor) finish(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen == gen && m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Stop ends periodic evaluation without waiting for an in-flight tick.
// It is safe to call from a subscriber.
func (m *ProximityMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Wait blocks until every loop started so far has returned.
func (m *ProximityMonitor) Wait() {
	m.wg.Wait()
}

func (m *ProximityMonitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

func (m *ProximityMonitor) loop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			m.tick()
		}
	}
}

func (m *ProximityMonitor) tick() {
	batch, ok := m.Evaluate()
	if !ok || len(batch.Alerts) == 0 {
		return
	}
	n := m.subs.Publish(batch)
	m.logger.Debug("proximity alerts published",
		slog.Int("alerts", len(batch.Alerts)),
		slog.Int("subscribers", n))
}

// Evaluate runs one check. The bool is false when there is no position fix.
func (m *ProximityMonitor) Evaluate() (domain.AlertBatch, bool) {
	fix, ok := m.positions.Current()
	if !ok {
		return domain.AlertBatch{}, false
	}
	alerts := service.CheckProximity(fix, m.hazards.ListActive(), m.cfg.AlertRadiusMeters)
	return domain.AlertBatch{
		VehicleID:   m.cfg.VehicleID,
		Position:    fix,
		Alerts:      alerts,
		EvaluatedAt: m.cfg.Now().UTC(),
	}, true
}

func (m *ProximityMonitor) Subscribe(fn func(domain.AlertBatch) error) func() {
	return m.subs.Subscribe(fn)
}
