package service

import (
	"context"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// AlertQueue carries alert batches from the monitor to outbound senders.
type AlertQueue interface {
	Enqueue(ctx context.Context, batch domain.AlertBatch) error
	// Dequeue waits up to timeout and returns e.ErrAlertQueueEmpty when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (domain.AlertBatch, error)
}

// Service bundles the engine's single instances so transports can be
// wired from one value.
type Service struct {
	Tracker    *Tracker
	Hazards    *HazardStore
	Ingestor   *Ingestor
	Consensus  *Consensus
	Detections *DetectionLog
}

func NewService(
	tracker *Tracker,
	hazards *HazardStore,
	ingestor *Ingestor,
	consensus *Consensus,
	detections *DetectionLog,
) *Service {
	return &Service{
		Tracker:    tracker,
		Hazards:    hazards,
		Ingestor:   ingestor,
		Consensus:  consensus,
		Detections: detections,
	}
}
