package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
)

type Detector interface {
	Detect(ctx context.Context) (domain.DetectionInput, bool, error)
}

type DetectionIngestor interface {
	Ingest(ctx context.Context, in domain.DetectionInput) (domain.Hazard, error)
}

// DetectorPoller pulls classifications from the camera detector and feeds
// them into ingestion.
type DetectorPoller struct {
	detector Detector
	ingestor DetectionIngestor
	interval time.Duration
	logger   *slog.Logger
}

func NewDetectorPoller(detector Detector, ingestor DetectionIngestor, interval time.Duration, logger *slog.Logger) *DetectorPoller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &DetectorPoller{detector: detector, ingestor: ingestor, interval: interval, logger: logger}
}

func (p *DetectorPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll runs one detect-and-ingest round and reports whether a hazard was recorded.
func (p *DetectorPoller) Poll(ctx context.Context) bool {
	in, ok, err := p.detector.Detect(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("detector poll failed", slog.Any("error", err))
		}
		return false
	}
	if !ok {
		return false
	}

	h, err := p.ingestor.Ingest(ctx, in)
	switch {
	case errors.Is(err, e.ErrNoPosition):
		p.logger.Debug("detection dropped: no position fix", slog.String("type", string(in.Type)))
		return false
	case err != nil:
		p.logger.Error("detection ingest failed", slog.Any("error", err))
		return false
	}
	p.logger.Info("hazard detected",
		slog.String("hazard_id", h.ID),
		slog.String("type", string(h.Type)),
		slog.Int("confidence", in.Confidence))
	return true
}
