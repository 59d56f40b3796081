package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
	"github.com/Harissh-lab/arm-scout/pkg/pubsub"
	"github.com/Harissh-lab/arm-scout/pkg/validator"
)

// PositionReader is the read side of the tracker.
type PositionReader interface {
	Current() (domain.PositionFix, bool)
}

type IngestorConfig struct {
	// DedupeRadiusMeters merges a detection into a live hazard of the same
	// type within this radius. Zero turns merging off.
	DedupeRadiusMeters float64
	Now                func() time.Time
}

// Ingestor turns classifier output into hazard records stamped with the
// vehicle's current position.
type Ingestor struct {
	positions PositionReader
	store     *HazardStore
	log       *DetectionLog
	subs      *pubsub.Registry[domain.DetectionEvent]
	logger    *slog.Logger
	cfg       IngestorConfig
}

func NewIngestor(positions PositionReader, store *HazardStore, detections *DetectionLog, logger *slog.Logger, cfg IngestorConfig) *Ingestor {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ingestor{
		positions: positions,
		store:     store,
		log:       detections,
		subs:      pubsub.NewRegistry[domain.DetectionEvent]("detections", logger),
		logger:    logger,
		cfg:       cfg,
	}
}

// Ingest records one detection. It fails with ErrNoPosition, writing
// nothing, when the tracker has no fix.
func (i *Ingestor) Ingest(ctx context.Context, in domain.DetectionInput) (domain.Hazard, error) {
	const op = "service.Ingestor.Ingest"

	if err := validator.ValidateStruct(in); err != nil {
		return domain.Hazard{}, fmt.Errorf("%s: %v: %w", op, err, e.ErrInvalidInput)
	}

	fix, ok := i.positions.Current()
	if !ok {
		return domain.Hazard{}, e.Wrap(op, e.ErrNoPosition)
	}

	now := i.cfg.Now().UTC()
	coords := domain.Coordinates{Latitude: fix.Latitude, Longitude: fix.Longitude}

	var (
		hazard domain.Hazard
		merged bool
	)
	if existing, found := i.findDuplicate(in.Type, coords); found && i.store.RecordRepeatDetection(ctx, existing.ID) {
		hazard, _ = i.store.Get(existing.ID)
		merged = true
	} else {
		id := i.store.Add(ctx, domain.Hazard{
			Type:            in.Type,
			Coordinates:     coords,
			FirstDetectedAt: now,
			DetectedBy:      domain.SourceCamera,
			Status:          domain.HazardActive,
			Confidence:      in.Confidence,
			Severity:        domain.DefaultSeverity(in.Type),
			DetectionCount:  1,
			ImageURL:        in.ImageURL,
		})
		hazard, _ = i.store.Get(id)
	}

	det := domain.Detection{
		ID:             uuid.NewString(),
		HazardID:       hazard.ID,
		Type:           in.Type,
		Coordinates:    coords,
		AccuracyMeters: fix.AccuracyMeters,
		Confidence:     in.Confidence,
		ImageURL:       in.ImageURL,
		SpeedMPS:       fix.SpeedMPS,
		HeadingDegrees: fix.HeadingDegrees,
		DetectedAt:     now,
		Merged:         merged,
	}
	i.log.Append(ctx, det)

	i.logger.Info("detection ingested",
		slog.String("hazard_id", hazard.ID),
		slog.String("type", string(in.Type)),
		slog.Int("confidence", in.Confidence),
		slog.Bool("merged", merged))

	i.subs.Publish(domain.DetectionEvent{Detection: det, Hazard: hazard})
	return hazard, nil
}

func (i *Ingestor) findDuplicate(t domain.HazardType, c domain.Coordinates) (domain.Hazard, bool) {
	if i.cfg.DedupeRadiusMeters <= 0 {
		return domain.Hazard{}, false
	}
	for _, h := range i.store.Nearby(c.Latitude, c.Longitude, i.cfg.DedupeRadiusMeters) {
		if h.Type == t {
			return h, true
		}
	}
	return domain.Hazard{}, false
}

// Simulate ingests a detection with a confidence between 80 and 100. An
// empty type picks one at random.
func (i *Ingestor) Simulate(ctx context.Context, t domain.HazardType) (domain.Hazard, error) {
	if t == "" {
		t = domain.HazardTypes[rand.IntN(len(domain.HazardTypes))]
	}
	return i.Ingest(ctx, domain.DetectionInput{
		Type:       t,
		Confidence: 80 + rand.IntN(21),
	})
}

func (i *Ingestor) Subscribe(fn func(domain.DetectionEvent) error) func() {
	return i.subs.Subscribe(fn)
}

func (i *Ingestor) Detections() []domain.Detection {
	return i.log.List()
}

func (i *Ingestor) ClearDetections(ctx context.Context) {
	i.log.Clear(ctx)
}
