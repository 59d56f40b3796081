package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
	"github.com/Harissh-lab/arm-scout/pkg/validator"
)

const handleTimeout = 5 * time.Second

type PositionSink interface {
	Push(fix domain.PositionFix) int
}

type DetectionIngestor interface {
	Ingest(ctx context.Context, in domain.DetectionInput) (domain.Hazard, error)
}

type HazardReporter interface {
	Add(ctx context.Context, h domain.Hazard) string
}

type Voter interface {
	Confirm(ctx context.Context, hazardID, deviceID string) domain.VoteResult
	ReportGone(ctx context.Context, hazardID, deviceID string) domain.VoteResult
}

type votePayload struct {
	HazardID string `json:"hazard_id"`
}

// Subscriber routes inbound vehicle, detector and peer messages into the engine.
type Subscriber struct {
	client    paho.Client
	topics    Topics
	positions PositionSink
	ingestor  DetectionIngestor
	reports   HazardReporter
	votes     Voter
	logger    *slog.Logger
}

func NewSubscriber(
	client paho.Client,
	topics Topics,
	positions PositionSink,
	ingestor DetectionIngestor,
	reports HazardReporter,
	votes Voter,
	logger *slog.Logger,
) *Subscriber {
	return &Subscriber{
		client:    client,
		topics:    topics,
		positions: positions,
		ingestor:  ingestor,
		reports:   reports,
		votes:     votes,
		logger:    logger,
	}
}

func (s *Subscriber) SubscribeAll() error {
	for _, topic := range []string{s.topics.Position(), s.topics.Detection(), s.topics.Hazards()} {
		token := s.client.Subscribe(topic, 1, s.onMessage)
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
		}
		s.logger.Info("mqtt subscribed", slog.String("topic", topic))
	}
	return nil
}

func (s *Subscriber) onMessage(_ paho.Client, msg paho.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := s.Handle(ctx, msg.Topic(), msg.Payload()); err != nil {
		s.logger.Warn("mqtt message rejected",
			slog.String("topic", msg.Topic()),
			slog.Any("error", err))
	}
}

// Handle processes one inbound message.
func (s *Subscriber) Handle(ctx context.Context, topic string, payload []byte) error {
	kind, id := s.topics.parse(topic)

	switch kind {
	case topicPosition:
		var fix domain.PositionFix
		if err := decode(payload, &fix); err != nil {
			return err
		}
		if fix.Timestamp.IsZero() {
			fix.Timestamp = time.Now().UTC()
		}
		if s.positions.Push(fix) == 0 {
			s.logger.Debug("position fix dropped: no watcher", slog.String("vehicle_id", id))
		}
		return nil

	case topicDetection:
		var in domain.DetectionInput
		if err := decode(payload, &in); err != nil {
			return err
		}
		h, err := s.ingestor.Ingest(ctx, in)
		if err != nil {
			return err
		}
		s.logger.Debug("detection ingested",
			slog.String("detector_id", id),
			slog.String("hazard_id", h.ID))
		return nil

	case topicHazardReport:
		var req domain.CreateHazardRequest
		if err := decode(payload, &req); err != nil {
			return err
		}
		if req.DetectedBy == "" {
			req.DetectedBy = domain.SourceNetwork
		}
		if req.DeviceID == "" {
			req.DeviceID = id
		}
		if err := validator.ValidateStruct(req); err != nil {
			return fmt.Errorf("%v: %w", err, e.ErrInvalidInput)
		}
		hazardID := s.reports.Add(ctx, req.ToHazard())
		s.logger.Info("peer hazard report",
			slog.String("device_id", id),
			slog.String("hazard_id", hazardID))
		return nil

	case topicHazardConfirm, topicHazardGone:
		var v votePayload
		if err := decode(payload, &v); err != nil {
			return err
		}
		var res domain.VoteResult
		if kind == topicHazardConfirm {
			res = s.votes.Confirm(ctx, v.HazardID, id)
		} else {
			res = s.votes.ReportGone(ctx, v.HazardID, id)
		}
		s.logger.Debug("peer vote",
			slog.String("device_id", id),
			slog.String("hazard_id", v.HazardID),
			slog.String("result", res.String()))
		return nil
	}

	return fmt.Errorf("unrecognised topic %q: %w", topic, e.ErrInvalidInput)
}

func decode(payload []byte, dst any) error {
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%v: %w", err, e.ErrInvalidInput)
	}
	return nil
}
