package mqtt

import (
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/service"
)

const publishTimeout = 5 * time.Second

// Publisher forwards alert batches and detection events to the broker.
type Publisher struct {
	client  paho.Client
	topics  Topics
	repeats *service.RepeatFilter
	logger  *slog.Logger
	now     func() time.Time
}

func NewPublisher(client paho.Client, topics Topics, repeatInterval time.Duration, logger *slog.Logger) *Publisher {
	return &Publisher{
		client:  client,
		topics:  topics,
		repeats: service.NewRepeatFilter(repeatInterval),
		logger:  logger,
		now:     time.Now,
	}
}

// PublishAlerts sends the alerts in batch that were not already sent
// within the repeat window. It matches the alert subscriber signature.
func (p *Publisher) PublishAlerts(batch domain.AlertBatch) error {
	batch, ok := p.repeats.Filter(batch, p.now())
	if !ok {
		return nil
	}
	return p.publish(p.topics.Alerts(batch.VehicleID), batch)
}

func (p *Publisher) PublishDetection(ev domain.DetectionEvent) error {
	return p.publish(p.topics.Detections(), ev)
}

func (p *Publisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.Debug("mqtt published", slog.String("topic", topic), slog.Int("bytes", len(payload)))
	return nil
}
