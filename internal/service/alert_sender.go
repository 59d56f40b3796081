package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/internal/config"
	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/e"
)

// WebhookSender drains the alert queue and POSTs each batch to the
// configured webhook.
type WebhookSender struct {
	logger  *slog.Logger
	cfg     config.WebhookConfig
	queue   AlertQueue
	http    *http.Client
	repeats *RepeatFilter
	backoff time.Duration
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig, q AlertQueue, repeatInterval time.Duration) *WebhookSender {
	return &WebhookSender{
		logger:  logger,
		cfg:     cfg,
		queue:   q,
		http:    &http.Client{Timeout: 5 * time.Second},
		repeats: NewRepeatFilter(repeatInterval),
		backoff: time.Second,
	}
}

func (s *WebhookSender) Run(ctx context.Context) {
	s.logger.Info("webhookSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhookSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		batch, err := s.queue.Dequeue(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrAlertQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("alert dequeue failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		batch, ok := s.repeats.Filter(batch, time.Now())
		if !ok {
			continue
		}

		s.logger.Info("sending alert webhook",
			slog.String("vehicle_id", batch.VehicleID),
			slog.Int("alerts", len(batch.Alerts)))
		s.sendWithRetry(ctx, batch)
	}
}

func (s *WebhookSender) sendWithRetry(ctx context.Context, batch domain.AlertBatch) bool {
	const maxRetries = 3

	body, err := json.Marshal(batch)
	if err != nil {
		s.logger.Error("marshal alert batch failed", slog.String("error", err.Error()))
		return false
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return false
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create webhook request failed", slog.String("error", err.Error()))
			return false
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return true
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Duration(attempt) * s.backoff):
		}
	}
	return false
}
