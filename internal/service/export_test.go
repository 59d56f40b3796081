package service

import "time"

func (c *Consensus) TrackedVoters() int { return c.trackedVoters() }

func (s *WebhookSender) SetBackoff(d time.Duration) { s.backoff = d }
