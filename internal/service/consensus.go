package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

const DefaultVoteCooldown = time.Hour

type ConsensusConfig struct {
	// Cooldown is the minimum spacing between two votes of one device on
	// one hazard, whatever their direction.
	Cooldown time.Duration
	// StaleTTL is the global age after which untouched active hazards move
	// to resolving. Zero disables it for records without their own policy.
	StaleTTL time.Duration
	Now      func() time.Time
}

type voteKey struct {
	hazardID string
	deviceID string
}

type voter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Consensus applies device votes to hazards with a per-device cooldown.
type Consensus struct {
	store  *HazardStore
	logger *slog.Logger
	cfg    ConsensusConfig

	mu        sync.Mutex
	voters    map[voteKey]*voter
	lastEvict time.Time
}

func NewConsensus(store *HazardStore, logger *slog.Logger, cfg ConsensusConfig) *Consensus {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultVoteCooldown
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Consensus{
		store:  store,
		logger: logger,
		cfg:    cfg,
		voters: make(map[voteKey]*voter),
	}
}

func (c *Consensus) Confirm(ctx context.Context, hazardID, deviceID string) domain.VoteResult {
	return c.vote(ctx, hazardID, deviceID, domain.VoteStillThere)
}

func (c *Consensus) ReportGone(ctx context.Context, hazardID, deviceID string) domain.VoteResult {
	return c.vote(ctx, hazardID, deviceID, domain.VoteGone)
}

// vote checks, in order: device id, hazard existence, a repeat of the same
// vote, the cooldown. Only then is the store asked to apply it.
func (c *Consensus) vote(ctx context.Context, hazardID, deviceID string, kind domain.VoteKind) domain.VoteResult {
	if deviceID == "" {
		return domain.VoteInvalid
	}

	h, ok := c.store.Get(hazardID)
	if !ok {
		return domain.VoteUnknownHazard
	}
	switch kind {
	case domain.VoteStillThere:
		if h.HasConfirmed(deviceID) {
			return domain.VoteAlreadyCast
		}
	case domain.VoteGone:
		if h.HasReportedGone(deviceID) {
			return domain.VoteAlreadyCast
		}
	default:
		return domain.VoteInvalid
	}

	if !c.allow(hazardID, deviceID) {
		c.logger.Info("vote rate limited",
			slog.String("hazard_id", hazardID),
			slog.String("device_id", deviceID),
			slog.String("kind", string(kind)))
		return domain.VoteRateLimited
	}

	res := c.store.CastVote(ctx, hazardID, deviceID, kind)
	c.logger.Debug("vote cast",
		slog.String("hazard_id", hazardID),
		slog.String("device_id", deviceID),
		slog.String("kind", string(kind)),
		slog.String("result", res.String()))
	return res
}

func (c *Consensus) allow(hazardID, deviceID string) bool {
	now := c.cfg.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictLocked(now)

	k := voteKey{hazardID: hazardID, deviceID: deviceID}
	v, ok := c.voters[k]
	if !ok {
		v = &voter{limiter: rate.NewLimiter(rate.Every(c.cfg.Cooldown), 1)}
		c.voters[k] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evictLocked drops limiters idle for two cooldowns; a fresh limiter would
// allow them anyway.
func (c *Consensus) evictLocked(now time.Time) {
	if now.Sub(c.lastEvict) < c.cfg.Cooldown {
		return
	}
	c.lastEvict = now
	for k, v := range c.voters {
		if now.Sub(v.lastSeen) > 2*c.cfg.Cooldown {
			delete(c.voters, k)
		}
	}
}

func (c *Consensus) Progress(hazardID string) (domain.ResolutionProgress, bool) {
	h, ok := c.store.Get(hazardID)
	if !ok {
		return domain.ResolutionProgress{}, false
	}
	required := c.store.RequiredReports(h)
	remaining := required - len(h.ReportedGoneBy)
	if remaining < 0 || h.Status == domain.HazardResolved {
		remaining = 0
	}
	return domain.ResolutionProgress{
		HazardID:         h.ID,
		Status:           h.Status,
		GoneReports:      len(h.ReportedGoneBy),
		RequiredReports:  required,
		RemainingReports: remaining,
		Confirmations:    len(h.ConfirmedBy),
	}, true
}

// SweepStale runs one pass of the age-based policy and returns the number
// of hazards whose status changed.
func (c *Consensus) SweepStale(ctx context.Context) int {
	n := c.store.MarkStale(ctx, c.cfg.StaleTTL)
	if n > 0 {
		c.logger.Info("stale sweep changed hazards", slog.Int("count", n))
	}
	return n
}

func (c *Consensus) trackedVoters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.voters)
}
