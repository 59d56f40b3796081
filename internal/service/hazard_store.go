package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/storage"
	"github.com/Harissh-lab/arm-scout/pkg/e"
	"github.com/Harissh-lab/arm-scout/pkg/geo"
)

const (
	hazardsKind                = "hazards"
	DefaultResolutionThreshold = 3
)

type HazardStoreConfig struct {
	ResolutionThreshold int
	Now                 func() time.Time
}

// HazardStore owns every hazard record. It is loaded once at construction
// and written through to the KV after each mutation. One mutex covers the
// map and the flush; readers always get deep copies.
type HazardStore struct {
	mu        sync.Mutex
	hazards   map[string]domain.Hazard
	kv        storage.KV
	logger    *slog.Logger
	threshold int
	now       func() time.Time
}

func NewHazardStore(ctx context.Context, kv storage.KV, logger *slog.Logger, cfg HazardStoreConfig) *HazardStore {
	if cfg.ResolutionThreshold < 1 {
		cfg.ResolutionThreshold = DefaultResolutionThreshold
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &HazardStore{
		hazards:   make(map[string]domain.Hazard),
		kv:        kv,
		logger:    logger,
		threshold: cfg.ResolutionThreshold,
		now:       cfg.Now,
	}
	s.load(ctx)
	return s
}

func (s *HazardStore) load(ctx context.Context) {
	const op = "service.HazardStore.load"

	b, err := s.kv.Load(ctx, storage.KeyHazards)
	if err != nil {
		s.logger.Error("hazard load failed, starting empty", slog.String("op", op), slog.Any("error", err))
		return
	}
	if b == nil {
		return
	}

	var records []domain.Hazard
	if err := storage.Decode(hazardsKind, b, &records); err != nil {
		s.logger.Error("hazard payload unreadable, starting empty", slog.String("op", op), slog.Any("error", err))
		return
	}
	for _, h := range records {
		if h.ID == "" {
			continue
		}
		s.hazards[h.ID] = h.Clone()
	}
	s.logger.Info("hazards loaded", slog.Int("count", len(s.hazards)))
}

// persist must be called with s.mu held. The save ignores caller cancellation.
func (s *HazardStore) persist(ctx context.Context) {
	const op = "service.HazardStore.persist"

	b, err := storage.Encode(hazardsKind, s.sortedLocked(false))
	if err == nil {
		err = s.kv.Save(context.WithoutCancel(ctx), storage.KeyHazards, b)
	}
	if err != nil {
		s.logger.Error("hazard persist failed", slog.String("op", op), slog.Any("error", err))
	}
}

func (s *HazardStore) sortedLocked(liveOnly bool) []domain.Hazard {
	out := make([]domain.Hazard, 0, len(s.hazards))
	for _, h := range s.hazards {
		if liveOnly && !h.Live() {
			continue
		}
		out = append(out, h.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FirstDetectedAt.Equal(out[j].FirstDetectedAt) {
			return out[i].FirstDetectedAt.After(out[j].FirstDetectedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *HazardStore) requiredLocked(h domain.Hazard) int {
	if h.RequiredGoneReports > 0 {
		return h.RequiredGoneReports
	}
	return s.threshold
}

// applyThresholdLocked enforces the gone-report law on h.
func (s *HazardStore) applyThresholdLocked(h *domain.Hazard) {
	if len(h.ReportedGoneBy) >= s.requiredLocked(*h) {
		h.Status = domain.HazardResolved
	}
}

// Add inserts h under a fresh id and returns it. Persistence failures are
// logged; the insert always succeeds.
func (s *HazardStore) Add(ctx context.Context, h domain.Hazard) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.addLocked(h)
	s.persist(ctx)
	return id
}

func (s *HazardStore) addLocked(h domain.Hazard) string {
	now := s.now()
	h = h.Clone()
	h.ID = uuid.NewString()
	h.LastUpdatedAt = now
	if h.FirstDetectedAt.IsZero() {
		h.FirstDetectedAt = now
	}
	if h.DetectionCount < 1 {
		h.DetectionCount = 1
	}
	if h.Status == "" {
		h.Status = domain.HazardActive
	}
	if h.Severity == "" {
		h.Severity = domain.DefaultSeverity(h.Type)
	}
	h.ConfirmedBy = dedupe(h.ConfirmedBy)
	h.ReportedGoneBy = without(dedupe(h.ReportedGoneBy), h.ConfirmedBy)
	if h.Status == domain.HazardResolved && len(h.ReportedGoneBy) < s.requiredLocked(h) {
		h.Status = domain.HazardActive
	}
	s.applyThresholdLocked(&h)

	s.hazards[h.ID] = h
	return h.ID
}

// Update merges patch into the record. It returns (false, nil) for an
// unknown id and ErrInvalidTransition when the patch would reopen a
// resolved hazard or resolve one that lacks the required gone reports.
func (s *HazardStore) Update(ctx context.Context, id string, patch domain.HazardPatch) (bool, error) {
	const op = "service.HazardStore.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.hazards[id]
	if !ok {
		return false, nil
	}
	if patch.Status != nil && !cur.Status.CanTransition(*patch.Status) {
		return false, e.Wrap(op, e.ErrInvalidTransition)
	}
	if patch.Coordinates != nil {
		if err := geo.ValidateCoordinates(patch.Coordinates.Latitude, patch.Coordinates.Longitude); err != nil {
			return false, e.Wrap(op, err)
		}
	}

	next := cur.Clone()
	if patch.Type != nil {
		next.Type = *patch.Type
	}
	if patch.Coordinates != nil {
		next.Coordinates = *patch.Coordinates
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Confidence != nil {
		next.Confidence = *patch.Confidence
	}
	if patch.Severity != nil {
		next.Severity = *patch.Severity
	}
	if patch.DetectionCount != nil && *patch.DetectionCount >= 1 {
		next.DetectionCount = *patch.DetectionCount
	}
	if patch.ImageURL != nil {
		next.ImageURL = *patch.ImageURL
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.LocationName != nil {
		next.LocationName = *patch.LocationName
	}
	if patch.AutoResolveAfter != nil {
		next.AutoResolveAfter = *patch.AutoResolveAfter
	}
	if patch.RequiredGoneReports != nil {
		next.RequiredGoneReports = *patch.RequiredGoneReports
	}
	if next.Status == domain.HazardResolved && cur.Status != domain.HazardResolved &&
		len(next.ReportedGoneBy) < s.requiredLocked(next) {
		return false, e.Wrap(op, e.ErrInvalidTransition)
	}
	s.applyThresholdLocked(&next)
	next.LastUpdatedAt = s.now()

	s.hazards[id] = next
	s.persist(ctx)
	return true, nil
}

func (s *HazardStore) Get(id string) (domain.Hazard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hazards[id]
	if !ok {
		return domain.Hazard{}, false
	}
	return h.Clone(), true
}

// ListActive returns every hazard that is not resolved, newest first.
func (s *HazardStore) ListActive() []domain.Hazard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(true)
}

func (s *HazardStore) ListAll() []domain.Hazard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(false)
}

// Nearby returns live hazards within radius meters of (lat, lon), nearest first.
func (s *HazardStore) Nearby(lat, lon, radius float64) []domain.Hazard {
	if geo.ValidateCoordinates(lat, lon) != nil || radius <= 0 {
		return []domain.Hazard{}
	}
	bound := geo.BoundAround(lat, lon, radius)

	type hit struct {
		h domain.Hazard
		d float64
	}

	s.mu.Lock()
	hits := make([]hit, 0)
	for _, h := range s.hazards {
		if !h.Live() || !geo.InBound(bound, h.Coordinates.Latitude, h.Coordinates.Longitude) {
			continue
		}
		d := geo.DistanceMeters(lat, lon, h.Coordinates.Latitude, h.Coordinates.Longitude)
		if d <= radius {
			hits = append(hits, hit{h: h.Clone(), d: d})
		}
	}
	s.mu.Unlock()

	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]domain.Hazard, len(hits))
	for i := range hits {
		out[i] = hits[i].h
	}
	return out
}

// ConfirmStillThere records that device still sees the hazard. It returns
// false for unknown ids and repeat confirmations.
func (s *HazardStore) ConfirmStillThere(ctx context.Context, id, deviceID string) bool {
	return s.CastVote(ctx, id, deviceID, domain.VoteStillThere) == domain.VoteAccepted
}

// ReportGone records that device no longer sees the hazard. Reaching the
// gone threshold resolves it.
func (s *HazardStore) ReportGone(ctx context.Context, id, deviceID string) bool {
	return s.CastVote(ctx, id, deviceID, domain.VoteGone) == domain.VoteAccepted
}

// CastVote applies one device vote. The latest vote of a device wins: it is
// moved out of the opposite set. A gone report on a resolved hazard cannot
// be retracted.
func (s *HazardStore) CastVote(ctx context.Context, id, deviceID string, kind domain.VoteKind) domain.VoteResult {
	if deviceID == "" {
		return domain.VoteInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.hazards[id]
	if !ok {
		return domain.VoteUnknownHazard
	}

	h := cur.Clone()
	switch kind {
	case domain.VoteStillThere:
		if h.HasConfirmed(deviceID) {
			return domain.VoteAlreadyCast
		}
		if h.Status == domain.HazardResolved && h.HasReportedGone(deviceID) {
			return domain.VoteInvalid
		}
		h.ReportedGoneBy = remove(h.ReportedGoneBy, deviceID)
		h.ConfirmedBy = append(h.ConfirmedBy, deviceID)
	case domain.VoteGone:
		if h.HasReportedGone(deviceID) {
			return domain.VoteAlreadyCast
		}
		h.ConfirmedBy = remove(h.ConfirmedBy, deviceID)
		h.ReportedGoneBy = append(h.ReportedGoneBy, deviceID)
		s.applyThresholdLocked(&h)
	default:
		return domain.VoteInvalid
	}
	h.LastUpdatedAt = s.now()

	s.hazards[id] = h
	s.persist(ctx)

	if h.Status == domain.HazardResolved && cur.Status != domain.HazardResolved {
		s.logger.Info("hazard resolved by consensus",
			slog.String("hazard_id", id),
			slog.Int("gone_reports", len(h.ReportedGoneBy)))
	}
	return domain.VoteAccepted
}

// RecordRepeatDetection counts another independent detection of a live hazard.
func (s *HazardStore) RecordRepeatDetection(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hazards[id]
	if !ok || !h.Live() {
		return false
	}
	h = h.Clone()
	h.DetectionCount++
	h.LastUpdatedAt = s.now()
	s.hazards[id] = h
	s.persist(ctx)
	return true
}

// MarkStale moves active hazards untouched for longer than their TTL to
// resolving, and resolving hazards refreshed inside it back to active.
// defaultTTL applies to records without their own AutoResolveAfter; zero
// disables the sweep for those records. Sweep changes leave LastUpdatedAt
// alone; it is the staleness clock.
func (s *HazardStore) MarkStale(ctx context.Context, defaultTTL time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	changed := 0
	for id, h := range s.hazards {
		ttl := h.AutoResolveAfter
		if ttl <= 0 {
			ttl = defaultTTL
		}
		if ttl <= 0 {
			continue
		}
		stale := now.Sub(h.LastUpdatedAt) > ttl

		var next domain.HazardStatus
		switch {
		case h.Status == domain.HazardActive && stale:
			next = domain.HazardResolving
		case h.Status == domain.HazardResolving && !stale:
			next = domain.HazardActive
		default:
			continue
		}
		h = h.Clone()
		h.Status = next
		s.hazards[id] = h
		changed++
	}
	if changed > 0 {
		s.persist(ctx)
	}
	return changed
}

// RequiredReports is the number of gone reports that resolves h.
func (s *HazardStore) RequiredReports(h domain.Hazard) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requiredLocked(h)
}

func (s *HazardStore) Stats() domain.HazardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := domain.HazardStats{ByType: make(map[domain.HazardType]int)}
	for _, h := range s.hazards {
		st.Total++
		st.ByType[h.Type]++
		switch h.Status {
		case domain.HazardActive:
			st.Active++
		case domain.HazardResolving:
			st.Resolving++
		case domain.HazardResolved:
			st.Resolved++
		}
	}
	return st
}

// ClearAll drops every record and persists the empty set.
func (s *HazardStore) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hazards = make(map[string]domain.Hazard)
	s.persist(ctx)
}

// Seed adds hazards only when the store is empty and returns how many were added.
func (s *HazardStore) Seed(ctx context.Context, hazards []domain.Hazard) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.hazards) > 0 || len(hazards) == 0 {
		return 0
	}
	for _, h := range hazards {
		s.addLocked(h)
	}
	s.persist(ctx)
	return len(hazards)
}

func (s *HazardStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hazards)
}

func remove(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func without(ids, drop []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		keep := true
		for _, d := range drop {
			if id == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, id)
		}
	}
	return out
}
