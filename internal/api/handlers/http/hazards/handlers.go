package hazards

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/middleware"
	"github.com/Harissh-lab/arm-scout/pkg/e"
	"github.com/Harissh-lab/arm-scout/pkg/geo"
)

const defaultNearbyRadius = 1000.0

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type HazardStore interface {
	Add(ctx context.Context, h domain.Hazard) string
	Get(id string) (domain.Hazard, bool)
	Update(ctx context.Context, id string, patch domain.HazardPatch) (bool, error)
	ListActive() []domain.Hazard
	ListAll() []domain.Hazard
	Nearby(lat, lon, radius float64) []domain.Hazard
	Stats() domain.HazardStats
}

type Voter interface {
	Confirm(ctx context.Context, hazardID, deviceID string) domain.VoteResult
	ReportGone(ctx context.Context, hazardID, deviceID string) domain.VoteResult
	Progress(hazardID string) (domain.ResolutionProgress, bool)
}

type Handler struct {
	logger *slog.Logger
	Store  HazardStore
	Votes  Voter
}

func NewHandler(logger *slog.Logger, store HazardStore, votes Voter) *Handler {
	return &Handler{
		logger: logger,
		Store:  store,
		Votes:  votes,
	}
}

func (h *Handler) HazardList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var list []domain.Hazard
	switch r.URL.Query().Get("status") {
	case "", "active":
		list = h.Store.ListActive()
	case "all":
		list = h.Store.ListAll()
	default:
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be active or all"})
		return
	}

	l.Debug("hazards listed", slog.Int("count", len(list)))
	h.writeJSON(w, http.StatusOK, domain.ListHazardsResponse{Hazards: list, Total: len(list)})
}

func (h *Handler) HazardCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CreateHazardRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	id := h.Store.Add(r.Context(), req.ToHazard())
	created, ok := h.Store.Get(id)
	if !ok {
		h.handleError(w, r, e.ErrInternal)
		return
	}

	l.Info("hazard reported",
		slog.String("id", id),
		slog.String("type", string(created.Type)),
		slog.String("detected_by", string(created.DetectedBy)))
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) HazardStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.Store.Stats())
}

func (h *Handler) HazardNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng are required"})
		return
	}
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		h.handleError(w, r, err)
		return
	}

	radius := parseFloat(q.Get("radius_m"), defaultNearbyRadius)
	if radius <= 0 || radius > 50000 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius_m must be in (0, 50000]"})
		return
	}

	list := h.Store.Nearby(lat, lng, radius)
	h.writeJSON(w, http.StatusOK, domain.ListHazardsResponse{Hazards: list, Total: len(list)})
}

func (h *Handler) HazardGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hz, ok := h.Store.Get(id)
	if !ok {
		h.handleError(w, r, e.ErrNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, hz)
}

func (h *Handler) HazardUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	id := chi.URLParam(r, "id")

	var patch domain.HazardPatch
	if err := middleware.Bind(w, r, &patch); err != nil {
		h.handleError(w, r, err)
		return
	}

	ok, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.handleError(w, r, e.ErrNotFound)
		return
	}

	updated, _ := h.Store.Get(id)
	l.Info("hazard updated", slog.String("id", id), slog.String("status", string(updated.Status)))
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) HazardConfirm(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, domain.VoteStillThere)
}

func (h *Handler) HazardGone(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, domain.VoteGone)
}

func (h *Handler) vote(w http.ResponseWriter, r *http.Request, kind domain.VoteKind) {
	l := h.log(r)
	id := chi.URLParam(r, "id")

	var req domain.VoteRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	var res domain.VoteResult
	if kind == domain.VoteGone {
		res = h.Votes.ReportGone(r.Context(), id, req.DeviceID)
	} else {
		res = h.Votes.Confirm(r.Context(), id, req.DeviceID)
	}

	l.Info("vote",
		slog.String("hazard_id", id),
		slog.String("device_id", req.DeviceID),
		slog.String("kind", string(kind)),
		slog.String("result", res.String()))

	resp := domain.VoteResponse{HazardID: id, Result: res.String()}
	if hz, ok := h.Store.Get(id); ok {
		resp.Status = hz.Status
	}
	h.writeJSON(w, voteStatus(res), resp)
}

func (h *Handler) HazardProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := h.Votes.Progress(id)
	if !ok {
		h.handleError(w, r, e.ErrNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}
