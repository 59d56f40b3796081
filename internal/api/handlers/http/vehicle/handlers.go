package vehicle

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/middleware"
	"github.com/Harissh-lab/arm-scout/pkg/e"
)

const maxDetectionsPage = 1000

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Ingestor interface {
	Ingest(ctx context.Context, in domain.DetectionInput) (domain.Hazard, error)
	Simulate(ctx context.Context, t domain.HazardType) (domain.Hazard, error)
	Detections() []domain.Detection
}

type Tracker interface {
	Current() (domain.PositionFix, bool)
	IsActive() bool
	Update(ctx context.Context, fix domain.PositionFix) error
}

type AlertEvaluator interface {
	Evaluate() (domain.AlertBatch, bool)
}

type SimulateRequest struct {
	Type domain.HazardType `json:"type" validate:"omitempty,hazard_type"`
}

type DetectionsResponse struct {
	Detections []domain.Detection `json:"detections"`
	Total      int                `json:"total"`
}

type Handler struct {
	logger   *slog.Logger
	Ingestor Ingestor
	Tracker  Tracker
	Alerts   AlertEvaluator
}

func NewHandler(logger *slog.Logger, ingestor Ingestor, tracker Tracker, alerts AlertEvaluator) *Handler {
	return &Handler{
		logger:   logger,
		Ingestor: ingestor,
		Tracker:  tracker,
		Alerts:   alerts,
	}
}

func (h *Handler) DetectionCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var in domain.DetectionInput
	if err := middleware.Bind(w, r, &in); err != nil {
		h.handleError(w, r, err)
		return
	}

	hz, err := h.Ingestor.Ingest(r.Context(), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("detection ingested",
		slog.String("hazard_id", hz.ID),
		slog.String("type", string(hz.Type)),
		slog.Int("confidence", in.Confidence))
	h.writeJSON(w, http.StatusCreated, hz)
}

func (h *Handler) DetectionSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := middleware.BindOptional(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	hz, err := h.Ingestor.Simulate(r.Context(), req.Type)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("simulated detection", slog.String("hazard_id", hz.ID), slog.String("type", string(hz.Type)))
	h.writeJSON(w, http.StatusCreated, hz)
}

// DetectionList returns the detection log, newest first.
func (h *Handler) DetectionList(w http.ResponseWriter, r *http.Request) {
	list := h.Ingestor.Detections()
	total := len(list)

	limit := parseInt(r.URL.Query().Get("limit"), 100)
	if limit < 1 || limit > maxDetectionsPage {
		limit = maxDetectionsPage
	}
	if len(list) > limit {
		list = list[:limit]
	}

	h.writeJSON(w, http.StatusOK, DetectionsResponse{Detections: list, Total: total})
}

func (h *Handler) PositionGet(w http.ResponseWriter, r *http.Request) {
	resp := domain.PositionResponse{Active: h.Tracker.IsActive()}
	if fix, ok := h.Tracker.Current(); ok {
		resp.Fix = &fix
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PositionUpdate(w http.ResponseWriter, r *http.Request) {
	var fix domain.PositionFix
	if err := middleware.Bind(w, r, &fix); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Tracker.Update(r.Context(), fix); err != nil {
		h.handleError(w, r, err)
		return
	}

	current, _ := h.Tracker.Current()
	h.log(r).Debug("position updated",
		slog.Float64("lat", current.Latitude),
		slog.Float64("lng", current.Longitude))
	h.writeJSON(w, http.StatusOK, domain.PositionResponse{Fix: &current, Active: h.Tracker.IsActive()})
}

// AlertsGet runs one proximity evaluation against the current fix.
func (h *Handler) AlertsGet(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.Alerts.Evaluate()
	if !ok {
		h.handleError(w, r, e.ErrNoPosition)
		return
	}
	if batch.Alerts == nil {
		batch.Alerts = []domain.ProximityAlert{}
	}
	h.writeJSON(w, http.StatusOK, batch)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
