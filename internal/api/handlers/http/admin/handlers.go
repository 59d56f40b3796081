package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Harissh-lab/arm-scout/internal/render"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type HazardAdmin interface {
	ClearAll(ctx context.Context)
	Len() int
}

type DetectionAdmin interface {
	ClearDetections(ctx context.Context)
}

type Sweeper interface {
	SweepStale(ctx context.Context) int
}

type Handler struct {
	logger     *slog.Logger
	Hazards    HazardAdmin
	Detections DetectionAdmin
	Sweeper    Sweeper
}

func NewHandler(logger *slog.Logger, hazards HazardAdmin, detections DetectionAdmin, sweeper Sweeper) *Handler {
	return &Handler{
		logger:     logger,
		Hazards:    hazards,
		Detections: detections,
		Sweeper:    sweeper,
	}
}

func (h *Handler) AdminHazardsClear(w http.ResponseWriter, r *http.Request) {
	n := h.Hazards.Len()
	h.Hazards.ClearAll(r.Context())

	render.Logger(h.logger, r).Warn("all hazards cleared", slog.Int("removed", n), slog.String("remote", r.RemoteAddr))
	render.JSON(w, h.logger, http.StatusOK, map[string]int{"removed": n})
}

func (h *Handler) AdminDetectionsClear(w http.ResponseWriter, r *http.Request) {
	h.Detections.ClearDetections(r.Context())

	render.Logger(h.logger, r).Warn("detection log cleared", slog.String("remote", r.RemoteAddr))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminHazardsSweep(w http.ResponseWriter, r *http.Request) {
	n := h.Sweeper.SweepStale(r.Context())

	render.Logger(h.logger, r).Info("manual stale sweep", slog.Int("changed", n))
	render.JSON(w, h.logger, http.StatusOK, map[string]int{"changed": n})
}
