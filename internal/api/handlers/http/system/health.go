package system

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/render"
)

type TrackingStatus interface {
	IsActive() bool
}

type HazardCounter interface {
	Len() int
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Tracking  bool      `json:"tracking"`
	Hazards   int       `json:"hazards"`
	VehicleID string    `json:"vehicle_id"`
	Time      time.Time `json:"time"`
}

type Handler struct {
	logger    *slog.Logger
	tracking  TrackingStatus
	hazards   HazardCounter
	vehicleID string
}

func NewHandler(logger *slog.Logger, tracking TrackingStatus, hazards HazardCounter, vehicleID string) *Handler {
	return &Handler{logger: logger, tracking: tracking, hazards: hazards, vehicleID: vehicleID}
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    "ok",
		Tracking:  h.tracking.IsActive(),
		Hazards:   h.hazards.Len(),
		VehicleID: h.vehicleID,
		Time:      time.Now().UTC(),
	})
}
