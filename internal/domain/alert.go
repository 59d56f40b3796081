package domain

import "time"

type ProximityAlert struct {
	Hazard         Hazard  `json:"hazard"`
	DistanceMeters int     `json:"distance_m"`
	BearingDegrees float64 `json:"bearing_deg"`
	Compass        string  `json:"compass"`
	Distance       string  `json:"distance"`
	ETASeconds     *int    `json:"eta_seconds,omitempty"`
}

// AlertBatch is what leaves the process through queue, MQTT and webhook sinks.
type AlertBatch struct {
	VehicleID   string           `json:"vehicle_id"`
	Position    PositionFix      `json:"position"`
	Alerts      []ProximityAlert `json:"alerts"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
}

type AlertsResponse struct {
	Alerts []ProximityAlert `json:"alerts"`
}
