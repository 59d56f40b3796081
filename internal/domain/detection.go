package domain

import "time"

// DetectionInput is what an upstream classifier emits.
type DetectionInput struct {
	Type       HazardType `json:"type" validate:"required,hazard_type"`
	Confidence int        `json:"confidence" validate:"min=0,max=100"`
	ImageURL   string     `json:"image_url" validate:"omitempty,url"`
}

// Detection is a raw audit-log entry, separate from the hazard record it produced.
type Detection struct {
	ID             string      `json:"id"`
	HazardID       string      `json:"hazard_id"`
	Type           HazardType  `json:"type"`
	Coordinates    Coordinates `json:"coordinates"`
	AccuracyMeters float64     `json:"accuracy_m"`
	Confidence     int         `json:"confidence"`
	ImageURL       string      `json:"image_url,omitempty"`
	SpeedMPS       float64     `json:"speed_mps"`
	HeadingDegrees float64     `json:"heading_deg"`
	DetectedAt     time.Time   `json:"detected_at"`
	Merged         bool        `json:"merged,omitempty"`
}

type DetectionEvent struct {
	Detection Detection `json:"detection"`
	Hazard    Hazard    `json:"hazard"`
}
