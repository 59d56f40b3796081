package domain

import "time"

type PositionFix struct {
	Latitude       float64   `json:"latitude" validate:"lat"`
	Longitude      float64   `json:"longitude" validate:"lng"`
	AccuracyMeters float64   `json:"accuracy_m" validate:"min=0"`
	Timestamp      time.Time `json:"timestamp"`
	SpeedMPS       float64   `json:"speed_mps" validate:"min=0"`
	HeadingDegrees float64   `json:"heading_deg" validate:"min=0,max=360"`
}

type PositionResponse struct {
	Fix    *PositionFix `json:"fix"`
	Active bool         `json:"active"`
}
