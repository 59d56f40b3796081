package domain

import (
	"slices"
	"time"
)

type HazardType string

const (
	HazardDebris       HazardType = "debris"
	HazardPothole      HazardType = "pothole"
	HazardRoadblock    HazardType = "roadblock"
	HazardAccident     HazardType = "accident"
	HazardFlood        HazardType = "flood"
	HazardConstruction HazardType = "construction"
)

var HazardTypes = []HazardType{
	HazardDebris, HazardPothole, HazardRoadblock, HazardAccident, HazardFlood, HazardConstruction,
}

func (t HazardType) Valid() bool { return slices.Contains(HazardTypes, t) }

type Provenance string

const (
	SourceCamera     Provenance = "camera"
	SourceUserReport Provenance = "user-report"
	SourceNetwork    Provenance = "network"
	SourceV2X        Provenance = "v2x"
)

func (p Provenance) Valid() bool {
	switch p {
	case SourceCamera, SourceUserReport, SourceNetwork, SourceV2X:
		return true
	}
	return false
}

type HazardStatus string

const (
	HazardActive    HazardStatus = "active"
	HazardResolving HazardStatus = "resolving"
	HazardResolved  HazardStatus = "resolved"
)

func (s HazardStatus) Valid() bool {
	return s == HazardActive || s == HazardResolving || s == HazardResolved
}

// CanTransition reports whether a status change is allowed. Resolved is terminal.
func (s HazardStatus) CanTransition(to HazardStatus) bool {
	if s == to {
		return true
	}
	return s != HazardResolved && to.Valid()
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func (s Severity) Valid() bool {
	return s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}

// DefaultSeverity is used for camera detections, which carry no severity of their own.
func DefaultSeverity(t HazardType) Severity {
	switch t {
	case HazardAccident, HazardRoadblock, HazardFlood, HazardDebris:
		return SeverityHigh
	case HazardPothole:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
}

type Hazard struct {
	ID              string       `json:"id"`
	Type            HazardType   `json:"type"`
	Coordinates     Coordinates  `json:"coordinates"`
	FirstDetectedAt time.Time    `json:"first_detected_at"`
	LastUpdatedAt   time.Time    `json:"last_updated_at"`
	DetectedBy      Provenance   `json:"detected_by"`
	Status          HazardStatus `json:"status"`
	Confidence      int          `json:"confidence"` // 0..100
	Severity        Severity     `json:"severity"`
	ConfirmedBy     []string     `json:"confirmed_by"`
	ReportedGoneBy  []string     `json:"reported_gone_by"`
	DetectionCount  int          `json:"detection_count"`
	ImageURL        string       `json:"image_url,omitempty"`
	Description     string       `json:"description,omitempty"`
	LocationName    string       `json:"location_name,omitempty"`

	// per-record policy, zero means store defaults
	AutoResolveAfter    time.Duration `json:"auto_resolve_after,omitempty"`
	RequiredGoneReports int           `json:"required_gone_reports,omitempty"`
}

func (h Hazard) Live() bool { return h.Status != HazardResolved }

func (h Hazard) HasConfirmed(deviceID string) bool {
	return slices.Contains(h.ConfirmedBy, deviceID)
}

func (h Hazard) HasReportedGone(deviceID string) bool {
	return slices.Contains(h.ReportedGoneBy, deviceID)
}

// Clone returns a copy that shares no slices with h.
func (h Hazard) Clone() Hazard {
	c := h
	c.ConfirmedBy = slices.Clone(h.ConfirmedBy)
	c.ReportedGoneBy = slices.Clone(h.ReportedGoneBy)
	if c.ConfirmedBy == nil {
		c.ConfirmedBy = []string{}
	}
	if c.ReportedGoneBy == nil {
		c.ReportedGoneBy = []string{}
	}
	return c
}

// HazardPatch is a partial update; nil fields are left unchanged.
type HazardPatch struct {
	Type                *HazardType    `json:"type" validate:"omitempty,hazard_type"`
	Coordinates         *Coordinates   `json:"coordinates"`
	Status              *HazardStatus  `json:"status" validate:"omitempty,oneof=active resolving resolved"`
	Confidence          *int           `json:"confidence" validate:"omitempty,min=0,max=100"`
	Severity            *Severity      `json:"severity" validate:"omitempty,severity"`
	DetectionCount      *int           `json:"detection_count" validate:"omitempty,min=1"`
	ImageURL            *string        `json:"image_url"`
	Description         *string        `json:"description"`
	LocationName        *string        `json:"location_name"`
	AutoResolveAfter    *time.Duration `json:"auto_resolve_after"`
	RequiredGoneReports *int           `json:"required_gone_reports" validate:"omitempty,min=1"`
}

type HazardStats struct {
	Total     int                `json:"total"`
	Active    int                `json:"active"`
	Resolving int                `json:"resolving"`
	Resolved  int                `json:"resolved"`
	ByType    map[HazardType]int `json:"by_type"`
}

type ResolutionProgress struct {
	HazardID         string       `json:"hazard_id"`
	Status           HazardStatus `json:"status"`
	GoneReports      int          `json:"gone_reports"`
	RequiredReports  int          `json:"required_reports"`
	RemainingReports int          `json:"remaining_reports"`
	Confirmations    int          `json:"confirmations"`
}
