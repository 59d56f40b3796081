package domain

import "time"

type CreateHazardRequest struct {
	Type                HazardType    `json:"type" validate:"required,hazard_type"`
	Latitude            float64       `json:"lat" validate:"lat"`
	Longitude           float64       `json:"lng" validate:"lng"`
	DetectedBy          Provenance    `json:"detected_by" validate:"required,provenance"`
	Confidence          int           `json:"confidence" validate:"min=0,max=100"`
	Severity            Severity      `json:"severity" validate:"omitempty,severity"`
	DeviceID            string        `json:"device_id" validate:"omitempty,max=128"`
	ImageURL            string        `json:"image_url" validate:"omitempty,url"`
	Description         string        `json:"description" validate:"max=512"`
	LocationName        string        `json:"location_name" validate:"max=256"`
	AutoResolveAfter    time.Duration `json:"auto_resolve_after"`
	RequiredGoneReports int           `json:"required_gone_reports" validate:"min=0"`
}

// ToHazard builds the record handed to the store. The reporting device, if
// any, counts as the first confirmation.
func (r CreateHazardRequest) ToHazard() Hazard {
	sev := r.Severity
	if sev == "" {
		sev = DefaultSeverity(r.Type)
	}
	h := Hazard{
		Type:                r.Type,
		Coordinates:         Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
		DetectedBy:          r.DetectedBy,
		Status:              HazardActive,
		Confidence:          r.Confidence,
		Severity:            sev,
		DetectionCount:      1,
		ImageURL:            r.ImageURL,
		Description:         r.Description,
		LocationName:        r.LocationName,
		AutoResolveAfter:    r.AutoResolveAfter,
		RequiredGoneReports: r.RequiredGoneReports,
	}
	if r.DeviceID != "" {
		h.ConfirmedBy = []string{r.DeviceID}
	}
	return h
}

type VoteRequest struct {
	DeviceID string `json:"device_id" validate:"required,max=128"`
}

type VoteResponse struct {
	HazardID string       `json:"hazard_id"`
	Result   string       `json:"result"`
	Status   HazardStatus `json:"status,omitempty"`
}

type ListHazardsResponse struct {
	Hazards []Hazard `json:"hazards"`
	Total   int      `json:"total"`
}
