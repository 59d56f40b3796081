package service

import (
	"time"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

// SampleHazards is a small Chennai demo set used to populate an empty store.
func SampleHazards(now time.Time) []domain.Hazard {
	return []domain.Hazard{
		{
			Type:            domain.HazardPothole,
			Coordinates:     domain.Coordinates{Latitude: 13.0827, Longitude: 80.2707},
			FirstDetectedAt: now.Add(-2 * time.Hour),
			DetectedBy:      domain.SourceCamera,
			Confidence:      92,
			Severity:        domain.SeverityMedium,
			ConfirmedBy:     []string{"device-a", "device-b"},
			DetectionCount:  3,
			Description:     "Deep pothole in the left lane",
			LocationName:    "Anna Salai",
		},
		{
			Type:            domain.HazardConstruction,
			Coordinates:     domain.Coordinates{Latitude: 13.0604, Longitude: 80.2496},
			FirstDetectedAt: now.Add(-26 * time.Hour),
			DetectedBy:      domain.SourceNetwork,
			Confidence:      100,
			Severity:        domain.SeverityLow,
			DetectionCount:  1,
			Description:     "Metro works, lane narrowed",
			LocationName:    "Nungambakkam High Road",
		},
		{
			Type:            domain.HazardFlood,
			Coordinates:     domain.Coordinates{Latitude: 13.0418, Longitude: 80.2341},
			FirstDetectedAt: now.Add(-45 * time.Minute),
			DetectedBy:      domain.SourceUserReport,
			Confidence:      75,
			Severity:        domain.SeverityHigh,
			ConfirmedBy:     []string{"device-c"},
			ReportedGoneBy:  []string{"device-d"},
			DetectionCount:  2,
			Description:     "Waterlogging under the subway",
			LocationName:    "T. Nagar",
		},
		{
			Type:            domain.HazardDebris,
			Coordinates:     domain.Coordinates{Latitude: 13.0067, Longitude: 80.2206},
			FirstDetectedAt: now.Add(-10 * time.Minute),
			DetectedBy:      domain.SourceV2X,
			Confidence:      88,
			Severity:        domain.SeverityHigh,
			DetectionCount:  1,
			Description:     "Fallen branch across the road",
			LocationName:    "Guindy",
		},
	}
}
