package service

import (
	"math"
	"sort"

	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/pkg/geo"
)

const DefaultAlertRadiusMeters = 500.0

// CheckProximity returns an alert for every live hazard within radius
// meters of fix, nearest first. ETA is set only when the vehicle is moving.
func CheckProximity(fix domain.PositionFix, hazards []domain.Hazard, radius float64) []domain.ProximityAlert {
	alerts := make([]domain.ProximityAlert, 0)
	if geo.ValidateCoordinates(fix.Latitude, fix.Longitude) != nil {
		return alerts
	}

	type scored struct {
		alert domain.ProximityAlert
		exact float64
	}
	hits := make([]scored, 0, len(hazards))

	for _, h := range hazards {
		if !h.Live() {
			continue
		}
		if geo.ValidateCoordinates(h.Coordinates.Latitude, h.Coordinates.Longitude) != nil {
			continue
		}
		d := geo.DistanceMeters(fix.Latitude, fix.Longitude, h.Coordinates.Latitude, h.Coordinates.Longitude)
		if d > radius {
			continue
		}
		bearing := geo.BearingDegrees(fix.Latitude, fix.Longitude, h.Coordinates.Latitude, h.Coordinates.Longitude)

		a := domain.ProximityAlert{
			Hazard:         h.Clone(),
			DistanceMeters: int(math.Round(d)),
			BearingDegrees: bearing,
			Compass:        geo.CompassLabel(bearing),
			Distance:       geo.FormatDistance(d),
		}
		if fix.SpeedMPS > 0 && !math.IsInf(fix.SpeedMPS, 0) {
			eta := int(math.Round(d / fix.SpeedMPS))
			a.ETASeconds = &eta
		}
		hits = append(hits, scored{alert: a, exact: d})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].exact < hits[j].exact })
	for _, s := range hits {
		alerts = append(alerts, s.alert)
	}
	return alerts
}
