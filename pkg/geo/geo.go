// Package geo holds the great-circle helpers used for proximity checks.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/Harissh-lab/arm-scout/pkg/e"
)

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6371000.0

var compassLabels = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func rad2deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// DistanceMeters is the haversine distance between two WGS-84 points given in degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// BearingDegrees is the initial bearing from point 1 to point 2, in [0, 360).
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := deg2rad(lat1)
	phi2 := deg2rad(lat2)
	dLon := deg2rad(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	return normalize(rad2deg(math.Atan2(y, x)))
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// CompassLabel buckets a bearing into one of eight 45 degree sectors.
func CompassLabel(bearing float64) string {
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return compassLabels[0]
	}
	idx := int(math.Round(normalize(bearing)/45)) % 8
	return compassLabels[idx]
}

func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return e.ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return e.ErrInvalidCoordinates
	}
	return nil
}

// BoundAround returns a box that contains every point within radius meters of
// (lat, lon). It is a cheap prefilter; callers still check exact distance.
func BoundAround(lat, lon, radius float64) orb.Bound {
	// orb measures with the equatorial radius, so pad to stay a superset.
	return orbgeo.NewBoundAroundPoint(orb.Point{lon, lat}, radius*orb.EarthRadius/EarthRadiusMeters+1)
}

// InBound reports whether (lat, lon) lies inside b, treating bounds that
// cross the antimeridian as wrapping.
func InBound(b orb.Bound, lat, lon float64) bool {
	if lat < b.Min.Lat() || lat > b.Max.Lat() {
		return false
	}
	minLon, maxLon := b.Min.Lon(), b.Max.Lon()
	switch {
	case minLon > maxLon:
		return lon >= minLon || lon <= maxLon
	case maxLon > 180:
		return lon >= minLon || lon <= maxLon-360
	case minLon < -180:
		return lon <= maxLon || lon >= minLon+360
	}
	return lon >= minLon && lon <= maxLon
}
