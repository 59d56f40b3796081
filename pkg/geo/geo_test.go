package geo_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Harissh-lab/arm-scout/pkg/e"
	"github.com/Harissh-lab/arm-scout/pkg/geo"
)

var points = [][2]float64{
	{13.0827, 80.2707},
	{13.0820, 80.2700},
	{55.75, 37.61},
	{-33.8688, 151.2093},
	{0, 0},
	{89.9, -179.9},
	{-45.5, 179.99},
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	t.Parallel()

	for _, a := range points {
		for _, b := range points {
			ab := geo.DistanceMeters(a[0], a[1], b[0], b[1])
			ba := geo.DistanceMeters(b[0], b[1], a[0], a[1])
			if diff := math.Abs(ab - ba); diff > 1e-6*math.Max(ab, 1) {
				t.Fatalf("distance not symmetric for %v %v: %v vs %v", a, b, ab, ba)
			}
		}
	}
}

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	t.Parallel()

	for _, p := range points {
		if d := geo.DistanceMeters(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("expected 0 for %v got %v", p, d)
		}
	}
}

func TestDistanceMeters_ChennaiExample(t *testing.T) {
	t.Parallel()

	d := geo.DistanceMeters(13.0820, 80.2700, 13.0827, 80.2707)
	if d >= 150 {
		t.Fatalf("expected < 150m got %v", d)
	}
	if d <= 50 {
		t.Fatalf("expected a real separation, got %v", d)
	}
}

func TestDistanceMeters_OneDegreeLatitude(t *testing.T) {
	t.Parallel()

	d := geo.DistanceMeters(0, 0, 1, 0)
	want := geo.EarthRadiusMeters * math.Pi / 180
	if math.Abs(d-want) > 1e-6 {
		t.Fatalf("got %v want %v", d, want)
	}
}

func TestBearingDegrees_Cardinal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"north", 0, 0, 1, 0, 0},
		{"east", 0, 0, 0, 1, 90},
		{"south", 1, 0, 0, 0, 180},
		{"west", 0, 1, 0, 0, 270},
	}
	for _, tc := range cases {
		got := geo.BearingDegrees(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestBearingDegrees_Range(t *testing.T) {
	t.Parallel()

	for _, a := range points {
		for _, b := range points {
			got := geo.BearingDegrees(a[0], a[1], b[0], b[1])
			if got < 0 || got >= 360 || math.IsNaN(got) {
				t.Fatalf("bearing out of range for %v %v: %v", a, b, got)
			}
		}
	}
}

func TestCompassLabel(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:     "N",
		22.4:  "N",
		22.5:  "NE",
		45:    "NE",
		90:    "E",
		135:   "SE",
		180:   "S",
		225:   "SW",
		270:   "W",
		315:   "NW",
		337.4: "NW",
		337.5: "N",
		359.9: "N",
		-90:   "W",
		450:   "E",
	}
	for bearing, want := range cases {
		if got := geo.CompassLabel(bearing); got != want {
			t.Fatalf("CompassLabel(%v) = %s want %s", bearing, got, want)
		}
	}
}

func TestCompassLabel_Total(t *testing.T) {
	t.Parallel()

	valid := map[string]bool{"N": true, "NE": true, "E": true, "SE": true, "S": true, "SW": true, "W": true, "NW": true}
	for b := -720.0; b <= 720; b += 0.5 {
		if l := geo.CompassLabel(b); !valid[l] {
			t.Fatalf("unexpected label %q for %v", l, b)
		}
	}
	if l := geo.CompassLabel(math.NaN()); !valid[l] {
		t.Fatalf("unexpected label %q for NaN", l)
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:     "0m",
		850:   "850m",
		999.4: "999m",
		1000:  "1.0km",
		1500:  "1.5km",
		12345: "12.3km",
	}
	for in, want := range cases {
		if got := geo.FormatDistance(in); got != want {
			t.Fatalf("FormatDistance(%v) = %s want %s", in, got, want)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	t.Parallel()

	if err := geo.ValidateCoordinates(13.08, 80.27); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	bad := [][2]float64{
		{math.NaN(), 0},
		{0, math.NaN()},
		{91, 0},
		{0, -181},
		{math.Inf(1), 0},
	}
	for _, p := range bad {
		if err := geo.ValidateCoordinates(p[0], p[1]); !errors.Is(err, e.ErrInvalidCoordinates) {
			t.Fatalf("expected ErrInvalidCoordinates for %v got %v", p, err)
		}
	}
}

func TestBoundAround_ContainsRadius(t *testing.T) {
	t.Parallel()

	lat, lon := 13.0820, 80.2700
	b := geo.BoundAround(lat, lon, 500)

	// points exactly at the radius in the four cardinal directions
	dLat := 500 / geo.EarthRadiusMeters * 180 / math.Pi
	dLon := dLat / math.Cos(lat*math.Pi/180)
	for _, p := range [][2]float64{{lat + dLat, lon}, {lat - dLat, lon}, {lat, lon + dLon*0.999}, {lat, lon - dLon*0.999}} {
		if !geo.InBound(b, p[0], p[1]) {
			t.Fatalf("expected %v inside bound %v", p, b)
		}
	}
	if geo.InBound(b, lat+0.1, lon) {
		t.Fatalf("far point should be outside")
	}
}

func TestBoundAround_Antimeridian(t *testing.T) {
	t.Parallel()

	b := geo.BoundAround(0, 179.999, 1000)
	if !geo.InBound(b, 0, -179.999) {
		t.Fatalf("expected wrap-around point inside bound %v", b)
	}
}
