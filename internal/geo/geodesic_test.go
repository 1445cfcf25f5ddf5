package geo

import (
	"errors"
	"math"
	"testing"
)

func TestBearingDistance_SamePoint(t *testing.T) {
	points := []GeoCoordinate{
		{},
		{Latitude: 24.786667, Longitude: 120.996944},
		{Latitude: -33.8688, Longitude: 151.2093, Altitude: Alt(58)},
		{Latitude: 90, Longitude: 0},
		{Latitude: -90, Longitude: 180},
	}
	for _, p := range points {
		bearing, distance, err := BearingDistance(p, p)
		if err != nil {
			t.Fatalf("BearingDistance(%+v): %v", p, err)
		}
		if distance != 0 {
			t.Errorf("distance(%+v, same) = %v, want 0", p, distance)
		}
		if bearing != 0 {
			t.Errorf("bearing(%+v, same) = %v, want 0", p, bearing)
		}
	}
}

func TestBearingDistance_OneDegreeEast(t *testing.T) {
	bearing, distance, err := BearingDistance(
		GeoCoordinate{Latitude: 0, Longitude: 0},
		GeoCoordinate{Latitude: 0, Longitude: 1},
	)
	if err != nil {
		t.Fatalf("BearingDistance: %v", err)
	}
	if math.Abs(bearing-90) > 1e-9 {
		t.Errorf("bearing = %v, want 90", bearing)
	}

	want := EarthRadiusKm * 1000 * math.Pi / 180
	if math.Abs(distance-want) > 1e-6 {
		t.Errorf("distance = %v, want %v", distance, want)
	}
	// Within 0.2% of the ellipsoidal equatorial degree (111,319 m).
	if math.Abs(distance-111319)/111319 > 0.002 {
		t.Errorf("distance = %v, too far from 111319", distance)
	}
}

func TestBearingDistance_Cardinals(t *testing.T) {
	origin := GeoCoordinate{Latitude: 10, Longitude: 10}
	tests := []struct {
		name string
		to   GeoCoordinate
		want float64
	}{
		{"north", GeoCoordinate{Latitude: 11, Longitude: 10}, 0},
		{"south", GeoCoordinate{Latitude: 9, Longitude: 10}, 180},
		{"west", GeoCoordinate{Latitude: 10, Longitude: 9.999}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bearing, _, err := BearingDistance(origin, tt.to)
			if err != nil {
				t.Fatalf("BearingDistance: %v", err)
			}
			if math.Abs(bearing-tt.want) > 0.01 {
				t.Errorf("bearing = %v, want %v", bearing, tt.want)
			}
			if bearing < 0 || bearing >= 360 {
				t.Errorf("bearing %v outside [0, 360)", bearing)
			}
		})
	}
}

func TestDestinationPoint_InvertsBearingDistance(t *testing.T) {
	pairs := [][2]GeoCoordinate{
		{{Latitude: 24.786667, Longitude: 120.996944}, {Latitude: 25.033, Longitude: 121.565}},
		{{Latitude: 51.5, Longitude: -0.1276}, {Latitude: 48.8566, Longitude: 2.3522}},
		{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: -35.2809, Longitude: 149.13}},
		{{Latitude: 0, Longitude: 179.5}, {Latitude: 1, Longitude: -179.5}},
		{{Latitude: 60, Longitude: 10}, {Latitude: 59.9, Longitude: 10.0001}},
	}
	for _, pair := range pairs {
		p1, p2 := pair[0], pair[1]
		bearing, distance, err := BearingDistance(p1, p2)
		if err != nil {
			t.Fatalf("BearingDistance: %v", err)
		}
		got, err := DestinationPoint(p1, bearing, distance)
		if err != nil {
			t.Fatalf("DestinationPoint: %v", err)
		}
		if math.Abs(got.Latitude-p2.Latitude) > 1e-6 || math.Abs(got.Longitude-p2.Longitude) > 1e-6 {
			t.Errorf("%+v -> %+v: got (%v, %v)", p1, p2, got.Latitude, got.Longitude)
		}
	}
}

func TestDestinationPoint_KeepsAltitude(t *testing.T) {
	start := GeoCoordinate{Latitude: 10, Longitude: 20, Altitude: Alt(123.5)}
	got, err := DestinationPoint(start, 45, 10000)
	if err != nil {
		t.Fatalf("DestinationPoint: %v", err)
	}
	if got.Altitude == nil || *got.Altitude != 123.5 {
		t.Fatalf("altitude = %v, want 123.5", got.Altitude)
	}
	if got.Altitude == start.Altitude {
		t.Errorf("destination shares altitude pointer with start")
	}

	got, err = DestinationPoint(GeoCoordinate{Latitude: 10, Longitude: 20}, 45, 10000)
	if err != nil {
		t.Fatalf("DestinationPoint: %v", err)
	}
	if got.Altitude != nil {
		t.Errorf("altitude = %v, want nil", *got.Altitude)
	}
}

func TestDestinationPoint_WrapsAntimeridian(t *testing.T) {
	oneDegree := EarthRadiusKm * 1000 * math.Pi / 180

	got, err := DestinationPoint(GeoCoordinate{Latitude: 0, Longitude: 179.5}, 90, oneDegree)
	if err != nil {
		t.Fatalf("DestinationPoint: %v", err)
	}
	if math.Abs(got.Longitude+179.5) > 1e-9 {
		t.Errorf("longitude = %v, want -179.5", got.Longitude)
	}

	got, err = DestinationPoint(GeoCoordinate{Latitude: 0, Longitude: 179}, 90, oneDegree)
	if err != nil {
		t.Fatalf("DestinationPoint: %v", err)
	}
	if got.Longitude <= -180 || got.Longitude > 180 || math.Abs(math.Abs(got.Longitude)-180) > 1e-9 {
		t.Errorf("longitude = %v, want 180", got.Longitude)
	}
}

func TestDestinationPoint_DomainErrors(t *testing.T) {
	if _, err := DestinationPoint(GeoCoordinate{}, math.NaN(), 10); !errors.Is(err, ErrDomain) {
		t.Errorf("NaN bearing err = %v, want ErrDomain", err)
	}
	if _, err := DestinationPoint(GeoCoordinate{}, 10, math.Inf(1)); !errors.Is(err, ErrDomain) {
		t.Errorf("Inf distance err = %v, want ErrDomain", err)
	}
	if _, err := DestinationPoint(GeoCoordinate{Latitude: 95}, 10, 10); !errors.Is(err, ErrDomain) {
		t.Errorf("latitude 95 err = %v, want ErrDomain", err)
	}
	if _, _, err := BearingDistance(GeoCoordinate{}, GeoCoordinate{Longitude: -181}); !errors.Is(err, ErrDomain) {
		t.Errorf("longitude -181 err = %v, want ErrDomain", err)
	}
}

func TestNormalizeLongitude(t *testing.T) {
	tests := map[float64]float64{
		-180: 180,
		180:  180,
		540:  180,
		-190: 170,
		190:  -170,
		0:    0,
		-0.5: -0.5,
	}
	for in, want := range tests {
		if got := normalizeLongitude(in); math.Abs(got-want) > 1e-12 {
			t.Errorf("normalizeLongitude(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeBearing(t *testing.T) {
	tests := map[float64]float64{
		-90:    270,
		360:    0,
		-450:   270,
		45:     45,
		-1e-15: 0,
	}
	for in, want := range tests {
		if got := normalizeBearing(in); math.Abs(got-want) > 1e-12 {
			t.Errorf("normalizeBearing(%v) = %v, want %v", in, got, want)
		}
	}
}
