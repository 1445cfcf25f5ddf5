package geo

import (
	"errors"
	"math"
	"testing"
)

func TestGeoToCartesian_EquatorPrimeMeridian(t *testing.T) {
	c, err := GeoToCartesian(GeoCoordinate{Latitude: 0, Longitude: 0})
	if err != nil {
		t.Fatalf("GeoToCartesian: %v", err)
	}
	if c.X != 6371.0 || c.Y != 0 || c.Z != 0 {
		t.Fatalf("got %+v, want {6371 0 0}", c)
	}
}

func TestGeoToCartesian_AltitudeScalesRadius(t *testing.T) {
	c, err := GeoToCartesian(GeoCoordinate{Latitude: 0, Longitude: 90, Altitude: Alt(1000)})
	if err != nil {
		t.Fatalf("GeoToCartesian: %v", err)
	}
	if math.Abs(c.Y-6372.0) > 1e-9 {
		t.Errorf("Y = %v, want 6372 km", c.Y)
	}
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Z) > 1e-9 {
		t.Errorf("X, Z = %v, %v, want ~0", c.X, c.Z)
	}

	north, err := GeoToCartesian(GeoCoordinate{Latitude: 90, Longitude: 0})
	if err != nil {
		t.Fatalf("GeoToCartesian: %v", err)
	}
	if math.Abs(north.Z-EarthRadiusKm) > 1e-9 {
		t.Errorf("north pole Z = %v, want %v", north.Z, EarthRadiusKm)
	}
}

func TestSphereRoundTrip_NoAltitude(t *testing.T) {
	for _, lat := range []float64{-89.5, -45, -12.25, 0, 24.786667, 60, 89.5} {
		for _, lon := range []float64{-179.5, -90, -0.5, 0, 45, 120.996944, 179.5} {
			in := GeoCoordinate{Latitude: lat, Longitude: lon}
			c, err := GeoToCartesian(in)
			if err != nil {
				t.Fatalf("GeoToCartesian(%v, %v): %v", lat, lon, err)
			}
			out, err := CartesianToGeo(c)
			if err != nil {
				t.Fatalf("CartesianToGeo(%+v): %v", c, err)
			}
			if math.Abs(out.Latitude-lat) > 1e-6 || math.Abs(out.Longitude-lon) > 1e-6 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", lat, lon, out.Latitude, out.Longitude)
			}
			if out.Altitude != nil {
				t.Errorf("round trip (%v, %v) altitude = %v, want nil", lat, lon, *out.Altitude)
			}
		}
	}
}

func TestSphereRoundTrip_WithAltitude(t *testing.T) {
	for _, alt := range []float64{-420, 1, 1500, 550000} {
		in := GeoCoordinate{Latitude: 24.786667, Longitude: 120.996944, Altitude: Alt(alt)}
		c, err := GeoToCartesian(in)
		if err != nil {
			t.Fatalf("GeoToCartesian: %v", err)
		}
		out, err := CartesianToGeo(c)
		if err != nil {
			t.Fatalf("CartesianToGeo: %v", err)
		}
		if out.Altitude == nil {
			t.Fatalf("altitude %v lost in round trip", alt)
		}
		if math.Abs(*out.Altitude-alt) > 1e-6 {
			t.Errorf("altitude %v -> %v", alt, *out.Altitude)
		}
	}
}

func TestCartesianToGeo_SmallAltitudeIsUnspecified(t *testing.T) {
	// 5 cm below and above the sphere both collapse to nil.
	for _, r := range []float64{EarthRadiusKm - 0.00005, EarthRadiusKm + 0.00005} {
		g, err := CartesianToGeo(CartesianCoordinate{X: r})
		if err != nil {
			t.Fatalf("CartesianToGeo: %v", err)
		}
		if g.Altitude != nil {
			t.Errorf("r=%v altitude = %v, want nil", r, *g.Altitude)
		}
	}

	g, err := CartesianToGeo(CartesianCoordinate{X: EarthRadiusKm - 0.001})
	if err != nil {
		t.Fatalf("CartesianToGeo: %v", err)
	}
	if g.Altitude == nil || math.Abs(*g.Altitude+1) > 1e-6 {
		t.Errorf("1 m below sphere altitude = %v, want -1", g.Altitude)
	}
}

func TestSphere_DomainErrors(t *testing.T) {
	if _, err := CartesianToGeo(CartesianCoordinate{}); !errors.Is(err, ErrDomain) {
		t.Errorf("zero vector err = %v, want ErrDomain", err)
	}
	if _, err := CartesianToGeo(CartesianCoordinate{X: math.NaN()}); !errors.Is(err, ErrDomain) {
		t.Errorf("NaN vector err = %v, want ErrDomain", err)
	}

	bad := []GeoCoordinate{
		{Latitude: 90.0001},
		{Latitude: -91},
		{Longitude: 180.5},
		{Latitude: math.NaN()},
		{Longitude: math.Inf(-1)},
		{Altitude: Alt(math.Inf(1))},
	}
	for _, g := range bad {
		if _, err := GeoToCartesian(g); !errors.Is(err, ErrDomain) {
			t.Errorf("GeoToCartesian(%+v) err = %v, want ErrDomain", g, err)
		}
	}
}

func TestCartesianToGeo_LargeVectors(t *testing.T) {
	g, err := CartesianToGeo(CartesianCoordinate{X: 1e200, Y: 1e200})
	if err != nil {
		t.Fatalf("CartesianToGeo: %v", err)
	}
	if g.Altitude == nil || math.IsInf(*g.Altitude, 0) || math.IsNaN(*g.Altitude) {
		t.Fatalf("altitude = %v, want finite", g.Altitude)
	}
	if math.Abs(g.Latitude) > 1e-12 || math.Abs(g.Longitude-45) > 1e-12 {
		t.Errorf("got (%v, %v), want (0, 45)", g.Latitude, g.Longitude)
	}

	for _, c := range []CartesianCoordinate{
		{X: 1e308, Y: 1e308},
		{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
	} {
		if _, err := CartesianToGeo(c); !errors.Is(err, ErrDomain) {
			t.Errorf("CartesianToGeo(%+v) err = %v, want ErrDomain", c, err)
		}
	}
}

func TestNorm_NoOverflow(t *testing.T) {
	c := CartesianCoordinate{X: 3e200, Y: 4e200}
	if got := c.Norm(); math.Abs(got-5e200)/5e200 > 1e-15 {
		t.Errorf("Norm = %v, want 5e200", got)
	}
	if got := (CartesianCoordinate{X: 1, Y: 2, Z: 2}).Norm(); got != 3 {
		t.Errorf("Norm = %v, want 3", got)
	}
}
