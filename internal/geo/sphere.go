package geo

import (
	"fmt"
	"math"
)

// GeoToCartesian projects g onto a sphere of radius EarthRadiusKm and returns
// Earth-centred Cartesian coordinates in kilometers. A present altitude
// scales the vector by (R + alt_km) / R.
func GeoToCartesian(g GeoCoordinate) (CartesianCoordinate, error) {
	if err := g.Validate(); err != nil {
		return CartesianCoordinate{}, err
	}

	lat := g.Latitude * degToRad
	lon := g.Longitude * degToRad

	r := EarthRadiusKm
	if g.Altitude != nil {
		r += *g.Altitude / 1000.0
	}

	return CartesianCoordinate{
		X: r * math.Cos(lat) * math.Cos(lon),
		Y: r * math.Cos(lat) * math.Sin(lon),
		Z: r * math.Sin(lat),
	}, nil
}

// CartesianToGeo is the inverse of GeoToCartesian. The input is in
// kilometers on the spherical model. A computed altitude whose magnitude is
// below 0.1 m is reported as unspecified (nil), so surface points round
// trip to a nil altitude.
//
// The zero vector has no latitude and is rejected with ErrDomain.
func CartesianToGeo(c CartesianCoordinate) (GeoCoordinate, error) {
	if err := c.Validate(); err != nil {
		return GeoCoordinate{}, err
	}

	r := c.Norm()
	if r == 0 {
		return GeoCoordinate{}, fmt.Errorf("%w: zero-radius cartesian has no latitude", ErrDomain)
	}
	if !finite(r) {
		return GeoCoordinate{}, fmt.Errorf("%w: cartesian radius overflows (%v, %v, %v)", ErrDomain, c.X, c.Y, c.Z)
	}

	g := GeoCoordinate{
		Latitude:  clamp(math.Asin(clamp(c.Z/r, -1, 1))*radToDeg, -90, 90),
		Longitude: math.Atan2(c.Y, c.X) * radToDeg,
	}

	altitude := (r - EarthRadiusKm) * 1000.0
	if !finite(altitude) {
		return GeoCoordinate{}, fmt.Errorf("%w: altitude of radius %v km overflows", ErrDomain, r)
	}
	if math.Abs(altitude) >= altitudeEpsilon {
		g.Altitude = &altitude
	}

	return g, nil
}
