package geo

import (
	"fmt"
	"math"
)

// ECEFIterations is the fixed number of fixed-point refinements ECEFToGeo
// performs. It is not a convergence loop: for heights from the surface to a
// few hundred kilometers five rounds keep latitude within about 1e-9 degrees
// and height within a millimeter, which is the precision this package
// targets. Changing it changes both cost and precision.
const ECEFIterations = 5

// ecefMinRadius is e²·N at the pole. Closer to the centre the fixed-point
// denominator p(1 - e²N/(N+h)) can turn negative and the latitude leaves
// [-90, 90].
var ecefMinRadius = WGS84E2 * primeVerticalRadius(math.Pi/2)

// GeoToECEF converts g to WGS-84 Earth-Centered-Earth-Fixed coordinates in
// meters. An unspecified altitude is treated as height 0 on the ellipsoid.
func GeoToECEF(g GeoCoordinate) (CartesianCoordinate, error) {
	if err := g.Validate(); err != nil {
		return CartesianCoordinate{}, err
	}

	lat := g.Latitude * degToRad
	lon := g.Longitude * degToRad
	h := g.Height()
	n := primeVerticalRadius(lat)

	return CartesianCoordinate{
		X: (n + h) * math.Cos(lat) * math.Cos(lon),
		Y: (n + h) * math.Cos(lat) * math.Sin(lon),
		Z: (n*(1-WGS84E2) + h) * math.Sin(lat),
	}, nil
}

// ECEFToGeo converts WGS-84 ECEF coordinates in meters back to geodetic
// latitude, longitude and ellipsoidal height.
//
// Longitude is closed-form. Latitude and height are refined by exactly
// ECEFIterations rounds of the fixed-point scheme seeded from the
// zero-height latitude atan2(z, p(1-e²)); the result is an approximation
// bounded by that iteration count, not exact geodesy. The returned altitude
// is always set.
//
// Points closer to the centre than ecefMinRadius have no usable geodetic
// solution and are rejected with ErrDomain, as is the origin.
func ECEFToGeo(c CartesianCoordinate) (GeoCoordinate, error) {
	if err := c.Validate(); err != nil {
		return GeoCoordinate{}, err
	}
	if r := c.Norm(); r < ecefMinRadius {
		return GeoCoordinate{}, fmt.Errorf("%w: ECEF point %v m from the centre is inside %v m", ErrDomain, r, ecefMinRadius)
	}

	p := math.Hypot(c.X, c.Y)
	if p == 0 {
		// On the polar axis cos(lat) is zero and the iteration degenerates.
		h := math.Abs(c.Z) - WGS84B
		return GeoCoordinate{
			Latitude:  math.Copysign(90, c.Z),
			Longitude: 0,
			Altitude:  &h,
		}, nil
	}

	lon := math.Atan2(c.Y, c.X)
	lat := math.Atan2(c.Z, p*(1-WGS84E2))

	for i := 0; i < ECEFIterations; i++ {
		n := primeVerticalRadius(lat)
		h := p/math.Cos(lat) - n
		lat = math.Atan2(c.Z, p*(1-WGS84E2*n/(n+h)))
	}

	h := p/math.Cos(lat) - primeVerticalRadius(lat)

	g := GeoCoordinate{
		Latitude:  lat * radToDeg,
		Longitude: lon * radToDeg,
		Altitude:  &h,
	}
	if err := g.Validate(); err != nil {
		return GeoCoordinate{}, fmt.Errorf("ECEF point (%v, %v, %v): %w", c.X, c.Y, c.Z, err)
	}
	return g, nil
}
