// Package geo handles geographic data structures and coordinate conversions.
//
// Two earth models live side by side and are exposed as separate operation
// families that must not be mixed:
//
//   - the spherical family (GeoToCartesian, CartesianToGeo, BearingDistance,
//     DestinationPoint) uses the mean Earth radius and works in kilometers
//     for Cartesian values;
//   - the WGS-84 family (GeoToECEF, ECEFToGeo, GeoToUTM, UTMToGeo) uses the
//     ellipsoid and works in meters.
//
// Every function is a pure function of its inputs and is safe for
// concurrent use. Inputs outside the mathematical domain are rejected with
// an error wrapping ErrDomain; no function returns NaN or Inf.
package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius of the spherical model (kilometers).
	EarthRadiusKm = 6371.0

	// WGS84A is the WGS-84 semi-major axis (meters).
	WGS84A = 6378137.0
	// WGS84F is the WGS-84 flattening.
	WGS84F = 1 / 298.257223563
	// WGS84B is the WGS-84 semi-minor axis (meters).
	WGS84B = WGS84A * (1 - WGS84F)
	// WGS84E2 is the first eccentricity squared, f(2-f).
	WGS84E2 = WGS84F * (2 - WGS84F)

	// altitudeEpsilon is the magnitude (meters) below which a computed
	// spherical altitude is reported as unspecified.
	altitudeEpsilon = 0.1
)

// ErrDomain is wrapped by every error caused by an input outside the valid
// mathematical domain of an operation.
var ErrDomain = errors.New("coordinate outside valid domain")

// GeoCoordinate is a geographic position. Latitude and Longitude are in
// degrees; Altitude is in meters above the reference surface, nil when
// unspecified.
type GeoCoordinate struct {
	Altitude  *float64 `json:"altitude,omitempty" yaml:"altitude,omitempty"`
	Latitude  float64  `json:"latitude" yaml:"latitude"`
	Longitude float64  `json:"longitude" yaml:"longitude"`
}

// CartesianCoordinate is a 3D position. The unit depends on the producing
// family: kilometers for the spherical model, meters for ECEF.
type CartesianCoordinate struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Alt returns a pointer to v, for building a GeoCoordinate with an altitude.
func Alt(v float64) *float64 {
	return &v
}

// Height returns the altitude in meters, treating unspecified as zero.
func (g GeoCoordinate) Height() float64 {
	if g.Altitude == nil {
		return 0
	}
	return *g.Altitude
}

// Validate reports whether g lies within the geographic domain.
func (g GeoCoordinate) Validate() error {
	if !finite(g.Latitude) || !finite(g.Longitude) {
		return fmt.Errorf("%w: non-finite latitude/longitude (%v, %v)", ErrDomain, g.Latitude, g.Longitude)
	}
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrDomain, g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrDomain, g.Longitude)
	}
	if g.Altitude != nil && !finite(*g.Altitude) {
		return fmt.Errorf("%w: non-finite altitude %v", ErrDomain, *g.Altitude)
	}
	return nil
}

// Norm returns the distance of c from the origin without intermediate
// overflow. It is +Inf only when the distance itself exceeds MaxFloat64.
func (c CartesianCoordinate) Norm() float64 {
	return math.Hypot(math.Hypot(c.X, c.Y), c.Z)
}

// Validate reports whether every component of c is finite.
func (c CartesianCoordinate) Validate() error {
	if !finite(c.X) || !finite(c.Y) || !finite(c.Z) {
		return fmt.Errorf("%w: non-finite cartesian (%v, %v, %v)", ErrDomain, c.X, c.Y, c.Z)
	}
	return nil
}

// UnmarshalJSON decodes g, requiring both latitude and longitude and
// rejecting unknown fields. A missing key is an error rather than zero.
func (g *GeoCoordinate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Altitude  *float64 `json:"altitude"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	if raw.Latitude == nil || raw.Longitude == nil {
		return errors.New("geo coordinate requires latitude and longitude")
	}

	*g = GeoCoordinate{Altitude: raw.Altitude, Latitude: *raw.Latitude, Longitude: *raw.Longitude}
	return nil
}

// UnmarshalJSON decodes c, requiring x, y and z and rejecting unknown fields.
func (c *CartesianCoordinate) UnmarshalJSON(data []byte) error {
	var raw struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
		Z *float64 `json:"z"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	if raw.X == nil || raw.Y == nil || raw.Z == nil {
		return errors.New("cartesian coordinate requires x, y and z")
	}

	*c = CartesianCoordinate{X: *raw.X, Y: *raw.Y, Z: *raw.Z}
	return nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
