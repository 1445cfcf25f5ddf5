package geo

import "fmt"

// Default scene frame: the scene origin (0, 0) sits at 24.786667 N,
// 120.996944 E and scene (100, 100) at 24.785833 N, 120.997778 E.
const (
	DefaultSceneOriginLatitude    = 24.786667
	DefaultSceneOriginLongitude   = 120.996944
	DefaultSceneLatitudePerUnitY  = -0.000834 / 100
	DefaultSceneLongitudePerUnitX = 0.000834 / 100
)

// SceneFrame maps local scene coordinates (the axis triples devices are
// placed with) to geographic coordinates with a linear origin/scale model.
// It is only meaningful over the small area a scene covers.
//
// Scene X runs east, scene Y runs along LatitudePerUnitY (south for the
// default frame) and scene Z is height in meters.
type SceneFrame struct {
	OriginLatitude    float64 `yaml:"origin_latitude" json:"origin_latitude"`
	OriginLongitude   float64 `yaml:"origin_longitude" json:"origin_longitude"`
	LatitudePerUnitY  float64 `yaml:"latitude_per_unit_y" json:"latitude_per_unit_y"`
	LongitudePerUnitX float64 `yaml:"longitude_per_unit_x" json:"longitude_per_unit_x"`
}

// DefaultSceneFrame returns the frame of the reference scene.
func DefaultSceneFrame() SceneFrame {
	return SceneFrame{
		OriginLatitude:    DefaultSceneOriginLatitude,
		OriginLongitude:   DefaultSceneOriginLongitude,
		LatitudePerUnitY:  DefaultSceneLatitudePerUnitY,
		LongitudePerUnitX: DefaultSceneLongitudePerUnitX,
	}
}

// Validate checks the origin is a valid position and both scales are
// finite and non-zero.
func (f SceneFrame) Validate() error {
	origin := GeoCoordinate{Latitude: f.OriginLatitude, Longitude: f.OriginLongitude}
	if err := origin.Validate(); err != nil {
		return fmt.Errorf("scene origin: %w", err)
	}
	if !finite(f.LatitudePerUnitY) || f.LatitudePerUnitY == 0 {
		return fmt.Errorf("%w: scene latitude scale %v", ErrDomain, f.LatitudePerUnitY)
	}
	if !finite(f.LongitudePerUnitX) || f.LongitudePerUnitX == 0 {
		return fmt.Errorf("%w: scene longitude scale %v", ErrDomain, f.LongitudePerUnitX)
	}
	return nil
}

// ToGeo converts a scene position to geographic coordinates. A zero z
// yields an unspecified altitude.
func (f SceneFrame) ToGeo(x, y, z float64) (GeoCoordinate, error) {
	if err := f.Validate(); err != nil {
		return GeoCoordinate{}, err
	}
	if !finite(x) || !finite(y) || !finite(z) {
		return GeoCoordinate{}, fmt.Errorf("%w: non-finite scene position (%v, %v, %v)", ErrDomain, x, y, z)
	}

	g := GeoCoordinate{
		Latitude:  f.OriginLatitude + y*f.LatitudePerUnitY,
		Longitude: f.OriginLongitude + x*f.LongitudePerUnitX,
	}
	if z != 0 {
		g.Altitude = Alt(z)
	}

	if err := g.Validate(); err != nil {
		return GeoCoordinate{}, err
	}
	return g, nil
}

// FromGeo is the inverse of ToGeo.
func (f SceneFrame) FromGeo(g GeoCoordinate) (x, y, z float64, err error) {
	if err := f.Validate(); err != nil {
		return 0, 0, 0, err
	}
	if err := g.Validate(); err != nil {
		return 0, 0, 0, err
	}

	x = (g.Longitude - f.OriginLongitude) / f.LongitudePerUnitX
	y = (g.Latitude - f.OriginLatitude) / f.LatitudePerUnitY
	return x, y, g.Height(), nil
}
