package geo

import (
	"fmt"
	"math"
)

// BearingDistance returns the initial great-circle bearing (degrees in
// [0, 360)) and the Haversine distance (meters) from p1 to p2 on the
// spherical model. Altitudes are ignored.
//
// Identical points give distance 0 and bearing 0 (atan2(0, 0)).
func BearingDistance(p1, p2 GeoCoordinate) (bearing, distance float64, err error) {
	if err := p1.Validate(); err != nil {
		return 0, 0, err
	}
	if err := p2.Validate(); err != nil {
		return 0, 0, err
	}

	lat1 := p1.Latitude * degToRad
	lon1 := p1.Longitude * degToRad
	lat2 := p2.Latitude * degToRad
	lon2 := p2.Longitude * degToRad
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing = normalizeBearing(math.Atan2(y, x) * radToDeg)

	// a = sin²(Δlat/2) + cos(lat1) * cos(lat2) * sin²(Δlon/2)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	a = clamp(a, 0, 1)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	distance = EarthRadiusKm * c * 1000

	return bearing, distance, nil
}

// DestinationPoint solves the direct problem on the sphere: the point
// reached from start after travelling distance meters along the initial
// bearing (degrees). Longitude is normalized into (-180, 180]. The
// operation is horizontal only; the altitude of start is carried over
// unchanged.
func DestinationPoint(start GeoCoordinate, bearing, distance float64) (GeoCoordinate, error) {
	if err := start.Validate(); err != nil {
		return GeoCoordinate{}, err
	}
	if !finite(bearing) || !finite(distance) {
		return GeoCoordinate{}, fmt.Errorf("%w: non-finite bearing/distance (%v, %v)", ErrDomain, bearing, distance)
	}

	lat1 := start.Latitude * degToRad
	lon1 := start.Longitude * degToRad
	theta := bearing * degToRad
	delta := (distance / 1000) / EarthRadiusKm

	lat2 := math.Asin(clamp(
		math.Sin(lat1)*math.Cos(delta)+math.Cos(lat1)*math.Sin(delta)*math.Cos(theta),
		-1, 1))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	dest := GeoCoordinate{
		Latitude:  clamp(lat2*radToDeg, -90, 90),
		Longitude: normalizeLongitude(lon2 * radToDeg),
	}
	if start.Altitude != nil {
		dest.Altitude = Alt(*start.Altitude)
	}

	return dest, nil
}
