package geo

import "math"

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp limits v to [lo, hi]. Used before asin/sqrt where float noise can
// push an argument slightly out of range.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

// normalizeBearing maps any angle in degrees into [0, 360).
func normalizeBearing(deg float64) float64 {
	b := math.Mod(deg+360, 360)
	if b < 0 {
		b += 360
	}
	// Mod of a tiny negative value plus 360 can round up to exactly 360.
	if b >= 360 {
		b = 0
	}
	return b
}

// normalizeLongitude maps any longitude in degrees into (-180, 180].
func normalizeLongitude(deg float64) float64 {
	lon := math.Mod(deg+180, 360)
	if lon < 0 {
		lon += 360
	}
	lon -= 180
	if lon <= -180 {
		lon += 360
	}
	return lon
}

// primeVerticalRadius returns the WGS-84 prime-vertical radius of curvature
// N (meters) for a latitude given in radians.
func primeVerticalRadius(latRad float64) float64 {
	s := math.Sin(latRad)
	return WGS84A / math.Sqrt(1-WGS84E2*s*s)
}
