package geo

import (
	"fmt"
	"math"
	"strings"
)

// UTM projection on the WGS-84 ellipsoid.
//
// GeoToUTM uses the transverse Mercator series truncated after the A³
// easting term and the A⁴ northing term. That is a reduced-precision
// approximation: error grows toward the zone edges, reaching roughly 0.1 m
// of easting at 3° from the central meridian on the equator. UTMToGeo uses
// the footpoint-latitude inverse series of the same projection, so a round
// trip reproduces the input within about 1e-6 degrees everywhere in a zone
// and much closer near the central meridian. Use a dedicated projection
// library where survey-grade accuracy is needed. Zone exceptions around
// Norway and Svalbard are not applied.

const (
	utmScale          = 0.9996
	utmFalseEasting   = 500000.0
	utmFalseNorthing  = 10000000.0
	utmZoneWidthDeg   = 6.0
	utmMaxZone        = 60
	utmBandLetters    = "CDEFGHJKLMNPQRSTUVWX"
	utmBandHeightDeg  = 8.0
	utmBandSouthLimit = -80.0
)

// utmHighBands holds the band boundaries looked up directly at high northern
// latitudes, first match wins. X is stretched to 12° and absorbs everything
// north of 72°.
var utmHighBands = []struct {
	minLat float64
	letter string
}{
	{72, "X"},
	{64, "W"},
	{56, "V"},
}

// UTMCoordinate is a projected UTM position.
type UTMCoordinate struct {
	ZoneLetter string  `json:"zone_letter" yaml:"zone_letter"`
	Easting    float64 `json:"easting" yaml:"easting"`
	Northing   float64 `json:"northing" yaml:"northing"`
	ZoneNumber int     `json:"zone_number" yaml:"zone_number"`
}

// UTMZoneNumber returns the 6° longitude zone (1..60) containing lon.
// Longitude 180 belongs to zone 60.
func UTMZoneNumber(lon float64) int {
	zone := int(math.Floor((lon+180)/utmZoneWidthDeg)) + 1
	if zone < 1 {
		return 1
	} else if zone > utmMaxZone {
		return utmMaxZone
	}
	return zone
}

// UTMZoneLetter returns the latitude band designator for lat. Latitudes
// outside the UTM range are clamped to the outermost bands C and X.
func UTMZoneLetter(lat float64) string {
	for _, band := range utmHighBands {
		if lat >= band.minLat {
			return band.letter
		}
	}

	idx := int(math.Floor((lat - utmBandSouthLimit) / utmBandHeightDeg))
	if idx < 0 {
		idx = 0
	} else if idx > len(utmBandLetters)-1 {
		idx = len(utmBandLetters) - 1
	}
	return utmBandLetters[idx : idx+1]
}

// utmCentralMeridian returns the central meridian of zone in degrees.
func utmCentralMeridian(zone int) float64 {
	return float64(zone-1)*utmZoneWidthDeg - 180 + utmZoneWidthDeg/2
}

// meridianArc returns the distance (meters) along the WGS-84 meridian from
// the equator to latRad.
func meridianArc(latRad float64) float64 {
	e2 := WGS84E2
	e4 := e2 * e2
	e6 := e4 * e2
	return WGS84A * ((1-e2/4-3*e4/64-5*e6/256)*latRad -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*latRad) +
		(15*e4/256+45*e6/1024)*math.Sin(4*latRad) -
		(35*e6/3072)*math.Sin(6*latRad))
}

// GeoToUTM projects g into its UTM zone. The altitude is ignored.
func GeoToUTM(g GeoCoordinate) (UTMCoordinate, error) {
	if err := g.Validate(); err != nil {
		return UTMCoordinate{}, err
	}

	zone := UTMZoneNumber(g.Longitude)
	lat := g.Latitude * degToRad
	lon0 := utmCentralMeridian(zone) * degToRad

	ep2 := WGS84E2 / (1 - WGS84E2)
	cosLat := math.Cos(lat)
	n := primeVerticalRadius(lat)
	t := math.Tan(lat) * math.Tan(lat)
	c := ep2 * cosLat * cosLat
	a := cosLat * (g.Longitude*degToRad - lon0)
	m := meridianArc(lat)

	easting := utmScale*n*(a+(1-t+c)*a*a*a/6) + utmFalseEasting

	northing := utmScale * (m + n*math.Tan(lat)*
		(a*a/2+(5-t+9*c+4*c*c)*a*a*a*a/24))
	if g.Latitude < 0 {
		northing += utmFalseNorthing
	}

	return UTMCoordinate{
		Easting:    easting,
		Northing:   northing,
		ZoneNumber: zone,
		ZoneLetter: UTMZoneLetter(g.Latitude),
	}, nil
}

// UTMToGeo converts a UTM position back to latitude and longitude. Bands N
// through X are the northern hemisphere. The returned altitude is nil.
func UTMToGeo(easting, northing float64, zoneNumber int, zoneLetter string) (GeoCoordinate, error) {
	if !finite(easting) || !finite(northing) {
		return GeoCoordinate{}, fmt.Errorf("%w: non-finite easting/northing (%v, %v)", ErrDomain, easting, northing)
	}
	if zoneNumber < 1 || zoneNumber > utmMaxZone {
		return GeoCoordinate{}, fmt.Errorf("%w: UTM zone %d outside 1..%d", ErrDomain, zoneNumber, utmMaxZone)
	}
	letter := strings.ToUpper(zoneLetter)
	if len(letter) != 1 || !strings.Contains(utmBandLetters, letter) {
		return GeoCoordinate{}, fmt.Errorf("%w: invalid UTM band letter %q", ErrDomain, zoneLetter)
	}
	if easting <= 0 || easting >= 2*utmFalseEasting {
		return GeoCoordinate{}, fmt.Errorf("%w: easting %v outside (0, %v)", ErrDomain, easting, 2*utmFalseEasting)
	}
	if northing < 0 || northing > utmFalseNorthing {
		return GeoCoordinate{}, fmt.Errorf("%w: northing %v outside [0, %v]", ErrDomain, northing, utmFalseNorthing)
	}

	e2 := WGS84E2
	ep2 := e2 / (1 - e2)
	x := easting - utmFalseEasting
	y := northing
	if letter < "N" {
		y -= utmFalseNorthing
	}

	mu := (y / utmScale) / (WGS84A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sin1, cos1 := math.Sincos(phi1)
	tan1 := math.Tan(phi1)
	c1 := ep2 * cos1 * cos1
	t1 := tan1 * tan1
	n1 := primeVerticalRadius(phi1)
	r1 := WGS84A * (1 - e2) / math.Pow(1-e2*sin1*sin1, 1.5)
	d := x / (n1 * utmScale)

	lat := phi1 - (n1*tan1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)
	lon := (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cos1

	g := GeoCoordinate{
		Latitude:  clamp(lat*radToDeg, -90, 90),
		Longitude: normalizeLongitude(utmCentralMeridian(zoneNumber) + lon*radToDeg),
	}
	if !finite(g.Latitude) || !finite(g.Longitude) {
		return GeoCoordinate{}, fmt.Errorf("%w: UTM position (%v, %v) zone %d%s has no geographic solution",
			ErrDomain, easting, northing, zoneNumber, letter)
	}
	return g, nil
}
