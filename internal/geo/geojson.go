package geo

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature.
type GeoJSONGeometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat] or [Lon, Lat, Alt]
}

// NewFeatureCollection returns an empty collection ready for appending.
func NewFeatureCollection(capacity int) GeoJSONFeatureCollection {
	return GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONFeature, 0, capacity),
	}
}

// PointFeature builds a Point feature for g. The altitude becomes the third
// position element only when it is specified.
func PointFeature(g GeoCoordinate, props map[string]interface{}) GeoJSONFeature {
	coords := []float64{g.Longitude, g.Latitude}
	if g.Altitude != nil {
		coords = append(coords, *g.Altitude)
	}
	if props == nil {
		props = map[string]interface{}{}
	}

	return GeoJSONFeature{
		Type: "Feature",
		Geometry: GeoJSONGeometry{
			Type:        "Point",
			Coordinates: coords,
		},
		Properties: props,
	}
}
