package geometry

// Geometry is the geometry member of a GeoJSON feature. Only Polygon
// geometries are produced here.
type Geometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// Feature is a GeoJSON feature pairing a geometry with free form
// properties.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// FeatureCollection is the top level GeoJSON document type.
// Properties is a nonstandard member some consumers use for document
// level metadata; it is omitted when empty.
type FeatureCollection struct {
	Type       string         `json:"type"`
	Features   []Feature      `json:"features"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewPolygonFeature builds a GeoJSON polygon feature from p with the
// given properties.
func NewPolygonFeature(p Polygon, properties map[string]any) Feature {
	return Feature{
		Type:       "Feature",
		Properties: properties,
		Geometry: Geometry{
			Type:        "Polygon",
			Coordinates: p.Coordinates(),
		},
	}
}

// NewFeatureCollection wraps features into a FeatureCollection. A nil
// slice encodes as an empty features array rather than null.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
