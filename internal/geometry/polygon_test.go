package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingString(t *testing.T) {
	r := Ring{NewPoint(45.5, 9.25), NewPoint(45.75, 9.5)}

	assert.Equal(t, "((9.250000,45.500000),(9.500000,45.750000))", r.String())
	assert.Equal(t, "", Ring{}.String())
}

func TestRingClose(t *testing.T) {
	open := Ring{NewPoint(45.46, 9.18), NewPoint(45.47, 9.19), NewPoint(45.46, 9.20)}

	closed := open.Close()
	require.Len(t, closed, 4)
	assert.True(t, closed.Closed())
	assert.Equal(t, closed[0], closed[3])

	// Closing twice changes nothing, and the original stays open.
	assert.Len(t, closed.Close(), 4)
	assert.Len(t, open, 3)
	assert.False(t, open.Closed())
}

func TestRingCenter(t *testing.T) {
	r := Ring{NewPoint(45.0, 9.0), NewPoint(46.0, 9.0), NewPoint(46.0, 10.0), NewPoint(45.0, 10.0)}

	c := r.Center()
	assert.InDelta(t, 45.5, c.Lat(), 1e-9)
	assert.InDelta(t, 9.5, c.Lon(), 1e-9)

	// The closing point does not skew the average.
	c = r.Close().Center()
	assert.InDelta(t, 45.5, c.Lat(), 1e-9)
	assert.InDelta(t, 9.5, c.Lon(), 1e-9)

	assert.Nil(t, Ring{}.Center())
}

func TestPolygonCoordinates(t *testing.T) {
	p := Polygon{
		{NewPoint(45.46, 9.18), NewPoint(45.47, 9.19), NewPoint(45.46, 9.20)},
	}

	coords := p.Coordinates()
	require.Len(t, coords, 1)
	require.Len(t, coords[0], 4)
	assert.Equal(t, []float64{9.18, 45.46}, coords[0][0])
	assert.Equal(t, coords[0][0], coords[0][3])
}

func TestPolygonExteriorAndHoles(t *testing.T) {
	outer := Ring{NewPoint(45.0, 9.0), NewPoint(46.0, 9.0), NewPoint(46.0, 10.0)}
	inner := Ring{NewPoint(45.4, 9.4), NewPoint(45.6, 9.4), NewPoint(45.6, 9.6)}

	p := Polygon{outer, inner}
	assert.Equal(t, outer, p.Exterior())
	assert.Equal(t, []Ring{inner}, p.Holes())

	assert.Nil(t, Polygon{}.Exterior())
	assert.Nil(t, Polygon{outer}.Holes())
}

func TestNewPolygonFeature(t *testing.T) {
	p := Polygon{
		{NewPoint(45.46, 9.18), NewPoint(45.47, 9.19), NewPoint(45.46, 9.20)},
	}

	f := NewPolygonFeature(p, map[string]any{"name": "Centro", "active": true})

	raw, err := json.Marshal(NewFeatureCollection([]Feature{f}))
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Type       string         `json:"type"`
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Type        string        `json:"type"`
				Coordinates [][][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 1)
	assert.Equal(t, "Feature", decoded.Features[0].Type)
	assert.Equal(t, "Polygon", decoded.Features[0].Geometry.Type)
	assert.Equal(t, "Centro", decoded.Features[0].Properties["name"])
	assert.Equal(t, true, decoded.Features[0].Properties["active"])
	assert.Len(t, decoded.Features[0].Geometry.Coordinates[0], 4)
}

func TestNewFeatureCollectionEmpty(t *testing.T) {
	raw, err := json.Marshal(NewFeatureCollection(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(raw))
}
