package geometry

import (
	"fmt"
	"strings"
)

// Ring is an ordered boundary of points tracing the edge of a zone.
// A ring may arrive open from upstream; Closed and Close manage the
// repeated final point that polygon consumers expect.
type Ring []Point

// Closed reports whether the ring's final point repeats its first.
func (r Ring) Closed() bool {
	if len(r) < 2 {
		return false
	}

	return r[0].Equal(r[len(r)-1])
}

// Close returns the ring with the first point appended to the end
// when it is not already closed. The receiver is never modified.
func (r Ring) Close() Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}

	closed := make(Ring, len(r), len(r)+1)
	copy(closed, r)

	return append(closed, r[0])
}

// Center returns the average of the ring's distinct points. It is a
// display anchor for map views, not a true centroid.
func (r Ring) Center() Point {
	perimeter := r
	if r.Closed() {
		perimeter = r[:len(r)-1]
	}
	if len(perimeter) == 0 {
		return nil
	}

	var lat, lon float64
	for _, p := range perimeter {
		lat += p.Lat()
		lon += p.Lon()
	}

	n := float64(len(perimeter))
	return NewPoint(lat/n, lon/n)
}

// String returns the ring as a Postgres polygon literal such as
// "((9.18,45.46),(9.19,45.47))".
func (r Ring) String() string {
	if len(r) == 0 {
		return ""
	}

	var ss []string
	for _, p := range r {
		ss = append(ss, p.String())
	}

	return fmt.Sprintf("(%s)", strings.Join(ss, ","))
}

// Polygon is a ring set in GeoJSON order. The first ring is the
// exterior boundary and any following rings are holes cut out of it.
type Polygon []Ring

// Exterior returns the outer boundary ring.
func (p Polygon) Exterior() Ring {
	if len(p) == 0 {
		return nil
	}

	return p[0]
}

// Holes returns the interior rings.
func (p Polygon) Holes() []Ring {
	if len(p) < 2 {
		return nil
	}

	holes := make([]Ring, len(p)-1)
	copy(holes, p[1:])

	return holes
}

// Coordinates returns the polygon as nested GeoJSON position arrays,
// longitude first with every ring closed.
func (p Polygon) Coordinates() [][][]float64 {
	coords := make([][][]float64, 0, len(p))
	for _, r := range p {
		closed := r.Close()

		ring := make([][]float64, 0, len(closed))
		for _, pt := range closed {
			ring = append(ring, []float64{pt.Lon(), pt.Lat()})
		}

		coords = append(coords, ring)
	}

	return coords
}
