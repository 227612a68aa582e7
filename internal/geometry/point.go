package geometry

import (
	"fmt"
	"math"
)

// Point is a geographic coordinate stored as {latitude, longitude}.
// Scraped boundaries arrive in latitude first order, while Postgres
// point literals and GeoJSON positions want longitude first. The
// accessors keep the two conventions from being mixed up.
type Point []float64

// NewPoint creates a Point from a latitude and longitude.
func NewPoint(lat, lon float64) Point {
	return Point{lat, lon}
}

// Lat returns the latitude.
func (p Point) Lat() float64 {
	return p[0]
}

// Lon returns the longitude.
func (p Point) Lon() float64 {
	return p[1]
}

// RoundedLat returns the latitude rounded to the 5th
// decimal place.
func (p Point) RoundedLat() float64 {
	return round(p.Lat(), 5)
}

// RoundedLon returns the longitude rounded to the 5th
// decimal place.
func (p Point) RoundedLon() float64 {
	return round(p.Lon(), 5)
}

func round(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// Equal reports whether p and other name the same place at the 5th
// decimal, roughly one meter of ground.
func (p Point) Equal(other Point) bool {
	if len(p) < 2 || len(other) < 2 {
		return len(p) == len(other)
	}

	return p.RoundedLat() == other.RoundedLat() && p.RoundedLon() == other.RoundedLon()
}

// Valid reports whether the point holds a latitude and longitude
// inside their geographic ranges.
func (p Point) Valid() bool {
	if len(p) < 2 {
		return false
	}

	return p.Lat() >= -90 && p.Lat() <= 90 && p.Lon() >= -180 && p.Lon() <= 180
}

// String returns the point as a Postgres point literal, longitude
// first.
func (p Point) String() string {
	if len(p) < 2 {
		return ""
	}

	return fmt.Sprintf("(%f,%f)", p.Lon(), p.Lat())
}
