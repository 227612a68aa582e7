package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// minRingPoints is the smallest number of distinct points that can
// enclose an area.
const minRingPoints = 3

// ParsePoint parses a single "latitude,longitude" pair such as
// "45.4640,9.1895".
func ParsePoint(s string) (Point, error) {
	latPart, lonPart, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("point %q: want a latitude,longitude pair", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latPart), 64)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", s, err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonPart), 64)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", s, err)
	}

	p := NewPoint(lat, lon)
	if !p.Valid() {
		return nil, fmt.Errorf("point %q: latitude or longitude out of range", s)
	}

	return p, nil
}

// ParseRing parses a zone boundary published in any of the shapes the
// municipality sites use: semicolon separated pairs
// ("45.46,9.18;45.47,9.19"), whitespace separated pairs, or a JSON
// array of [latitude, longitude] arrays. Consecutive duplicate points
// are collapsed. The result must contain at least three distinct
// points.
func ParseRing(s string) (Ring, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty boundary")
	}

	if strings.HasPrefix(s, "[") {
		return parseJSONRing(s)
	}

	var pairs []string
	if strings.Contains(s, ";") {
		pairs = strings.Split(s, ";")
	} else {
		pairs = strings.Fields(s)
	}

	points := make([]Point, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		p, err := ParsePoint(pair)
		if err != nil {
			return nil, err
		}

		points = append(points, p)
	}

	return NewRing(points)
}

// ParsePolygonLiteral parses the Postgres polygon literal written by
// Ring.String, such as "((9.18,45.46),(9.19,45.47))". Pairs inside
// the literal are longitude first.
func ParsePolygonLiteral(s string) (Ring, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("polygon literal %q: want wrapping parentheses", s)
	}

	pairs := strings.Split(s[1:len(s)-1], "),")
	points := make([]Point, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		pair = strings.TrimPrefix(pair, "(")
		pair = strings.TrimSuffix(pair, ")")

		lonPart, latPart, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("polygon literal pair %q: want (longitude,latitude)", pair)
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(lonPart), 64)
		if err != nil {
			return nil, fmt.Errorf("polygon literal pair %q: %w", pair, err)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(latPart), 64)
		if err != nil {
			return nil, fmt.Errorf("polygon literal pair %q: %w", pair, err)
		}

		points = append(points, NewPoint(lat, lon))
	}

	return NewRing(points)
}

func parseJSONRing(s string) (Ring, error) {
	var raw [][]float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("parsing boundary array: %w", err)
	}

	points := make([]Point, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			return nil, fmt.Errorf("boundary array entry %v: want [latitude, longitude]", pair)
		}

		p := NewPoint(pair[0], pair[1])
		if !p.Valid() {
			return nil, fmt.Errorf("point %q: latitude or longitude out of range", p.String())
		}

		points = append(points, p)
	}

	return NewRing(points)
}

// NewRing assembles points into a Ring, collapsing consecutive
// duplicates and rejecting boundaries too small to enclose an area.
func NewRing(points []Point) (Ring, error) {
	ring := make(Ring, 0, len(points))
	for _, p := range points {
		if len(ring) > 0 && ring[len(ring)-1].Equal(p) {
			continue
		}

		ring = append(ring, p)
	}

	distinct := len(ring)
	if ring.Closed() {
		distinct--
	}

	if distinct < minRingPoints {
		return nil, fmt.Errorf("boundary needs at least %d distinct points, got %d", minRingPoints, distinct)
	}

	return ring, nil
}
