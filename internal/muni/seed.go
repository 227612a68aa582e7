package muni

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/cicconee/ztl-maps/internal/geometry"
	"github.com/cicconee/ztl-maps/internal/schedule"
)

// Seed files hold the last known zone data per city, checked in so a
// dead or redesigned municipality page never empties a city.
//
//go:embed seeds/*.json
var seedFS embed.FS

type seedFile struct {
	Zones []seedZone `json:"zones"`
}

type seedZone struct {
	Name       string                  `json:"name"`
	Boundary   [][]float64             `json:"boundary"`
	Windows    []schedule.RawWindow    `json:"windows"`
	Exceptions []schedule.RawException `json:"exceptions,omitempty"`
}

// seedZones loads the embedded seed data for the named city.
func seedZones(city string) ([]Zone, error) {
	raw, err := seedFS.ReadFile(fmt.Sprintf("seeds/%s.json", city))
	if err != nil {
		return nil, fmt.Errorf("reading seed file for %q: %w", city, err)
	}

	var file seedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing seed file for %q: %w", city, err)
	}

	zones := make([]Zone, 0, len(file.Zones))
	for _, sz := range file.Zones {
		points := make([]geometry.Point, 0, len(sz.Boundary))
		for _, pair := range sz.Boundary {
			if len(pair) < 2 {
				return nil, fmt.Errorf("seed zone %q: boundary entry %v: want [latitude, longitude]", sz.Name, pair)
			}

			points = append(points, geometry.NewPoint(pair[0], pair[1]))
		}

		ring, err := geometry.NewRing(points)
		if err != nil {
			return nil, fmt.Errorf("seed zone %q: %w", sz.Name, err)
		}

		zones = append(zones, Zone{
			Name:       sz.Name,
			Boundary:   ring,
			Windows:    sz.Windows,
			Exceptions: sz.Exceptions,
		})
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("seed file for %q holds no zones", city)
	}

	return zones, nil
}
