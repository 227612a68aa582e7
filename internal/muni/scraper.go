package muni

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cicconee/ztl-maps/internal/geometry"
	"github.com/cicconee/ztl-maps/internal/schedule"
)

// Zone is one restricted traffic zone as published by a municipality,
// still in raw form. Windows and Exceptions hold unvalidated tokens;
// validation happens when the zone is normalized on save.
type Zone struct {
	Name       string
	Boundary   geometry.Ring
	Windows    []schedule.RawWindow
	Exceptions []schedule.RawException
}

// Result is the outcome of one scraper run.
type Result struct {
	Zones []Zone

	// Fallback holds the scrape error when Zones came from the
	// embedded seed data instead of the live page. It is nil when
	// the page itself produced the zones.
	Fallback error
}

// Scraper pulls the restricted zones of one city. Implementations
// fall back to seed data when the live page cannot be used, reporting
// the page error through Result.Fallback.
type Scraper interface {
	City() string
	Country() string
	Zones(ctx context.Context) (Result, error)
}

// Scrapers returns the scraper for every supported city, sharing one
// client.
func Scrapers(client *Client) []Scraper {
	return []Scraper{
		NewMilano(client),
		NewBologna(client),
		NewFirenze(client),
		NewNapoli(client),
		NewTorino(client),
	}
}

// pageLayout describes where the zone data sits in one municipality's
// page markup. Every city publishes the same ingredients under
// different selectors.
type pageLayout struct {
	section   string // one zone block
	name      string // zone name inside a block
	hours     string // operating hours text inside a block
	boundary  string // element carrying the coordinates
	coordAttr string // attribute holding the coordinates
}

// zonesFromPage walks doc with the given layout and builds raw zones.
// A block missing its name, boundary, or a readable hours text fails
// the whole scrape: a half parsed page means the markup changed, and
// seed data is safer than a partial zone list.
func zonesFromPage(doc *goquery.Document, layout pageLayout) ([]Zone, error) {
	var zones []Zone
	var parseErr error

	doc.Find(layout.section).EachWithBreak(func(i int, s *goquery.Selection) bool {
		name := strings.TrimSpace(s.Find(layout.name).First().Text())
		if name == "" {
			parseErr = fmt.Errorf("zone block %d: no name matched selector %q", i, layout.name)
			return false
		}

		coords, ok := s.Find(layout.boundary).First().Attr(layout.coordAttr)
		if !ok {
			parseErr = fmt.Errorf("zone %q: missing %s attribute", name, layout.coordAttr)
			return false
		}

		ring, err := geometry.ParseRing(coords)
		if err != nil {
			parseErr = fmt.Errorf("zone %q: parsing boundary: %w", name, err)
			return false
		}

		windows, err := ParseHours(s.Find(layout.hours).First().Text())
		if err != nil {
			parseErr = fmt.Errorf("zone %q: parsing hours: %w", name, err)
			return false
		}

		zones = append(zones, Zone{Name: name, Boundary: ring, Windows: windows})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone blocks matched selector %q", layout.section)
	}

	return zones, nil
}

// fallback resolves a failed scrape against the city's seed file.
// The scrape error travels out through Result.Fallback so callers can
// log and count it without losing the zones.
func fallback(city string, scrapeErr error) (Result, error) {
	seeded, err := seedZones(city)
	if err != nil {
		return Result{}, fmt.Errorf("scrape failed (%v), seed fallback failed: %w", scrapeErr, err)
	}

	return Result{Zones: seeded, Fallback: scrapeErr}, nil
}

// resolve runs scrape, falls back to the named seed file when it
// fails, and attaches holiday suspensions to the zones either way.
func resolve(ctx context.Context, seedName string, scrape func(context.Context) ([]Zone, error)) (Result, error) {
	zones, err := scrape(ctx)
	if err != nil {
		res, fbErr := fallback(seedName, err)
		if fbErr != nil {
			return Result{}, fbErr
		}

		res.Zones = suspendOnHolidays(res.Zones, time.Now())
		return res, nil
	}

	return Result{Zones: suspendOnHolidays(zones, time.Now())}, nil
}
