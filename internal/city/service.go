package city

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cicconee/ztl-maps/internal/muni"
	"github.com/cicconee/ztl-maps/internal/schedule"
)

// Service owns the city lifecycle: first save, periodic sync, boot
// load, and every catalog read the API serves.
type Service struct {
	Scrapers []muni.Scraper
	Store    *Store
	Catalog  *Catalog
}

func New(scrapers []muni.Scraper, db *sql.DB) *Service {
	return &Service{
		Scrapers: scrapers,
		Store:    NewStore(db),
		Catalog:  NewCatalog(),
	}
}

// Save scrapes a city for the first time, writes it to the database,
// and publishes it to the catalog.
//
// Saving a city with no scraper responds 404, saving a city already
// in the database responds 409. Zones whose scraped schedule does not
// normalize are skipped and reported in the result's Fails.
func (s *Service) Save(ctx context.Context, cityName string) (SaveResult, error) {
	scraper, err := s.scraperFor(cityName)
	if err != nil {
		return SaveResult{}, err
	}

	slug := Slugify(scraper.City())

	_, err = s.Store.SelectCity(ctx, slug)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return SaveResult{}, fmt.Errorf("failed to select city (slug=%q): %w", slug, err)
	}
	if err == nil {
		return SaveResult{}, &Error{
			error:      fmt.Errorf("city %q already saved to database", slug),
			msg:        fmt.Sprintf("%s already exists", scraper.City()),
			statusCode: http.StatusConflict,
		}
	}

	c, res, fails, err := s.scrapeCity(ctx, scraper)
	if err != nil {
		return SaveResult{}, err
	}

	if err := s.Store.InsertCityTx(ctx, c); err != nil {
		return SaveResult{}, fmt.Errorf("failed to insert city (slug=%q): %w", c.Slug, err)
	}

	s.Catalog.Put(c)

	return SaveResult{
		City:      c.Name,
		Country:   c.Country,
		Zones:     c.ZoneCount(),
		Fails:     fails,
		Fallback:  res.Fallback,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Sync re-scrapes a saved city, rewrites its rows wholesale, and
// publishes the fresh snapshot to the catalog.
//
// Syncing a city with no scraper responds 404, as does syncing a city
// that was never saved.
func (s *Service) Sync(ctx context.Context, cityName string) (SyncResult, error) {
	scraper, err := s.scraperFor(cityName)
	if err != nil {
		return SyncResult{}, err
	}

	slug := Slugify(scraper.City())

	_, err = s.Store.SelectCity(ctx, slug)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return SyncResult{}, &Error{
			error:      fmt.Errorf("city %q not saved to database", slug),
			msg:        fmt.Sprintf("%s is not saved, save it before syncing", scraper.City()),
			statusCode: http.StatusNotFound,
		}
	case err != nil:
		return SyncResult{}, fmt.Errorf("failed to select city (slug=%q): %w", slug, err)
	}

	c, res, fails, err := s.scrapeCity(ctx, scraper)
	if err != nil {
		return SyncResult{}, err
	}

	if err := s.Store.ReplaceCityTx(ctx, c); err != nil {
		return SyncResult{}, fmt.Errorf("failed to replace city (slug=%q): %w", c.Slug, err)
	}

	s.Catalog.Put(c)

	return SyncResult{
		City:      c.Name,
		Country:   c.Country,
		Zones:     c.ZoneCount(),
		Fails:     fails,
		Fallback:  res.Fallback,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Load reads every saved city into the catalog. It runs once at boot
// before the server starts answering queries.
func (s *Service) Load(ctx context.Context) (LoadResult, error) {
	result, err := s.Store.LoadAll(ctx)
	if err != nil {
		return LoadResult{}, err
	}

	s.Catalog.Replace(result.Cities)

	return result, nil
}

// Cities returns every loaded city in load order.
func (s *Service) Cities() []*City {
	return s.Catalog.Cities()
}

// City returns the loaded city matching slug.
func (s *Service) City(slug string) (*City, error) {
	return s.Catalog.City(slug)
}

// Zone returns one zone of a loaded city.
func (s *Service) Zone(citySlug, zoneSlug string) (*Zone, error) {
	c, err := s.Catalog.City(citySlug)
	if err != nil {
		return nil, err
	}

	return c.Zone(zoneSlug)
}

// scrapeCity runs the scraper and assembles the domain city. Zones
// that fail to normalize are skipped and reported; a scrape yielding
// no usable zones at all fails.
func (s *Service) scrapeCity(ctx context.Context, scraper muni.Scraper) (*City, muni.Result, []ZoneFail, error) {
	res, err := scraper.Zones(ctx)
	if err != nil {
		return nil, muni.Result{}, nil, fmt.Errorf("failed to scrape zones (city=%q): %w", scraper.City(), err)
	}

	c, fails := buildCity(scraper.City(), scraper.Country(), res.Zones)
	if c.ZoneCount() == 0 {
		return nil, muni.Result{}, nil, &Error{
			error:      fmt.Errorf("no usable zones scraped (city=%q, fails=%d)", c.Slug, len(fails)),
			msg:        fmt.Sprintf("no usable zone data for %s", scraper.City()),
			statusCode: http.StatusServiceUnavailable,
		}
	}

	return c, res, fails, nil
}

func (s *Service) scraperFor(name string) (muni.Scraper, error) {
	key := Slugify(name)
	for _, scraper := range s.Scrapers {
		if Slugify(scraper.City()) == key {
			return scraper, nil
		}
	}

	return nil, &Error{
		error:      fmt.Errorf("no scraper for city %q", name),
		msg:        fmt.Sprintf("%s is not a supported city", name),
		statusCode: http.StatusNotFound,
	}
}

// buildCity normalizes scraped zones into a domain city. Each zone
// that fails is skipped so one bad zone never blocks a whole city.
func buildCity(name, country string, zones []muni.Zone) (*City, []ZoneFail) {
	c := NewCity(name, country)

	var fails []ZoneFail
	for _, mz := range zones {
		sched, err := schedule.Normalize(mz.Windows, mz.Exceptions)
		if err != nil {
			fails = append(fails, ZoneFail{City: c.Slug, Zone: Slugify(mz.Name), Op: "normalize", Err: err})
			continue
		}

		z := &Zone{Name: mz.Name, Boundary: mz.Boundary, Schedule: sched}
		if err := c.AddZone(z); err != nil {
			fails = append(fails, ZoneFail{City: c.Slug, Zone: Slugify(mz.Name), Op: "add", Err: err})
		}
	}

	return c, fails
}
