package city

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cicconee/ztl-maps/internal/schedule"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) tx(ctx context.Context, txFunc func(*sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	if err := txFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("err: %w, rbErr: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// SelectCity reads the city row with the given slug.
func (s *Store) SelectCity(ctx context.Context, slug string) (CityEntity, error) {
	e := CityEntity{Slug: slug}
	return e, e.Select(ctx, s.DB)
}

// SelectCities reads every city row in insertion order.
func (s *Store) SelectCities(ctx context.Context) (CityEntityCollection, error) {
	var collection CityEntityCollection
	return collection, collection.Select(ctx, s.DB)
}

// InsertCityTx writes a city and all its zones, windows, and
// exceptions inside one transaction.
func (s *Store) InsertCityTx(ctx context.Context, c *City) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		e := CityEntity{Slug: c.Slug, Name: c.Name, Country: c.Country}
		if err := e.Insert(ctx, tx); err != nil {
			return fmt.Errorf("inserting city %q: %w", c.Slug, err)
		}

		return insertZones(ctx, tx, e.ID, c)
	})
}

// ReplaceCityTx rewrites a saved city wholesale: the city row is
// updated and every zone row is deleted and re-inserted, all inside
// one transaction so readers never see a half synced city.
func (s *Store) ReplaceCityTx(ctx context.Context, c *City) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		e := CityEntity{Slug: c.Slug}
		if err := e.Select(ctx, tx); err != nil {
			return fmt.Errorf("selecting city %q: %w", c.Slug, err)
		}

		e.Name = c.Name
		e.Country = c.Country
		if _, err := e.Update(ctx, tx); err != nil {
			return fmt.Errorf("updating city %q: %w", c.Slug, err)
		}

		if _, err := (ZoneEntityCollection{}).Delete(ctx, tx, e.ID); err != nil {
			return fmt.Errorf("deleting zones (city=%q): %w", c.Slug, err)
		}

		return insertZones(ctx, tx, e.ID, c)
	})
}

func insertZones(ctx context.Context, tx *sql.Tx, cityID int, c *City) error {
	for i, z := range c.Zones() {
		ze := ZoneEntity{
			CityID:   cityID,
			Slug:     z.Slug,
			Name:     z.Name,
			Position: i,
			Boundary: z.Boundary,
		}
		if err := ze.Insert(ctx, tx); err != nil {
			return fmt.Errorf("inserting zone %q: %w", z.Slug, err)
		}

		for _, w := range z.Schedule.Windows {
			we := newWindowEntity(ze.ID, w)
			if err := we.Insert(ctx, tx); err != nil {
				return fmt.Errorf("inserting window for zone %q: %w", z.Slug, err)
			}
		}

		for _, ex := range z.Schedule.Exceptions {
			ee := newExceptionEntity(ze.ID, ex)
			if err := ee.Insert(ctx, tx); err != nil {
				return fmt.Errorf("inserting exception for zone %q: %w", z.Slug, err)
			}
		}
	}

	return nil
}

// LoadAll reads every saved city with its zones. A zone whose stored
// schedule no longer normalizes is skipped and reported as a fail;
// any other database error aborts the whole load.
func (s *Store) LoadAll(ctx context.Context) (LoadResult, error) {
	entities, err := s.SelectCities(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("selecting cities: %w", err)
	}

	result := LoadResult{}
	for _, e := range entities {
		c, fails, err := s.loadCity(ctx, e)
		if err != nil {
			return LoadResult{}, err
		}

		result.Cities = append(result.Cities, c)
		result.Fails = append(result.Fails, fails...)
	}

	return result, nil
}

func (s *Store) loadCity(ctx context.Context, e CityEntity) (*City, []ZoneFail, error) {
	var zones ZoneEntityCollection
	if err := zones.Select(ctx, s.DB, e.ID); err != nil {
		return nil, nil, fmt.Errorf("selecting zones (city=%q): %w", e.Slug, err)
	}

	c := NewCity(e.Name, e.Country)
	c.Slug = e.Slug

	var fails []ZoneFail
	for _, ze := range zones {
		z, err := s.loadZone(ctx, ze)

		var malformed *schedule.MalformedScheduleError
		switch {
		case errors.As(err, &malformed):
			fails = append(fails, ZoneFail{City: e.Slug, Zone: ze.Slug, Op: "normalize", Err: err})
			continue
		case err != nil:
			return nil, nil, fmt.Errorf("loading zone %q (city=%q): %w", ze.Slug, e.Slug, err)
		}

		if err := c.AddZone(z); err != nil {
			fails = append(fails, ZoneFail{City: e.Slug, Zone: ze.Slug, Op: "add", Err: err})
		}
	}

	return c, fails, nil
}

func (s *Store) loadZone(ctx context.Context, ze ZoneEntity) (*Zone, error) {
	var windows WindowEntityCollection
	if err := windows.Select(ctx, s.DB, ze.ID); err != nil {
		return nil, err
	}

	var exceptions ExceptionEntityCollection
	if err := exceptions.Select(ctx, s.DB, ze.ID); err != nil {
		return nil, err
	}

	raws := make([]schedule.RawWindow, 0, len(windows))
	for _, w := range windows {
		raw, err := w.RawWindow()
		if err != nil {
			return nil, err
		}

		raws = append(raws, raw)
	}

	rawExceptions := make([]schedule.RawException, 0, len(exceptions))
	for _, ex := range exceptions {
		raw, err := ex.RawException()
		if err != nil {
			return nil, err
		}

		rawExceptions = append(rawExceptions, raw)
	}

	sched, err := schedule.Normalize(raws, rawExceptions)
	if err != nil {
		return nil, err
	}

	return &Zone{
		Slug:     ze.Slug,
		Name:     ze.Name,
		Boundary: ze.Boundary,
		Schedule: sched,
	}, nil
}
