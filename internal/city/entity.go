package city

import (
	"context"
	"database/sql"
	"time"
)

// CityEntity is the cities table row.
type CityEntity struct {
	ID        int
	Slug      string
	Name      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Select reads the row whose slug matches e.Slug.
func (e *CityEntity) Select(ctx context.Context, db QueryRower) error {
	query := `
		SELECT id, slug, name, country, created_at, updated_at
		FROM cities
		WHERE slug = $1`

	return e.scan(db.QueryRowContext(ctx, query, e.Slug).Scan)
}

// Insert writes the row, setting ID, CreatedAt, and UpdatedAt.
func (e *CityEntity) Insert(ctx context.Context, db QueryRower) error {
	query := `
		INSERT INTO cities(slug, name, country, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id`

	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt

	return db.QueryRowContext(ctx, query,
		e.Slug,
		e.Name,
		e.Country,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&e.ID)
}

// Update rewrites the display fields and bumps UpdatedAt.
func (e *CityEntity) Update(ctx context.Context, db Execer) (sql.Result, error) {
	query := `
		UPDATE cities
		SET name = $1, country = $2, updated_at = $3
		WHERE id = $4`

	e.UpdatedAt = time.Now().UTC()

	return db.ExecContext(ctx, query,
		e.Name,
		e.Country,
		e.UpdatedAt,
		e.ID,
	)
}

func (e *CityEntity) scan(scanFunc func(...any) error) error {
	return scanFunc(
		&e.ID,
		&e.Slug,
		&e.Name,
		&e.Country,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

type CityEntityCollection []CityEntity

// Select reads every city row in insertion order.
func (c *CityEntityCollection) Select(ctx context.Context, db Queryer) error {
	query := `
		SELECT id, slug, name, country, created_at, updated_at
		FROM cities
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e CityEntity
		if err := e.scan(rows.Scan); err != nil {
			return err
		}

		*c = append(*c, e)
	}

	return rows.Err()
}
