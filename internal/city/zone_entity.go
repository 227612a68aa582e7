package city

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cicconee/ztl-maps/internal/geometry"
)

// ZoneEntity is the city_zones table row. Position preserves the
// order zones were published in, and Boundary travels as the Postgres
// polygon literal geometry.Ring.String produces.
type ZoneEntity struct {
	ID        int
	CityID    int
	Slug      string
	Name      string
	Position  int
	Boundary  geometry.Ring
	CreatedAt time.Time
}

// Insert writes the row, setting ID and CreatedAt.
func (z *ZoneEntity) Insert(ctx context.Context, db QueryRower) error {
	query := `
		INSERT INTO city_zones(city_id, slug, name, position, boundary, created_at)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id`

	z.CreatedAt = time.Now().UTC()

	return db.QueryRowContext(ctx, query,
		z.CityID,
		z.Slug,
		z.Name,
		z.Position,
		z.Boundary.String(),
		z.CreatedAt,
	).Scan(&z.ID)
}

func (z *ZoneEntity) scan(scanFunc func(...any) error) error {
	var boundary string
	if err := scanFunc(
		&z.ID,
		&z.CityID,
		&z.Slug,
		&z.Name,
		&z.Position,
		&boundary,
		&z.CreatedAt,
	); err != nil {
		return err
	}

	ring, err := geometry.ParsePolygonLiteral(boundary)
	if err != nil {
		return fmt.Errorf("zone %q boundary: %w", z.Slug, err)
	}

	z.Boundary = ring
	return nil
}

type ZoneEntityCollection []ZoneEntity

// Select reads every zone row of one city in published order.
func (c *ZoneEntityCollection) Select(ctx context.Context, db Queryer, cityID int) error {
	query := `
		SELECT id, city_id, slug, name, position, boundary, created_at
		FROM city_zones
		WHERE city_id = $1
		ORDER BY position`

	rows, err := db.QueryContext(ctx, query, cityID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var z ZoneEntity
		if err := z.scan(rows.Scan); err != nil {
			return err
		}

		*c = append(*c, z)
	}

	return rows.Err()
}

// Delete removes every zone row of one city. Window and exception
// rows cascade through their zone_id foreign keys.
func (c ZoneEntityCollection) Delete(ctx context.Context, db Execer, cityID int) (sql.Result, error) {
	query := "DELETE FROM city_zones WHERE city_id = $1"

	return db.ExecContext(ctx, query, cityID)
}
