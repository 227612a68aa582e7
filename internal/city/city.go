package city

import (
	"fmt"
	"time"

	"github.com/cicconee/ztl-maps/internal/geometry"
)

// City owns the zones of one municipality, keyed by slug with
// insertion order preserved so responses list zones the way the
// source published them. A city is assembled once by the loader and
// is read only afterwards; data refreshes build a new City and swap
// it into the catalog instead of mutating this one.
type City struct {
	Slug    string
	Name    string
	Country string

	zones map[string]*Zone
	order []string
}

// NewCity creates a city with no zones.
func NewCity(name, country string) *City {
	return &City{
		Slug:    Slugify(name),
		Name:    name,
		Country: country,
		zones:   map[string]*Zone{},
	}
}

// AddZone adds z to the city, deriving the slug from the zone name
// when unset. Slugs are unique within a city; adding a second zone
// with the same slug fails.
func (c *City) AddZone(z *Zone) error {
	if z.Slug == "" {
		z.Slug = Slugify(z.Name)
	}
	if z.Slug == "" {
		return fmt.Errorf("zone %q in city %q: empty slug", z.Name, c.Slug)
	}

	if _, ok := c.zones[z.Slug]; ok {
		return fmt.Errorf("duplicate zone %q in city %q", z.Slug, c.Slug)
	}

	z.City = c.Name
	c.zones[z.Slug] = z
	c.order = append(c.order, z.Slug)

	return nil
}

// Zone returns the zone matching slug. The lookup key is slugified
// first, like catalog lookups. A miss returns an *UnknownZoneError.
func (c *City) Zone(slug string) (*Zone, error) {
	z, ok := c.zones[Slugify(slug)]
	if !ok {
		return nil, &UnknownZoneError{City: c.Slug, Slug: slug}
	}

	return z, nil
}

// Zones returns every zone in insertion order.
func (c *City) Zones() []*Zone {
	zones := make([]*Zone, 0, len(c.order))
	for _, slug := range c.order {
		zones = append(zones, c.zones[slug])
	}

	return zones
}

// ZoneCount returns the number of zones in the city.
func (c *City) ZoneCount() int { return len(c.order) }

// ActiveZones returns the slugs of the zones restricting traffic at
// t, in insertion order. Every zone is evaluated on every call;
// nothing is memoized because the answer changes with the clock.
func (c *City) ActiveZones(t time.Time) []string {
	var active []string
	for _, slug := range c.order {
		if c.zones[slug].IsActiveAt(t) {
			active = append(active, slug)
		}
	}

	return active
}

// FeatureCollection renders every zone as a GeoJSON feature with its
// active state at t, in insertion order.
func (c *City) FeatureCollection(t time.Time) geometry.FeatureCollection {
	features := make([]geometry.Feature, 0, len(c.order))
	for _, slug := range c.order {
		features = append(features, c.zones[slug].Feature(t))
	}

	fc := geometry.NewFeatureCollection(features)
	fc.Properties = map[string]any{
		"name":       c.Name,
		"country":    c.Country,
		"zone_count": c.ZoneCount(),
	}

	return fc
}
