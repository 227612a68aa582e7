package city

import "sync"

// Catalog holds the loaded cities and serves every read query. Query
// handlers share it across goroutines: reads take the read lock, and
// a refresh publishes a fully built City under the write lock. A City
// inside the catalog is never mutated, only replaced.
type Catalog struct {
	mu     sync.RWMutex
	cities map[string]*City
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{cities: map[string]*City{}}
}

// Replace swaps the whole snapshot for cities, in the given order.
// Used at boot when every city loads at once.
func (c *Catalog) Replace(cities []*City) {
	m := make(map[string]*City, len(cities))
	order := make([]string, 0, len(cities))
	for _, ct := range cities {
		if _, ok := m[ct.Slug]; ok {
			continue
		}

		m[ct.Slug] = ct
		order = append(order, ct.Slug)
	}

	c.mu.Lock()
	c.cities = m
	c.order = order
	c.mu.Unlock()
}

// Put publishes ct, replacing any previous snapshot of the same city.
// A city not seen before appends to the listing order.
func (c *Catalog) Put(ct *City) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cities[ct.Slug]; !ok {
		c.order = append(c.order, ct.Slug)
	}

	c.cities[ct.Slug] = ct
}

// City returns the city matching slug. The lookup key is slugified
// first, so "Milano" and "milano" name the same city. A miss returns
// an *UnknownCityError.
func (c *Catalog) City(slug string) (*City, error) {
	key := Slugify(slug)

	c.mu.RLock()
	defer c.mu.RUnlock()

	ct, ok := c.cities[key]
	if !ok {
		return nil, &UnknownCityError{Slug: slug}
	}

	return ct, nil
}

// Cities returns every city in load order.
func (c *Catalog) Cities() []*City {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cities := make([]*City, 0, len(c.order))
	for _, slug := range c.order {
		cities = append(cities, c.cities[slug])
	}

	return cities
}

// Len returns the number of loaded cities.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}
