package city

import "time"

// SaveResult is returned by Service.Save after a city's first scrape.
// Fallback carries the scrape error when the zones came from seed
// data rather than the live page.
type SaveResult struct {
	City      string
	Country   string
	Zones     int
	Fails     []ZoneFail
	Fallback  error
	CreatedAt time.Time
}

// SyncResult is returned by Service.Sync after a re-scrape.
type SyncResult struct {
	City      string
	Country   string
	Zones     int
	Fails     []ZoneFail
	Fallback  error
	UpdatedAt time.Time
}

// LoadResult is returned by Service.Load with the cities read from
// the database and the zones skipped because their stored rows no
// longer normalize.
type LoadResult struct {
	Cities []*City
	Fails  []ZoneFail
}

// TotalZones sums the zones across every loaded city.
func (l *LoadResult) TotalZones() int {
	total := 0
	for _, c := range l.Cities {
		total += c.ZoneCount()
	}

	return total
}

// ZoneFail records one zone that could not be carried into its city.
type ZoneFail struct {
	// The city the zone belongs to.
	City string

	// The zone identifier.
	Zone string

	// The operation that failed.
	Op string

	// The error that caused the failure.
	Err error
}
