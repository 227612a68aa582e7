package muni

import (
	"sort"
	"time"

	"github.com/cicconee/ztl-maps/internal/schedule"
)

// Holidays returns the Italian national holidays for the given year
// as ISO dates, sorted ascending. Easter Sunday and Easter Monday are
// computed with the Meeus/Jones/Butcher algorithm; everything else is
// fixed.
func Holidays(year int) []string {
	easter := calculateEaster(year)

	dates := []string{
		formatDate(year, 1, 1),   // Capodanno
		formatDate(year, 1, 6),   // Epifania
		easter.Format("2006-01-02"),
		easter.AddDate(0, 0, 1).Format("2006-01-02"), // Lunedì dell'Angelo
		formatDate(year, 4, 25),  // Liberazione
		formatDate(year, 5, 1),   // Festa del Lavoro
		formatDate(year, 6, 2),   // Festa della Repubblica
		formatDate(year, 8, 15),  // Ferragosto
		formatDate(year, 11, 1),  // Ognissanti
		formatDate(year, 12, 8),  // Immacolata Concezione
		formatDate(year, 12, 25), // Natale
		formatDate(year, 12, 26), // Santo Stefano
	}

	sort.Strings(dates)
	return dates
}

// HolidaySuspensions returns suspension records covering the Italian
// national holidays of each given year.
func HolidaySuspensions(years ...int) []schedule.RawException {
	var exceptions []schedule.RawException
	for _, year := range years {
		for _, date := range Holidays(year) {
			exceptions = append(exceptions, schedule.RawException{Start: date})
		}
	}

	return exceptions
}

// holidayYears returns the years holiday suspensions should cover
// when zones are loaded now: the current year and the next, so a sync
// late in December already carries January's holidays.
func holidayYears(now time.Time) []int {
	return []int{now.Year(), now.Year() + 1}
}

// suspendOnHolidays attaches national holiday suspensions to every
// zone that only runs on working days. Zones with weekend coverage
// publish their own calendar and are left untouched.
func suspendOnHolidays(zones []Zone, now time.Time) []Zone {
	suspensions := HolidaySuspensions(holidayYears(now)...)
	for i, z := range zones {
		if weekdayOnly(z) {
			zones[i].Exceptions = append(zones[i].Exceptions, suspensions...)
		}
	}

	return zones
}

// weekdayOnly reports whether none of the zone's windows touch a
// weekend day. Unparseable day tokens disqualify the zone; Normalize
// reports them properly later.
func weekdayOnly(z Zone) bool {
	if len(z.Windows) == 0 {
		return false
	}

	for _, w := range z.Windows {
		days, err := schedule.ExpandWeekdays(w.Days)
		if err != nil {
			return false
		}

		if days.Contains(time.Saturday) || days.Contains(time.Sunday) {
			return false
		}
	}

	return true
}

// calculateEaster computes Easter Sunday with the Meeus/Jones/Butcher
// algorithm.
func calculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	// Noon keeps date formatting stable across timezones.
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

func formatDate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format("2006-01-02")
}
