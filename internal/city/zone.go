package city

import (
	"time"

	"github.com/cicconee/ztl-maps/internal/geometry"
	"github.com/cicconee/ztl-maps/internal/schedule"
)

// Zone is one limited traffic zone: a display boundary plus the
// canonical schedule deciding when it restricts traffic. Zones are
// built once by their city's loader and are read only afterwards.
type Zone struct {
	Slug     string
	Name     string
	City     string
	Boundary geometry.Ring
	Schedule schedule.Schedule
}

// IsActiveAt reports whether the zone restricts traffic at t.
func (z *Zone) IsActiveAt(t time.Time) bool {
	return z.Schedule.IsActive(t)
}

// NextTransition returns the next instant after from at which the
// zone flips between active and inactive. The second return is false
// when the zone never changes state.
func (z *Zone) NextTransition(from time.Time) (time.Time, bool) {
	return z.Schedule.NextTransition(from)
}

// Hours lists the zone's restriction windows in display form, such as
// "Monday,Tuesday 07:30-19:30".
func (z *Zone) Hours() []string {
	hours := make([]string, 0, len(z.Schedule.Windows))
	for _, w := range z.Schedule.Windows {
		hours = append(hours, w.String())
	}

	return hours
}

// Feature renders the zone as a GeoJSON feature for map display,
// carrying its active state at t. Active zones are drawn red,
// inactive zones green.
func (z *Zone) Feature(t time.Time) geometry.Feature {
	active := z.IsActiveAt(t)

	color := "green"
	if active {
		color = "red"
	}

	return geometry.NewPolygonFeature(geometry.Polygon{z.Boundary}, map[string]any{
		"slug":   z.Slug,
		"name":   z.Name,
		"city":   z.City,
		"active": active,
		"color":  color,
		"hours":  z.Hours(),
	})
}
