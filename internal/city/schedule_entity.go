package city

import (
	"context"
	"time"

	"github.com/cicconee/ztl-maps/internal/schedule"
)

// WindowEntity is the zone_windows table row: one weekly rule with a
// boolean column per weekday and clock times stored as minutes since
// midnight.
type WindowEntity struct {
	ID          int
	ZoneID      int
	Monday      bool
	Tuesday     bool
	Wednesday   bool
	Thursday    bool
	Friday      bool
	Saturday    bool
	Sunday      bool
	StartMinute int
	EndMinute   int
}

// newWindowEntity flattens a canonical window into its row form.
func newWindowEntity(zoneID int, w schedule.RestrictionWindow) WindowEntity {
	return WindowEntity{
		ZoneID:      zoneID,
		Monday:      w.Days.Contains(time.Monday),
		Tuesday:     w.Days.Contains(time.Tuesday),
		Wednesday:   w.Days.Contains(time.Wednesday),
		Thursday:    w.Days.Contains(time.Thursday),
		Friday:      w.Days.Contains(time.Friday),
		Saturday:    w.Days.Contains(time.Saturday),
		Sunday:      w.Days.Contains(time.Sunday),
		StartMinute: w.Hours.Start.Minutes(),
		EndMinute:   w.Hours.End.Minutes(),
	}
}

// RawWindow converts the row back into the raw form the loader hands
// to schedule.Normalize, which revalidates it. Minute counts outside
// a single day fail here; a row with every weekday false fails inside
// Normalize.
func (w *WindowEntity) RawWindow() (schedule.RawWindow, error) {
	start, err := schedule.TimeOfDayFromMinutes(w.StartMinute)
	if err != nil {
		return schedule.RawWindow{}, err
	}

	end, err := schedule.TimeOfDayFromMinutes(w.EndMinute)
	if err != nil {
		return schedule.RawWindow{}, err
	}

	set := w.days()
	days := make([]string, 0, 7)
	for _, d := range set.Days() {
		days = append(days, d.String())
	}

	return schedule.RawWindow{Days: days, Start: start.String(), End: end.String()}, nil
}

func (w *WindowEntity) days() schedule.WeekdaySet {
	var s schedule.WeekdaySet
	for _, col := range []struct {
		on  bool
		day time.Weekday
	}{
		{w.Monday, time.Monday},
		{w.Tuesday, time.Tuesday},
		{w.Wednesday, time.Wednesday},
		{w.Thursday, time.Thursday},
		{w.Friday, time.Friday},
		{w.Saturday, time.Saturday},
		{w.Sunday, time.Sunday},
	} {
		if col.on {
			s = s.With(col.day)
		}
	}

	return s
}

// Insert writes the row, setting ID.
func (w *WindowEntity) Insert(ctx context.Context, db QueryRower) error {
	query := `
		INSERT INTO zone_windows(zone_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, start_minute, end_minute)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	return db.QueryRowContext(ctx, query,
		w.ZoneID,
		w.Monday,
		w.Tuesday,
		w.Wednesday,
		w.Thursday,
		w.Friday,
		w.Saturday,
		w.Sunday,
		w.StartMinute,
		w.EndMinute,
	).Scan(&w.ID)
}

func (w *WindowEntity) scan(scanFunc func(...any) error) error {
	return scanFunc(
		&w.ID,
		&w.ZoneID,
		&w.Monday,
		&w.Tuesday,
		&w.Wednesday,
		&w.Thursday,
		&w.Friday,
		&w.Saturday,
		&w.Sunday,
		&w.StartMinute,
		&w.EndMinute,
	)
}

type WindowEntityCollection []WindowEntity

// Select reads every window row of one zone.
func (c *WindowEntityCollection) Select(ctx context.Context, db Queryer, zoneID int) error {
	query := `
		SELECT id, zone_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, start_minute, end_minute
		FROM zone_windows
		WHERE zone_id = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, zoneID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WindowEntity
		if err := w.scan(rows.Scan); err != nil {
			return err
		}

		*c = append(*c, w)
	}

	return rows.Err()
}

// ExceptionEntity is the zone_exceptions table row: one dated
// override covering StartsOn through EndsOn inclusive.
type ExceptionEntity struct {
	ID       int
	ZoneID   int
	StartsOn time.Time
	EndsOn   time.Time
	Kind     string
}

// newExceptionEntity flattens a canonical exception into its row form.
func newExceptionEntity(zoneID int, e schedule.Exception) ExceptionEntity {
	return ExceptionEntity{
		ZoneID:   zoneID,
		StartsOn: e.Start.Time(0, time.UTC),
		EndsOn:   e.End.Time(0, time.UTC),
		Kind:     e.Kind.String(),
	}
}

// RawException converts the row back into the raw form the loader
// hands to schedule.Normalize. An unknown kind fails here.
func (e *ExceptionEntity) RawException() (schedule.RawException, error) {
	kind, err := schedule.ParseExceptionKind(e.Kind)
	if err != nil {
		return schedule.RawException{}, err
	}

	return schedule.RawException{
		Start: e.StartsOn.Format("2006-01-02"),
		End:   e.EndsOn.Format("2006-01-02"),
		Force: kind == schedule.ForcedActive,
	}, nil
}

// Insert writes the row, setting ID.
func (e *ExceptionEntity) Insert(ctx context.Context, db QueryRower) error {
	query := `
		INSERT INTO zone_exceptions(zone_id, starts_on, ends_on, kind)
		VALUES($1, $2, $3, $4)
		RETURNING id`

	return db.QueryRowContext(ctx, query,
		e.ZoneID,
		e.StartsOn,
		e.EndsOn,
		e.Kind,
	).Scan(&e.ID)
}

func (e *ExceptionEntity) scan(scanFunc func(...any) error) error {
	return scanFunc(
		&e.ID,
		&e.ZoneID,
		&e.StartsOn,
		&e.EndsOn,
		&e.Kind,
	)
}

type ExceptionEntityCollection []ExceptionEntity

// Select reads every exception row of one zone.
func (c *ExceptionEntityCollection) Select(ctx context.Context, db Queryer, zoneID int) error {
	query := `
		SELECT id, zone_id, starts_on, ends_on, kind
		FROM zone_exceptions
		WHERE zone_id = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, zoneID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e ExceptionEntity
		if err := e.scan(rows.Scan); err != nil {
			return err
		}

		*c = append(*c, e)
	}

	return rows.Err()
}
