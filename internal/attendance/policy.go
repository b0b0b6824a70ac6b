package attendance

import "time"

// Policy decides lateness. Check-ins strictly after the cutoff, compared at
// minute precision in Location, are late.
type Policy struct {
	Location     *time.Location
	CutoffHour   int
	CutoffMinute int
}

func DefaultPolicy() Policy {
	return Policy{Location: time.UTC, CutoffHour: 9, CutoffMinute: 30}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// ClassifyCheckIn returns StatusLate or StatusPresent.
func (p Policy) ClassifyCheckIn(at time.Time) string {
	local := at.In(p.location())
	h, m := local.Hour(), local.Minute()
	if h > p.CutoffHour || (h == p.CutoffHour && m > p.CutoffMinute) {
		return StatusLate
	}
	return StatusPresent
}

// Today is the calendar date of now in the policy's zone, as a UTC midnight
// suitable for a DATE column.
func (p Policy) Today(now time.Time) time.Time {
	y, mo, d := now.In(p.location()).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// At places a wall-clock "HH:MM" on date in the policy's zone.
func (p Policy) At(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, p.location()), nil
}

// MonthRange returns the first day of month and the first day of the next one.
func MonthRange(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func WorkMinutes(checkIn, checkOut time.Time) int {
	if checkOut.Before(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn).Minutes())
}
