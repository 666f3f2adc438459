package accounting

import (
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
)

const secondsPerDay = 24 * 60 * 60

// CivilDate drops the clock and zone of t, keeping its calendar day at UTC midnight.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the inclusive number of calendar days from start to end.
// Only the calendar components are used, so a DST transition inside the range
// never changes the count. Both days sit at UTC midnight, so their Unix seconds
// differ by a whole multiple of a day for any pair of years.
func DaysBetween(start, end time.Time) (int, error) {
	s, e := CivilDate(start), CivilDate(end)
	if s.After(e) {
		return 0, leave.ErrInvalidRange
	}
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1, nil
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and [bStart, bEnd] share a day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !CivilDate(aStart).After(CivilDate(bEnd)) && !CivilDate(bStart).After(CivilDate(aEnd))
}
