package accounting

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
)

// Duration returns the hours between two "HH:MM" clocks on the same day.
func Duration(start, end string) (float64, error) {
	minutes, err := durationMinutes(start, end)
	if err != nil {
		return 0, err
	}
	return float64(minutes) / 60, nil
}

func durationMinutes(start, end string) (int64, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		return 0, timesheet.ErrInvalidTimeRange
	}
	return e - s, nil
}

// parseClock returns minutes since midnight.
func parseClock(clock string) (int64, error) {
	if !validator.IsValidClock(clock) {
		return 0, timesheet.ErrInvalidClock
	}
	t, err := time.Parse(validator.ClockLayout, clock)
	if err != nil {
		return 0, timesheet.ErrInvalidClock
	}
	return int64(t.Hour()*60 + t.Minute()), nil
}

// DailyTotals groups tasks by calendar day, oldest first. Tasks whose clocks do not
// form a valid range contribute to the count but not to the time.
func DailyTotals(tasks []timesheet.Task) []timesheet.DayTotal {
	byDay := make(map[time.Time]*timesheet.DayTotal)
	for _, task := range tasks {
		day := CivilDate(task.Date)
		total, ok := byDay[day]
		if !ok {
			total = &timesheet.DayTotal{Date: day}
			byDay[day] = total
		}
		total.TaskCount++
		if minutes, err := durationMinutes(task.StartTime, task.EndTime); err == nil {
			total.TotalMinutes += minutes
		}
	}

	totals := make([]timesheet.DayTotal, 0, len(byDay))
	for _, total := range byDay {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date)
	})
	return totals
}
