package timesheet

import "time"

// FullDayHours is the logged time at which a day counts as complete.
const FullDayHours = 8

// Task is a block of work logged by an employee on one calendar day.
// StartTime and EndTime are "HH:MM" wall-clock values on Date; overnight spans are not supported.
type Task struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Title         string
	Description   string
	StartTime     string
	EndTime       string
	DurationHours float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DayTotal is the logged time for one calendar day.
type DayTotal struct {
	Date         time.Time
	TotalMinutes int64
	TaskCount    int
}

func (d DayTotal) TotalHours() float64 {
	return float64(d.TotalMinutes) / 60
}

func (d DayTotal) Complete() bool {
	return d.TotalMinutes >= FullDayHours*60
}
