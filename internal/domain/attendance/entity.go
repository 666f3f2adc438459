package attendance

import (
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusOnLeave
}

// Entry is one employee's attendance for one calendar day.
// HoursWorked and TasksLogged are only set when Status is StatusPresent.
type Entry struct {
	EmployeeID  string
	Date        time.Time
	Status      Status
	HoursWorked *float64
	TasksLogged *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary is the monthly attendance fold. Hours are kept in whole minutes so that
// merging shard summaries in any order gives the same result.
type Summary struct {
	PresentDays  int
	LeaveDays    int
	AbsentDays   int
	TotalMinutes int64
	TotalTasks   int
}

func (s Summary) TotalDays() int {
	return s.PresentDays + s.LeaveDays + s.AbsentDays
}

func (s Summary) TotalHours() float64 {
	return float64(s.TotalMinutes) / 60
}

// AttendanceRate is present days over working days (total minus leave) as a rounded
// percentage, and 0 when there are no working days.
func (s Summary) AttendanceRate() int {
	workingDays := s.TotalDays() - s.LeaveDays
	if workingDays <= 0 {
		return 0
	}
	return int(math.Round(float64(s.PresentDays) / float64(workingDays) * 100))
}
