package timesheet

import "errors"

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidClock     = errors.New("time must be in HH:MM format")
	ErrTaskNotFound     = errors.New("timesheet task not found")
)
