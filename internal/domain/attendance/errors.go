package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidStatus = errors.New("attendance status must be present, absent or on_leave")
	ErrInvalidEntry  = errors.New("invalid attendance entry")
	ErrInvalidHours  = errors.New("hours worked must be between 0 and 24")
	ErrInvalidTasks  = errors.New("tasks logged must not be negative")
	ErrInvalidShards = errors.New("shard count must be positive")
	ErrExportFailed  = errors.New("failed to generate attendance export")
)
