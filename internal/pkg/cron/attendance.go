package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	interval      time.Duration
}

// NewAttendanceJobs sweeps the month summary cache every interval.
func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc, interval: interval}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("clean_attendance_summary_cache", j.interval, j.CleanSummaryCache)
}

func (j *AttendanceJobs) CleanSummaryCache(ctx context.Context) error {
	removed, err := j.attendanceSvc.CleanSummaryCache(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("Cron: expired attendance summaries removed", "count", removed)
	}
	return nil
}
