package accounting

import (
	"context"
	"fmt"
	"math"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"golang.org/x/sync/errgroup"
)

// ValidateEntry checks the shape of an attendance entry before it is stored.
func ValidateEntry(e attendance.Entry) (attendance.Entry, error) {
	if !e.Status.IsValid() {
		return attendance.Entry{}, attendance.ErrInvalidStatus
	}
	if e.EmployeeID == "" || e.Date.IsZero() {
		return attendance.Entry{}, fmt.Errorf("%w: employee and date are required", attendance.ErrInvalidEntry)
	}
	if e.Status != attendance.StatusPresent && (e.HoursWorked != nil || e.TasksLogged != nil) {
		return attendance.Entry{}, fmt.Errorf("%w: hours and tasks apply to present days only", attendance.ErrInvalidEntry)
	}
	if e.HoursWorked != nil && (*e.HoursWorked < 0 || *e.HoursWorked > 24 || math.IsNaN(*e.HoursWorked)) {
		return attendance.Entry{}, attendance.ErrInvalidHours
	}
	if e.TasksLogged != nil && *e.TasksLogged < 0 {
		return attendance.Entry{}, attendance.ErrInvalidTasks
	}

	valid := e
	valid.Date = CivilDate(e.Date)
	return valid, nil
}

// Summarize folds attendance entries into monthly counters. Hours and tasks only
// count on present days; a missing value counts as zero.
func Summarize(entries []attendance.Entry) attendance.Summary {
	var s attendance.Summary
	for _, e := range entries {
		switch e.Status {
		case attendance.StatusPresent:
			s.PresentDays++
			if e.HoursWorked != nil {
				s.TotalMinutes += hoursToMinutes(*e.HoursWorked)
			}
			if e.TasksLogged != nil {
				s.TotalTasks += *e.TasksLogged
			}
		case attendance.StatusOnLeave:
			s.LeaveDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		}
	}
	return s
}

// Merge combines two partial summaries.
func Merge(a, b attendance.Summary) attendance.Summary {
	return attendance.Summary{
		PresentDays:  a.PresentDays + b.PresentDays,
		LeaveDays:    a.LeaveDays + b.LeaveDays,
		AbsentDays:   a.AbsentDays + b.AbsentDays,
		TotalMinutes: a.TotalMinutes + b.TotalMinutes,
		TotalTasks:   a.TotalTasks + b.TotalTasks,
	}
}

// SummarizeParallel splits entries into shards, summarizes them concurrently and
// merges the partial results. The outcome equals Summarize(entries).
func SummarizeParallel(ctx context.Context, entries []attendance.Entry, shards int) (attendance.Summary, error) {
	if shards < 1 {
		return attendance.Summary{}, attendance.ErrInvalidShards
	}
	if shards > len(entries) {
		shards = len(entries)
	}
	if shards <= 1 {
		return Summarize(entries), nil
	}

	partials := make([]attendance.Summary, shards)
	size := (len(entries) + shards - 1) / shards

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < shards; i++ {
		lo := i * size
		hi := min(lo+size, len(entries))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[i] = Summarize(entries[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return attendance.Summary{}, err
	}

	var total attendance.Summary
	for _, p := range partials {
		total = Merge(total, p)
	}
	return total, nil
}

func hoursToMinutes(h float64) int64 {
	return int64(math.Round(h * 60))
}
