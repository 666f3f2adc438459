package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_StopsWithContext(t *testing.T) {
	s := NewScheduler()
	s.AddJob("noop", time.Millisecond, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}
}

type stubAttendanceService struct {
	attendance.AttendanceService
	cleaned int
	err     error
}

func (s *stubAttendanceService) CleanSummaryCache(ctx context.Context) (int, error) {
	s.cleaned++
	return 3, s.err
}

func TestAttendanceJobs_RunOnce(t *testing.T) {
	svc := &stubAttendanceService{}
	s := NewScheduler()
	NewAttendanceJobs(svc, time.Minute).RegisterJobs(s)

	s.RunOnce(context.Background())
	assert.Equal(t, 1, svc.cleaned)

	svc.err = errors.New("boom")
	assert.Error(t, NewAttendanceJobs(svc, time.Minute).CleanSummaryCache(context.Background()))
}
