package accounting

import (
	"testing"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		start    string
		end      string
		want     float64
		expected error
	}{
		{start: "09:00", end: "11:30", want: 2.5},
		{start: "00:00", end: "23:59", want: 23.0 + 59.0/60},
		{start: "13:15", end: "13:30", want: 0.25},
		{start: "11:00", end: "09:00", expected: timesheet.ErrInvalidTimeRange},
		{start: "09:00", end: "09:00", expected: timesheet.ErrInvalidTimeRange},
		{start: "9:00", end: "11:00", expected: timesheet.ErrInvalidClock},
		{start: "09:00", end: "24:00", expected: timesheet.ErrInvalidClock},
		{start: "09:60", end: "10:00", expected: timesheet.ErrInvalidClock},
		{start: "", end: "10:00", expected: timesheet.ErrInvalidClock},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			got, err := Duration(tt.start, tt.end)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDailyTotals(t *testing.T) {
	tasks := []timesheet.Task{
		{Date: date("2024-03-05"), StartTime: "13:00", EndTime: "17:30"},
		{Date: date("2024-03-04"), StartTime: "09:00", EndTime: "12:00"},
		{Date: date("2024-03-05"), StartTime: "08:30", EndTime: "12:00"},
		{Date: date("2024-03-04"), StartTime: "13:00", EndTime: "14:00"},
		{Date: date("2024-03-04"), StartTime: "15:00", EndTime: "14:00"},
	}

	totals := DailyTotals(tasks)
	require.Len(t, totals, 2)

	assert.True(t, date("2024-03-04").Equal(totals[0].Date))
	assert.Equal(t, 3, totals[0].TaskCount)
	assert.Equal(t, 4.0, totals[0].TotalHours())
	assert.False(t, totals[0].Complete())

	assert.True(t, date("2024-03-05").Equal(totals[1].Date))
	assert.Equal(t, 2, totals[1].TaskCount)
	assert.Equal(t, 8.0, totals[1].TotalHours())
	assert.True(t, totals[1].Complete())
}

func TestDailyTotals_Empty(t *testing.T) {
	assert.Empty(t, DailyTotals(nil))
}
