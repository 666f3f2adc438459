package accounting

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr error
	}{
		{name: "same day", start: "2024-03-04", end: "2024-03-04", want: 1},
		{name: "three days", start: "2024-03-04", end: "2024-03-06", want: 3},
		{name: "across month end", start: "2024-01-30", end: "2024-02-02", want: 4},
		{name: "leap day", start: "2024-02-28", end: "2024-03-01", want: 3},
		{name: "non leap year", start: "2023-02-28", end: "2023-03-01", want: 2},
		{name: "across year end", start: "2023-12-31", end: "2024-01-01", want: 2},
		{name: "four centuries", start: "1700-01-01", end: "2100-01-01", want: 146098},
		{name: "whole calendar", start: "0001-01-01", end: "9999-12-31", want: 3652059},
		{name: "end before start", start: "2024-03-06", end: "2024-03-04", wantErr: leave.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(date(tt.start), date(tt.end))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysBetween_IgnoresClockAndDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is the spring-forward day in New York: the span is only 47 elapsed hours.
	start := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	end := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)
	got, err := DaysBetween(start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	// Fall back adds an hour.
	start = time.Date(2024, 11, 2, 23, 30, 0, 0, loc)
	end = time.Date(2024, 11, 4, 0, 15, 0, 0, loc)
	got, err = DaysBetween(start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestDaysBetween_AlwaysPositive(t *testing.T) {
	base := date("2024-01-01")
	for offset := 0; offset < 400; offset += 7 {
		got, err := DaysBetween(base, base.AddDate(0, 0, offset))
		require.NoError(t, err)
		assert.Equal(t, offset+1, got)
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(date("2024-03-01"), date("2024-03-05"), date("2024-03-05"), date("2024-03-07")))
	assert.True(t, Overlaps(date("2024-03-01"), date("2024-03-10"), date("2024-03-03"), date("2024-03-04")))
	assert.False(t, Overlaps(date("2024-03-01"), date("2024-03-04"), date("2024-03-05"), date("2024-03-07")))
	assert.False(t, Overlaps(date("2024-03-08"), date("2024-03-09"), date("2024-03-05"), date("2024-03-07")))
}
