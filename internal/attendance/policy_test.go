package attendance_test

import (
	"testing"
	"time"

	"dayflow/internal/attendance"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_ClassifyCheckIn(t *testing.T) {
	p := attendance.DefaultPolicy()
	day := func(h, m, s int) time.Time { return time.Date(2024, 3, 4, h, m, s, 0, time.UTC) }

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"early morning", day(7, 45, 0), attendance.StatusPresent},
		{"exactly at cutoff", day(9, 30, 0), attendance.StatusPresent},
		{"seconds past cutoff stay on time", day(9, 30, 59), attendance.StatusPresent},
		{"one minute late", day(9, 31, 0), attendance.StatusLate},
		{"next hour", day(10, 0, 0), attendance.StatusLate},
		{"afternoon", day(14, 5, 0), attendance.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ClassifyCheckIn(tt.at))
		})
	}
}

func TestPolicy_UsesConfiguredZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	assert.NoError(t, err)
	p := attendance.Policy{Location: kolkata, CutoffHour: 9, CutoffMinute: 30}

	// 03:59 UTC is 09:29 IST, 04:05 UTC is 09:35 IST.
	assert.Equal(t, attendance.StatusPresent, p.ClassifyCheckIn(time.Date(2024, 3, 4, 3, 59, 0, 0, time.UTC)))
	assert.Equal(t, attendance.StatusLate, p.ClassifyCheckIn(time.Date(2024, 3, 4, 4, 5, 0, 0, time.UTC)))

	// 20:00 UTC on the 4th is already the 5th in Kolkata.
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), p.Today(time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC)))
}

func TestPolicy_At(t *testing.T) {
	p := attendance.DefaultPolicy()
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	got, err := p.At(date, "08:15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 15, 0, 0, time.UTC), got)

	_, err = p.At(date, "8am")
	assert.Error(t, err)
}

func TestMonthRangeAndWorkMinutes(t *testing.T) {
	from, to := attendance.MonthRange(time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), to)

	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 510, attendance.WorkMinutes(in, in.Add(8*time.Hour+30*time.Minute)))
	assert.Equal(t, 0, attendance.WorkMinutes(in, in.Add(-time.Minute)))
}
