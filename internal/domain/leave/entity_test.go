package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRequestTotalDays(t *testing.T) {
	// Inclusive calendar span: 2026-03-10 through 2026-03-12 is 3 days.
	r := Request{
		StartDate: date(2026, 3, 10),
		EndDate:   date(2026, 3, 12),
		Duration:  DurationFull,
	}
	assert.Equal(t, 3.0, r.TotalDays())

	r.EndDate = r.StartDate
	assert.Equal(t, 1.0, r.TotalDays())
}

func TestRequestTotalDaysHalfDay(t *testing.T) {
	r := Request{
		StartDate: date(2026, 3, 10),
		EndDate:   date(2026, 3, 10),
		Duration:  DurationFirstHalf,
	}
	assert.Equal(t, 0.5, r.TotalDays())

	r.Duration = DurationSecondHalf
	assert.Equal(t, 0.5, r.TotalDays())
}

func TestRequestTotalDaysAcrossMonthBoundary(t *testing.T) {
	r := Request{
		StartDate: date(2026, 2, 27),
		EndDate:   date(2026, 3, 2),
		Duration:  DurationFull,
	}
	assert.Equal(t, 4.0, r.TotalDays())
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeCasual, TypeSick, TypeEarned, TypeUnpaid, TypeOnDuty} {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, Type("PTO").Valid())
	assert.False(t, Type("").Valid())
}

func TestDurationIsHalfDay(t *testing.T) {
	assert.False(t, DurationFull.IsHalfDay())
	assert.True(t, DurationFirstHalf.IsHalfDay())
	assert.True(t, DurationSecondHalf.IsHalfDay())
}
