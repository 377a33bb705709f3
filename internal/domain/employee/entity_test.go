package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekOff(t *testing.T) {
	w := WeekOff{Saturday: true, Sunday: true}

	// 2026-03-07 is a Saturday, 2026-03-09 a Monday.
	assert.True(t, w.IsWeekOff(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.IsWeekOff(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.IsWeekOff(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestEmployeeLocation(t *testing.T) {
	fallback := time.UTC

	tz := "Asia/Kolkata"
	e := Employee{Timezone: &tz}
	assert.Equal(t, "Asia/Kolkata", e.Location(fallback).String())

	e = Employee{}
	assert.Equal(t, fallback, e.Location(fallback))

	bad := "Not/AZone"
	e = Employee{Timezone: &bad}
	assert.Equal(t, fallback, e.Location(fallback))
}
