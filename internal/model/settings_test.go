package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestWithinSubmissionWindow(t *testing.T) {
	s := DefaultSystemSettings() // 08:00 to 15:00

	assert.False(t, s.WithinSubmissionWindow(at(7, 59)))
	assert.True(t, s.WithinSubmissionWindow(at(8, 0)), "window start is inclusive")
	assert.True(t, s.WithinSubmissionWindow(at(12, 30)))
	assert.True(t, s.WithinSubmissionWindow(at(15, 0)), "cutoff minute itself is inside")
	assert.False(t, s.WithinSubmissionWindow(at(15, 1)))
	assert.False(t, s.WithinSubmissionWindow(at(23, 59)))
}

func TestWithinSubmissionWindow_Disabled(t *testing.T) {
	s := DefaultSystemSettings()
	s.CutoffWindowEnabled = false

	assert.True(t, s.WithinSubmissionWindow(at(3, 0)))
	assert.True(t, s.WithinSubmissionWindow(at(23, 59)))
}

func TestWithinSubmissionWindow_CustomMinutes(t *testing.T) {
	s := DefaultSystemSettings()
	s.BusinessHoursStart = 9
	s.BusinessHoursStartMin = 30
	s.CutoffHour = 16
	s.CutoffMinute = 45

	assert.False(t, s.WithinSubmissionWindow(at(9, 29)))
	assert.True(t, s.WithinSubmissionWindow(at(9, 30)))
	assert.True(t, s.WithinSubmissionWindow(at(16, 45)))
	assert.False(t, s.WithinSubmissionWindow(at(16, 46)))
}
