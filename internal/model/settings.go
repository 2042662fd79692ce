package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemSettings is a singleton row controlling the submission window
// and emergency access. Callers read it through the settings service,
// which supplies defaults when no row exists yet.
type SystemSettings struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CutoffWindowEnabled     bool      `gorm:"not null;default:true"`
	CutoffHour              int       `gorm:"not null;default:15"`
	CutoffMinute            int       `gorm:"not null;default:0"`
	BusinessHoursStart      int       `gorm:"not null;default:8"`
	BusinessHoursStartMin   int       `gorm:"not null;default:0"`
	EmergencyAccessDuration int       `gorm:"not null;default:30"` // minutes
	UpdatedBy               *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt               time.Time
}

// DefaultSystemSettings returns the values used until an admin saves
// explicit settings.
func DefaultSystemSettings() *SystemSettings {
	return &SystemSettings{
		CutoffWindowEnabled:     true,
		CutoffHour:              15,
		CutoffMinute:            0,
		BusinessHoursStart:      8,
		BusinessHoursStartMin:   0,
		EmergencyAccessDuration: 30,
	}
}

// WithinSubmissionWindow reports whether t falls inside business hours
// and before the cutoff. Always true when the window is disabled.
func (s *SystemSettings) WithinSubmissionWindow(t time.Time) bool {
	if !s.CutoffWindowEnabled {
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	start := s.BusinessHoursStart*60 + s.BusinessHoursStartMin
	cutoff := s.CutoffHour*60 + s.CutoffMinute
	return minutes >= start && minutes <= cutoff
}
