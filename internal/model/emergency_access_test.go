package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmergencyActiveAt(t *testing.T) {
	until := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	grant := EmergencyAccessRequest{
		Status:       EmergencyStatusApproved,
		GrantedUntil: &until,
	}

	assert.True(t, grant.ActiveAt(until.Add(-time.Minute)))
	assert.True(t, grant.ActiveAt(until), "the boundary instant is inclusive")
	assert.False(t, grant.ActiveAt(until.Add(time.Second)))
}

func TestEmergencyActiveAt_RequiresApproval(t *testing.T) {
	until := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	now := until.Add(-time.Minute)

	pending := EmergencyAccessRequest{Status: EmergencyStatusPending, GrantedUntil: &until}
	assert.False(t, pending.ActiveAt(now))

	denied := EmergencyAccessRequest{Status: EmergencyStatusDenied, GrantedUntil: &until}
	assert.False(t, denied.ActiveAt(now))

	noExpiry := EmergencyAccessRequest{Status: EmergencyStatusApproved}
	assert.False(t, noExpiry.ActiveAt(now))
}
