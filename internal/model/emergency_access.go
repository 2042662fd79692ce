package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmergencyStatusPending  = "pending"
	EmergencyStatusApproved = "approved"
	EmergencyStatusDenied   = "denied"
	EmergencyStatusExpired  = "expired"
)

// EmergencyAccessRequest lets an agent ask for a temporary override of
// the submission cutoff window. Expiry is evaluated at read time; rows
// are never flipped to "expired" by a background job.
type EmergencyAccessRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgentID     uuid.UUID `gorm:"type:uuid;index;not null"`
	LocationID  uuid.UUID `gorm:"type:uuid;index;not null"`
	RequestedAt time.Time
	Reason      string     `gorm:"not null"`
	Status      string     `gorm:"type:varchar(10);not null;default:'pending'"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	// GrantedUntil is set on approval: review time plus the configured
	// emergency access duration.
	GrantedUntil *time.Time
}

// ActiveAt reports whether the grant overrides the cutoff at the given
// instant. The boundary is inclusive.
func (r *EmergencyAccessRequest) ActiveAt(now time.Time) bool {
	if r.Status != EmergencyStatusApproved || r.GrantedUntil == nil {
		return false
	}
	return !now.After(*r.GrantedUntil)
}
