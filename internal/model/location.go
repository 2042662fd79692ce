package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Location is a branch that holds and moves cash.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time

	Limit *LocationLimit `gorm:"foreignKey:LocationID"`
}

// LocationLimit holds the three cash thresholds for a branch.
// insurance >= eod vault >= working day in practice, but the ordering
// is not enforced; each limit is evaluated independently.
type LocationLimit struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	InsuranceLimit  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	EODVaultLimit   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	WorkingDayLimit decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DefaultLocationLimit returns the thresholds applied when a branch is
// created without explicit limits.
func DefaultLocationLimit(locationID uuid.UUID) *LocationLimit {
	return &LocationLimit{
		LocationID:      locationID,
		InsuranceLimit:  decimal.NewFromInt(5_000_000),
		EODVaultLimit:   decimal.NewFromInt(3_000_000),
		WorkingDayLimit: decimal.NewFromInt(2_000_000),
	}
}
