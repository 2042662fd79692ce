package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyPosition is the projected cash position of a branch for one
// calendar date. One row per (location, date); recomputation overwrites
// in place.
type DailyPosition struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_position_location_date,priority:1"`
	AgentID    *uuid.UUID `gorm:"type:uuid"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_position_location_date,priority:2"`

	PreviousDayBalance      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CashDeliveredToday      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PayoutAt3PM             decimal.Decimal `gorm:"column:payout_at_3pm;type:decimal(15,2);not null"`
	CashPositionAt3PM       decimal.Decimal `gorm:"column:cash_position_at_3pm;type:decimal(15,2);not null"`
	ProjectedEndingPosition decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ProjectedNextDayAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// ClosingBalance is filled in from the EOD report once reconciliation
	// for the date is submitted; zero until then.
	ClosingBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Variance       decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	ExceedsInsuranceLimit  bool `gorm:"not null;default:false"`
	ExceedsEODLimit        bool `gorm:"not null;default:false"`
	ExceedsWorkingDayLimit bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpectedClosingBalance is what the branch should hold at close if the
// projection inputs are accurate.
func (d *DailyPosition) ExpectedClosingBalance() decimal.Decimal {
	return d.PreviousDayBalance.Add(d.CashDeliveredToday).Sub(d.PayoutAt3PM)
}
