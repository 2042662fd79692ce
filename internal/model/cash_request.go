package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusDelivered = "delivered"
	RequestStatusRejected  = "rejected"

	RequestTypeRegular = "regular"
	RequestTypeUrgent  = "urgent"
)

// CashRequest is a branch order for physical cash, broken down by
// denomination. Totals are always derived from the counts; values sent
// by clients are ignored.
type CashRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID   uuid.UUID `gorm:"type:uuid;index;not null"`
	RequestedBy  uuid.UUID `gorm:"type:uuid;not null"`
	RequestDate  time.Time
	DeliveryDate time.Time `gorm:"type:date;not null"`
	Status       string    `gorm:"type:varchar(10);not null;default:'pending'"`
	RequestType  string    `gorm:"type:varchar(10);not null;default:'regular'"`

	// JMD denominations
	JMD5000 int `gorm:"not null;default:0"`
	JMD2000 int `gorm:"not null;default:0"`
	JMD1000 int `gorm:"not null;default:0"`
	JMD500  int `gorm:"not null;default:0"`
	JMD100  int `gorm:"not null;default:0"`
	JMD50   int `gorm:"not null;default:0"`

	// USD denominations
	USD100 int `gorm:"not null;default:0"`
	USD50  int `gorm:"not null;default:0"`
	USD20  int `gorm:"not null;default:0"`
	USD10  int `gorm:"not null;default:0"`
	USD1   int `gorm:"not null;default:0"`

	TotalJMD decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalUSD decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovedDate *time.Time

	Delivery *CashDelivery `gorm:"foreignKey:CashRequestID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotals recalculates TotalJMD and TotalUSD from the counts.
// Called before every persist so stored totals can never drift.
func (r *CashRequest) ComputeTotals() {
	r.TotalJMD = decimal.NewFromInt(
		int64(r.JMD5000)*5000 +
			int64(r.JMD2000)*2000 +
			int64(r.JMD1000)*1000 +
			int64(r.JMD500)*500 +
			int64(r.JMD100)*100 +
			int64(r.JMD50)*50,
	)
	r.TotalUSD = decimal.NewFromInt(
		int64(r.USD100)*100 +
			int64(r.USD50)*50 +
			int64(r.USD20)*20 +
			int64(r.USD10)*10 +
			int64(r.USD1),
	)
}

// HasDenominations reports whether at least one count is non-zero.
func (r *CashRequest) HasDenominations() bool {
	return r.JMD5000+r.JMD2000+r.JMD1000+r.JMD500+r.JMD100+r.JMD50+
		r.USD100+r.USD50+r.USD20+r.USD10+r.USD1 > 0
}

// CashDelivery records cash physically arriving at a branch. Created
// unverified when the originating request is approved; a branch agent
// confirms receipt, which is what makes the amounts count toward the
// day's position.
type CashDelivery struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	CashRequestID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Date          time.Time  `gorm:"type:date;not null"`
	JMDAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	USDAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Verified      bool            `gorm:"not null;default:false"`
	VerifiedBy    *uuid.UUID      `gorm:"type:uuid"`
	VerifiedAt    *time.Time
	CreatedAt     time.Time
}
