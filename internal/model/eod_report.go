package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CurrencyJMD = "JMD"
	CurrencyUSD = "USD"
)

// EODReport is the end-of-day reconciliation a branch agent submits for
// a processing date. One row per (agent, location, processing_date);
// resubmission updates in place.
type EODReport struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgentID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_eod_agent_location_date,priority:1"`
	LocationID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_eod_agent_location_date,priority:2"`
	ProcessingDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_eod_agent_location_date,priority:3"`

	ClosingBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FundsFromBXPWebex decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	// Courier shipment
	CashSentToCourier bool             `gorm:"not null;default:false"`
	CourierUSDAmount  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CourierUSDReceipt *string          `gorm:"type:varchar(50)"`
	CourierJMDAmount  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CourierJMDReceipt *string          `gorm:"type:varchar(50)"`

	AllTellersBalanced bool            `gorm:"not null;default:true"`
	TotalVariance      decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	Notes        string
	Confirmation bool `gorm:"not null;default:false"`
	Submitted    bool `gorm:"not null;default:false"`

	TellerBalances []TellerBalance         `gorm:"foreignKey:EODReportID"`
	Variances      []TellerVariance        `gorm:"foreignKey:EODReportID"`
	Breakdowns     []DenominationBreakdown `gorm:"foreignKey:EODReportID"`
	Adjustments    []Adjustment            `gorm:"foreignKey:EODReportID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TellerBalance is one teller's counted drawer at close. Rows are
// replaced wholesale on every report submission.
type TellerBalance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EODReportID uuid.UUID       `gorm:"type:uuid;index;not null"`
	TellerName  string          `gorm:"not null"`
	JMDAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	USDAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time
}

// TellerVariance records an individual teller's over/short amount when
// the drawers did not balance. Present only when AllTellersBalanced is
// false.
type TellerVariance struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EODReportID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	TellerNumber string          `gorm:"type:varchar(2);not null"`
	Variance     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DenominationBreakdown itemizes the vault count for one currency of a
// report. JMD uses the note fields plus CoinsAmount; USD uses the note
// fields plus SmallBillsCoinsAmount. One row per (report, currency).
type DenominationBreakdown struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EODReportID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_breakdown_report_currency,priority:1"`
	Currency    string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_breakdown_report_currency,priority:2"`

	Count5000 int `gorm:"not null;default:0"`
	Count1000 int `gorm:"not null;default:0"`
	Count500  int `gorm:"not null;default:0"`
	Count100  int `gorm:"not null;default:0"`
	Count50   int `gorm:"not null;default:0"`
	Count20   int `gorm:"not null;default:0"`
	Count10   int `gorm:"not null;default:0"`

	CoinsAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SmallBillsCoinsAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total sums the breakdown using only the fields that belong to its
// currency. Unknown currencies total zero.
func (b *DenominationBreakdown) Total() decimal.Decimal {
	switch b.Currency {
	case CurrencyJMD:
		notes := int64(b.Count5000)*5000 +
			int64(b.Count1000)*1000 +
			int64(b.Count500)*500 +
			int64(b.Count100)*100 +
			int64(b.Count50)*50
		return decimal.NewFromInt(notes).Add(b.CoinsAmount)
	case CurrencyUSD:
		notes := int64(b.Count100)*100 +
			int64(b.Count50)*50 +
			int64(b.Count20)*20 +
			int64(b.Count10)*10
		return decimal.NewFromInt(notes).Add(b.SmallBillsCoinsAmount)
	}
	return decimal.Zero
}

const (
	AdjustmentTypeDenomination = "denomination"
	AdjustmentTypeOverage      = "overage"
	AdjustmentTypeShortage     = "shortage"
)

// Adjustment is a correction attached to a report: a denomination swap,
// an overage or a shortage, in either currency.
type Adjustment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EODReportID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type        string          `gorm:"type:varchar(20);not null;default:'denomination'"`
	Description string          `gorm:"not null"`
	Count       int             `gorm:"not null;default:1"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'JMD'"`
	CreatedAt   time.Time
}
