package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DenominationValues carries per-denomination amounts (not note counts).
// Each value must be an exact multiple of its face value; the service
// converts values to counts and rejects anything else with a field error.
type DenominationValues struct {
	JMD5000 int64 `json:"jmd_5000" validate:"min=0"`
	JMD2000 int64 `json:"jmd_2000" validate:"min=0"`
	JMD1000 int64 `json:"jmd_1000" validate:"min=0"`
	JMD500  int64 `json:"jmd_500"  validate:"min=0"`
	JMD100  int64 `json:"jmd_100"  validate:"min=0"`
	JMD50   int64 `json:"jmd_50"   validate:"min=0"`

	USD100 int64 `json:"usd_100" validate:"min=0"`
	USD50  int64 `json:"usd_50"  validate:"min=0"`
	USD20  int64 `json:"usd_20"  validate:"min=0"`
	USD10  int64 `json:"usd_10"  validate:"min=0"`
	USD1   int64 `json:"usd_1"   validate:"min=0"`
}

type CreateCashRequestRequest struct {
	LocationID    string             `json:"location_id"   validate:"omitempty,uuid"`
	DeliveryDate  string             `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	RequestType   string             `json:"request_type"  validate:"omitempty,oneof=regular urgent"`
	Denominations DenominationValues `json:"denominations" validate:"required"`
}

// ApproveCashRequestRequest lets the administrator adjust the shipment:
// approved amounts default to the request totals when omitted, allowing
// partial approval.
type ApproveCashRequestRequest struct {
	DeliveryDate      string           `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	ApprovedJMDAmount *decimal.Decimal `json:"approved_jmd_amount"`
	ApprovedUSDAmount *decimal.Decimal `json:"approved_usd_amount"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashDeliveryResponse struct {
	ID          string          `json:"id"`
	LocationID  string          `json:"location_id"`
	Date        string          `json:"date"`
	JMDAmount   decimal.Decimal `json:"jmd_amount"`
	USDAmount   decimal.Decimal `json:"usd_amount"`
	Verified    bool            `json:"verified"`
	VerifiedBy  *string         `json:"verified_by"`
	VerifiedAt  *string         `json:"verified_at"`
}

type CashRequestResponse struct {
	ID           string `json:"id"`
	LocationID   string `json:"location_id"`
	RequestDate  string `json:"request_date"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
	RequestType  string `json:"request_type"`

	JMD5000 int `json:"jmd_5000"`
	JMD2000 int `json:"jmd_2000"`
	JMD1000 int `json:"jmd_1000"`
	JMD500  int `json:"jmd_500"`
	JMD100  int `json:"jmd_100"`
	JMD50   int `json:"jmd_50"`
	USD100  int `json:"usd_100"`
	USD50   int `json:"usd_50"`
	USD20   int `json:"usd_20"`
	USD10   int `json:"usd_10"`
	USD1    int `json:"usd_1"`

	TotalJMD decimal.Decimal `json:"total_jmd"`
	TotalUSD decimal.Decimal `json:"total_usd"`

	ApprovedBy   *string               `json:"approved_by"`
	ApprovedDate *string               `json:"approved_date"`
	Delivery     *CashDeliveryResponse `json:"delivery"`
}
