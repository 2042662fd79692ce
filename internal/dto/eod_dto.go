package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type TellerBalanceEntry struct {
	TellerName string          `json:"teller_name" validate:"required"`
	JMDAmount  decimal.Decimal `json:"jmd_amount"  validate:"min=0"`
	USDAmount  decimal.Decimal `json:"usd_amount"  validate:"min=0"`
}

type TellerVarianceEntry struct {
	TellerNumber string          `json:"teller_number" validate:"required,max=2"`
	Variance     decimal.Decimal `json:"variance"      validate:"required"`
}

// BreakdownValues carries per-denomination amounts for one currency.
// Same multiple-of-face rule as cash requests.
type BreakdownValues struct {
	Val5000 int64 `json:"val_5000" validate:"min=0"`
	Val1000 int64 `json:"val_1000" validate:"min=0"`
	Val500  int64 `json:"val_500"  validate:"min=0"`
	Val100  int64 `json:"val_100"  validate:"min=0"`
	Val50   int64 `json:"val_50"   validate:"min=0"`
	Val20   int64 `json:"val_20"   validate:"min=0"`
	Val10   int64 `json:"val_10"   validate:"min=0"`

	CoinsAmount           decimal.Decimal `json:"coins_amount"             validate:"min=0"`
	SmallBillsCoinsAmount decimal.Decimal `json:"small_bills_coins_amount" validate:"min=0"`
}

type AdjustmentEntry struct {
	Type        string          `json:"type"        validate:"required,oneof=denomination overage shortage"`
	Description string          `json:"description" validate:"required"`
	Count       int             `json:"count"       validate:"min=1"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Currency    string          `json:"currency"    validate:"required,oneof=JMD USD"`
}

type SubmitEODRequest struct {
	LocationID     string          `json:"location_id"     validate:"omitempty,uuid"`
	ProcessingDate string          `json:"processing_date" validate:"omitempty,datetime=2006-01-02"`
	ClosingBalance decimal.Decimal `json:"closing_balance" validate:"min=0"`

	FundsFromBXPWebex decimal.Decimal `json:"funds_from_bxp_webex" validate:"min=0"`

	CashSentToCourier bool             `json:"cash_sent_to_courier"`
	CourierJMDAmount  *decimal.Decimal `json:"courier_jmd_amount"`
	CourierJMDReceipt *string          `json:"courier_jmd_receipt" validate:"omitempty,max=50"`
	CourierUSDAmount  *decimal.Decimal `json:"courier_usd_amount"`
	CourierUSDReceipt *string          `json:"courier_usd_receipt" validate:"omitempty,max=50"`

	AllTellersBalanced bool                  `json:"all_tellers_balanced"`
	TellerBalances     []TellerBalanceEntry  `json:"teller_balances"  validate:"required,min=1,dive"`
	TellerVariances    []TellerVarianceEntry `json:"teller_variances" validate:"dive"`

	JMDBreakdown BreakdownValues `json:"jmd_breakdown"`
	USDBreakdown BreakdownValues `json:"usd_breakdown"`

	Adjustments []AdjustmentEntry `json:"adjustments" validate:"dive"`

	Notes        string `json:"notes"`
	Confirmation bool   `json:"confirmation" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BreakdownResponse struct {
	Currency              string          `json:"currency"`
	Count5000             int             `json:"count_5000"`
	Count1000             int             `json:"count_1000"`
	Count500              int             `json:"count_500"`
	Count100              int             `json:"count_100"`
	Count50               int             `json:"count_50"`
	Count20               int             `json:"count_20"`
	Count10               int             `json:"count_10"`
	CoinsAmount           decimal.Decimal `json:"coins_amount"`
	SmallBillsCoinsAmount decimal.Decimal `json:"small_bills_coins_amount"`
	Total                 decimal.Decimal `json:"total"`
}

type EODReportResponse struct {
	ID             string `json:"id"`
	AgentID        string `json:"agent_id"`
	LocationID     string `json:"location_id"`
	ProcessingDate string `json:"processing_date"`

	ClosingBalance    decimal.Decimal `json:"closing_balance"`
	FundsFromBXPWebex decimal.Decimal `json:"funds_from_bxp_webex"`

	CashSentToCourier bool             `json:"cash_sent_to_courier"`
	CourierJMDAmount  *decimal.Decimal `json:"courier_jmd_amount"`
	CourierJMDReceipt *string          `json:"courier_jmd_receipt"`
	CourierUSDAmount  *decimal.Decimal `json:"courier_usd_amount"`
	CourierUSDReceipt *string          `json:"courier_usd_receipt"`

	AllTellersBalanced bool            `json:"all_tellers_balanced"`
	TotalVariance      decimal.Decimal `json:"total_variance"`

	TellerBalances  []TellerBalanceEntry  `json:"teller_balances"`
	TellerVariances []TellerVarianceEntry `json:"teller_variances"`
	Breakdowns      []BreakdownResponse   `json:"breakdowns"`
	Adjustments     []AdjustmentEntry     `json:"adjustments"`

	Notes     string `json:"notes"`
	Submitted bool   `json:"submitted"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
