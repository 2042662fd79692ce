package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ComputePositionRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid"`
	Date       string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PositionResponse struct {
	LocationID              string          `json:"location_id"`
	Date                    string          `json:"date"`
	PreviousDayBalance      decimal.Decimal `json:"previous_day_balance"`
	CashDeliveredToday      decimal.Decimal `json:"cash_delivered_today"`
	PayoutAt3PM             decimal.Decimal `json:"payout_at_3pm"`
	CashPositionAt3PM       decimal.Decimal `json:"cash_position_at_3pm"`
	ProjectedEndingPosition decimal.Decimal `json:"projected_ending_position"`
	ProjectedNextDayAmount  decimal.Decimal `json:"projected_next_day_amount"`
	ClosingBalance          decimal.Decimal `json:"closing_balance"`
	ExceedsInsuranceLimit   bool            `json:"exceeds_insurance_limit"`
	ExceedsEODLimit         bool            `json:"exceeds_eod_limit"`
	ExceedsWorkingDayLimit  bool            `json:"exceeds_working_day_limit"`
}

// DashboardRow pairs a location's stored projection with a fresh limit
// evaluation against the closing balance. The stored flags always reflect
// the projection; the Closing* flags are recomputed at read time.
type DashboardRow struct {
	LocationID   string           `json:"location_id"`
	LocationName string           `json:"location_name"`
	Position     PositionResponse `json:"position"`

	ClosingExceedsInsuranceLimit  bool `json:"closing_exceeds_insurance_limit"`
	ClosingExceedsEODLimit        bool `json:"closing_exceeds_eod_limit"`
	ClosingExceedsWorkingDayLimit bool `json:"closing_exceeds_working_day_limit"`
}

type DashboardResponse struct {
	Date            string         `json:"date"`
	Rows            []DashboardRow `json:"rows"`
	PendingRequests int            `json:"pending_requests"`
}
