package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateLocationRequest struct {
	Name    string `json:"name"    validate:"required,min=2"`
	Address string `json:"address"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2"`
	Address *string `json:"address"`
}

type SetLimitsRequest struct {
	InsuranceLimit  decimal.Decimal `json:"insurance_limit"   validate:"required"`
	EODVaultLimit   decimal.Decimal `json:"eod_vault_limit"   validate:"required"`
	WorkingDayLimit decimal.Decimal `json:"working_day_limit" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LimitsResponse struct {
	InsuranceLimit  decimal.Decimal `json:"insurance_limit"`
	EODVaultLimit   decimal.Decimal `json:"eod_vault_limit"`
	WorkingDayLimit decimal.Decimal `json:"working_day_limit"`
}

type LocationResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Limits  *LimitsResponse `json:"limits"`
}
