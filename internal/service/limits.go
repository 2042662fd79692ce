package service

import (
	"gkms/internal/model"

	"github.com/shopspring/decimal"
)

// BreachFlags is the result of evaluating one amount against a branch's
// three thresholds.
type BreachFlags struct {
	ExceedsInsuranceLimit  bool
	ExceedsEODLimit        bool
	ExceedsWorkingDayLimit bool
}

// EvaluateLimits checks amount against each threshold with strict
// greater-than; an amount equal to a limit is compliant. A nil limits
// row means no limits are configured and every flag is false.
//
// Callers choose the amount: the position calculator passes the
// projected next-day figure, the admin dashboard passes the closing
// balance.
func EvaluateLimits(amount decimal.Decimal, limits *model.LocationLimit) BreachFlags {
	if limits == nil {
		return BreachFlags{}
	}
	return BreachFlags{
		ExceedsInsuranceLimit:  amount.GreaterThan(limits.InsuranceLimit),
		ExceedsEODLimit:        amount.GreaterThan(limits.EODVaultLimit),
		ExceedsWorkingDayLimit: amount.GreaterThan(limits.WorkingDayLimit),
	}
}
