package service

import (
	"testing"

	"gkms/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testLimits(insurance, eod, working int64) *model.LocationLimit {
	return &model.LocationLimit{
		InsuranceLimit:  decimal.NewFromInt(insurance),
		EODVaultLimit:   decimal.NewFromInt(eod),
		WorkingDayLimit: decimal.NewFromInt(working),
	}
}

func TestEvaluateLimits_NilLimits(t *testing.T) {
	flags := EvaluateLimits(decimal.NewFromInt(99_000_000), nil)

	assert.False(t, flags.ExceedsInsuranceLimit)
	assert.False(t, flags.ExceedsEODLimit)
	assert.False(t, flags.ExceedsWorkingDayLimit)
}

func TestEvaluateLimits_EqualIsCompliant(t *testing.T) {
	limits := testLimits(5_000_000, 3_000_000, 2_000_000)

	flags := EvaluateLimits(decimal.NewFromInt(3_000_000), limits)

	assert.False(t, flags.ExceedsEODLimit, "amount equal to the limit must not breach")
	assert.False(t, flags.ExceedsInsuranceLimit)
	assert.True(t, flags.ExceedsWorkingDayLimit)
}

func TestEvaluateLimits_OneCentOver(t *testing.T) {
	limits := testLimits(5_000_000, 3_000_000, 2_000_000)

	flags := EvaluateLimits(decimal.RequireFromString("3000000.01"), limits)

	assert.True(t, flags.ExceedsEODLimit)
	assert.True(t, flags.ExceedsWorkingDayLimit)
	assert.False(t, flags.ExceedsInsuranceLimit)
}

func TestEvaluateLimits_IndependentThresholds(t *testing.T) {
	// Inverted ordering is allowed; each flag is evaluated on its own.
	limits := testLimits(1_000_000, 3_000_000, 2_000_000)

	flags := EvaluateLimits(decimal.NewFromInt(1_500_000), limits)

	assert.True(t, flags.ExceedsInsuranceLimit)
	assert.False(t, flags.ExceedsEODLimit)
	assert.False(t, flags.ExceedsWorkingDayLimit)
}

func TestEvaluateLimits_NegativeAmount(t *testing.T) {
	limits := testLimits(5_000_000, 3_000_000, 2_000_000)

	flags := EvaluateLimits(decimal.NewFromInt(-10_000), limits)

	assert.False(t, flags.ExceedsInsuranceLimit)
	assert.False(t, flags.ExceedsEODLimit)
	assert.False(t, flags.ExceedsWorkingDayLimit)
}
