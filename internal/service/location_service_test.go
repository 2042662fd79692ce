package service

import (
	"context"
	"testing"

	"gkms/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocation_AppliesDefaultLimits(t *testing.T) {
	repo := newStubLocationRepo()
	svc := NewLocationService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateLocationRequest{
		Name:    "Half Way Tree",
		Address: "12 Eastwood Park Rd, Kingston",
	})
	require.NoError(t, err)

	limits, err := svc.GetLimits(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, limits.InsuranceLimit.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, limits.EODVaultLimit.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, limits.WorkingDayLimit.Equal(decimal.NewFromInt(2_000_000)))
}

func TestSetLimits_OverridesDefaults(t *testing.T) {
	repo := newStubLocationRepo()
	svc := NewLocationService(repo)

	created, err := svc.Create(context.Background(), dto.CreateLocationRequest{Name: "Montego Bay"})
	require.NoError(t, err)
	locationID := uuid.MustParse(created.ID)

	limits, err := svc.SetLimits(context.Background(), locationID, dto.SetLimitsRequest{
		InsuranceLimit:  decimal.NewFromInt(8_000_000),
		EODVaultLimit:   decimal.NewFromInt(4_000_000),
		WorkingDayLimit: decimal.NewFromInt(2_500_000),
	})
	require.NoError(t, err)
	assert.True(t, limits.InsuranceLimit.Equal(decimal.NewFromInt(8_000_000)))

	fetched, err := svc.GetLimits(context.Background(), locationID)
	require.NoError(t, err)
	assert.True(t, fetched.EODVaultLimit.Equal(decimal.NewFromInt(4_000_000)))
}

func TestSetLimits_UnknownLocation(t *testing.T) {
	svc := NewLocationService(newStubLocationRepo())

	_, err := svc.SetLimits(context.Background(), uuid.New(), dto.SetLimitsRequest{
		InsuranceLimit:  decimal.NewFromInt(1),
		EODVaultLimit:   decimal.NewFromInt(1),
		WorkingDayLimit: decimal.NewFromInt(1),
	})
	assert.Error(t, err)
}

func TestUpdateLocation_PartialFields(t *testing.T) {
	svc := NewLocationService(newStubLocationRepo())

	created, err := svc.Create(context.Background(), dto.CreateLocationRequest{
		Name:    "Portmore",
		Address: "Old address",
	})
	require.NoError(t, err)

	newAddress := "Portmore Mall, St. Catherine"
	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateLocationRequest{
		Address: &newAddress,
	})
	require.NoError(t, err)

	assert.Equal(t, "Portmore", updated.Name, "name must survive a partial update")
	assert.Equal(t, newAddress, updated.Address)
}
