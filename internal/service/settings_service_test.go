package service

import (
	"context"
	"testing"

	"gkms/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings_DefaultsWithoutARow(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.CutoffWindowEnabled)
	assert.Equal(t, 15, resp.CutoffHour)
	assert.Equal(t, 0, resp.CutoffMinute)
	assert.Equal(t, 8, resp.BusinessHoursStart)
	assert.Equal(t, 30, resp.EmergencyAccessDuration)
	assert.Equal(t, 0, repo.saves, "reads must not create the settings row")
}

func TestUpdateSettings_MergesProvidedFields(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo)
	adminID := uuid.New()

	hour := 16
	duration := 45
	resp, err := svc.Update(context.Background(), adminID, dto.UpdateSettingsRequest{
		CutoffHour:              &hour,
		EmergencyAccessDuration: &duration,
	})
	require.NoError(t, err)

	assert.Equal(t, 16, resp.CutoffHour)
	assert.Equal(t, 45, resp.EmergencyAccessDuration)
	// Untouched fields keep their defaults
	assert.True(t, resp.CutoffWindowEnabled)
	assert.Equal(t, 8, resp.BusinessHoursStart)
	require.NotNil(t, resp.UpdatedBy)
	assert.Equal(t, adminID.String(), *resp.UpdatedBy)
	assert.Equal(t, 1, repo.saves)
}

func TestUpdateSettings_SubsequentUpdatePreservesEarlierChanges(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewSettingsService(repo)

	hour := 16
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateSettingsRequest{CutoffHour: &hour})
	require.NoError(t, err)

	enabled := false
	resp, err := svc.Update(context.Background(), uuid.New(), dto.UpdateSettingsRequest{CutoffWindowEnabled: &enabled})
	require.NoError(t, err)

	assert.False(t, resp.CutoffWindowEnabled)
	assert.Equal(t, 16, resp.CutoffHour, "earlier change must survive a later partial update")
}
