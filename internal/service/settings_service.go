package service

import (
	"context"
	"errors"
	"time"

	"gkms/internal/dto"
	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	// GetModel returns the settings row itself for callers that need the
	// window helpers. Reads never create the row; defaults are returned
	// in memory when none exists.
	GetModel(ctx context.Context) (*model.SystemSettings, error)
	Update(ctx context.Context, adminID uuid.UUID, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetModel(ctx context.Context) (*model.SystemSettings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultSystemSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.GetModel(ctx)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, adminID uuid.UUID, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		settings = model.DefaultSystemSettings()
	}

	if req.CutoffWindowEnabled != nil {
		settings.CutoffWindowEnabled = *req.CutoffWindowEnabled
	}
	if req.CutoffHour != nil {
		settings.CutoffHour = *req.CutoffHour
	}
	if req.CutoffMinute != nil {
		settings.CutoffMinute = *req.CutoffMinute
	}
	if req.BusinessHoursStart != nil {
		settings.BusinessHoursStart = *req.BusinessHoursStart
	}
	if req.BusinessHoursStartMin != nil {
		settings.BusinessHoursStartMin = *req.BusinessHoursStartMin
	}
	if req.EmergencyAccessDuration != nil {
		settings.EmergencyAccessDuration = *req.EmergencyAccessDuration
	}
	settings.UpdatedBy = &adminID

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func settingsToResponse(s *model.SystemSettings) *dto.SettingsResponse {
	resp := &dto.SettingsResponse{
		CutoffWindowEnabled:     s.CutoffWindowEnabled,
		CutoffHour:              s.CutoffHour,
		CutoffMinute:            s.CutoffMinute,
		BusinessHoursStart:      s.BusinessHoursStart,
		BusinessHoursStartMin:   s.BusinessHoursStartMin,
		EmergencyAccessDuration: s.EmergencyAccessDuration,
		UpdatedAt:               s.UpdatedAt.Format(time.RFC3339),
	}
	if s.UpdatedBy != nil {
		v := s.UpdatedBy.String()
		resp.UpdatedBy = &v
	}
	return resp
}
