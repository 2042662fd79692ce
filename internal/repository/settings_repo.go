package repository

import (
	"context"

	"gkms/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Find(ctx context.Context) (*model.SystemSettings, error)
	Save(ctx context.Context, s *model.SystemSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Find(ctx context.Context) (*model.SystemSettings, error) {
	var s model.SystemSettings
	err := r.db.WithContext(ctx).First(&s).Error
	return &s, err
}

func (r *settingsRepo) Save(ctx context.Context, s *model.SystemSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
