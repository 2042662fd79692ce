package repository

import (
	"context"

	"gkms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	FindLimit(ctx context.Context, locationID uuid.UUID) (*model.LocationLimit, error)
	UpsertLimit(ctx context.Context, limit *model.LocationLimit) error
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).Preload("Limit").First(&l, id).Error
	return &l, err
}

func (r *locationRepo) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.WithContext(ctx).Preload("Limit").Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *locationRepo) FindLimit(ctx context.Context, locationID uuid.UUID) (*model.LocationLimit, error) {
	var limit model.LocationLimit
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).First(&limit).Error
	return &limit, err
}

func (r *locationRepo) UpsertLimit(ctx context.Context, limit *model.LocationLimit) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"insurance_limit", "eod_vault_limit", "working_day_limit", "updated_at",
		}),
	}).Create(limit).Error
}
