package repository

import (
	"context"
	"time"

	"gkms/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyPositionRepository interface {
	Upsert(ctx context.Context, p *model.DailyPosition) error
	Find(ctx context.Context, locationID uuid.UUID, date time.Time) (*model.DailyPosition, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.DailyPosition, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, from, to time.Time) ([]model.DailyPosition, error)
	UpdateClosingBalance(ctx context.Context, locationID uuid.UUID, date time.Time, balance decimal.Decimal) error
}

type dailyPositionRepo struct{ db *gorm.DB }

func NewDailyPositionRepository(db *gorm.DB) DailyPositionRepository {
	return &dailyPositionRepo{db: db}
}

func (r *dailyPositionRepo) Upsert(ctx context.Context, p *model.DailyPosition) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "location_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"previous_day_balance", "cash_delivered_today", "payout_at_3pm",
			"cash_position_at_3pm", "projected_ending_position", "projected_next_day_amount",
			"exceeds_insurance_limit", "exceeds_eod_limit", "exceeds_working_day_limit",
			"updated_at",
		}),
	}).Create(p).Error
}

func (r *dailyPositionRepo) Find(ctx context.Context, locationID uuid.UUID, date time.Time) (*model.DailyPosition, error) {
	var p model.DailyPosition
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND date = ?", locationID, date.Format("2006-01-02")).
		First(&p).Error
	return &p, err
}

func (r *dailyPositionRepo) ListByDate(ctx context.Context, date time.Time) ([]model.DailyPosition, error) {
	var positions []model.DailyPosition
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Find(&positions).Error
	return positions, err
}

func (r *dailyPositionRepo) ListByLocation(ctx context.Context, locationID uuid.UUID, from, to time.Time) ([]model.DailyPosition, error) {
	var positions []model.DailyPosition
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND date BETWEEN ? AND ?", locationID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date DESC").Find(&positions).Error
	return positions, err
}

func (r *dailyPositionRepo) UpdateClosingBalance(ctx context.Context, locationID uuid.UUID, date time.Time, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.DailyPosition{}).
		Where("location_id = ? AND date = ?", locationID, date.Format("2006-01-02")).
		Update("closing_balance", balance).Error
}
