package repository

import (
	"context"
	"time"

	"gkms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRequestRepository interface {
	Create(ctx context.Context, req *model.CashRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashRequest, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.CashRequest, error)
	ListByStatus(ctx context.Context, status string) ([]model.CashRequest, error)
	Update(ctx context.Context, req *model.CashRequest) error
	UpdateTx(tx *gorm.DB, req *model.CashRequest) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type cashRequestRepo struct{ db *gorm.DB }

func NewCashRequestRepository(db *gorm.DB) CashRequestRepository { return &cashRequestRepo{db: db} }

func (r *cashRequestRepo) DB() *gorm.DB { return r.db }

func (r *cashRequestRepo) Create(ctx context.Context, req *model.CashRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *cashRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashRequest, error) {
	var req model.CashRequest
	err := r.db.WithContext(ctx).Preload("Delivery").First(&req, id).Error
	return &req, err
}

func (r *cashRequestRepo) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.CashRequest, error) {
	var reqs []model.CashRequest
	err := r.db.WithContext(ctx).Preload("Delivery").
		Where("location_id = ?", locationID).
		Order("request_date DESC").Find(&reqs).Error
	return reqs, err
}

func (r *cashRequestRepo) ListByStatus(ctx context.Context, status string) ([]model.CashRequest, error) {
	var reqs []model.CashRequest
	err := r.db.WithContext(ctx).Preload("Delivery").
		Where("status = ?", status).
		Order("request_date DESC").Find(&reqs).Error
	return reqs, err
}

func (r *cashRequestRepo) Update(ctx context.Context, req *model.CashRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *cashRequestRepo) UpdateTx(tx *gorm.DB, req *model.CashRequest) error {
	return tx.Save(req).Error
}

type CashDeliveryRepository interface {
	CreateTx(tx *gorm.DB, d *model.CashDelivery) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashDelivery, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.CashDelivery, error)
	ListUnverified(ctx context.Context, locationID uuid.UUID) ([]model.CashDelivery, error)
	Update(ctx context.Context, d *model.CashDelivery) error
	FindVerified(ctx context.Context, locationID uuid.UUID, date time.Time) (*model.CashDelivery, error)
}

type cashDeliveryRepo struct{ db *gorm.DB }

func NewCashDeliveryRepository(db *gorm.DB) CashDeliveryRepository { return &cashDeliveryRepo{db: db} }

func (r *cashDeliveryRepo) CreateTx(tx *gorm.DB, d *model.CashDelivery) error {
	return tx.Create(d).Error
}

func (r *cashDeliveryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashDelivery, error) {
	var d model.CashDelivery
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *cashDeliveryRepo) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.CashDelivery, error) {
	var deliveries []model.CashDelivery
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).
		Order("date DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *cashDeliveryRepo) ListUnverified(ctx context.Context, locationID uuid.UUID) ([]model.CashDelivery, error) {
	var deliveries []model.CashDelivery
	err := r.db.WithContext(ctx).Where("location_id = ? AND verified = false", locationID).
		Order("date ASC").Find(&deliveries).Error
	return deliveries, err
}

func (r *cashDeliveryRepo) Update(ctx context.Context, d *model.CashDelivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *cashDeliveryRepo) FindVerified(ctx context.Context, locationID uuid.UUID, date time.Time) (*model.CashDelivery, error) {
	var d model.CashDelivery
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND date = ? AND verified = true", locationID, date.Format("2006-01-02")).
		First(&d).Error
	return &d, err
}
