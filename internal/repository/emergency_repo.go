package repository

import (
	"context"

	"gkms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyAccessRepository interface {
	Create(ctx context.Context, req *model.EmergencyAccessRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EmergencyAccessRequest, error)
	ListPending(ctx context.Context) ([]model.EmergencyAccessRequest, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.EmergencyAccessRequest, error)
	FindLatestApproved(ctx context.Context, agentID uuid.UUID) (*model.EmergencyAccessRequest, error)
	Update(ctx context.Context, req *model.EmergencyAccessRequest) error
}

type emergencyRepo struct{ db *gorm.DB }

func NewEmergencyAccessRepository(db *gorm.DB) EmergencyAccessRepository {
	return &emergencyRepo{db: db}
}

func (r *emergencyRepo) Create(ctx context.Context, req *model.EmergencyAccessRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *emergencyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EmergencyAccessRequest, error) {
	var req model.EmergencyAccessRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	return &req, err
}

func (r *emergencyRepo) ListPending(ctx context.Context) ([]model.EmergencyAccessRequest, error) {
	var reqs []model.EmergencyAccessRequest
	err := r.db.WithContext(ctx).Where("status = ?", model.EmergencyStatusPending).
		Order("requested_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *emergencyRepo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.EmergencyAccessRequest, error) {
	var reqs []model.EmergencyAccessRequest
	err := r.db.WithContext(ctx).Where("agent_id = ?", agentID).
		Order("requested_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *emergencyRepo) FindLatestApproved(ctx context.Context, agentID uuid.UUID) (*model.EmergencyAccessRequest, error) {
	var req model.EmergencyAccessRequest
	err := r.db.WithContext(ctx).
		Where("agent_id = ? AND status = ?", agentID, model.EmergencyStatusApproved).
		Order("reviewed_at DESC").First(&req).Error
	return &req, err
}

func (r *emergencyRepo) Update(ctx context.Context, req *model.EmergencyAccessRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
