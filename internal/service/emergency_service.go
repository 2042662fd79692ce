package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gkms/internal/dto"
	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyService interface {
	Request(ctx context.Context, agentID, locationID uuid.UUID, req dto.CreateEmergencyAccessRequest) (*dto.EmergencyAccessResponse, error)
	Review(ctx context.Context, adminID, requestID uuid.UUID, req dto.ReviewEmergencyAccessRequest) (*dto.EmergencyAccessResponse, error)
	ListPending(ctx context.Context) ([]dto.EmergencyAccessResponse, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]dto.EmergencyAccessResponse, error)
	// SubmissionWindow reports whether the agent may submit right now,
	// either because the cutoff window is open or because an emergency
	// grant is active.
	SubmissionWindow(ctx context.Context, agentID uuid.UUID) (*dto.SubmissionWindowResponse, error)
}

type emergencyService struct {
	grants   repository.EmergencyAccessRepository
	settings SettingsService
	now      func() time.Time
}

func NewEmergencyService(grants repository.EmergencyAccessRepository, settings SettingsService) EmergencyService {
	return &emergencyService{grants: grants, settings: settings, now: time.Now}
}

func (s *emergencyService) Request(ctx context.Context, agentID, locationID uuid.UUID, req dto.CreateEmergencyAccessRequest) (*dto.EmergencyAccessResponse, error) {
	grant := &model.EmergencyAccessRequest{
		AgentID:     agentID,
		LocationID:  locationID,
		RequestedAt: s.now(),
		Reason:      req.Reason,
		Status:      model.EmergencyStatusPending,
	}
	if err := s.grants.Create(ctx, grant); err != nil {
		return nil, err
	}
	return s.grantToResponse(grant), nil
}

// Review approves or denies a pending request. Approval grants access
// from the review instant until now plus the configured duration.
func (s *emergencyService) Review(ctx context.Context, adminID, requestID uuid.UUID, req dto.ReviewEmergencyAccessRequest) (*dto.EmergencyAccessResponse, error) {
	grant, err := s.grants.FindByID(ctx, requestID)
	if err != nil {
		return nil, errors.New("emergency access request not found")
	}
	if grant.Status != model.EmergencyStatusPending {
		return nil, fmt.Errorf("request has already been %s", grant.Status)
	}

	now := s.now()
	grant.ReviewedBy = &adminID
	grant.ReviewedAt = &now

	switch req.Decision {
	case "approve":
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		until := now.Add(time.Duration(settings.EmergencyAccessDuration) * time.Minute)
		grant.Status = model.EmergencyStatusApproved
		grant.GrantedUntil = &until
	case "deny":
		grant.Status = model.EmergencyStatusDenied
	default:
		return nil, errors.New("decision must be approve or deny")
	}

	if err := s.grants.Update(ctx, grant); err != nil {
		return nil, err
	}
	return s.grantToResponse(grant), nil
}

func (s *emergencyService) ListPending(ctx context.Context) ([]dto.EmergencyAccessResponse, error) {
	grants, err := s.grants.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return s.grantsToResponses(grants), nil
}

func (s *emergencyService) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]dto.EmergencyAccessResponse, error) {
	grants, err := s.grants.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return s.grantsToResponses(grants), nil
}

func (s *emergencyService) SubmissionWindow(ctx context.Context, agentID uuid.UUID) (*dto.SubmissionWindowResponse, error) {
	settings, err := s.settings.GetModel(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if settings.WithinSubmissionWindow(now) {
		return &dto.SubmissionWindowResponse{Open: true, Reason: "within business hours"}, nil
	}

	// Outside the window an active emergency grant still allows submission
	if grant, err := s.grants.FindLatestApproved(ctx, agentID); err == nil && grant.ActiveAt(now) {
		return &dto.SubmissionWindowResponse{
			Open:            true,
			EmergencyAccess: true,
			Reason:          "emergency access active",
		}, nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &dto.SubmissionWindowResponse{
		Open:   false,
		Reason: "outside the submission window",
	}, nil
}

func (s *emergencyService) grantsToResponses(grants []model.EmergencyAccessRequest) []dto.EmergencyAccessResponse {
	out := make([]dto.EmergencyAccessResponse, 0, len(grants))
	for i := range grants {
		out = append(out, *s.grantToResponse(&grants[i]))
	}
	return out
}

func (s *emergencyService) grantToResponse(g *model.EmergencyAccessRequest) *dto.EmergencyAccessResponse {
	resp := &dto.EmergencyAccessResponse{
		ID:          g.ID.String(),
		AgentID:     g.AgentID.String(),
		LocationID:  g.LocationID.String(),
		RequestedAt: g.RequestedAt.Format(time.RFC3339),
		Reason:      g.Reason,
		Status:      g.Status,
		Active:      g.ActiveAt(s.now()),
	}
	if g.ReviewedBy != nil {
		v := g.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if g.ReviewedAt != nil {
		v := g.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if g.GrantedUntil != nil {
		v := g.GrantedUntil.Format(time.RFC3339)
		resp.GrantedUntil = &v
	}
	return resp
}
