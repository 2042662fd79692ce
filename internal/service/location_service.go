package service

import (
	"context"
	"errors"

	"gkms/internal/dto"
	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
)

type LocationService interface {
	Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error)
	List(ctx context.Context) ([]dto.LocationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	SetLimits(ctx context.Context, id uuid.UUID, req dto.SetLimitsRequest) (*dto.LimitsResponse, error)
	GetLimits(ctx context.Context, id uuid.UUID) (*dto.LimitsResponse, error)
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	loc := &model.Location{
		Name:    req.Name,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}

	// New branches start on the standard limit profile until risk sets one.
	limit := model.DefaultLocationLimit(loc.ID)
	if err := s.repo.UpsertLimit(ctx, limit); err != nil {
		return nil, err
	}
	loc.Limit = limit

	return locationToResponse(loc), nil
}

func (s *locationService) Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("location not found")
	}
	return locationToResponse(loc), nil
}

func (s *locationService) List(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LocationResponse, len(locations))
	for i := range locations {
		resp[i] = *locationToResponse(&locations[i])
	}
	return resp, nil
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("location not found")
	}
	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return locationToResponse(loc), nil
}

func (s *locationService) SetLimits(ctx context.Context, id uuid.UUID, req dto.SetLimitsRequest) (*dto.LimitsResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("location not found")
	}
	limit := &model.LocationLimit{
		LocationID:      id,
		InsuranceLimit:  req.InsuranceLimit,
		EODVaultLimit:   req.EODVaultLimit,
		WorkingDayLimit: req.WorkingDayLimit,
	}
	if err := s.repo.UpsertLimit(ctx, limit); err != nil {
		return nil, err
	}
	return limitToResponse(limit), nil
}

func (s *locationService) GetLimits(ctx context.Context, id uuid.UUID) (*dto.LimitsResponse, error) {
	limit, err := s.repo.FindLimit(ctx, id)
	if err != nil {
		return nil, errors.New("limits not found")
	}
	return limitToResponse(limit), nil
}

func limitToResponse(l *model.LocationLimit) *dto.LimitsResponse {
	return &dto.LimitsResponse{
		InsuranceLimit:  l.InsuranceLimit,
		EODVaultLimit:   l.EODVaultLimit,
		WorkingDayLimit: l.WorkingDayLimit,
	}
}

func locationToResponse(l *model.Location) *dto.LocationResponse {
	resp := &dto.LocationResponse{
		ID:      l.ID.String(),
		Name:    l.Name,
		Address: l.Address,
	}
	if l.Limit != nil {
		resp.Limits = limitToResponse(l.Limit)
	}
	return resp
}
