package service

import (
	"context"
	"testing"
	"time"

	"gkms/internal/dto"
	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory EmergencyAccessRepository stub ─────────────────────────────────

type stubEmergencyRepo struct {
	grants map[uuid.UUID]*model.EmergencyAccessRequest
}

var _ repository.EmergencyAccessRepository = (*stubEmergencyRepo)(nil)

func newStubEmergencyRepo() *stubEmergencyRepo {
	return &stubEmergencyRepo{grants: make(map[uuid.UUID]*model.EmergencyAccessRequest)}
}

func (r *stubEmergencyRepo) Create(_ context.Context, req *model.EmergencyAccessRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	cp := *req
	r.grants[req.ID] = &cp
	return nil
}

func (r *stubEmergencyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EmergencyAccessRequest, error) {
	g, ok := r.grants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *stubEmergencyRepo) ListPending(_ context.Context) ([]model.EmergencyAccessRequest, error) {
	var out []model.EmergencyAccessRequest
	for _, g := range r.grants {
		if g.Status == model.EmergencyStatusPending {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubEmergencyRepo) ListByAgent(_ context.Context, agentID uuid.UUID) ([]model.EmergencyAccessRequest, error) {
	var out []model.EmergencyAccessRequest
	for _, g := range r.grants {
		if g.AgentID == agentID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubEmergencyRepo) FindLatestApproved(_ context.Context, agentID uuid.UUID) (*model.EmergencyAccessRequest, error) {
	var latest *model.EmergencyAccessRequest
	for _, g := range r.grants {
		if g.AgentID != agentID || g.Status != model.EmergencyStatusApproved {
			continue
		}
		if latest == nil || g.RequestedAt.After(latest.RequestedAt) {
			latest = g
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *stubEmergencyRepo) Update(_ context.Context, req *model.EmergencyAccessRequest) error {
	cp := *req
	r.grants[req.ID] = &cp
	return nil
}

// ── In-memory SettingsRepository stub ────────────────────────────────────────

type stubSettingsRepo struct {
	settings *model.SystemSettings
	saves    int
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

func (r *stubSettingsRepo) Find(_ context.Context) (*model.SystemSettings, error) {
	if r.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.settings
	return &cp, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, s *model.SystemSettings) error {
	r.saves++
	cp := *s
	r.settings = &cp
	return nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

type emergencyFixture struct {
	svc      *emergencyService
	grants   *stubEmergencyRepo
	settings *stubSettingsRepo
	now      time.Time
}

func newEmergencyFixture(now time.Time) *emergencyFixture {
	f := &emergencyFixture{
		grants:   newStubEmergencyRepo(),
		settings: &stubSettingsRepo{},
		now:      now,
	}
	f.svc = &emergencyService{
		grants:   f.grants,
		settings: NewSettingsService(f.settings),
		now:      func() time.Time { return f.now },
	}
	return f
}

func TestEmergencyReview_ApproveGrantsConfiguredDuration(t *testing.T) {
	reviewedAt := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	f := newEmergencyFixture(reviewedAt)
	agentID, adminID := uuid.New(), uuid.New()

	created, err := f.svc.Request(context.Background(), agentID, uuid.New(), dto.CreateEmergencyAccessRequest{
		Reason: "system outage during close",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EmergencyStatusPending, created.Status)
	assert.False(t, created.Active)

	resp, err := f.svc.Review(context.Background(), adminID, uuid.MustParse(created.ID), dto.ReviewEmergencyAccessRequest{
		Decision: "approve",
	})
	require.NoError(t, err)

	assert.Equal(t, model.EmergencyStatusApproved, resp.Status)
	assert.True(t, resp.Active)
	require.NotNil(t, resp.GrantedUntil)
	// Default duration is 30 minutes
	assert.Equal(t, reviewedAt.Add(30*time.Minute).Format(time.RFC3339), *resp.GrantedUntil)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, adminID.String(), *resp.ReviewedBy)
}

func TestEmergencyReview_Deny(t *testing.T) {
	f := newEmergencyFixture(time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC))

	created, err := f.svc.Request(context.Background(), uuid.New(), uuid.New(), dto.CreateEmergencyAccessRequest{
		Reason: "courier arrived after cutoff",
	})
	require.NoError(t, err)

	resp, err := f.svc.Review(context.Background(), uuid.New(), uuid.MustParse(created.ID), dto.ReviewEmergencyAccessRequest{
		Decision: "deny",
	})
	require.NoError(t, err)

	assert.Equal(t, model.EmergencyStatusDenied, resp.Status)
	assert.False(t, resp.Active)
	assert.Nil(t, resp.GrantedUntil)
}

func TestEmergencyReview_OnlyPending(t *testing.T) {
	f := newEmergencyFixture(time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC))

	created, err := f.svc.Request(context.Background(), uuid.New(), uuid.New(), dto.CreateEmergencyAccessRequest{
		Reason: "late reconciliation run",
	})
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	_, err = f.svc.Review(context.Background(), uuid.New(), requestID, dto.ReviewEmergencyAccessRequest{Decision: "deny"})
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), uuid.New(), requestID, dto.ReviewEmergencyAccessRequest{Decision: "approve"})
	assert.ErrorContains(t, err, "already been denied")
}

func TestSubmissionWindow_OpenDuringBusinessHours(t *testing.T) {
	// Default window is 08:00 to 15:00
	f := newEmergencyFixture(time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC))

	window, err := f.svc.SubmissionWindow(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, window.Open)
	assert.False(t, window.EmergencyAccess)
}

func TestSubmissionWindow_ClosedAfterCutoff(t *testing.T) {
	f := newEmergencyFixture(time.Date(2026, 3, 10, 15, 1, 0, 0, time.UTC))

	window, err := f.svc.SubmissionWindow(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.False(t, window.Open)
}

func TestSubmissionWindow_EmergencyGrantOverridesCutoff(t *testing.T) {
	f := newEmergencyFixture(time.Date(2026, 3, 10, 14, 55, 0, 0, time.UTC))
	agentID := uuid.New()

	created, err := f.svc.Request(context.Background(), agentID, uuid.New(), dto.CreateEmergencyAccessRequest{
		Reason: "vault recount ran long",
	})
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), uuid.New(), uuid.MustParse(created.ID), dto.ReviewEmergencyAccessRequest{
		Decision: "approve",
	})
	require.NoError(t, err)

	// Approved at 14:55 for 30 minutes; 15:10 is past cutoff but inside the grant
	f.now = time.Date(2026, 3, 10, 15, 10, 0, 0, time.UTC)
	window, err := f.svc.SubmissionWindow(context.Background(), agentID)
	require.NoError(t, err)
	assert.True(t, window.Open)
	assert.True(t, window.EmergencyAccess)

	// The grant boundary itself is still inside
	f.now = time.Date(2026, 3, 10, 15, 25, 0, 0, time.UTC)
	window, err = f.svc.SubmissionWindow(context.Background(), agentID)
	require.NoError(t, err)
	assert.True(t, window.Open)

	// One second past the boundary is not
	f.now = time.Date(2026, 3, 10, 15, 25, 1, 0, time.UTC)
	window, err = f.svc.SubmissionWindow(context.Background(), agentID)
	require.NoError(t, err)
	assert.False(t, window.Open)
	assert.False(t, window.EmergencyAccess)
}

func TestSubmissionWindow_GrantForOtherAgentDoesNotOpen(t *testing.T) {
	f := newEmergencyFixture(time.Date(2026, 3, 10, 14, 55, 0, 0, time.UTC))
	grantee := uuid.New()

	created, err := f.svc.Request(context.Background(), grantee, uuid.New(), dto.CreateEmergencyAccessRequest{
		Reason: "vault recount ran long",
	})
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), uuid.New(), uuid.MustParse(created.ID), dto.ReviewEmergencyAccessRequest{
		Decision: "approve",
	})
	require.NoError(t, err)

	f.now = time.Date(2026, 3, 10, 15, 10, 0, 0, time.UTC)
	window, err := f.svc.SubmissionWindow(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, window.Open)
}
