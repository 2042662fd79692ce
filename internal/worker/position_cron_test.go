package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"gkms/internal/dto"
	"gkms/internal/infra"
	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDueForRun(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
	}

	// Before the 15:05 run time
	assert.False(t, dueForRun(day(14, 59), ""))
	assert.False(t, dueForRun(day(15, 4), ""))

	// At and after the run time
	assert.True(t, dueForRun(day(15, 5), ""))
	assert.True(t, dueForRun(day(23, 0), ""))

	// Already ran today
	assert.False(t, dueForRun(day(15, 5), "2026-03-10"))

	// Ran yesterday, due again today
	assert.True(t, dueForRun(day(15, 5), "2026-03-09"))
}

// ── Batch stubs ──────────────────────────────────────────────────────────────

type stubBranchRepo struct {
	branches []model.Location
}

var _ repository.LocationRepository = (*stubBranchRepo)(nil)

func (r *stubBranchRepo) Create(_ context.Context, l *model.Location) error {
	r.branches = append(r.branches, *l)
	return nil
}

func (r *stubBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	for i := range r.branches {
		if r.branches[i].ID == id {
			return &r.branches[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBranchRepo) List(_ context.Context) ([]model.Location, error) {
	return r.branches, nil
}

func (r *stubBranchRepo) Update(_ context.Context, _ *model.Location) error { return nil }

func (r *stubBranchRepo) FindLimit(_ context.Context, _ uuid.UUID) (*model.LocationLimit, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBranchRepo) UpsertLimit(_ context.Context, _ *model.LocationLimit) error { return nil }

type stubComputer struct {
	calls int
	err   error
}

func (c *stubComputer) Compute(_ context.Context, locationID uuid.UUID, date time.Time) (*dto.PositionResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &dto.PositionResponse{
		LocationID: locationID.String(),
		Date:       date.Format("2006-01-02"),
	}, nil
}

func testBatchConfig(computer *stubComputer, cb *infra.CircuitBreaker) PositionCronConfig {
	return PositionCronConfig{
		Locations: &stubBranchRepo{branches: []model.Location{
			{ID: uuid.New(), Name: "Half Way Tree"},
			{ID: uuid.New(), Name: "Montego Bay"},
		}},
		Positions: computer,
		CB:        cb,
	}
}

func TestRunPositionBatch(t *testing.T) {
	computer := &stubComputer{}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	ran := runPositionBatch(context.Background(), testBatchConfig(computer, cb), time.Now())

	assert.True(t, ran)
	assert.Equal(t, 2, computer.calls, "every branch is computed")
}

func TestRunPositionBatch_OpenBreakerDoesNotConsumeTheRun(t *testing.T) {
	computer := &stubComputer{}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenTimeout:      time.Hour,
	})
	require.Error(t, cb.Execute(func() error { return errors.New("provider down") }))
	require.Equal(t, infra.CBOpen, cb.State())

	ran := runPositionBatch(context.Background(), testBatchConfig(computer, cb), time.Now())

	assert.False(t, ran, "a skipped batch must not count as today's run")
	assert.Equal(t, 0, computer.calls)
}

func TestRunPositionBatch_BreakerTrippingMidBatchStopsAndRetries(t *testing.T) {
	computer := &stubComputer{err: errors.New("provider down")}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenTimeout:      time.Hour,
	})

	ran := runPositionBatch(context.Background(), testBatchConfig(computer, cb), time.Now())

	assert.False(t, ran, "a cut-short batch is retried on a later tick")
	assert.Equal(t, 1, computer.calls, "the breaker trips after the first failure")
	assert.Equal(t, infra.CBOpen, cb.State())
}
