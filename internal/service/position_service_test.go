package service

import (
	"context"
	"testing"
	"time"

	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory DailyPositionRepository stub ───────────────────────────────────

type stubPositionRepo struct {
	rows    map[string]*model.DailyPosition
	upserts int
}

var _ repository.DailyPositionRepository = (*stubPositionRepo)(nil)

func newStubPositionRepo() *stubPositionRepo {
	return &stubPositionRepo{rows: make(map[string]*model.DailyPosition)}
}

func posKey(locationID uuid.UUID, date time.Time) string {
	return locationID.String() + "|" + date.Format("2006-01-02")
}

func (r *stubPositionRepo) Upsert(_ context.Context, p *model.DailyPosition) error {
	r.upserts++
	key := posKey(p.LocationID, p.Date)
	if existing, ok := r.rows[key]; ok {
		// The unique key keeps one row per (location, date); the closing
		// balance survives recomputation like the SQL upsert does.
		p.ID = existing.ID
		p.ClosingBalance = existing.ClosingBalance
	} else if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.rows[key] = &cp
	return nil
}

func (r *stubPositionRepo) Find(_ context.Context, locationID uuid.UUID, date time.Time) (*model.DailyPosition, error) {
	p, ok := r.rows[posKey(locationID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPositionRepo) ListByDate(_ context.Context, date time.Time) ([]model.DailyPosition, error) {
	var out []model.DailyPosition
	for _, p := range r.rows {
		if p.Date.Equal(date) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPositionRepo) ListByLocation(_ context.Context, locationID uuid.UUID, from, to time.Time) ([]model.DailyPosition, error) {
	var out []model.DailyPosition
	for _, p := range r.rows {
		if p.LocationID == locationID && !p.Date.Before(from) && !p.Date.After(to) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPositionRepo) UpdateClosingBalance(_ context.Context, locationID uuid.UUID, date time.Time, balance decimal.Decimal) error {
	p, ok := r.rows[posKey(locationID, date)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ClosingBalance = balance
	return nil
}

// ── In-memory LocationRepository stub ────────────────────────────────────────

type stubLocationRepo struct {
	locations map[uuid.UUID]*model.Location
	limits    map[uuid.UUID]*model.LocationLimit
}

var _ repository.LocationRepository = (*stubLocationRepo)(nil)

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{
		locations: make(map[uuid.UUID]*model.Location),
		limits:    make(map[uuid.UUID]*model.LocationLimit),
	}
}

func (r *stubLocationRepo) Create(_ context.Context, l *model.Location) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.locations[l.ID] = l
	return nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLocationRepo) List(_ context.Context) ([]model.Location, error) {
	var out []model.Location
	for _, l := range r.locations {
		cp := *l
		cp.Limit = r.limits[l.ID]
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubLocationRepo) Update(_ context.Context, l *model.Location) error {
	r.locations[l.ID] = l
	return nil
}

func (r *stubLocationRepo) FindLimit(_ context.Context, locationID uuid.UUID) (*model.LocationLimit, error) {
	limit, ok := r.limits[locationID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return limit, nil
}

func (r *stubLocationRepo) UpsertLimit(_ context.Context, limit *model.LocationLimit) error {
	r.limits[limit.LocationID] = limit
	return nil
}

// ── Provider stubs ───────────────────────────────────────────────────────────

type stubBalanceProvider struct {
	balance decimal.Decimal
}

func (p *stubBalanceProvider) Balance(context.Context, uuid.UUID, time.Time) (decimal.Decimal, error) {
	return p.balance, nil
}

type stubPayoutProvider struct {
	at3PM decimal.Decimal
	avg   decimal.Decimal
}

func (p *stubPayoutProvider) PayoutAt3PM(context.Context, uuid.UUID, time.Time) (decimal.Decimal, error) {
	return p.at3PM, nil
}

func (p *stubPayoutProvider) AveragePayout(context.Context, uuid.UUID, time.Time, int, bool) (decimal.Decimal, error) {
	return p.avg, nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

type positionFixture struct {
	svc        PositionService
	positions  *stubPositionRepo
	deliveries *stubDeliveryRepo
	locations  *stubLocationRepo
	requests   *stubRequestRepo
	balance    *stubBalanceProvider
	payout     *stubPayoutProvider
}

func newPositionFixture() *positionFixture {
	f := &positionFixture{
		positions:  newStubPositionRepo(),
		deliveries: newStubDeliveryRepo(),
		locations:  newStubLocationRepo(),
		requests:   newStubRequestRepo(),
		balance:    &stubBalanceProvider{balance: decimal.Zero},
		payout:     &stubPayoutProvider{at3PM: decimal.Zero, avg: decimal.Zero},
	}
	f.svc = NewPositionService(f.positions, f.deliveries, f.locations, f.requests, f.balance, f.payout)
	return f
}

func TestComputePosition_Projection(t *testing.T) {
	f := newPositionFixture()
	locationID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	f.balance.balance = decimal.NewFromInt(10_000)
	f.payout.at3PM = decimal.NewFromInt(5_000)
	f.payout.avg = decimal.NewFromInt(7_500)

	resp, err := f.svc.Compute(context.Background(), locationID, date)
	require.NoError(t, err)

	assert.True(t, resp.CashDeliveredToday.Equal(decimal.Zero), "no verified delivery, nothing counts")
	assert.True(t, resp.CashPositionAt3PM.Equal(decimal.NewFromInt(5_000)), "got %s", resp.CashPositionAt3PM)
	assert.True(t, resp.ProjectedEndingPosition.Equal(decimal.NewFromInt(-2_500)), "got %s", resp.ProjectedEndingPosition)
	assert.True(t, resp.ProjectedNextDayAmount.Equal(decimal.NewFromInt(-10_000)), "got %s", resp.ProjectedNextDayAmount)

	// No limits row configured, so nothing can breach
	assert.False(t, resp.ExceedsInsuranceLimit)
	assert.False(t, resp.ExceedsEODLimit)
	assert.False(t, resp.ExceedsWorkingDayLimit)
}

func TestComputePosition_CountsOnlyVerifiedDeliveries(t *testing.T) {
	f := newPositionFixture()
	locationID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	f.balance.balance = decimal.NewFromInt(100_000)
	f.payout.at3PM = decimal.NewFromInt(40_000)

	require.NoError(t, f.deliveries.CreateTx(nil, &model.CashDelivery{
		LocationID: locationID,
		Date:       date,
		JMDAmount:  decimal.NewFromInt(550_000),
		USDAmount:  decimal.NewFromInt(1_000),
		Verified:   false,
	}))

	resp, err := f.svc.Compute(context.Background(), locationID, date)
	require.NoError(t, err)
	assert.True(t, resp.CashDeliveredToday.Equal(decimal.Zero), "unverified delivery must be ignored")

	verified := &model.CashDelivery{
		LocationID: locationID,
		Date:       date,
		JMDAmount:  decimal.NewFromInt(550_000),
		Verified:   true,
	}
	require.NoError(t, f.deliveries.CreateTx(nil, verified))

	resp, err = f.svc.Compute(context.Background(), locationID, date)
	require.NoError(t, err)
	assert.True(t, resp.CashDeliveredToday.Equal(decimal.NewFromInt(550_000)))
	// 100000 + 550000 - 40000
	assert.True(t, resp.CashPositionAt3PM.Equal(decimal.NewFromInt(610_000)), "got %s", resp.CashPositionAt3PM)
}

func TestComputePosition_FlagsProjectedNextDayAgainstLimits(t *testing.T) {
	f := newPositionFixture()
	locationID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	f.balance.balance = decimal.NewFromInt(4_000_000)
	require.NoError(t, f.locations.UpsertLimit(context.Background(), &model.LocationLimit{
		LocationID:      locationID,
		InsuranceLimit:  decimal.NewFromInt(5_000_000),
		EODVaultLimit:   decimal.NewFromInt(3_000_000),
		WorkingDayLimit: decimal.NewFromInt(2_000_000),
	}))

	resp, err := f.svc.Compute(context.Background(), locationID, date)
	require.NoError(t, err)

	// Projected next-day is 4,000,000 with zero payouts
	assert.False(t, resp.ExceedsInsuranceLimit)
	assert.True(t, resp.ExceedsEODLimit)
	assert.True(t, resp.ExceedsWorkingDayLimit)
}

func TestComputePosition_Idempotent(t *testing.T) {
	f := newPositionFixture()
	locationID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	f.balance.balance = decimal.NewFromInt(10_000)
	f.payout.at3PM = decimal.NewFromInt(5_000)

	first, err := f.svc.Compute(context.Background(), locationID, date)
	require.NoError(t, err)
	second, err := f.svc.Compute(context.Background(), locationID, date)
	require.NoError(t, err)

	assert.Len(t, f.positions.rows, 1, "recomputation must not create a second row")
	assert.Equal(t, 2, f.positions.upserts)
	assert.True(t, first.CashPositionAt3PM.Equal(second.CashPositionAt3PM))
	assert.True(t, first.ProjectedNextDayAmount.Equal(second.ProjectedNextDayAmount))
}

func TestDashboard_SkipsLocationsWithoutData(t *testing.T) {
	f := newPositionFixture()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	withData := &model.Location{ID: uuid.New(), Name: "Half Way Tree"}
	withoutData := &model.Location{ID: uuid.New(), Name: "Montego Bay"}
	require.NoError(t, f.locations.Create(context.Background(), withData))
	require.NoError(t, f.locations.Create(context.Background(), withoutData))

	require.NoError(t, f.positions.Upsert(context.Background(), &model.DailyPosition{
		LocationID:     withData.ID,
		Date:           date,
		ClosingBalance: decimal.NewFromInt(500_000),
	}))

	require.NoError(t, f.requests.Create(context.Background(), &model.CashRequest{
		LocationID: withData.ID,
		Status:     model.RequestStatusPending,
	}))
	require.NoError(t, f.requests.Create(context.Background(), &model.CashRequest{
		LocationID: withData.ID,
		Status:     model.RequestStatusApproved,
	}))

	resp, err := f.svc.Dashboard(context.Background(), date)
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, withData.ID.String(), resp.Rows[0].LocationID)
	assert.Equal(t, "Half Way Tree", resp.Rows[0].LocationName)
	assert.Equal(t, 1, resp.PendingRequests, "only pending requests are counted")
}

func TestDashboard_EvaluatesClosingBalanceAgainstLimits(t *testing.T) {
	f := newPositionFixture()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	loc := &model.Location{ID: uuid.New(), Name: "Portmore"}
	require.NoError(t, f.locations.Create(context.Background(), loc))
	require.NoError(t, f.locations.UpsertLimit(context.Background(), &model.LocationLimit{
		LocationID:      loc.ID,
		InsuranceLimit:  decimal.NewFromInt(5_000_000),
		EODVaultLimit:   decimal.NewFromInt(3_000_000),
		WorkingDayLimit: decimal.NewFromInt(2_000_000),
	}))

	require.NoError(t, f.positions.Upsert(context.Background(), &model.DailyPosition{
		LocationID:             loc.ID,
		Date:                   date,
		ClosingBalance:         decimal.NewFromInt(3_500_000),
		ProjectedNextDayAmount: decimal.NewFromInt(1_000_000),
	}))

	resp, err := f.svc.Dashboard(context.Background(), date)
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.False(t, row.ClosingExceedsInsuranceLimit)
	assert.True(t, row.ClosingExceedsEODLimit)
	assert.True(t, row.ClosingExceedsWorkingDayLimit)
}

func TestPositionHistory_RangeFilter(t *testing.T) {
	f := newPositionFixture()
	locationID := uuid.New()

	for day := 1; day <= 5; day++ {
		require.NoError(t, f.positions.Upsert(context.Background(), &model.DailyPosition{
			LocationID: locationID,
			Date:       time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		}))
	}

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	out, err := f.svc.History(context.Background(), locationID, from, to)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
