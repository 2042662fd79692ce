package service

import (
	"context"
	"errors"
	"time"

	"gkms/internal/dto"
	"gkms/internal/model"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceProvider is the slice of the EFT gateway the calculator needs.
type BalanceProvider interface {
	Balance(ctx context.Context, locationID uuid.UUID, date time.Time) (decimal.Decimal, error)
}

// PayoutProvider is the slice of the disbursement service the calculator needs.
type PayoutProvider interface {
	PayoutAt3PM(ctx context.Context, locationID uuid.UUID, date time.Time) (decimal.Decimal, error)
	AveragePayout(ctx context.Context, locationID uuid.UUID, date time.Time, windowDays int, seasonal bool) (decimal.Decimal, error)
}

// averagePayoutWindowDays is the default trailing window for the
// historical average lookup.
const averagePayoutWindowDays = 90

type PositionService interface {
	Compute(ctx context.Context, locationID uuid.UUID, date time.Time) (*dto.PositionResponse, error)
	Get(ctx context.Context, locationID uuid.UUID, date time.Time) (*dto.PositionResponse, error)
	History(ctx context.Context, locationID uuid.UUID, from, to time.Time) ([]dto.PositionResponse, error)
	Dashboard(ctx context.Context, date time.Time) (*dto.DashboardResponse, error)
}

type positionService struct {
	positions  repository.DailyPositionRepository
	deliveries repository.CashDeliveryRepository
	locations  repository.LocationRepository
	requests   repository.CashRequestRepository
	balance    BalanceProvider
	payout     PayoutProvider
}

func NewPositionService(
	positions repository.DailyPositionRepository,
	deliveries repository.CashDeliveryRepository,
	locations repository.LocationRepository,
	requests repository.CashRequestRepository,
	balance BalanceProvider,
	payout PayoutProvider,
) PositionService {
	return &positionService{
		positions:  positions,
		deliveries: deliveries,
		locations:  locations,
		requests:   requests,
		balance:    balance,
		payout:     payout,
	}
}

// Compute derives the full projection for (location, date) and upserts it.
// Re-running with unchanged inputs stores an identical row.
func (s *positionService) Compute(ctx context.Context, locationID uuid.UUID, date time.Time) (*dto.PositionResponse, error) {
	date = truncateToDate(date)
	prevDay := date.AddDate(0, 0, -1)
	nextDay := date.AddDate(0, 0, 1)

	previousDayBalance, err := s.balance.Balance(ctx, locationID, prevDay)
	if err != nil {
		return nil, err
	}

	payoutAt3PM, err := s.payout.PayoutAt3PM(ctx, locationID, date)
	if err != nil {
		return nil, err
	}

	// A delivery counts only once the branch has verified receipt.
	cashDelivered := decimal.Zero
	if delivery, err := s.deliveries.FindVerified(ctx, locationID, date); err == nil {
		cashDelivered = delivery.JMDAmount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	position3PM := previousDayBalance.Add(cashDelivered).Sub(payoutAt3PM)

	avgToday, err := s.payout.AveragePayout(ctx, locationID, date, averagePayoutWindowDays, false)
	if err != nil {
		return nil, err
	}
	projectedEnding := position3PM.Sub(avgToday)

	avgTomorrow, err := s.payout.AveragePayout(ctx, locationID, nextDay, averagePayoutWindowDays, false)
	if err != nil {
		return nil, err
	}
	projectedNextDay := projectedEnding.Sub(avgTomorrow)

	var limits *model.LocationLimit
	if l, err := s.locations.FindLimit(ctx, locationID); err == nil {
		limits = l
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	flags := EvaluateLimits(projectedNextDay, limits)

	position := &model.DailyPosition{
		LocationID:              locationID,
		Date:                    date,
		PreviousDayBalance:      previousDayBalance,
		CashDeliveredToday:      cashDelivered,
		PayoutAt3PM:             payoutAt3PM,
		CashPositionAt3PM:       position3PM,
		ProjectedEndingPosition: projectedEnding,
		ProjectedNextDayAmount:  projectedNextDay,
		ExceedsInsuranceLimit:   flags.ExceedsInsuranceLimit,
		ExceedsEODLimit:         flags.ExceedsEODLimit,
		ExceedsWorkingDayLimit:  flags.ExceedsWorkingDayLimit,
	}
	if err := s.positions.Upsert(ctx, position); err != nil {
		return nil, err
	}

	return positionToResponse(position), nil
}

func (s *positionService) Get(ctx context.Context, locationID uuid.UUID, date time.Time) (*dto.PositionResponse, error) {
	position, err := s.positions.Find(ctx, locationID, truncateToDate(date))
	if err != nil {
		return nil, errors.New("no position data for that date")
	}
	return positionToResponse(position), nil
}

func (s *positionService) History(ctx context.Context, locationID uuid.UUID, from, to time.Time) ([]dto.PositionResponse, error) {
	positions, err := s.positions.ListByLocation(ctx, locationID, truncateToDate(from), truncateToDate(to))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PositionResponse, 0, len(positions))
	for i := range positions {
		out = append(out, *positionToResponse(&positions[i]))
	}
	return out, nil
}

// Dashboard returns one row per location for the date, re-evaluating the
// limits against each closing balance. Stored projection flags are left
// untouched; the closing evaluation lives only in the response.
func (s *positionService) Dashboard(ctx context.Context, date time.Time) (*dto.DashboardResponse, error) {
	date = truncateToDate(date)

	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.DashboardRow, 0, len(locations))
	for i := range locations {
		loc := &locations[i]

		position, err := s.positions.Find(ctx, loc.ID, date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		closingFlags := EvaluateLimits(position.ClosingBalance, loc.Limit)
		rows = append(rows, dto.DashboardRow{
			LocationID:                    loc.ID.String(),
			LocationName:                  loc.Name,
			Position:                      *positionToResponse(position),
			ClosingExceedsInsuranceLimit:  closingFlags.ExceedsInsuranceLimit,
			ClosingExceedsEODLimit:        closingFlags.ExceedsEODLimit,
			ClosingExceedsWorkingDayLimit: closingFlags.ExceedsWorkingDayLimit,
		})
	}

	pending, err := s.requests.ListByStatus(ctx, model.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Date:            date.Format("2006-01-02"),
		Rows:            rows,
		PendingRequests: len(pending),
	}, nil
}

// truncateToDate drops the time-of-day component.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func positionToResponse(p *model.DailyPosition) *dto.PositionResponse {
	return &dto.PositionResponse{
		LocationID:              p.LocationID.String(),
		Date:                    p.Date.Format("2006-01-02"),
		PreviousDayBalance:      p.PreviousDayBalance,
		CashDeliveredToday:      p.CashDeliveredToday,
		PayoutAt3PM:             p.PayoutAt3PM,
		CashPositionAt3PM:       p.CashPositionAt3PM,
		ProjectedEndingPosition: p.ProjectedEndingPosition,
		ProjectedNextDayAmount:  p.ProjectedNextDayAmount,
		ClosingBalance:          p.ClosingBalance,
		ExceedsInsuranceLimit:   p.ExceedsInsuranceLimit,
		ExceedsEODLimit:         p.ExceedsEODLimit,
		ExceedsWorkingDayLimit:  p.ExceedsWorkingDayLimit,
	}
}
