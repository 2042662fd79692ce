package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gkms/internal/apierror"
	"gkms/internal/dto"
	"gkms/internal/infra"
	"gkms/internal/model"
	"gkms/internal/repository"
	"gkms/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EODService interface {
	Submit(ctx context.Context, agentID, locationID uuid.UUID, req dto.SubmitEODRequest) (*dto.EODReportResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.EODReportResponse, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]dto.EODReportResponse, error)
	ListByDate(ctx context.Context, date time.Time) ([]dto.EODReportResponse, error)
	ExportPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type eodService struct {
	reports    repository.EODReportRepository
	positions  repository.DailyPositionRepository
	locations  repository.LocationRepository
	dispatcher *worker.Dispatcher
	pdfPath    string
}

func NewEODService(
	reports repository.EODReportRepository,
	positions repository.DailyPositionRepository,
	locations repository.LocationRepository,
	dispatcher *worker.Dispatcher,
	pdfPath string,
) EODService {
	return &eodService{
		reports:    reports,
		positions:  positions,
		locations:  locations,
		dispatcher: dispatcher,
		pdfPath:    pdfPath,
	}
}

// breakdownFromValues converts submitted amounts into note counts for one
// currency, collecting field errors for values that are not exact
// multiples of their face. Only the faces belonging to the currency are
// read; the rest are ignored.
func breakdownFromValues(currency, prefix string, v *dto.BreakdownValues, fields map[string]string) *model.DenominationBreakdown {
	b := &model.DenominationBreakdown{Currency: currency}

	convert := func(field string, amount int64, face int64, count *int) {
		if amount < 0 {
			fields[prefix+field] = "must not be negative"
			return
		}
		if amount%face != 0 {
			fields[prefix+field] = fmt.Sprintf("value must be a multiple of $%d", face)
			return
		}
		*count = int(amount / face)
	}

	switch currency {
	case model.CurrencyJMD:
		convert("val_5000", v.Val5000, 5000, &b.Count5000)
		convert("val_1000", v.Val1000, 1000, &b.Count1000)
		convert("val_500", v.Val500, 500, &b.Count500)
		convert("val_100", v.Val100, 100, &b.Count100)
		convert("val_50", v.Val50, 50, &b.Count50)
		b.CoinsAmount = v.CoinsAmount
		b.SmallBillsCoinsAmount = decimal.Zero
	case model.CurrencyUSD:
		convert("val_100", v.Val100, 100, &b.Count100)
		convert("val_50", v.Val50, 50, &b.Count50)
		convert("val_20", v.Val20, 20, &b.Count20)
		convert("val_10", v.Val10, 10, &b.Count10)
		b.CoinsAmount = decimal.Zero
		b.SmallBillsCoinsAmount = v.SmallBillsCoinsAmount
	}
	return b
}

// Submit records (or overwrites) the reconciliation for (agent, location,
// processing_date). Teller balances are replaced wholesale; variances are
// replaced and totalled only when the tellers did not balance.
func (s *eodService) Submit(ctx context.Context, agentID, locationID uuid.UUID, req dto.SubmitEODRequest) (*dto.EODReportResponse, error) {
	processingDate := truncateToDate(time.Now().AddDate(0, 0, -1))
	if req.ProcessingDate != "" {
		d, err := time.Parse("2006-01-02", req.ProcessingDate)
		if err != nil {
			return nil, fmt.Errorf("invalid processing_date: %w", err)
		}
		processingDate = d
	}

	// Validate denominations before touching storage
	fields := make(map[string]string)
	jmd := breakdownFromValues(model.CurrencyJMD, "jmd_breakdown.", &req.JMDBreakdown, fields)
	usd := breakdownFromValues(model.CurrencyUSD, "usd_breakdown.", &req.USDBreakdown, fields)
	if !req.AllTellersBalanced && len(req.TellerVariances) == 0 {
		fields["teller_variances"] = "required when tellers did not balance"
	}
	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	report := &model.EODReport{
		AgentID:            agentID,
		LocationID:         locationID,
		ProcessingDate:     processingDate,
		ClosingBalance:     req.ClosingBalance,
		FundsFromBXPWebex:  req.FundsFromBXPWebex,
		CashSentToCourier:  req.CashSentToCourier,
		CourierJMDAmount:   req.CourierJMDAmount,
		CourierJMDReceipt:  req.CourierJMDReceipt,
		CourierUSDAmount:   req.CourierUSDAmount,
		CourierUSDReceipt:  req.CourierUSDReceipt,
		AllTellersBalanced: req.AllTellersBalanced,
		Notes:              req.Notes,
		Confirmation:       req.Confirmation,
		Submitted:          true,
	}

	txErr := runTx(ctx, s.reports.DB(), func(tx *gorm.DB) error {
		// Resubmission overwrites the prior report for the same key
		if existing, err := s.reports.FindForUpdate(tx, agentID, locationID, processingDate); err == nil {
			report.ID = existing.ID
			report.CreatedAt = existing.CreatedAt
			// Balanced submissions leave the prior variance total alone
			report.TotalVariance = existing.TotalVariance
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !req.AllTellersBalanced {
			total := decimal.Zero
			for _, v := range req.TellerVariances {
				total = total.Add(v.Variance)
			}
			report.TotalVariance = total
		}

		if err := s.reports.SaveTx(tx, report); err != nil {
			return err
		}

		jmd.EODReportID = report.ID
		usd.EODReportID = report.ID
		if err := s.reports.UpsertBreakdownTx(tx, jmd); err != nil {
			return err
		}
		if err := s.reports.UpsertBreakdownTx(tx, usd); err != nil {
			return err
		}

		balances := make([]model.TellerBalance, 0, len(req.TellerBalances))
		for _, t := range req.TellerBalances {
			balances = append(balances, model.TellerBalance{
				TellerName: t.TellerName,
				JMDAmount:  t.JMDAmount,
				USDAmount:  t.USDAmount,
			})
		}
		if err := s.reports.ReplaceTellerBalancesTx(tx, report.ID, balances); err != nil {
			return err
		}

		if !req.AllTellersBalanced {
			variances := make([]model.TellerVariance, 0, len(req.TellerVariances))
			for _, v := range req.TellerVariances {
				variances = append(variances, model.TellerVariance{
					TellerNumber: v.TellerNumber,
					Variance:     v.Variance,
				})
			}
			if err := s.reports.ReplaceVariancesTx(tx, report.ID, variances); err != nil {
				return err
			}
		}

		adjustments := make([]model.Adjustment, 0, len(req.Adjustments))
		for _, a := range req.Adjustments {
			adjustments = append(adjustments, model.Adjustment{
				Type:        a.Type,
				Description: a.Description,
				Count:       a.Count,
				Amount:      a.Amount,
				Currency:    a.Currency,
			})
		}
		return s.reports.ReplaceAdjustmentsTx(tx, report.ID, adjustments)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Same-day submissions feed the closing balance back into the
	// projection row. Derived fields are not recomputed.
	if processingDate.Equal(truncateToDate(time.Now())) {
		if _, err := s.positions.Find(ctx, locationID, processingDate); err == nil {
			if err := s.positions.UpdateClosingBalance(ctx, locationID, processingDate, req.ClosingBalance); err != nil {
				return nil, err
			}
		}
	}

	// Push the reconciliation out to the ledger, fire-and-forget
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEFTUpload(ctx, map[string]interface{}{
			"location_id":     locationID.String(),
			"processing_date": processingDate.Format("2006-01-02"),
			"closing_balance": req.ClosingBalance.String(),
			"total_variance":  report.TotalVariance.String(),
		})
	}

	return s.Get(ctx, report.ID)
}

func (s *eodService) Get(ctx context.Context, id uuid.UUID) (*dto.EODReportResponse, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("report not found")
	}
	return reportToResponse(report), nil
}

func (s *eodService) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]dto.EODReportResponse, error) {
	reports, err := s.reports.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return reportsToResponses(reports), nil
}

func (s *eodService) ListByDate(ctx context.Context, date time.Time) ([]dto.EODReportResponse, error) {
	reports, err := s.reports.ListByDate(ctx, truncateToDate(date))
	if err != nil {
		return nil, err
	}
	return reportsToResponses(reports), nil
}

func (s *eodService) ExportPDF(ctx context.Context, id uuid.UUID) (string, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("report not found")
	}
	locationName := report.LocationID.String()
	if loc, err := s.locations.FindByID(ctx, report.LocationID); err == nil {
		locationName = loc.Name
	}
	return infra.GenerateEODReportPDF(report, locationName, s.pdfPath)
}

func reportsToResponses(reports []model.EODReport) []dto.EODReportResponse {
	out := make([]dto.EODReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, *reportToResponse(&reports[i]))
	}
	return out
}

func reportToResponse(r *model.EODReport) *dto.EODReportResponse {
	resp := &dto.EODReportResponse{
		ID:                 r.ID.String(),
		AgentID:            r.AgentID.String(),
		LocationID:         r.LocationID.String(),
		ProcessingDate:     r.ProcessingDate.Format("2006-01-02"),
		ClosingBalance:     r.ClosingBalance,
		FundsFromBXPWebex:  r.FundsFromBXPWebex,
		CashSentToCourier:  r.CashSentToCourier,
		CourierJMDAmount:   r.CourierJMDAmount,
		CourierJMDReceipt:  r.CourierJMDReceipt,
		CourierUSDAmount:   r.CourierUSDAmount,
		CourierUSDReceipt:  r.CourierUSDReceipt,
		AllTellersBalanced: r.AllTellersBalanced,
		TotalVariance:      r.TotalVariance,
		Notes:              r.Notes,
		Submitted:          r.Submitted,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
	for _, t := range r.TellerBalances {
		resp.TellerBalances = append(resp.TellerBalances, dto.TellerBalanceEntry{
			TellerName: t.TellerName,
			JMDAmount:  t.JMDAmount,
			USDAmount:  t.USDAmount,
		})
	}
	for _, v := range r.Variances {
		resp.TellerVariances = append(resp.TellerVariances, dto.TellerVarianceEntry{
			TellerNumber: v.TellerNumber,
			Variance:     v.Variance,
		})
	}
	for _, b := range r.Breakdowns {
		resp.Breakdowns = append(resp.Breakdowns, dto.BreakdownResponse{
			Currency:              b.Currency,
			Count5000:             b.Count5000,
			Count1000:             b.Count1000,
			Count500:              b.Count500,
			Count100:              b.Count100,
			Count50:               b.Count50,
			Count20:               b.Count20,
			Count10:               b.Count10,
			CoinsAmount:           b.CoinsAmount,
			SmallBillsCoinsAmount: b.SmallBillsCoinsAmount,
			Total:                 b.Total(),
		})
	}
	for _, a := range r.Adjustments {
		resp.Adjustments = append(resp.Adjustments, dto.AdjustmentEntry{
			Type:        a.Type,
			Description: a.Description,
			Count:       a.Count,
			Amount:      a.Amount,
			Currency:    a.Currency,
		})
	}
	return resp
}
