package repository

import (
	"context"
	"time"

	"gkms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EODReportRepository interface {
	FindForUpdate(tx *gorm.DB, agentID, locationID uuid.UUID, processingDate time.Time) (*model.EODReport, error)
	SaveTx(tx *gorm.DB, report *model.EODReport) error
	UpsertBreakdownTx(tx *gorm.DB, b *model.DenominationBreakdown) error
	ReplaceTellerBalancesTx(tx *gorm.DB, reportID uuid.UUID, balances []model.TellerBalance) error
	ReplaceVariancesTx(tx *gorm.DB, reportID uuid.UUID, variances []model.TellerVariance) error
	ReplaceAdjustmentsTx(tx *gorm.DB, reportID uuid.UUID, adjustments []model.Adjustment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EODReport, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.EODReport, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.EODReport, error)
	DB() *gorm.DB
}

type eodReportRepo struct{ db *gorm.DB }

func NewEODReportRepository(db *gorm.DB) EODReportRepository { return &eodReportRepo{db: db} }

func (r *eodReportRepo) DB() *gorm.DB { return r.db }

func (r *eodReportRepo) FindForUpdate(tx *gorm.DB, agentID, locationID uuid.UUID, processingDate time.Time) (*model.EODReport, error) {
	var report model.EODReport
	err := tx.
		Where("agent_id = ? AND location_id = ? AND processing_date = ?",
			agentID, locationID, processingDate.Format("2006-01-02")).
		First(&report).Error
	return &report, err
}

func (r *eodReportRepo) SaveTx(tx *gorm.DB, report *model.EODReport) error {
	return tx.Omit("TellerBalances", "Variances", "Breakdowns", "Adjustments").Save(report).Error
}

func (r *eodReportRepo) UpsertBreakdownTx(tx *gorm.DB, b *model.DenominationBreakdown) error {
	var existing model.DenominationBreakdown
	err := tx.Where("eod_report_id = ? AND currency = ?", b.EODReportID, b.Currency).
		First(&existing).Error
	if err == nil {
		b.ID = existing.ID
		b.CreatedAt = existing.CreatedAt
		return tx.Save(b).Error
	}
	if err == gorm.ErrRecordNotFound {
		return tx.Create(b).Error
	}
	return err
}

func (r *eodReportRepo) ReplaceTellerBalancesTx(tx *gorm.DB, reportID uuid.UUID, balances []model.TellerBalance) error {
	if err := tx.Where("eod_report_id = ?", reportID).Delete(&model.TellerBalance{}).Error; err != nil {
		return err
	}
	if len(balances) == 0 {
		return nil
	}
	for i := range balances {
		balances[i].EODReportID = reportID
	}
	return tx.Create(&balances).Error
}

func (r *eodReportRepo) ReplaceVariancesTx(tx *gorm.DB, reportID uuid.UUID, variances []model.TellerVariance) error {
	if err := tx.Where("eod_report_id = ?", reportID).Delete(&model.TellerVariance{}).Error; err != nil {
		return err
	}
	if len(variances) == 0 {
		return nil
	}
	for i := range variances {
		variances[i].EODReportID = reportID
	}
	return tx.Create(&variances).Error
}

func (r *eodReportRepo) ReplaceAdjustmentsTx(tx *gorm.DB, reportID uuid.UUID, adjustments []model.Adjustment) error {
	if err := tx.Where("eod_report_id = ?", reportID).Delete(&model.Adjustment{}).Error; err != nil {
		return err
	}
	if len(adjustments) == 0 {
		return nil
	}
	for i := range adjustments {
		adjustments[i].EODReportID = reportID
	}
	return tx.Create(&adjustments).Error
}

func (r *eodReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EODReport, error) {
	var report model.EODReport
	err := r.db.WithContext(ctx).
		Preload("TellerBalances").Preload("Variances").Preload("Breakdowns").Preload("Adjustments").
		First(&report, id).Error
	return &report, err
}

func (r *eodReportRepo) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.EODReport, error) {
	var reports []model.EODReport
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("processing_date DESC").Find(&reports).Error
	return reports, err
}

func (r *eodReportRepo) ListByDate(ctx context.Context, date time.Time) ([]model.EODReport, error) {
	var reports []model.EODReport
	err := r.db.WithContext(ctx).
		Where("processing_date = ?", date.Format("2006-01-02")).
		Order("created_at DESC").Find(&reports).Error
	return reports, err
}
