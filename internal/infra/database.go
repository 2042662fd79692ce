package infra

import (
	"fmt"

	"gkms/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway database.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.LocationLimit{},
		&model.CashRequest{},
		&model.CashDelivery{},
		&model.DailyPosition{},
		&model.EODReport{},
		&model.TellerBalance{},
		&model.TellerVariance{},
		&model.DenominationBreakdown{},
		&model.Adjustment{},
		&model.EmergencyAccessRequest{},
		&model.SystemSettings{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the unverified-delivery lookups on the agent dashboard
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_deliveries_unverified') THEN
		    CREATE INDEX idx_deliveries_unverified
		        ON cash_deliveries (location_id, date)
		        WHERE verified = false;
		  END IF;
		END $$`,
		// partial index for the admin pending-request queue
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_requests_pending') THEN
		    CREATE INDEX idx_requests_pending
		        ON cash_requests (request_date)
		        WHERE status = 'pending';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
