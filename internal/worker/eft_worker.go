package worker

// eft_worker.go
// Processes ledger upload jobs from QueueEFTUpload. Submitted EOD
// reconciliations are pushed back to the EFT gateway with retry and
// dead-lettering, so a flaky gateway never blocks an agent's submission.

import (
	"context"
	"encoding/json"

	"gkms/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const maxEFTUploadAttempts = 3

// EFTUploadJobPayload is the job envelope sent to QueueEFTUpload.
type EFTUploadJobPayload struct {
	LocationID     string `json:"location_id"`
	ProcessingDate string `json:"processing_date"`
	ClosingBalance string `json:"closing_balance"`
	TotalVariance  string `json:"total_variance"`
}

// EFTWorker pushes submitted reconciliations out to the ledger gateway.
type EFTWorker struct {
	eft *infra.EFTClient
	cb  *infra.CircuitBreaker
}

func NewEFTWorker(eft *infra.EFTClient, cb *infra.CircuitBreaker) *EFTWorker {
	return &EFTWorker{eft: eft, cb: cb}
}

// Process uploads one reconciliation record.
func (w *EFTWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EFTUploadJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("eft_worker: invalid payload")
		return
	}

	closing, err := decimal.NewFromString(payload.ClosingBalance)
	if err != nil {
		log.Error().Str("closing_balance", payload.ClosingBalance).Msg("eft_worker: invalid closing balance")
		return
	}
	variance, err := decimal.NewFromString(payload.TotalVariance)
	if err != nil {
		log.Error().Str("total_variance", payload.TotalVariance).Msg("eft_worker: invalid total variance")
		return
	}

	if w.cb.State() == infra.CBOpen {
		SendToDLQ(ctx, rdb, QueueEFTUpload, "eft_upload", raw, "eft circuit breaker open", 0)
		return
	}

	upload := infra.EFTUploadPayload{
		LocationID:     payload.LocationID,
		ProcessingDate: payload.ProcessingDate,
		ClosingBalance: closing,
		TotalVariance:  variance,
	}

	uploadErr := withRetry(ctx, maxEFTUploadAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			if err := w.eft.Upload(ctx, upload); err != nil {
				log.Warn().
					Err(err).
					Int("attempt", attempt+1).
					Str("location_id", payload.LocationID).
					Msg("eft_worker: upload attempt failed, retrying")
				return err
			}
			return nil
		})
	})

	if uploadErr != nil {
		log.Error().
			Err(uploadErr).
			Str("location_id", payload.LocationID).
			Str("processing_date", payload.ProcessingDate).
			Msg("eft_worker: upload failed after all retries")
		SendToDLQ(ctx, rdb, QueueEFTUpload, "eft_upload", raw, uploadErr.Error(), maxEFTUploadAttempts)
		return
	}

	log.Info().
		Str("location_id", payload.LocationID).
		Str("processing_date", payload.ProcessingDate).
		Msg("eft_worker: reconciliation uploaded")
}
