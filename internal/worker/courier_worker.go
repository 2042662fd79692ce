package worker

// courier_worker.go
// Processes courier pickup jobs from QueueCourier. When a cash request is
// approved a shipment must be booked with the armored courier; the call is
// retried with backoff and dead-lettered after three failures.

import (
	"context"
	"encoding/json"

	"gkms/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxCourierAttempts = 3

// CourierJobPayload is the job envelope sent to QueueCourier.
type CourierJobPayload struct {
	RequestID string `json:"request_id"`
}

// CourierWorker books armored courier shipments for approved cash requests.
type CourierWorker struct {
	courier *infra.CourierClient
	cb      *infra.CircuitBreaker
}

func NewCourierWorker(courier *infra.CourierClient, cb *infra.CircuitBreaker) *CourierWorker {
	return &CourierWorker{courier: courier, cb: cb}
}

// Process books a shipment for a single approved request.
func (w *CourierWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload CourierJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("courier_worker: invalid payload")
		return
	}

	requestID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		log.Error().Str("request_id", payload.RequestID).Msg("courier_worker: invalid request_id")
		return
	}

	if w.cb.State() == infra.CBOpen {
		SendToDLQ(ctx, rdb, QueueCourier, "courier_dispatch", raw, "courier circuit breaker open", 0)
		return
	}

	var accepted bool
	dispatchErr := withRetry(ctx, maxCourierAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			ok, err := w.courier.Dispatch(ctx, requestID)
			if err != nil {
				log.Warn().
					Err(err).
					Int("attempt", attempt+1).
					Str("request_id", payload.RequestID).
					Msg("courier_worker: dispatch attempt failed, retrying")
				return err
			}
			accepted = ok
			return nil
		})
	})

	if dispatchErr != nil {
		log.Error().Err(dispatchErr).Str("request_id", payload.RequestID).Msg("courier_worker: dispatch failed after all retries")
		SendToDLQ(ctx, rdb, QueueCourier, "courier_dispatch", raw, dispatchErr.Error(), maxCourierAttempts)
		return
	}

	if !accepted {
		log.Warn().Str("request_id", payload.RequestID).Msg("courier_worker: shipment declined by courier")
		SendToDLQ(ctx, rdb, QueueCourier, "courier_dispatch", raw, "shipment declined by courier", 1)
		return
	}

	log.Info().Str("request_id", payload.RequestID).Msg("courier_worker: shipment booked")
}
