package worker

// position_cron.go
// Background goroutine that computes the daily cash position for every
// branch shortly after the 3 PM payout snapshot becomes available, then
// emails treasury when any branch breaches a limit. Uses the provider
// circuit breaker to avoid hammering downed upstreams.

import (
	"context"
	"fmt"
	"time"

	"gkms/internal/dto"
	"gkms/internal/infra"
	"gkms/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	positionTickInterval = time.Minute
	positionRunHour      = 15
	positionRunMinute    = 5
)

// PositionComputer is the slice of the position service the cron needs.
type PositionComputer interface {
	Compute(ctx context.Context, locationID uuid.UUID, date time.Time) (*dto.PositionResponse, error)
}

// PositionCronConfig holds all dependencies for the daily position run.
type PositionCronConfig struct {
	Locations  repository.LocationRepository
	Positions  PositionComputer
	CB         *infra.CircuitBreaker
	Dispatcher *Dispatcher
	AlertsTo   string
}

// StartPositionCron launches a background goroutine that ticks every minute
// and runs the full-branch position computation once per day after the
// payout snapshot time. It respects the context for graceful shutdown.
func StartPositionCron(ctx context.Context, cfg PositionCronConfig) {
	go func() {
		ticker := time.NewTicker(positionTickInterval)
		defer ticker.Stop()

		log.Info().Msg("position_cron: started")

		var lastRun string
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("position_cron: shutting down")
				return
			case now := <-ticker.C:
				if !dueForRun(now, lastRun) {
					continue
				}
				// Only a batch that actually ran counts as today's run;
				// a breaker-open skip leaves lastRun alone so the next
				// tick after recovery retries.
				if runPositionBatch(ctx, cfg, now) {
					lastRun = now.Format("2006-01-02")
				}
			}
		}
	}()
}

// dueForRun reports whether the daily batch should fire: at or after the
// snapshot time and not already run today.
func dueForRun(now time.Time, lastRun string) bool {
	if lastRun == now.Format("2006-01-02") {
		return false
	}
	minutes := now.Hour()*60 + now.Minute()
	return minutes >= positionRunHour*60+positionRunMinute
}

// runPositionBatch computes positions for every branch. It reports false
// when the batch was skipped or cut short, so the caller can retry on a
// later tick; recomputation is idempotent.
func runPositionBatch(ctx context.Context, cfg PositionCronConfig, now time.Time) bool {
	if cfg.CB.State() == infra.CBOpen {
		log.Warn().Msg("position_cron: provider circuit breaker open, skipping run")
		return false
	}

	locations, err := cfg.Locations.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("position_cron: failed to list locations")
		return false
	}

	log.Info().Int("locations", len(locations)).Msg("position_cron: computing daily positions")

	for i := range locations {
		loc := &locations[i]

		// The breaker may trip mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Warn().Msg("position_cron: circuit breaker opened mid-batch, stopping")
			return false
		}

		var pos *dto.PositionResponse
		cbErr := cfg.CB.Execute(func() error {
			p, err := cfg.Positions.Compute(ctx, loc.ID, now)
			if err != nil {
				return err
			}
			pos = p
			return nil
		})
		if cbErr != nil {
			log.Error().
				Err(cbErr).
				Str("location_id", loc.ID.String()).
				Msg("position_cron: compute failed")
			continue
		}

		if pos.ExceedsInsuranceLimit || pos.ExceedsEODLimit || pos.ExceedsWorkingDayLimit {
			enqueueBreachAlert(ctx, cfg, loc.Name, pos)
		}
	}
	return true
}

func enqueueBreachAlert(ctx context.Context, cfg PositionCronConfig, locationName string, pos *dto.PositionResponse) {
	if cfg.Dispatcher == nil || cfg.AlertsTo == "" {
		return
	}

	body := fmt.Sprintf(
		"Branch %s breached a cash limit on %s.\n\n"+
			"Cash position at 3 PM: %s\n"+
			"Projected ending position: %s\n"+
			"Projected next-day amount: %s\n\n"+
			"Insurance limit exceeded: %t\n"+
			"EOD vault limit exceeded: %t\n"+
			"Working day limit exceeded: %t\n",
		locationName, pos.Date,
		pos.CashPositionAt3PM.StringFixed(2),
		pos.ProjectedEndingPosition.StringFixed(2),
		pos.ProjectedNextDayAmount.StringFixed(2),
		pos.ExceedsInsuranceLimit,
		pos.ExceedsEODLimit,
		pos.ExceedsWorkingDayLimit,
	)

	job := EmailJobPayload{
		ToEmail: cfg.AlertsTo,
		Subject: fmt.Sprintf("Cash limit breach: %s (%s)", locationName, pos.Date),
		Body:    body,
	}
	if err := cfg.Dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("location", locationName).Msg("position_cron: failed to enqueue breach alert")
	} else {
		log.Info().Str("location", locationName).Msg("position_cron: breach alert enqueued")
	}
}
