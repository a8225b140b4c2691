package app

import (
	"context"
	"time"
)

// startHoldSweeper runs a background loop that frees expired seat holds.
// The storage predicates already treat expired holds as free, so the sweep
// only reclaims rows eagerly; correctness never depends on it.
func (app *Application) startHoldSweeper(ctx context.Context) {
	interval := app.config.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.sweepExpiredHolds(ctx)
			}
		}
	}()
}

func (app *Application) sweepExpiredHolds(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	released, err := app.seatRepo.ReleaseExpired(sweepCtx)
	if err != nil {
		app.logger.Error("failed to sweep expired seat holds", "error", err)
		return
	}

	if released > 0 {
		app.logger.Info("swept expired seat holds", "released", released)
	}
}
