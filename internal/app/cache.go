package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const availabilityTTL = time.Minute

func availabilityKey(showID int) string {
	return fmt.Sprintf("show_availability:%d", showID)
}

// cacheAvailability writes the show's available-seat count through to redis.
// Cache failures are logged and swallowed, the database stays authoritative.
func (app *Application) cacheAvailability(ctx context.Context, showID, available int) {
	err := app.redis.Set(ctx, availabilityKey(showID), available, availabilityTTL).Err()
	if err != nil {
		app.logger.Error("failed to cache show availability", "show_id", showID, "error", err)
	}
}

func (app *Application) cachedAvailability(ctx context.Context, showID int) (int, bool) {
	val, err := app.redis.Get(ctx, availabilityKey(showID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.logger.Error("failed to read show availability from cache", "show_id", showID, "error", err)
		}
		return 0, false
	}

	available, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}

	return available, true
}
