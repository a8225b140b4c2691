package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// refreshShowAvailability recomputes the denormalized available-seat counter
// from the authoritative per-seat flags. It must run inside the same
// transaction as any seat mutation so the counter can never drift.
func refreshShowAvailability(ctx context.Context, tx pgx.Tx, showID int) (int, error) {
	query := `
		UPDATE shows
		SET available_seats = (
			SELECT COUNT(*) FROM seats WHERE show_id = $1 AND is_available
		)
		WHERE id = $1
		RETURNING available_seats
	`

	var available int
	err := tx.QueryRow(ctx, query, showID).Scan(&available)
	if err != nil {
		return 0, err
	}

	return available, nil
}
