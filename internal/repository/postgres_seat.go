package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movietick/booking-backend/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

const seatColumns = `id, show_id, seat_row, seat_number, seat_type, price, is_available, is_blocked, blocked_until, block_token`

func (p *PostgresSeatRepository) GetSeatsByShow(ctx context.Context, showID int) ([]domain.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE show_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (p *PostgresSeatRepository) GetSeatsByShowAndSeatIds(
	ctx context.Context,
	showID int,
	seatIDs []int) ([]domain.Seat, error) {

	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE show_id = $1 AND id = ANY($2)
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, showID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

func scanSeats(rows pgx.Rows) ([]domain.Seat, error) {
	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(
			&seat.ID,
			&seat.ShowID,
			&seat.Row,
			&seat.Number,
			&seat.Type,
			&seat.Price,
			&seat.IsAvailable,
			&seat.IsBlocked,
			&seat.BlockedUntil,
			&seat.BlockToken,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// BlockSeats holds the whole seat set with a single conditional update. The
// predicate treats an expired hold as free, so lazy expiry needs no separate
// cleanup pass. When fewer rows match than were requested the transaction
// rolls back and nothing is touched; the loser of a race sees
// ErrSeatsUnavailable.
func (p *PostgresSeatRepository) BlockSeats(
	ctx context.Context,
	showID int,
	seatIDs []int,
	token string,
	until time.Time) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE seats
			SET is_blocked = TRUE, blocked_until = $1, block_token = $2
			WHERE id = ANY($3)
			  AND show_id = $4
			  AND is_available
			  AND (NOT is_blocked OR blocked_until < NOW())
		`

		tag, err := tx.Exec(ctx, query, until, token, seatIDs, showID)
		if err != nil {
			return err
		}

		if int(tag.RowsAffected()) != len(seatIDs) {
			return domain.ErrSeatsUnavailable
		}

		return nil
	})
}

func (p *PostgresSeatRepository) ReleaseSeats(
	ctx context.Context,
	showID int,
	seatIDs []int,
	token string) (int, error) {

	query := `
		UPDATE seats
		SET is_blocked = FALSE, blocked_until = NULL, block_token = NULL
		WHERE id = ANY($1)
		  AND show_id = $2
		  AND is_available
		  AND is_blocked
		  AND block_token = $3
	`

	tag, err := p.db.Exec(ctx, query, seatIDs, showID, token)
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

// ReleaseExpired re-checks blocked_until inside the update itself, so a hold
// that was refreshed or confirmed after being observed is never cleared.
func (p *PostgresSeatRepository) ReleaseExpired(ctx context.Context) (int, error) {
	query := `
		UPDATE seats
		SET is_blocked = FALSE, blocked_until = NULL, block_token = NULL
		WHERE is_blocked AND blocked_until < NOW()
	`

	tag, err := p.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

func (p *PostgresSeatRepository) CountAvailable(ctx context.Context, showID int) (int, error) {
	var count int

	err := p.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM seats WHERE show_id = $1 AND is_available`,
		showID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (p *PostgresSeatRepository) CountTotal(ctx context.Context, showID int) (int, error) {
	var count int

	err := p.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM seats WHERE show_id = $1`,
		showID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
