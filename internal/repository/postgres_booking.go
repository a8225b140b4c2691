package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movietick/booking-backend/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateConfirmed finalizes a paid booking in one transaction: the seats are
// conditionally marked sold (they must still be available and held under the
// caller's token), the booking row and its seat links are inserted, and the
// show's availability counter is reprojected. If any seat slipped away the
// whole transaction rolls back with ErrSeatsUnavailable.
func (p *PostgresBookingRepository) CreateConfirmed(
	ctx context.Context,
	booking *domain.Booking,
	holdToken string) (int, error) {

	seatIDs := make([]int, len(booking.Seats))
	for i, seat := range booking.Seats {
		seatIDs[i] = seat.ID
	}

	var available int

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE seats
			SET is_available = FALSE, is_blocked = FALSE, blocked_until = NULL, block_token = NULL
			WHERE id = ANY($1)
			  AND show_id = $2
			  AND is_available
			  AND is_blocked
			  AND block_token = $3
			  AND blocked_until >= NOW()
		`

		tag, err := tx.Exec(ctx, query, seatIDs, booking.ShowID, holdToken)
		if err != nil {
			return err
		}

		if int(tag.RowsAffected()) != len(seatIDs) {
			return domain.ErrSeatsUnavailable
		}

		query = `
			INSERT INTO bookings
				(user_id, show_id, booking_reference, total_amount, booking_status,
				 payment_status, payment_method, transaction_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.ShowID,
			booking.BookingReference,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentMethod,
			booking.TransactionID).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrReferenceCollision
			}

			return err
		}

		rows := make([][]any, 0, len(seatIDs))
		for _, seatID := range seatIDs {
			rows = append(rows, []any{booking.ID, seatID})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "seat_id"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		available, err = refreshShowAvailability(ctx, tx, booking.ShowID)

		return err
	})
	if err != nil {
		return 0, err
	}

	return available, nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, bookingID int) (*domain.Booking, error) {
	return p.getOne(ctx, `WHERE b.id = $1`, bookingID)
}

func (p *PostgresBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return p.getOne(ctx, `WHERE b.booking_reference = $1`, reference)
}

func (p *PostgresBookingRepository) getOne(ctx context.Context, where string, arg any) (*domain.Booking, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.show_id,
			b.booking_reference,
			b.total_amount,
			b.booking_status,
			b.payment_status,
			b.payment_method,
			b.transaction_id,
			b.created_at,
			b.updated_at
		FROM bookings b
	` + where

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowID,
		&booking.BookingReference,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentMethod,
		&booking.TransactionID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveBookingSeats(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	booking.Seats = seats

	return &booking, nil
}

func (p *PostgresBookingRepository) retrieveBookingSeats(ctx context.Context, bookingID int) ([]domain.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE id IN (SELECT seat_id FROM booking_seats WHERE booking_id = $1)
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

// Cancel guards the status transition in the update predicate: only a
// CONFIRMED booking moves to CANCELLED, so a repeated cancel loses the race
// and surfaces ErrBookingAlreadyCancelled to the caller.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, bookingID int) (int, error) {
	var available int

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE bookings
			SET booking_status = $1, updated_at = NOW()
			WHERE id = $2 AND booking_status = $3
			RETURNING show_id
		`

		var showID int
		err := tx.QueryRow(
			ctx,
			query,
			domain.BookingStatusCancelled,
			bookingID,
			domain.BookingStatusConfirmed).Scan(&showID)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrBookingAlreadyCancelled
			}

			return err
		}

		query = `
			UPDATE seats
			SET is_available = TRUE, is_blocked = FALSE, blocked_until = NULL, block_token = NULL
			WHERE id IN (SELECT seat_id FROM booking_seats WHERE booking_id = $1)
		`

		_, err = tx.Exec(ctx, query, bookingID)
		if err != nil {
			return err
		}

		available, err = refreshShowAvailability(ctx, tx, showID)

		return err
	})
	if err != nil {
		return 0, err
	}

	return available, nil
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummaryRow, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.booking_reference,
			m.title,
			v.name,
			s.start_time,
			b.total_amount,
			b.booking_status,
			(SELECT COUNT(*) FROM booking_seats bs WHERE bs.booking_id = b.id),
			b.created_at
		FROM bookings b
		JOIN shows s ON b.show_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN venues v ON s.venue_id = v.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummaryRow, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.BookingSummaryRow

		err := rows.Scan(
			&totalRecords,
			&summary.ID,
			&summary.BookingReference,
			&summary.MovieTitle,
			&summary.VenueName,
			&summary.ShowStartTime,
			&summary.TotalAmount,
			&summary.Status,
			&summary.SeatCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}
