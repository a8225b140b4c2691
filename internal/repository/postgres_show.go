package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movietick/booking-backend/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

func (p *PostgresShowRepository) GetById(ctx context.Context, showID int) (*domain.Show, error) {
	query := `
		SELECT
			s.id,
			s.movie_id,
			m.title,
			s.venue_id,
			v.name,
			s.screen_name,
			s.start_time,
			s.base_price,
			s.total_seats,
			s.available_seats,
			s.created_at
		FROM shows s
		JOIN movies m ON s.movie_id = m.id
		JOIN venues v ON s.venue_id = v.id
		WHERE s.id = $1
	`

	var show domain.Show

	err := p.db.QueryRow(ctx, query, showID).Scan(
		&show.ID,
		&show.MovieID,
		&show.MovieTitle,
		&show.VenueID,
		&show.VenueName,
		&show.ScreenName,
		&show.StartTime,
		&show.BasePrice,
		&show.TotalSeats,
		&show.AvailableSeats,
		&show.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &show, nil
}
