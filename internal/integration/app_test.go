package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movietick/booking-backend/internal/app"
	"github.com/movietick/booking-backend/internal/mailer"
	"github.com/movietick/booking-backend/internal/payment"
	"github.com/movietick/booking-backend/internal/repository"
	appvalidator "github.com/movietick/booking-backend/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Mailer   *mailer.MockMailer
	SeatRepo *repository.PostgresSeatRepository
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	userRepo := repository.NewPostgresUserRepository(db)
	showRepo := repository.NewPostgresShowRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	// every payment attempt succeeds instantly, so test outcomes stay deterministic
	paymentGateway := payment.NewSimulatedGateway(
		payment.WithSuccessRate(1),
		payment.WithLatency(0),
	)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		userRepo,
		showRepo,
		seatRepo,
		bookingRepo,
		paymentGateway,
	)

	return &TestApp{
		App:      application,
		DB:       db,
		Redis:    redisClient,
		Mailer:   mockMailer,
		SeatRepo: seatRepo,
	}, nil
}
