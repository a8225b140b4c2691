package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/movietick/booking-backend/api"
	"github.com/movietick/booking-backend/internal/domain"
	"github.com/movietick/booking-backend/internal/mocks"
	"github.com/movietick/booking-backend/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReservationsTestSuite struct {
	suite.Suite
	app      *Application
	showRepo *mocks.MockShowRepo
	seatRepo *mocks.MockSeatRepo
}

func (s *ReservationsTestSuite) SetupTest() {
	s.showRepo = &mocks.MockShowRepo{}
	s.seatRepo = &mocks.MockSeatRepo{}
	s.app = newTestApplication(func(a *Application) {
		a.showRepo = s.showRepo
		a.seatRepo = s.seatRepo
	})
}

func TestReservationsSuite(t *testing.T) {
	suite.Run(t, new(ReservationsTestSuite))
}

func futureShow() *domain.Show {
	return &domain.Show{
		ID:         1,
		MovieTitle: "Interstellar",
		VenueName:  "Galaxy Cinemas",
		ScreenName: "Screen 1",
		StartTime:  time.Now().Add(6 * time.Hour),
		BasePrice:  decimal.NewFromInt(250),
		TotalSeats: 100,
	}
}

func showSeats(showID int, ids ...int) []domain.Seat {
	seats := make([]domain.Seat, len(ids))
	for i, id := range ids {
		seats[i] = domain.Seat{
			ID:          id,
			ShowID:      showID,
			Row:         "A",
			Number:      id,
			Type:        domain.SeatTypeRegular,
			IsAvailable: true,
		}
	}

	return seats
}

func (s *ReservationsTestSuite) TestReserveSeats() {
	tests := []struct {
		name           string
		setupSession   bool
		body           api.ReserveSeatsRequest
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		checkResponse  func(resp api.ReserveSeatsResponse)
	}{
		{
			name:           "no session",
			setupSession:   false,
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorizedAccess,
		},
		{
			name:           "empty seat list",
			setupSession:   true,
			body:           api.ReserveSeatsRequest{SeatIdList: []int{}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMinLength, "1"),
		},
		{
			name:           "too many seats",
			setupSession:   true,
			body:           api.ReserveSeatsRequest{SeatIdList: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxLength, "8"),
		},
		{
			name:         "hold minutes above cap",
			setupSession: true,
			body: api.ReserveSeatsRequest{
				SeatIdList:  []int{1},
				HoldMinutes: ptr(45),
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxLength, "30"),
		},
		{
			name:         "show not found",
			setupSession: true,
			body:         api.ReserveSeatsRequest{SeatIdList: []int{1, 2}},
			setupMock: func() {
				s.showRepo.GetByIdFunc = func(ctx context.Context, showID int) (*domain.Show, error) {
					return nil, domain.ErrRecordNotFound
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:         "show already started",
			setupSession: true,
			body:         api.ReserveSeatsRequest{SeatIdList: []int{1, 2}},
			setupMock: func() {
				s.showRepo.GetByIdFunc = func(ctx context.Context, showID int) (*domain.Show, error) {
					show := futureShow()
					show.StartTime = time.Now().Add(-time.Hour)
					return show, nil
				}
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "show has already started",
		},
		{
			name:         "unknown seat ids",
			setupSession: true,
			body:         api.ReserveSeatsRequest{SeatIdList: []int{1, 999}},
			setupMock: func() {
				s.showRepo.GetByIdFunc = func(ctx context.Context, showID int) (*domain.Show, error) {
					return futureShow(), nil
				}
				s.seatRepo.GetSeatsByShowAndSeatIdsFunc = func(ctx context.Context, showID int, seatIDs []int) ([]domain.Seat, error) {
					return showSeats(showID, 1), nil
				}
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:         "seats already held",
			setupSession: true,
			body:         api.ReserveSeatsRequest{SeatIdList: []int{1, 2}},
			setupMock: func() {
				s.showRepo.GetByIdFunc = func(ctx context.Context, showID int) (*domain.Show, error) {
					return futureShow(), nil
				}
				s.seatRepo.GetSeatsByShowAndSeatIdsFunc = func(ctx context.Context, showID int, seatIDs []int) ([]domain.Seat, error) {
					return showSeats(showID, 1, 2), nil
				}
				s.seatRepo.BlockSeatsFunc = func(ctx context.Context, showID int, seatIDs []int, token string, until time.Time) error {
					return domain.ErrSeatsUnavailable
				}
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrSeatsUnavailable.Error(),
		},
		{
			name:         "successful reservation with default hold",
			setupSession: true,
			body:         api.ReserveSeatsRequest{SeatIdList: []int{1, 2}},
			setupMock: func() {
				s.showRepo.GetByIdFunc = func(ctx context.Context, showID int) (*domain.Show, error) {
					return futureShow(), nil
				}
				s.seatRepo.GetSeatsByShowAndSeatIdsFunc = func(ctx context.Context, showID int, seatIDs []int) ([]domain.Seat, error) {
					return showSeats(showID, 1, 2), nil
				}
				s.seatRepo.BlockSeatsFunc = func(ctx context.Context, showID int, seatIDs []int, token string, until time.Time) error {
					s.Equal(1, showID)
					s.Equal([]int{1, 2}, seatIDs)
					s.WithinDuration(time.Now().Add(defaultHoldTTL), until, 5*time.Second)
					return nil
				}
			},
			wantStatus: http.StatusCreated,
			checkResponse: func(resp api.ReserveSeatsResponse) {
				_, err := uuid.Parse(resp.HoldToken)
				s.NoError(err)
				s.Equal([]int{1, 2}, resp.SeatIds)
				s.WithinDuration(time.Now().Add(defaultHoldTTL), resp.ExpiresAt, 5*time.Second)
			},
		},
		{
			name:         "successful reservation with custom hold",
			setupSession: true,
			body: api.ReserveSeatsRequest{
				SeatIdList:  []int{3},
				HoldMinutes: ptr(5),
			},
			setupMock: func() {
				s.showRepo.GetByIdFunc = func(ctx context.Context, showID int) (*domain.Show, error) {
					return futureShow(), nil
				}
				s.seatRepo.GetSeatsByShowAndSeatIdsFunc = func(ctx context.Context, showID int, seatIDs []int) ([]domain.Seat, error) {
					return showSeats(showID, 3), nil
				}
				s.seatRepo.BlockSeatsFunc = func(ctx context.Context, showID int, seatIDs []int, token string, until time.Time) error {
					s.WithinDuration(time.Now().Add(5*time.Minute), until, 5*time.Second)
					return nil
				}
			},
			wantStatus: http.StatusCreated,
			checkResponse: func(resp api.ReserveSeatsResponse) {
				s.WithinDuration(time.Now().Add(5*time.Minute), resp.ExpiresAt, 5*time.Second)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/shows/1/reservations", tt.body)
			r = withURLParams(r, map[string]string{"showId": "1"})

			if tt.setupSession {
				r = setupTestSession(s.T(), s.app, r, 1)
			}

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.ReserveSeats))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.checkResponse != nil {
				var resp api.ReserveSeatsResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				tt.checkResponse(resp)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *ReservationsTestSuite) TestReleaseSeats() {
	holdToken := uuid.NewString()

	tests := []struct {
		name           string
		setupSession   bool
		body           api.ReleaseSeatsRequest
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "no session",
			setupSession:   false,
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorizedAccess,
		},
		{
			name:         "malformed hold token",
			setupSession: true,
			body: api.ReleaseSeatsRequest{
				SeatIdList: []int{1, 2},
				HoldToken:  "not-a-token",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be a valid hold token",
		},
		{
			name:         "storage error",
			setupSession: true,
			body: api.ReleaseSeatsRequest{
				SeatIdList: []int{1, 2},
				HoldToken:  holdToken,
			},
			setupMock: func() {
				s.seatRepo.ReleaseSeatsFunc = func(ctx context.Context, showID int, seatIDs []int, token string) (int, error) {
					return 0, fmt.Errorf("database error")
				}
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:         "successful release",
			setupSession: true,
			body: api.ReleaseSeatsRequest{
				SeatIdList: []int{1, 2},
				HoldToken:  holdToken,
			},
			setupMock: func() {
				s.seatRepo.ReleaseSeatsFunc = func(ctx context.Context, showID int, seatIDs []int, token string) (int, error) {
					s.Equal(holdToken, token)
					return 2, nil
				}
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:         "expired hold released as no-op",
			setupSession: true,
			body: api.ReleaseSeatsRequest{
				SeatIdList: []int{1, 2},
				HoldToken:  holdToken,
			},
			setupMock: func() {
				s.seatRepo.ReleaseSeatsFunc = func(ctx context.Context, showID int, seatIDs []int, token string) (int, error) {
					return 0, nil
				}
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodDelete, "/shows/1/reservations", tt.body)
			r = withURLParams(r, map[string]string{"showId": "1"})

			if tt.setupSession {
				r = setupTestSession(s.T(), s.app, r, 1)
			}

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.ReleaseSeats))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}
