package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/movietick/booking-backend/api"
	"github.com/movietick/booking-backend/internal/domain"
)

// GetSeatMapByShow returns every seat of a show grouped by row. Holds are
// evaluated lazily against the current clock, so a seat whose hold expired a
// second ago already shows as free even if no sweep has run yet.
func (app *Application) GetSeatMapByShow(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	show, err := app.showRepo.GetById(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetSeatsByShow(r.Context(), showID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(seats) == 0 {
		logger.Warn("seat map not found for show", "show_id", showID)
		app.notFoundResponse(w, r)
		return
	}

	now := time.Now()
	available := 0
	for _, seat := range seats {
		if seat.IsAvailable {
			available++
		}
	}

	app.cacheAvailability(r.Context(), showID, available)

	resp := api.SeatMapResponse{
		ShowId:         showID,
		MovieTitle:     show.MovieTitle,
		VenueName:      show.VenueName,
		ScreenName:     show.ScreenName,
		StartTime:      show.StartTime,
		AvailableSeats: available,
		TotalSeats:     len(seats),
		SeatRows:       toSeatRows(show, seats, now),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatRows(show *domain.Show, seats []domain.Seat, now time.Time) []api.SeatRow {
	// Seats are pre-sorted by row, number (ascending), so one pass suffices.

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, toApiSeat(show, v, now))
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}

func toApiSeat(show *domain.Show, seat domain.Seat, now time.Time) api.Seat {
	return api.Seat{
		Id:        seat.ID,
		Row:       seat.Row,
		Number:    seat.Number,
		Type:      string(seat.Type),
		Price:     seat.EffectivePrice(show.BasePrice),
		Available: seat.IsAvailable && !seat.HeldAt(now),
		Blocked:   seat.HeldAt(now),
		Label:     seat.Label(),
	}
}
