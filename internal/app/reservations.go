package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/movietick/booking-backend/api"
	"github.com/movietick/booking-backend/internal/domain"
)

const defaultHoldTTL = 10 * time.Minute

// ReserveSeats places a short-lived hold on a seat set. The whole set is
// held or nothing is: the storage layer applies the hold with one
// conditional update, so two users racing for overlapping seats can never
// both win.
func (app *Application) ReserveSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ReserveSeatsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
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

	if show.StartTime.Before(time.Now()) {
		app.badRequestResponse(w, r, fmt.Errorf("show has already started"))
		return
	}

	seats, err := app.seatRepo.GetSeatsByShowAndSeatIds(r.Context(), showID, input.SeatIdList)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(seats) != len(input.SeatIdList) {
		logger.Warn("reservation failed: one or more requested seat IDs do not exist for the show",
			"requested_seats", input.SeatIdList)
		app.notFoundResponseWithErr(w, r, domain.ErrSeatsNotFound)
		return
	}

	holdTTL := defaultHoldTTL
	if input.HoldMinutes != nil {
		holdTTL = time.Duration(*input.HoldMinutes) * time.Minute
	}

	holdToken := uuid.NewString()
	expiresAt := time.Now().Add(holdTTL)

	err = app.seatRepo.BlockSeats(r.Context(), showID, input.SeatIdList, holdToken, expiresAt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatsUnavailable):
			logger.Warn("reservation conflict: some seats are sold or under a live hold")
			app.editConflictResponseWithErr(w, r, domain.ErrSeatsUnavailable)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.ReserveSeatsResponse{
		HoldToken: holdToken,
		ExpiresAt: expiresAt,
		SeatIds:   input.SeatIdList,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ReleaseSeats gives up a hold before it expires. Seats the token no longer
// owns are skipped silently; releasing an already expired hold is a no-op.
func (app *Application) ReleaseSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ReleaseSeatsRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	released, err := app.seatRepo.ReleaseSeats(r.Context(), showID, input.SeatIdList, input.HoldToken)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if released < len(input.SeatIdList) {
		logger.Info("some seats were not released, hold expired or not owned",
			"requested", len(input.SeatIdList), "released", released)
	}

	w.WriteHeader(http.StatusNoContent)
}
