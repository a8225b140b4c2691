package app

import (
	"errors"
	"net/http"

	"github.com/movietick/booking-backend/api"
	"github.com/movietick/booking-backend/internal/domain"
)

func (app *Application) GetShow(w http.ResponseWriter, r *http.Request) {
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

	// On a cache miss the projected available_seats column is the source of
	// truth; every seat-mutating transaction reprojects it before committing.
	available, ok := app.cachedAvailability(r.Context(), showID)
	if !ok {
		available = show.AvailableSeats
		app.cacheAvailability(r.Context(), showID, available)
	}

	resp := api.ShowResponse{
		Id:             show.ID,
		MovieTitle:     show.MovieTitle,
		VenueName:      show.VenueName,
		ScreenName:     show.ScreenName,
		StartTime:      show.StartTime,
		BasePrice:      show.BasePrice,
		AvailableSeats: available,
		TotalSeats:     show.TotalSeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
