package app

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/movietick/booking-backend/api"
	"github.com/movietick/booking-backend/internal/domain"
)

// CreateBookingSummary prices a seat selection without touching any seat
// state. The same calculation runs again at booking time, so the preview can
// never drift from what is charged.
func (app *Application) CreateBookingSummary(w http.ResponseWriter, r *http.Request) {
	var input api.BookingSummaryRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	show, err := app.showRepo.GetById(r.Context(), input.ShowId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetSeatsByShowAndSeatIds(r.Context(), input.ShowId, input.SeatIdList)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(seats) != len(input.SeatIdList) {
		app.notFoundResponseWithErr(w, r, domain.ErrSeatsNotFound)
		return
	}

	promoCode := strings.ToUpper(input.PromoCode)
	pricing := domain.CalculatePricing(show, seats, promoCode)

	now := time.Now()
	apiSeats := make([]api.Seat, len(seats))
	for i, seat := range seats {
		apiSeats[i] = toApiSeat(show, seat, now)
	}

	resp := api.BookingSummaryResponse{
		ShowId:  input.ShowId,
		Seats:   apiSeats,
		Pricing: toApiPricing(pricing),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiPricing(p domain.PriceBreakdown) api.PricingBreakdown {
	return api.PricingBreakdown{
		Subtotal:       p.Subtotal,
		ConvenienceFee: p.ConvenienceFee,
		Taxes:          p.Taxes,
		Discount:       p.Discount,
		Total:          p.Total,
		PromoCode:      p.PromoCode,
		TicketCount:    p.TicketCount,
	}
}
