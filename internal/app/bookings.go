package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/movietick/booking-backend/api"
	"github.com/movietick/booking-backend/internal/domain"
)

const bookingReferenceAttempts = 3

// CreateBooking turns a live seat hold into a confirmed booking. Payment
// runs first; only a successful payment reaches the storage layer, where the
// hold is atomically exchanged for sold seats. A hold that expired between
// payment and commit surfaces as a conflict and is logged loudly, since the
// captured payment then needs a refund.
func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input api.CreateBookingRequest

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

	if show.StartTime.Before(time.Now()) {
		app.badRequestResponse(w, r, fmt.Errorf("show has already started"))
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

	// The authoritative check is the conditional update at commit time; this
	// one exists so an invalid hold is rejected before any money moves.
	err = validateHeldSeats(seats, input.HoldToken, time.Now())
	if err != nil {
		logger.Warn("booking rejected, hold invalid", "error", err)
		app.editConflictResponseWithErr(w, r, err)
		return
	}

	promoCode := strings.ToUpper(input.PromoCode)
	pricing := domain.CalculatePricing(show, seats, promoCode)

	paymentResult, err := app.paymentGateway.Process(r.Context(), domain.PaymentRequest{
		Amount:   pricing.Total,
		Currency: "INR",
		Details:  toDomainPaymentDetails(input.Payment),
	})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if paymentResult.Status != domain.PaymentResultSuccess {
		// The hold stays in place. The user may retry with another payment
		// method until the hold expires.
		logger.Warn("payment declined", "reason", paymentResult.FailureReason)
		app.paymentRequiredResponse(w, r, paymentResult.FailureReason)
		return
	}

	booking := &domain.Booking{
		UserID:        userId,
		ShowID:        input.ShowId,
		TotalAmount:   pricing.Total,
		Status:        domain.BookingStatusConfirmed,
		PaymentStatus: domain.PaymentStatusCompleted,
		PaymentMethod: input.Payment.Method,
		TransactionID: paymentResult.TransactionID,
		Seats:         seats,
	}

	var available int

	for attempt := 0; ; attempt++ {
		booking.BookingReference = domain.NewBookingReference(time.Now())

		available, err = app.bookingRepo.CreateConfirmed(r.Context(), booking, input.HoldToken)
		if err == nil {
			break
		}

		if errors.Is(err, domain.ErrReferenceCollision) && attempt < bookingReferenceAttempts-1 {
			continue
		}

		switch {
		case errors.Is(err, domain.ErrSeatsUnavailable):
			logger.Error("payment captured but booking failed, hold was lost before commit",
				"transaction_id", paymentResult.TransactionID)
			app.editConflictResponseWithErr(w, r, domain.ErrHoldExpired)
		default:
			logger.Error("payment captured but booking failed",
				"transaction_id", paymentResult.TransactionID, "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.cacheAvailability(r.Context(), input.ShowId, available)

	app.sendBookingConfirmation(r, userId, show, booking)

	resp := toBookingResponse(show, booking, pricing, toApiReceipt(booking, paymentResult), time.Now())

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(r *http.Request, userId int, show *domain.Show, booking *domain.Booking) {
	app.wg.Add(1)

	go func(ctx context.Context) {
		defer app.wg.Done()

		// new logger for this goroutine, inheriting context from the request
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending confirmation mail", "panic", err)
			}
		}()

		user, err := app.userRepo.GetById(ctx, userId)
		if err != nil {
			gLogger.Error("failed to load user for confirmation email", "error", err)
			return
		}

		labels := make([]string, len(booking.Seats))
		for i, seat := range booking.Seats {
			labels[i] = seat.Label()
		}

		data := map[string]any{
			"BookingReference": booking.BookingReference,
			"MovieTitle":       show.MovieTitle,
			"VenueName":        show.VenueName,
			"ScreenName":       show.ScreenName,
			"StartTime":        show.StartTime.Format(time.RFC1123),
			"Seats":            strings.Join(labels, ", "),
			"TotalAmount":      booking.TotalAmount.StringFixed(2),
		}

		err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send confirmation email", "error", err)
		} else {
			gLogger.Info("confirmation email sent", "booking_reference", booking.BookingReference)
		}
	}(context.WithoutCancel(r.Context()))
}

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.respondWithBooking(w, r, booking)
}

func (app *Application) GetBookingByReference(w http.ResponseWriter, r *http.Request) {
	reference := strings.ToUpper(chi.URLParam(r, "reference"))

	booking, err := app.bookingRepo.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.respondWithBooking(w, r, booking)
}

// respondWithBooking enforces ownership and renders a stored booking. Other
// users' bookings are indistinguishable from missing ones.
func (app *Application) respondWithBooking(w http.ResponseWriter, r *http.Request, booking *domain.Booking) {
	userId := app.contextGetUserId(r)

	if booking.UserID != userId {
		isAdmin, err := app.isAdmin(r.Context(), userId)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		if !isAdmin {
			app.notFoundResponse(w, r)
			return
		}
	}

	show, err := app.showRepo.GetById(r.Context(), booking.ShowID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	pricing := storedPricing(show, booking)
	receipt := storedReceipt(booking)

	resp := toBookingResponse(show, booking, pricing, receipt, time.Now())

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking flips a confirmed booking to cancelled and returns its seats
// to the pool. Regular users can cancel up to two hours before showtime;
// admins are not bound by the window.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	isAdmin, err := app.isAdmin(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Unlike reads, which mask foreign bookings as missing, cancel answers 403.
	if booking.UserID != userId && !isAdmin {
		app.forbiddenResponse(w, r)
		return
	}

	if booking.Status == domain.BookingStatusCancelled {
		app.editConflictResponseWithErr(w, r, domain.ErrBookingAlreadyCancelled)
		return
	}

	show, err := app.showRepo.GetById(r.Context(), booking.ShowID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !isAdmin && !booking.CanCancelAt(time.Now(), show.StartTime) {
		logger.Warn("cancellation rejected, inside cancellation window",
			"booking_id", bookingID, "show_start", show.StartTime)
		app.editConflictResponseWithErr(w, r, domain.ErrCancellationWindow)
		return
	}

	available, err := app.bookingRepo.Cancel(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			app.editConflictResponseWithErr(w, r, domain.ErrBookingAlreadyCancelled)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.cacheAvailability(r.Context(), booking.ShowID, available)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	page := app.readIntQuery(r, "page", 1)
	pageSize := app.readIntQuery(r, "pageSize", 10)

	if page < 1 || pageSize < 1 || pageSize > 100 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid pagination parameters"))
		return
	}

	pagination := domain.Pagination{Page: page, PageSize: pageSize}

	rows, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]api.BookingSummary, len(rows))
	for i, row := range rows {
		summaries[i] = api.BookingSummary{
			Id:               row.ID,
			BookingReference: row.BookingReference,
			MovieTitle:       row.MovieTitle,
			VenueName:        row.VenueName,
			StartTime:        row.ShowStartTime,
			TotalAmount:      row.TotalAmount,
			Status:           string(row.Status),
			SeatCount:        row.SeatCount,
			CreatedAt:        row.CreatedAt,
		}
	}

	resp := api.UserBookingsResponse{
		Bookings: summaries,
		Metadata: api.Metadata{
			CurrentPage:  metadata.CurrentPage,
			FirstPage:    metadata.FirstPage,
			LastPage:     metadata.LastPage,
			PageSize:     metadata.PageSize,
			TotalRecords: metadata.TotalRecords,
		},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func validateHeldSeats(seats []domain.Seat, holdToken string, now time.Time) error {
	for _, seat := range seats {
		switch {
		case !seat.IsAvailable:
			return fmt.Errorf("seat %s is no longer available", seat.Label())
		case !seat.IsBlocked || seat.BlockToken == nil || *seat.BlockToken != holdToken:
			return fmt.Errorf("seat %s is not held under this reservation", seat.Label())
		case !seat.HeldAt(now):
			return domain.ErrHoldExpired
		}
	}

	return nil
}

func (app *Application) isAdmin(ctx context.Context, userId int) (bool, error) {
	user, err := app.userRepo.GetById(ctx, userId)
	if err != nil {
		return false, err
	}

	return user.IsAdmin, nil
}

func toDomainPaymentDetails(d api.PaymentDetails) domain.PaymentDetails {
	return domain.PaymentDetails{
		Method:         domain.PaymentMethod(d.Method),
		CardNumber:     d.CardNumber,
		CardHolderName: d.CardHolderName,
		ExpiryMonth:    d.ExpiryMonth,
		ExpiryYear:     d.ExpiryYear,
		CVV:            d.Cvv,
		UpiID:          d.UpiId,
		WalletType:     d.WalletType,
		WalletPhone:    d.WalletPhone,
		BankCode:       d.BankCode,
	}
}

func toApiReceipt(booking *domain.Booking, result domain.PaymentResult) api.PaymentReceipt {
	return api.PaymentReceipt{
		Status:           string(result.Status),
		TransactionId:    result.TransactionID,
		GatewayOrderId:   result.GatewayOrderID,
		GatewayPaymentId: result.GatewayPaymentID,
		Method:           booking.PaymentMethod,
		Amount:           booking.TotalAmount,
		PaymentDate:      result.PaymentDate,
	}
}

// storedReceipt reconstructs a receipt for a persisted booking. Gateway
// order and payment identifiers are not stored, only the transaction ID.
func storedReceipt(booking *domain.Booking) api.PaymentReceipt {
	return api.PaymentReceipt{
		Status:        string(booking.PaymentStatus),
		TransactionId: booking.TransactionID,
		Method:        booking.PaymentMethod,
		Amount:        booking.TotalAmount,
		PaymentDate:   booking.CreatedAt,
	}
}

// storedPricing rebuilds the breakdown of a persisted booking. Components
// are recomputed from the seat prices; the discount falls out as the gap
// between the recomputed gross and the total that was actually charged.
func storedPricing(show *domain.Show, booking *domain.Booking) domain.PriceBreakdown {
	pricing := domain.CalculatePricing(show, booking.Seats, "")
	pricing.Discount = pricing.Total.Sub(booking.TotalAmount).Round(2)
	pricing.Total = booking.TotalAmount

	return pricing
}

func toBookingResponse(
	show *domain.Show,
	booking *domain.Booking,
	pricing domain.PriceBreakdown,
	receipt api.PaymentReceipt,
	now time.Time) api.BookingResponse {

	apiSeats := make([]api.Seat, len(booking.Seats))
	for i, seat := range booking.Seats {
		apiSeats[i] = toApiSeat(show, seat, now)
	}

	return api.BookingResponse{
		Id:                   booking.ID,
		BookingReference:     booking.BookingReference,
		ShowId:               booking.ShowID,
		MovieTitle:           show.MovieTitle,
		VenueName:            show.VenueName,
		StartTime:            show.StartTime,
		Seats:                apiSeats,
		Pricing:              toApiPricing(pricing),
		Status:               string(booking.Status),
		PaymentStatus:        string(booking.PaymentStatus),
		Payment:              receipt,
		CanCancel:            booking.CanCancelAt(now, show.StartTime),
		CancellationDeadline: show.CancellationDeadline(),
		CreatedAt:            booking.CreatedAt,
	}
}
