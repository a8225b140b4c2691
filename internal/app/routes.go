package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("booking-backend", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/sessions", app.Login)
	r.Delete("/sessions", app.Logout)

	r.Route("/shows/{showId}", func(r chi.Router) {
		r.Get("/", app.GetShow)
		r.Get("/seats", app.GetSeatMapByShow)

		r.With(app.requireAuthentication).Route("/reservations", func(r chi.Router) {
			r.Post("/", app.ReserveSeats)
			r.Delete("/", app.ReleaseSeats)
		})
	})

	r.With(app.requireAuthentication).Route("/bookings", func(r chi.Router) {
		r.Post("/summary", app.CreateBookingSummary)
		r.Post("/", app.CreateBooking)
		r.Get("/{bookingId}", app.GetBooking)
		r.Delete("/{bookingId}", app.CancelBooking)
	})

	r.With(app.requireAuthentication).Get("/bookings/reference/{reference}", app.GetBookingByReference)

	r.With(app.requireAuthentication).Get("/users/me/bookings", app.GetUserBookings)

	return r
}
