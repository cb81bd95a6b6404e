package http

import (
	"net/http"

	"github.com/frontandrew/flightcrud/internal/delivery/http/middleware"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	flightHandler    *FlightHandler
	passengerHandler *PassengerHandler
	logger           logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	flightHandler *FlightHandler,
	passengerHandler *PassengerHandler,
	logger logger.Logger,
) *Router {
	return &Router{
		flightHandler:    flightHandler,
		passengerHandler: passengerHandler,
		logger:           logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	r.Route("/flights", func(r chi.Router) {
		r.Get("/", rt.flightHandler.ListFlights)
		r.Post("/", rt.flightHandler.CreateFlight)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.flightHandler.GetFlight)
			r.Patch("/", rt.flightHandler.PatchFlight)
			r.Delete("/", rt.flightHandler.DeleteFlight)

			// Бронирование
			r.Get("/passengers", rt.flightHandler.GetPassengers)
			r.Post("/passengers", rt.flightHandler.AddPassenger)
			r.Delete("/passengers", rt.flightHandler.RemovePassenger)
		})
	})

	r.Route("/passengers", func(r chi.Router) {
		r.Get("/", rt.passengerHandler.ListPassengers)
		r.Post("/", rt.passengerHandler.CreatePassenger)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.passengerHandler.GetPassenger)
			r.Patch("/", rt.passengerHandler.PatchPassenger)
			r.Delete("/", rt.passengerHandler.DeletePassenger)
			r.Get("/flights", rt.passengerHandler.GetBookings)
		})
	})

	return r
}
