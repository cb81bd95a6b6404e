package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/frontandrew/flightcrud/internal/usecase/flight"
)

// unsetSeatsCount - значение availableSeatsCount в PATCH, означающее "не менять"
const unsetSeatsCount = -1

// FlightService определяет интерфейс для сервиса рейсов
type FlightService interface {
	CreateFlight(ctx context.Context, req *flight.CreateFlightRequest) (*domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	ListFlights(ctx context.Context, filter domain.FlightFilter) ([]*domain.Flight, error)
	PatchFlight(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, id int64) error
	GetPassengers(ctx context.Context, flightID int64) ([]*domain.Passenger, error)
	AddPassenger(ctx context.Context, flightID, passengerID int64) error
	RemovePassenger(ctx context.Context, flightID, passengerID int64) error
}

// FlightHandler обрабатывает запросы связанные с рейсами и бронированием
type FlightHandler struct {
	flightService FlightService
	logger        logger.Logger
}

// NewFlightHandler создает новый handler
func NewFlightHandler(flightService FlightService, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		flightService: flightService,
		logger:        logger,
	}
}

// ListFlights возвращает рейсы по фильтру
// GET /flights?originAirport=&destinationAirport=&dateFrom=&dateTo=&seatsCountFrom=&seatsCountTo=
func (h *FlightHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFlightFilter(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	flights, err := h.flightService.ListFlights(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "list flights")
		return
	}

	respondJSON(w, http.StatusOK, flights)
}

// CreateFlight создает новый рейс
// POST /flights
func (h *FlightHandler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req flight.CreateFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f, err := h.flightService.CreateFlight(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create flight")
		return
	}

	respondJSON(w, http.StatusCreated, f)
}

// GetFlight возвращает рейс по ID
// GET /flights/{id}
func (h *FlightHandler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	f, err := h.flightService.GetFlight(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get flight")
		return
	}

	respondJSON(w, http.StatusOK, f)
}

// PatchFlight частично обновляет рейс
// PATCH /flights/{id}?flightNumber=&originAirport=&destinationAirport=&departureDateTime=&availableSeatsCount=
func (h *FlightHandler) PatchFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	patch, err := parseFlightPatch(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.flightService.PatchFlight(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, h.logger, err, "patch flight")
		return
	}

	respondJSON(w, http.StatusOK, f)
}

// DeleteFlight удаляет рейс
// DELETE /flights/{id}
func (h *FlightHandler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	if err := h.flightService.DeleteFlight(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete flight")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPassengers возвращает пассажиров рейса
// GET /flights/{id}/passengers
func (h *FlightHandler) GetPassengers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	passengers, err := h.flightService.GetPassengers(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get flight passengers")
		return
	}

	respondJSON(w, http.StatusOK, passengers)
}

// AddPassenger бронирует место для пассажира
// POST /flights/{id}/passengers?passengerId=
func (h *FlightHandler) AddPassenger(w http.ResponseWriter, r *http.Request) {
	flightID, passengerID, ok := bookingIDs(w, r)
	if !ok {
		return
	}

	if err := h.flightService.AddPassenger(r.Context(), flightID, passengerID); err != nil {
		respondServiceError(w, h.logger, err, "add passenger")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// RemovePassenger снимает бронь пассажира
// DELETE /flights/{id}/passengers?passengerId=
func (h *FlightHandler) RemovePassenger(w http.ResponseWriter, r *http.Request) {
	flightID, passengerID, ok := bookingIDs(w, r)
	if !ok {
		return
	}

	if err := h.flightService.RemovePassenger(r.Context(), flightID, passengerID); err != nil {
		respondServiceError(w, h.logger, err, "remove passenger")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bookingIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	flightID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return 0, 0, false
	}

	passengerID, err := queryID(r.URL.Query(), "passengerId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}

	return flightID, passengerID, true
}

func parseFlightFilter(q url.Values) (domain.FlightFilter, error) {
	filter := domain.FlightFilter{
		OriginAirport:      queryString(q, "originAirport"),
		DestinationAirport: queryString(q, "destinationAirport"),
	}

	var err error
	if filter.DateFrom, err = queryTime(q, "dateFrom"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = queryTime(q, "dateTo"); err != nil {
		return filter, err
	}
	if filter.SeatsCountFrom, err = queryInt(q, "seatsCountFrom"); err != nil {
		return filter, err
	}
	if filter.SeatsCountTo, err = queryInt(q, "seatsCountTo"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseFlightPatch(q url.Values) (domain.FlightPatch, error) {
	patch := domain.FlightPatch{
		FlightNumber:       queryString(q, "flightNumber"),
		OriginAirport:      queryString(q, "originAirport"),
		DestinationAirport: queryString(q, "destinationAirport"),
	}

	var err error
	if patch.DepartureDateTime, err = queryTime(q, "departureDateTime"); err != nil {
		return patch, err
	}
	if patch.AvailableSeatsCount, err = queryInt(q, "availableSeatsCount"); err != nil {
		return patch, err
	}
	if patch.AvailableSeatsCount != nil && *patch.AvailableSeatsCount == unsetSeatsCount {
		patch.AvailableSeatsCount = nil
	}

	return patch, nil
}
