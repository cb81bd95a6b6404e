package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/frontandrew/flightcrud/internal/usecase/passenger"
)

// PassengerService определяет интерфейс для сервиса пассажиров
type PassengerService interface {
	CreatePassenger(ctx context.Context, req *passenger.CreatePassengerRequest) (*domain.Passenger, error)
	GetPassenger(ctx context.Context, id int64) (*domain.Passenger, error)
	ListPassengers(ctx context.Context) ([]*domain.Passenger, error)
	PatchPassenger(ctx context.Context, id int64, patch domain.PassengerPatch) (*domain.Passenger, error)
	DeletePassenger(ctx context.Context, id int64) error
	GetBookings(ctx context.Context, passengerID int64) ([]*domain.Flight, error)
}

// PassengerHandler обрабатывает запросы связанные с пассажирами
type PassengerHandler struct {
	passengerService PassengerService
	logger           logger.Logger
}

// NewPassengerHandler создает новый handler
func NewPassengerHandler(passengerService PassengerService, logger logger.Logger) *PassengerHandler {
	return &PassengerHandler{
		passengerService: passengerService,
		logger:           logger,
	}
}

// ListPassengers возвращает всех пассажиров
// GET /passengers
func (h *PassengerHandler) ListPassengers(w http.ResponseWriter, r *http.Request) {
	passengers, err := h.passengerService.ListPassengers(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list passengers")
		return
	}

	respondJSON(w, http.StatusOK, passengers)
}

// CreatePassenger создает нового пассажира
// POST /passengers
func (h *PassengerHandler) CreatePassenger(w http.ResponseWriter, r *http.Request) {
	var req passenger.CreatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.passengerService.CreatePassenger(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create passenger")
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// GetPassenger возвращает пассажира по ID
// GET /passengers/{id}
func (h *PassengerHandler) GetPassenger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid passenger ID")
		return
	}

	p, err := h.passengerService.GetPassenger(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get passenger")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// PatchPassenger частично обновляет пассажира
// PATCH /passengers/{id}?firstName=&lastName=&phoneNumber=
func (h *PassengerHandler) PatchPassenger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid passenger ID")
		return
	}

	q := r.URL.Query()
	patch := domain.PassengerPatch{
		FirstName:   queryString(q, "firstName"),
		LastName:    queryString(q, "lastName"),
		PhoneNumber: queryString(q, "phoneNumber"),
	}

	p, err := h.passengerService.PatchPassenger(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, h.logger, err, "patch passenger")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// DeletePassenger удаляет пассажира
// DELETE /passengers/{id}
func (h *PassengerHandler) DeletePassenger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid passenger ID")
		return
	}

	if err := h.passengerService.DeletePassenger(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete passenger")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBookings возвращает рейсы пассажира
// GET /passengers/{id}/flights
func (h *PassengerHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid passenger ID")
		return
	}

	flights, err := h.passengerService.GetBookings(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get passenger flights")
		return
	}

	respondJSON(w, http.StatusOK, flights)
}
