package flight

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/infrastructure/events"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/frontandrew/flightcrud/internal/pkg/validator"
	"github.com/frontandrew/flightcrud/internal/repository"
)

// CreateFlightRequest - запрос на создание рейса
type CreateFlightRequest struct {
	FlightNumber        string     `json:"flightNumber" validate:"required,max=32"`
	OriginAirport       string     `json:"originAirport" validate:"required,max=16"`
	DestinationAirport  string     `json:"destinationAirport" validate:"required,max=16"`
	DepartureDateTime   *time.Time `json:"departureDateTime" validate:"required"`
	AvailableSeatsCount int        `json:"availableSeatsCount" validate:"min=10,max=500"`
}

var createFlightMessages = validator.Messages{
	"flightNumber.required":       "Flight number cannot be null",
	"originAirport.required":      "Origin airport cannot be null",
	"destinationAirport.required": "Destination airport cannot be null",
	"departureDateTime.required":  "Departure datetime cannot be null",
	"flightNumber.max":            "Flight number has to have at most 32 characters",
	"originAirport.max":           "Origin airport has to have at most 16 characters",
	"destinationAirport.max":      "Destination airport has to have at most 16 characters",
	"availableSeatsCount.min":     "Seats count has to be greater than or equal 10",
	"availableSeatsCount.max":     "Seats count has to be less than or equal 500",
}

// Service содержит бизнес-логику работы с рейсами и бронированием
type Service struct {
	flightRepo repository.FlightRepository
	txManager  repository.TxManager
	publisher  events.Publisher
	validator  *validator.Validator
	logger     logger.Logger
}

// NewService создает новый экземпляр FlightService
func NewService(
	flightRepo repository.FlightRepository,
	txManager repository.TxManager,
	publisher events.Publisher,
	logger logger.Logger,
) *Service {
	return &Service{
		flightRepo: flightRepo,
		txManager:  txManager,
		publisher:  publisher,
		validator:  validator.New(createFlightMessages),
		logger:     logger,
	}
}

// CreateFlight валидирует запрос и создает рейс
func (s *Service) CreateFlight(ctx context.Context, req *CreateFlightRequest) (*domain.Flight, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNumber:        req.FlightNumber,
		OriginAirport:       req.OriginAirport,
		DestinationAirport:  req.DestinationAirport,
		DepartureDateTime:   *req.DepartureDateTime,
		AvailableSeatsCount: req.AvailableSeatsCount,
		Passengers:          domain.NewIDSet(),
	}

	if err := s.flightRepo.Create(ctx, flight); err != nil {
		s.logger.Error("Failed to create flight", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	s.logger.Info("Flight created", map[string]interface{}{
		"flight_id":     flight.ID,
		"flight_number": flight.FlightNumber,
	})

	return flight, nil
}

// GetFlight возвращает рейс по ID
func (s *Service) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flightRepo.GetByID(ctx, id)
}

// ListFlights возвращает рейсы по фильтру (пустой фильтр - все рейсы)
func (s *Service) ListFlights(ctx context.Context, filter domain.FlightFilter) ([]*domain.Flight, error) {
	return s.flightRepo.List(ctx, filter)
}

// PatchFlight применяет частичное обновление к существующему рейсу
func (s *Service) PatchFlight(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(patch); err != nil {
		return nil, err
	}

	var patched *domain.Flight
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		flight, err := repos.Flights.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patched = patch.Apply(flight)
		if patch.IsEmpty() {
			return nil
		}

		return repos.Flights.Update(ctx, patched)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Flight patched", map[string]interface{}{
		"flight_id": id,
	})

	return patched, nil
}

// DeleteFlight удаляет рейс. Отсутствие рейса - не ошибка
func (s *Service) DeleteFlight(ctx context.Context, id int64) error {
	if err := s.flightRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}

	s.logger.Info("Flight deleted", map[string]interface{}{
		"flight_id": id,
	})

	return nil
}

// GetPassengers возвращает пассажиров рейса
func (s *Service) GetPassengers(ctx context.Context, flightID int64) ([]*domain.Passenger, error) {
	if _, err := s.flightRepo.GetByID(ctx, flightID); err != nil {
		return nil, err
	}

	return s.flightRepo.ListPassengers(ctx, flightID)
}

// AddPassenger бронирует место на рейсе для пассажира.
// Рейс, пассажир и связь между ними сохраняются в одной транзакции
func (s *Service) AddPassenger(ctx context.Context, flightID, passengerID int64) error {
	var (
		changed bool
		seats   int
	)

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		flight, err := repos.Flights.GetByID(ctx, flightID)
		if err != nil {
			return err
		}

		passenger, err := repos.Passengers.GetByID(ctx, passengerID)
		if err != nil {
			return err
		}

		changed, err = flight.AddPassenger(passenger)
		if err != nil || !changed {
			return err
		}
		seats = flight.AvailableSeatsCount

		if err := repos.Flights.Update(ctx, flight); err != nil {
			return err
		}
		return repos.Bookings.Add(ctx, flight.ID, passenger.ID)
	})
	if err != nil {
		return err
	}

	if changed {
		s.logger.Info("Passenger booked", map[string]interface{}{
			"flight_id":       flightID,
			"passenger_id":    passengerID,
			"available_seats": seats,
		})
		s.publish(ctx, events.NewBookingEvent(events.PassengerBooked, flightID, passengerID, seats))
	}

	return nil
}

// RemovePassenger снимает бронь пассажира с рейса.
// Отсутствующий пассажир не может быть на рейсе, поэтому это no-op
func (s *Service) RemovePassenger(ctx context.Context, flightID, passengerID int64) error {
	var (
		changed bool
		seats   int
	)

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		flight, err := repos.Flights.GetByID(ctx, flightID)
		if err != nil {
			return err
		}

		if !flight.Passengers.Has(passengerID) {
			return nil
		}

		passenger, err := repos.Passengers.GetByID(ctx, passengerID)
		if err != nil {
			return err
		}

		changed = flight.RemovePassenger(passenger)
		if !changed {
			return nil
		}
		seats = flight.AvailableSeatsCount

		if err := repos.Flights.Update(ctx, flight); err != nil {
			return err
		}
		return repos.Bookings.Remove(ctx, flight.ID, passenger.ID)
	})
	if err != nil {
		return err
	}

	if changed {
		s.logger.Info("Passenger unbooked", map[string]interface{}{
			"flight_id":       flightID,
			"passenger_id":    passengerID,
			"available_seats": seats,
		})
		s.publish(ctx, events.NewBookingEvent(events.PassengerUnbooked, flightID, passengerID, seats))
	}

	return nil
}

// publish отправляет событие после фиксации транзакции.
// Бронь уже сохранена, поэтому ошибка только логируется
func (s *Service) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.PublishBooking(ctx, event); err != nil {
		s.logger.Error("Failed to publish booking event", map[string]interface{}{
			"event_id":  event.ID.String(),
			"flight_id": event.FlightID,
			"error":     err.Error(),
		})
	}
}
