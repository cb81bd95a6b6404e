package passenger

import (
	"context"
	"fmt"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/frontandrew/flightcrud/internal/pkg/validator"
	"github.com/frontandrew/flightcrud/internal/repository"
)

// CreatePassengerRequest - запрос на создание пассажира
type CreatePassengerRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=40"`
	LastName    string `json:"lastName" validate:"omitempty,min=2,max=40"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=5,max=20"`
}

var createPassengerMessages = validator.Messages{
	"firstName.required": "First name cannot be null",
	"firstName":          "First name has to have between 2 and 40 characters",
	"lastName":           "Last name has to have between 2 and 40 characters",
	"phoneNumber":        "Phone number has to have between 5 and 20 characters",
}

// Service содержит бизнес-логику работы с пассажирами
type Service struct {
	passengerRepo repository.PassengerRepository
	txManager     repository.TxManager
	validator     *validator.Validator
	logger        logger.Logger
}

// NewService создает новый экземпляр PassengerService
func NewService(
	passengerRepo repository.PassengerRepository,
	txManager repository.TxManager,
	logger logger.Logger,
) *Service {
	return &Service{
		passengerRepo: passengerRepo,
		txManager:     txManager,
		validator:     validator.New(createPassengerMessages),
		logger:        logger,
	}
}

// CreatePassenger валидирует запрос и создает пассажира
func (s *Service) CreatePassenger(ctx context.Context, req *CreatePassengerRequest) (*domain.Passenger, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	passenger := &domain.Passenger{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Bookings:    domain.NewIDSet(),
	}

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		s.logger.Error("Failed to create passenger", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create passenger: %w", err)
	}

	s.logger.Info("Passenger created", map[string]interface{}{
		"passenger_id": passenger.ID,
	})

	return passenger, nil
}

// GetPassenger возвращает пассажира по ID
func (s *Service) GetPassenger(ctx context.Context, id int64) (*domain.Passenger, error) {
	return s.passengerRepo.GetByID(ctx, id)
}

// ListPassengers возвращает всех пассажиров
func (s *Service) ListPassengers(ctx context.Context) ([]*domain.Passenger, error) {
	return s.passengerRepo.List(ctx)
}

// PatchPassenger применяет частичное обновление к существующему пассажиру
func (s *Service) PatchPassenger(ctx context.Context, id int64, patch domain.PassengerPatch) (*domain.Passenger, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, err
	}

	var patched *domain.Passenger
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		passenger, err := repos.Passengers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patched = patch.Apply(passenger)
		if patch.IsEmpty() {
			return nil
		}

		return repos.Passengers.Update(ctx, patched)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Passenger patched", map[string]interface{}{
		"passenger_id": id,
	})

	return patched, nil
}

// DeletePassenger удаляет пассажира и освобождает его места на рейсах.
// Отсутствие пассажира - не ошибка
func (s *Service) DeletePassenger(ctx context.Context, id int64) error {
	if err := s.passengerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete passenger: %w", err)
	}

	s.logger.Info("Passenger deleted", map[string]interface{}{
		"passenger_id": id,
	})

	return nil
}

// GetBookings возвращает рейсы, на которые забронирован пассажир
func (s *Service) GetBookings(ctx context.Context, passengerID int64) ([]*domain.Flight, error) {
	if _, err := s.passengerRepo.GetByID(ctx, passengerID); err != nil {
		return nil, err
	}

	return s.passengerRepo.ListFlights(ctx, passengerID)
}
