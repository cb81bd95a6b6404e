package memory

import (
	"context"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/repository"
)

type bookingRepository struct {
	access
}

func NewBookingRepository(store *Store) repository.BookingRepository {
	return &bookingRepository{access: access{store: store}}
}

func (r *bookingRepository) Add(_ context.Context, flightID, passengerID int64) error {
	return r.update(func(s *state) error {
		// Аналог внешних ключей flight_passenger
		if _, ok := s.flights[flightID]; !ok {
			return domain.NewFlightNotFound(flightID)
		}
		if _, ok := s.passengers[passengerID]; !ok {
			return domain.NewPassengerNotFound(passengerID)
		}

		s.bookings[bookingKey{flightID: flightID, passengerID: passengerID}] = struct{}{}
		return nil
	})
}

func (r *bookingRepository) Remove(_ context.Context, flightID, passengerID int64) error {
	return r.update(func(s *state) error {
		delete(s.bookings, bookingKey{flightID: flightID, passengerID: passengerID})
		return nil
	})
}
