package memory

import (
	"context"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/repository"
)

type passengerRepository struct {
	access
}

func NewPassengerRepository(store *Store) repository.PassengerRepository {
	return &passengerRepository{access: access{store: store}}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	id, err := r.nextID(ctx, PassengerSequence)
	if err != nil {
		return err
	}

	return r.update(func(s *state) error {
		passenger.ID = id
		passenger.Bookings = domain.NewIDSet()

		record := *passenger
		record.Bookings = nil
		s.passengers[id] = record
		return nil
	})
}

func (r *passengerRepository) GetByID(_ context.Context, id int64) (*domain.Passenger, error) {
	var passenger *domain.Passenger
	err := r.view(func(s *state) error {
		p, ok := s.passenger(id)
		if !ok {
			return domain.NewPassengerNotFound(id)
		}
		passenger = p
		return nil
	})
	return passenger, err
}

func (r *passengerRepository) List(_ context.Context) ([]*domain.Passenger, error) {
	var passengers []*domain.Passenger
	err := r.view(func(s *state) error {
		passengers = s.allPassengers()
		return nil
	})
	return passengers, err
}

func (r *passengerRepository) Update(_ context.Context, passenger *domain.Passenger) error {
	return r.update(func(s *state) error {
		if _, ok := s.passengers[passenger.ID]; !ok {
			return domain.NewPassengerNotFound(passenger.ID)
		}

		record := *passenger
		record.Bookings = nil
		s.passengers[passenger.ID] = record
		return nil
	})
}

func (r *passengerRepository) Delete(_ context.Context, id int64) error {
	return r.update(func(s *state) error {
		// Освобождаем места на рейсах пассажира
		for k := range s.bookings {
			if k.passengerID != id {
				continue
			}
			delete(s.bookings, k)
			if f, ok := s.flights[k.flightID]; ok {
				f.AvailableSeatsCount++
				s.flights[k.flightID] = f
			}
		}
		delete(s.passengers, id)
		return nil
	})
}

func (r *passengerRepository) ListFlights(_ context.Context, passengerID int64) ([]*domain.Flight, error) {
	flights := make([]*domain.Flight, 0)
	err := r.view(func(s *state) error {
		for _, f := range s.allFlights() {
			if f.Passengers.Has(passengerID) {
				flights = append(flights, f)
			}
		}
		return nil
	})
	return flights, err
}
