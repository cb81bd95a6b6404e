package memory

import (
	"context"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/repository"
)

type flightRepository struct {
	access
}

func NewFlightRepository(store *Store) repository.FlightRepository {
	return &flightRepository{access: access{store: store}}
}

func (r *flightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	id, err := r.nextID(ctx, FlightSequence)
	if err != nil {
		return err
	}

	return r.update(func(s *state) error {
		flight.ID = id
		flight.Passengers = domain.NewIDSet()

		record := *flight
		record.Passengers = nil
		s.flights[id] = record
		return nil
	})
}

func (r *flightRepository) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	var flight *domain.Flight
	err := r.view(func(s *state) error {
		f, ok := s.flight(id)
		if !ok {
			return domain.NewFlightNotFound(id)
		}
		flight = f
		return nil
	})
	return flight, err
}

func (r *flightRepository) List(_ context.Context, filter domain.FlightFilter) ([]*domain.Flight, error) {
	var flights []*domain.Flight
	err := r.view(func(s *state) error {
		flights = domain.ApplyFilter(s.allFlights(), filter)
		return nil
	})
	return flights, err
}

func (r *flightRepository) Update(_ context.Context, flight *domain.Flight) error {
	return r.update(func(s *state) error {
		if _, ok := s.flights[flight.ID]; !ok {
			return domain.NewFlightNotFound(flight.ID)
		}

		record := *flight
		record.Passengers = nil
		s.flights[flight.ID] = record
		return nil
	})
}

func (r *flightRepository) Delete(_ context.Context, id int64) error {
	return r.update(func(s *state) error {
		delete(s.flights, id)
		for k := range s.bookings {
			if k.flightID == id {
				delete(s.bookings, k)
			}
		}
		return nil
	})
}

func (r *flightRepository) ListPassengers(_ context.Context, flightID int64) ([]*domain.Passenger, error) {
	passengers := make([]*domain.Passenger, 0)
	err := r.view(func(s *state) error {
		for _, p := range s.allPassengers() {
			if _, ok := s.bookings[bookingKey{flightID: flightID, passengerID: p.ID}]; ok {
				passengers = append(passengers, p)
			}
		}
		return nil
	})
	return passengers, err
}
