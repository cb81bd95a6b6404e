package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/usecase/flight"
	"github.com/frontandrew/flightcrud/internal/usecase/passenger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// MockFlightService - мок для FlightService
type MockFlightService struct {
	mock.Mock
}

func (m *MockFlightService) CreateFlight(ctx context.Context, req *flight.CreateFlightRequest) (*domain.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightService) ListFlights(ctx context.Context, filter domain.FlightFilter) ([]*domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flight), args.Error(1)
}

func (m *MockFlightService) PatchFlight(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightService) DeleteFlight(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightService) GetPassengers(ctx context.Context, flightID int64) ([]*domain.Passenger, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Passenger), args.Error(1)
}

func (m *MockFlightService) AddPassenger(ctx context.Context, flightID, passengerID int64) error {
	args := m.Called(ctx, flightID, passengerID)
	return args.Error(0)
}

func (m *MockFlightService) RemovePassenger(ctx context.Context, flightID, passengerID int64) error {
	args := m.Called(ctx, flightID, passengerID)
	return args.Error(0)
}

// MockPassengerService - мок для PassengerService
type MockPassengerService struct {
	mock.Mock
}

func (m *MockPassengerService) CreatePassenger(ctx context.Context, req *passenger.CreatePassengerRequest) (*domain.Passenger, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerService) GetPassenger(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerService) ListPassengers(ctx context.Context) ([]*domain.Passenger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Passenger), args.Error(1)
}

func (m *MockPassengerService) PatchPassenger(ctx context.Context, id int64, patch domain.PassengerPatch) (*domain.Passenger, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerService) DeletePassenger(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPassengerService) GetBookings(ctx context.Context, passengerID int64) ([]*domain.Flight, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flight), args.Error(1)
}

// withURLParam добавляет параметр chi в контекст запроса
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
