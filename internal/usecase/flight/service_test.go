package flight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/infrastructure/events"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/frontandrew/flightcrud/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher - мок для events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBooking(ctx context.Context, event events.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type testEnv struct {
	service    *Service
	store      *memory.Store
	publisher  *MockPublisher
	passengers []*domain.Passenger
}

func newTestEnv(t *testing.T, passengerCount int) *testEnv {
	t.Helper()

	store := memory.NewStore(memory.NewCounterSequence())
	publisher := new(MockPublisher)
	service := NewService(memory.NewFlightRepository(store), store, publisher, logger.NewNoop())

	passengerRepo := memory.NewPassengerRepository(store)
	passengers := make([]*domain.Passenger, 0, passengerCount)
	for i := 0; i < passengerCount; i++ {
		p := &domain.Passenger{FirstName: "Passenger"}
		require.NoError(t, passengerRepo.Create(context.Background(), p))
		passengers = append(passengers, p)
	}

	return &testEnv{service: service, store: store, publisher: publisher, passengers: passengers}
}

func validRequest(seats int) *CreateFlightRequest {
	departure := time.Date(2024, 6, 15, 14, 32, 0, 0, time.FixedZone("", 3600))
	return &CreateFlightRequest{
		FlightNumber:        "SU100",
		OriginAirport:       "SVO",
		DestinationAirport:  "LED",
		DepartureDateTime:   &departure,
		AvailableSeatsCount: seats,
	}
}

func bookingEvent(eventType events.BookingEventType, flightID, passengerID int64, seats int) interface{} {
	return mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == eventType &&
			e.FlightID == flightID &&
			e.PassengerID == passengerID &&
			e.AvailableSeatsCount == seats
	})
}

// TestService_CreateFlight тестирует создание рейса
func TestService_CreateFlight(t *testing.T) {
	tests := []struct {
		name           string
		request        func() *CreateFlightRequest
		expectedFields map[string]string
	}{
		{
			name:    "успешное создание",
			request: func() *CreateFlightRequest { return validRequest(100) },
		},
		{
			name:    "минимум мест",
			request: func() *CreateFlightRequest { return validRequest(10) },
		},
		{
			name:    "максимум мест",
			request: func() *CreateFlightRequest { return validRequest(500) },
		},
		{
			name:    "мест меньше минимума",
			request: func() *CreateFlightRequest { return validRequest(9) },
			expectedFields: map[string]string{
				"availableSeatsCount": "Seats count has to be greater than or equal 10",
			},
		},
		{
			name:    "мест больше максимума",
			request: func() *CreateFlightRequest { return validRequest(501) },
			expectedFields: map[string]string{
				"availableSeatsCount": "Seats count has to be less than or equal 500",
			},
		},
		{
			name: "слишком длинные номер и аэропорт",
			request: func() *CreateFlightRequest {
				req := validRequest(100)
				req.FlightNumber = strings.Repeat("A", 33)
				req.OriginAirport = strings.Repeat("B", 17)
				return req
			},
			expectedFields: map[string]string{
				"flightNumber":  "Flight number has to have at most 32 characters",
				"originAirport": "Origin airport has to have at most 16 characters",
			},
		},
		{
			name:    "пустой запрос",
			request: func() *CreateFlightRequest { return &CreateFlightRequest{AvailableSeatsCount: 50} },
			expectedFields: map[string]string{
				"flightNumber":       "Flight number cannot be null",
				"originAirport":      "Origin airport cannot be null",
				"destinationAirport": "Destination airport cannot be null",
				"departureDateTime":  "Departure datetime cannot be null",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 0)

			f, err := env.service.CreateFlight(context.Background(), tt.request())

			if tt.expectedFields != nil {
				var validationErr *domain.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, tt.expectedFields, validationErr.Fields)
				assert.Nil(t, f)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, f.ID)
			assert.Empty(t, f.Passengers)

			got, err := env.service.GetFlight(context.Background(), f.ID)
			require.NoError(t, err)
			assert.Equal(t, f.FlightNumber, got.FlightNumber)
			assert.True(t, f.DepartureDateTime.Equal(got.DepartureDateTime))
		})
	}
}

func TestService_GetFlight_NotFound(t *testing.T) {
	env := newTestEnv(t, 0)

	_, err := env.service.GetFlight(context.Background(), 42)

	assert.True(t, errors.Is(err, domain.ErrFlightNotFound))
	assert.Equal(t, "Flight with id = 42 not found", err.Error())
}

func TestService_ListFlights(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	_, err := env.service.CreateFlight(ctx, validRequest(100))
	require.NoError(t, err)
	other := validRequest(50)
	other.OriginAirport = "KZN"
	_, err = env.service.CreateFlight(ctx, other)
	require.NoError(t, err)

	all, err := env.service.ListFlights(ctx, domain.FlightFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	origin := "KZN"
	filtered, err := env.service.ListFlights(ctx, domain.FlightFilter{OriginAirport: &origin})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "KZN", filtered[0].OriginAirport)
}

// TestService_PatchFlight тестирует частичное обновление рейса
func TestService_PatchFlight(t *testing.T) {
	number := "SU999"
	longNumber := strings.Repeat("9", 33)
	longAirport := strings.Repeat("X", 17)
	seats := 0
	negative := -2

	tests := []struct {
		name      string
		id        int64
		patch     domain.FlightPatch
		expectErr func(t *testing.T, err error)
		expect    func(t *testing.T, f *domain.Flight)
	}{
		{
			name:  "обновление номера",
			id:    1,
			patch: domain.FlightPatch{FlightNumber: &number},
			expect: func(t *testing.T, f *domain.Flight) {
				assert.Equal(t, "SU999", f.FlightNumber)
				assert.Equal(t, "SVO", f.OriginAirport)
			},
		},
		{
			name:  "обнуление мест",
			id:    1,
			patch: domain.FlightPatch{AvailableSeatsCount: &seats},
			expect: func(t *testing.T, f *domain.Flight) {
				assert.Equal(t, 0, f.AvailableSeatsCount)
			},
		},
		{
			name:  "пустой патч возвращает рейс",
			id:    1,
			patch: domain.FlightPatch{},
			expect: func(t *testing.T, f *domain.Flight) {
				assert.Equal(t, "SU100", f.FlightNumber)
			},
		},
		{
			name:  "рейс не найден",
			id:    42,
			patch: domain.FlightPatch{},
			expectErr: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, domain.ErrFlightNotFound))
			},
		},
		{
			name:  "слишком длинный номер",
			id:    1,
			patch: domain.FlightPatch{FlightNumber: &longNumber, DestinationAirport: &longAirport},
			expectErr: func(t *testing.T, err error) {
				var validationErr *domain.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, map[string]string{
					"flightNumber":       "Flight number has to have at most 32 characters",
					"destinationAirport": "Destination airport has to have at most 16 characters",
				}, validationErr.Fields)
			},
		},
		{
			name:  "отрицательное число мест",
			id:    1,
			patch: domain.FlightPatch{AvailableSeatsCount: &negative},
			expectErr: func(t *testing.T, err error) {
				var validationErr *domain.ValidationError
				assert.True(t, errors.As(err, &validationErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 0)
			ctx := context.Background()
			_, err := env.service.CreateFlight(ctx, validRequest(100))
			require.NoError(t, err)

			f, err := env.service.PatchFlight(ctx, tt.id, tt.patch)

			if tt.expectErr != nil {
				require.Error(t, err)
				tt.expectErr(t, err)
				return
			}
			require.NoError(t, err)
			tt.expect(t, f)

			stored, err := env.service.GetFlight(ctx, tt.id)
			require.NoError(t, err)
			tt.expect(t, stored)
		})
	}
}

// TestService_ListFlights_DateRange - четыре рейса в 14:32 (+01:00),
// границы совпадают с вылетом 15 июня 2024
func TestService_ListFlights_DateRange(t *testing.T) {
	zone := time.FixedZone("", 3600)
	boundary := time.Date(2024, 6, 15, 14, 32, 0, 0, zone)

	tests := []struct {
		name     string
		filter   domain.FlightFilter
		expected int
	}{
		{"только dateFrom", domain.FlightFilter{DateFrom: &boundary}, 2},
		{"только dateTo", domain.FlightFilter{DateTo: &boundary}, 3},
		{"dateFrom и dateTo", domain.FlightFilter{DateFrom: &boundary, DateTo: &boundary}, 1},
		{"без фильтра", domain.FlightFilter{}, 4},
	}

	env := newTestEnv(t, 0)
	ctx := context.Background()
	for _, date := range []time.Time{
		time.Date(2024, 5, 15, 14, 32, 0, 0, zone),
		time.Date(2024, 6, 15, 14, 32, 0, 0, zone),
		time.Date(2024, 7, 15, 14, 32, 0, 0, zone),
		time.Date(2023, 7, 15, 14, 32, 0, 0, zone),
	} {
		req := validRequest(100)
		departure := date
		req.DepartureDateTime = &departure
		_, err := env.service.CreateFlight(ctx, req)
		require.NoError(t, err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights, err := env.service.ListFlights(ctx, tt.filter)

			require.NoError(t, err)
			assert.Len(t, flights, tt.expected)
		})
	}
}

// TestService_DeleteFlight тестирует удаление рейса
func TestService_DeleteFlight(t *testing.T) {
	tests := []struct {
		name          string
		id            int64
		expectedCount int
	}{
		{"удаление существующего рейса", 1, 1},
		{"удаление отсутствующего рейса не ошибка", 999, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 0)
			ctx := context.Background()
			for i := 0; i < 2; i++ {
				_, err := env.service.CreateFlight(ctx, validRequest(100))
				require.NoError(t, err)
			}

			require.NoError(t, env.service.DeleteFlight(ctx, tt.id))

			_, err := env.service.GetFlight(ctx, tt.id)
			assert.True(t, errors.Is(err, domain.ErrFlightNotFound))

			flights, err := env.service.ListFlights(ctx, domain.FlightFilter{})
			require.NoError(t, err)
			assert.Len(t, flights, tt.expectedCount)
		})
	}
}

// TestService_AddPassenger тестирует бронирование
func TestService_AddPassenger(t *testing.T) {
	t.Run("успешное бронирование публикует событие", func(t *testing.T) {
		env := newTestEnv(t, 1)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)
		p := env.passengers[0]

		env.publisher.On("PublishBooking", mock.Anything, bookingEvent(events.PassengerBooked, f.ID, p.ID, 9)).
			Return(nil).Once()

		require.NoError(t, env.service.AddPassenger(ctx, f.ID, p.ID))

		got, err := env.service.GetFlight(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.AvailableSeatsCount)
		assert.True(t, got.Passengers.Has(p.ID))

		passengers, err := env.service.GetPassengers(ctx, f.ID)
		require.NoError(t, err)
		require.Len(t, passengers, 1)
		assert.True(t, passengers[0].Bookings.Has(f.ID))

		env.publisher.AssertExpectations(t)
	})

	t.Run("повторное бронирование не меняет состояние", func(t *testing.T) {
		env := newTestEnv(t, 1)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)
		p := env.passengers[0]

		env.publisher.On("PublishBooking", mock.Anything, mock.Anything).Return(nil).Once()

		require.NoError(t, env.service.AddPassenger(ctx, f.ID, p.ID))
		require.NoError(t, env.service.AddPassenger(ctx, f.ID, p.ID))

		got, err := env.service.GetFlight(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.AvailableSeatsCount)
		env.publisher.AssertNumberOfCalls(t, "PublishBooking", 1)
	})

	t.Run("нет свободных мест", func(t *testing.T) {
		env := newTestEnv(t, 2)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)
		one := 1
		_, err = env.service.PatchFlight(ctx, f.ID, domain.FlightPatch{AvailableSeatsCount: &one})
		require.NoError(t, err)

		env.publisher.On("PublishBooking", mock.Anything, mock.Anything).Return(nil).Once()
		require.NoError(t, env.service.AddPassenger(ctx, f.ID, env.passengers[0].ID))

		err = env.service.AddPassenger(ctx, f.ID, env.passengers[1].ID)
		assert.True(t, errors.Is(err, domain.ErrNoAvailableSeats))

		got, err := env.service.GetFlight(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.AvailableSeatsCount)
		assert.False(t, got.Passengers.Has(env.passengers[1].ID))
		env.publisher.AssertNumberOfCalls(t, "PublishBooking", 1)
	})

	t.Run("рейс не найден", func(t *testing.T) {
		env := newTestEnv(t, 1)

		err := env.service.AddPassenger(context.Background(), 42, env.passengers[0].ID)

		assert.True(t, errors.Is(err, domain.ErrFlightNotFound))
		env.publisher.AssertNotCalled(t, "PublishBooking", mock.Anything, mock.Anything)
	})

	t.Run("пассажир не найден", func(t *testing.T) {
		env := newTestEnv(t, 0)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)

		err = env.service.AddPassenger(ctx, f.ID, 42)

		assert.True(t, errors.Is(err, domain.ErrPassengerNotFound))
		assert.Equal(t, "Passenger with id = 42 not found", err.Error())
	})

	t.Run("ошибка публикации не отменяет бронь", func(t *testing.T) {
		env := newTestEnv(t, 1)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)

		env.publisher.On("PublishBooking", mock.Anything, mock.Anything).
			Return(errors.New("kafka unavailable")).Once()

		require.NoError(t, env.service.AddPassenger(ctx, f.ID, env.passengers[0].ID))

		got, err := env.service.GetFlight(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.AvailableSeatsCount)
		env.publisher.AssertExpectations(t)
	})
}

// TestService_RemovePassenger тестирует снятие брони
func TestService_RemovePassenger(t *testing.T) {
	t.Run("успешное снятие брони", func(t *testing.T) {
		env := newTestEnv(t, 1)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)
		p := env.passengers[0]

		env.publisher.On("PublishBooking", mock.Anything, bookingEvent(events.PassengerBooked, f.ID, p.ID, 9)).
			Return(nil).Once()
		env.publisher.On("PublishBooking", mock.Anything, bookingEvent(events.PassengerUnbooked, f.ID, p.ID, 10)).
			Return(nil).Once()

		require.NoError(t, env.service.AddPassenger(ctx, f.ID, p.ID))
		require.NoError(t, env.service.RemovePassenger(ctx, f.ID, p.ID))

		got, err := env.service.GetFlight(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.AvailableSeatsCount)
		assert.Empty(t, got.Passengers)
		env.publisher.AssertExpectations(t)
	})

	t.Run("пассажир не на рейсе", func(t *testing.T) {
		env := newTestEnv(t, 1)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)

		require.NoError(t, env.service.RemovePassenger(ctx, f.ID, env.passengers[0].ID))

		got, err := env.service.GetFlight(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.AvailableSeatsCount)
		env.publisher.AssertNotCalled(t, "PublishBooking", mock.Anything, mock.Anything)
	})

	t.Run("отсутствующий пассажир", func(t *testing.T) {
		env := newTestEnv(t, 0)
		ctx := context.Background()
		f, err := env.service.CreateFlight(ctx, validRequest(10))
		require.NoError(t, err)

		assert.NoError(t, env.service.RemovePassenger(ctx, f.ID, 42))
	})

	t.Run("рейс не найден", func(t *testing.T) {
		env := newTestEnv(t, 1)

		err := env.service.RemovePassenger(context.Background(), 42, env.passengers[0].ID)

		assert.True(t, errors.Is(err, domain.ErrFlightNotFound))
	})
}

func TestService_GetPassengers_NotFound(t *testing.T) {
	env := newTestEnv(t, 0)

	_, err := env.service.GetPassengers(context.Background(), 42)

	assert.True(t, errors.Is(err, domain.ErrFlightNotFound))
}
