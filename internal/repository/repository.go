package repository

import (
	"context"

	"github.com/frontandrew/flightcrud/internal/domain"
)

// FlightRepository определяет методы для работы с рейсами
type FlightRepository interface {
	// Create сохраняет новый рейс и присваивает ему ID
	Create(ctx context.Context, flight *domain.Flight) error

	// GetByID возвращает рейс по ID вместе с множеством забронированных пассажиров.
	// Внутри транзакции строка рейса блокируется до ее завершения
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)

	// List возвращает рейсы, удовлетворяющие фильтру (пустой фильтр - все рейсы)
	List(ctx context.Context, filter domain.FlightFilter) ([]*domain.Flight, error)

	// Update сохраняет атрибуты рейса и счетчик свободных мест
	Update(ctx context.Context, flight *domain.Flight) error

	// Delete удаляет рейс и его бронирования. Отсутствие рейса - не ошибка
	Delete(ctx context.Context, id int64) error

	// ListPassengers возвращает пассажиров, забронированных на рейс
	ListPassengers(ctx context.Context, flightID int64) ([]*domain.Passenger, error)
}

// PassengerRepository определяет методы для работы с пассажирами
type PassengerRepository interface {
	// Create сохраняет нового пассажира и присваивает ему ID
	Create(ctx context.Context, passenger *domain.Passenger) error

	// GetByID возвращает пассажира по ID вместе с множеством его рейсов
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)

	// List возвращает всех пассажиров
	List(ctx context.Context) ([]*domain.Passenger, error)

	// Update сохраняет атрибуты пассажира
	Update(ctx context.Context, passenger *domain.Passenger) error

	// Delete удаляет пассажира и освобождает занятые им места.
	// Отсутствие пассажира - не ошибка
	Delete(ctx context.Context, id int64) error

	// ListFlights возвращает рейсы, на которые забронирован пассажир
	ListFlights(ctx context.Context, passengerID int64) ([]*domain.Flight, error)
}

// BookingRepository определяет методы для работы со связями рейс-пассажир (many-to-many)
type BookingRepository interface {
	// Add создает связь. Повторное создание - не ошибка
	Add(ctx context.Context, flightID, passengerID int64) error

	// Remove удаляет связь. Отсутствие связи - не ошибка
	Remove(ctx context.Context, flightID, passengerID int64) error
}

// Repositories - набор репозиториев, работающих в рамках одной транзакции
type Repositories struct {
	Flights    FlightRepository
	Passengers PassengerRepository
	Bookings   BookingRepository
}

// TxManager выполняет функцию как единую единицу работы.
// Если fn возвращает ошибку, ни одно изменение не сохраняется
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
