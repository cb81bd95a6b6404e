package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, flight_number, origin_airport, destination_airport, departure_date_time, available_seats_count`

type flightRepository struct {
	db querier
	// lockRows включается внутри транзакции: GetByID берет строку FOR UPDATE
	lockRows bool
}

func NewFlightRepository(db *pgxpool.Pool) repository.FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	query := `
		INSERT INTO flights (flight_number, origin_airport, destination_airport, departure_date_time, available_seats_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		flight.FlightNumber,
		flight.OriginAirport,
		flight.DestinationAirport,
		flight.DepartureDateTime,
		flight.AvailableSeatsCount,
	).Scan(&flight.ID)
	if err != nil {
		return err
	}

	if flight.Passengers == nil {
		flight.Passengers = domain.NewIDSet()
	}

	return nil
}

func (r *flightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}

	flight, err := scanFlight(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewFlightNotFound(id)
		}
		return nil, err
	}

	if err := r.loadPassengers(ctx, []*domain.Flight{flight}); err != nil {
		return nil, err
	}

	return flight, nil
}

func (r *flightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]*domain.Flight, error) {
	where, args := buildFlightFilter(filter)
	query := `SELECT ` + flightColumns + ` FROM flights` + where + ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights, err := scanFlights(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadPassengers(ctx, flights); err != nil {
		return nil, err
	}

	return flights, nil
}

func (r *flightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	query := `
		UPDATE flights
		SET flight_number = $2, origin_airport = $3, destination_airport = $4,
		    departure_date_time = $5, available_seats_count = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		flight.ID,
		flight.FlightNumber,
		flight.OriginAirport,
		flight.DestinationAirport,
		flight.DepartureDateTime,
		flight.AvailableSeatsCount,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.NewFlightNotFound(flight.ID)
	}

	return nil
}

func (r *flightRepository) Delete(ctx context.Context, id int64) error {
	// Связи в flight_passenger удаляются каскадно
	_, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	return err
}

func (r *flightRepository) ListPassengers(ctx context.Context, flightID int64) ([]*domain.Passenger, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.phone_number
		FROM passengers p
		JOIN flight_passenger fp ON fp.passenger_id = p.id
		WHERE fp.flight_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers, err := scanPassengers(rows)
	if err != nil {
		return nil, err
	}

	if err := loadBookings(ctx, r.db, passengers); err != nil {
		return nil, err
	}

	return passengers, nil
}

// loadPassengers заполняет множества пассажиров одним запросом
func (r *flightRepository) loadPassengers(ctx context.Context, flights []*domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Flight, len(flights))
	ids := make([]int64, 0, len(flights))
	for _, f := range flights {
		f.Passengers = domain.NewIDSet()
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT flight_id, passenger_id FROM flight_passenger WHERE flight_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var flightID, passengerID int64
		if err := rows.Scan(&flightID, &passengerID); err != nil {
			return err
		}
		byID[flightID].Passengers.Add(passengerID)
	}

	return rows.Err()
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	flight := &domain.Flight{}
	err := row.Scan(
		&flight.ID,
		&flight.FlightNumber,
		&flight.OriginAirport,
		&flight.DestinationAirport,
		&flight.DepartureDateTime,
		&flight.AvailableSeatsCount,
	)
	if err != nil {
		return nil, err
	}
	return flight, nil
}

func scanFlights(rows pgx.Rows) ([]*domain.Flight, error) {
	flights := make([]*domain.Flight, 0)
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight)
	}
	return flights, rows.Err()
}
