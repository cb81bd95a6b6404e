package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type passengerRepository struct {
	db querier
}

func NewPassengerRepository(db *pgxpool.Pool) repository.PassengerRepository {
	return &passengerRepository{db: db}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	query := `
		INSERT INTO passengers (first_name, last_name, phone_number)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		passenger.FirstName,
		passenger.LastName,
		passenger.PhoneNumber,
	).Scan(&passenger.ID)
	if err != nil {
		return err
	}

	if passenger.Bookings == nil {
		passenger.Bookings = domain.NewIDSet()
	}

	return nil
}

func (r *passengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	query := `
		SELECT id, first_name, last_name, phone_number
		FROM passengers
		WHERE id = $1
	`

	passenger := &domain.Passenger{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&passenger.ID,
		&passenger.FirstName,
		&passenger.LastName,
		&passenger.PhoneNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPassengerNotFound(id)
		}
		return nil, err
	}

	if err := loadBookings(ctx, r.db, []*domain.Passenger{passenger}); err != nil {
		return nil, err
	}

	return passenger, nil
}

func (r *passengerRepository) List(ctx context.Context) ([]*domain.Passenger, error) {
	query := `
		SELECT id, first_name, last_name, phone_number
		FROM passengers
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
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

func (r *passengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	query := `
		UPDATE passengers
		SET first_name = $2, last_name = $3, phone_number = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		passenger.ID,
		passenger.FirstName,
		passenger.LastName,
		passenger.PhoneNumber,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.NewPassengerNotFound(passenger.ID)
	}

	return nil
}

func (r *passengerRepository) Delete(ctx context.Context, id int64) error {
	// Один оператор: снимаем брони, возвращаем места на рейсы и удаляем пассажира
	query := `
		WITH released AS (
			DELETE FROM flight_passenger WHERE passenger_id = $1 RETURNING flight_id
		), seats AS (
			UPDATE flights SET available_seats_count = available_seats_count + 1
			WHERE id IN (SELECT flight_id FROM released)
		)
		DELETE FROM passengers WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *passengerRepository) ListFlights(ctx context.Context, passengerID int64) ([]*domain.Flight, error) {
	query := `
		SELECT f.id, f.flight_number, f.origin_airport, f.destination_airport, f.departure_date_time, f.available_seats_count
		FROM flights f
		JOIN flight_passenger fp ON fp.flight_id = f.id
		WHERE fp.passenger_id = $1
		ORDER BY f.id
	`

	rows, err := r.db.Query(ctx, query, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights, err := scanFlights(rows)
	if err != nil {
		return nil, err
	}

	fr := &flightRepository{db: r.db}
	if err := fr.loadPassengers(ctx, flights); err != nil {
		return nil, err
	}

	return flights, nil
}

// loadBookings заполняет множества рейсов пассажиров одним запросом
func loadBookings(ctx context.Context, db querier, passengers []*domain.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Passenger, len(passengers))
	ids := make([]int64, 0, len(passengers))
	for _, p := range passengers {
		p.Bookings = domain.NewIDSet()
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := db.Query(ctx,
		`SELECT passenger_id, flight_id FROM flight_passenger WHERE passenger_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var passengerID, flightID int64
		if err := rows.Scan(&passengerID, &flightID); err != nil {
			return err
		}
		byID[passengerID].Bookings.Add(flightID)
	}

	return rows.Err()
}

func scanPassengers(rows pgx.Rows) ([]*domain.Passenger, error) {
	passengers := make([]*domain.Passenger, 0)
	for rows.Next() {
		p := &domain.Passenger{}
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}
