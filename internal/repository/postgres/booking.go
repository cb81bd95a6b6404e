package postgres

import (
	"context"

	"github.com/frontandrew/flightcrud/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookingRepository struct {
	db querier
}

func NewBookingRepository(db *pgxpool.Pool) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Add(ctx context.Context, flightID, passengerID int64) error {
	query := `
		INSERT INTO flight_passenger (flight_id, passenger_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, flightID, passengerID)
	return err
}

func (r *bookingRepository) Remove(ctx context.Context, flightID, passengerID int64) error {
	query := `DELETE FROM flight_passenger WHERE flight_id = $1 AND passenger_id = $2`

	_, err := r.db.Exec(ctx, query, flightID, passengerID)
	return err
}
