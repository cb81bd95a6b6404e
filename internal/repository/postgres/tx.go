package postgres

import (
	"context"
	"fmt"

	"github.com/frontandrew/flightcrud/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager выполняет операции в одной транзакции PostgreSQL
type TxManager struct {
	db *pgxpool.Pool
}

// NewTxManager создает менеджер транзакций
func NewTxManager(db *pgxpool.Pool) *TxManager {
	return &TxManager{db: db}
}

var _ repository.TxManager = (*TxManager)(nil)

// WithinTransaction открывает транзакцию (read committed) и передает в fn
// репозитории, работающие через нее. Ошибка fn откатывает все изменения
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer func() {
		// После Commit откат ничего не делает
		_ = tx.Rollback(ctx)
	}()

	repos := repository.Repositories{
		Flights:    &flightRepository{db: tx, lockRows: true},
		Passengers: &passengerRepository{db: tx},
		Bookings:   &bookingRepository{db: tx},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("unable to commit transaction: %w", err)
	}

	return nil
}
