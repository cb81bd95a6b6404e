// Package memory реализует хранилище в памяти процесса.
// Используется при STORAGE_DRIVER=memory и в тестах.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/repository"
)

// Имена последовательностей идентификаторов
const (
	FlightSequence    = "flights"
	PassengerSequence = "passengers"
)

// Sequence выдает монотонно возрастающие идентификаторы
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}

type bookingKey struct {
	flightID    int64
	passengerID int64
}

// state - снимок данных. Записи хранятся по значению, связи - только в bookings
type state struct {
	flights    map[int64]domain.Flight
	passengers map[int64]domain.Passenger
	bookings   map[bookingKey]struct{}
}

func newState() *state {
	return &state{
		flights:    make(map[int64]domain.Flight),
		passengers: make(map[int64]domain.Passenger),
		bookings:   make(map[bookingKey]struct{}),
	}
}

func (s *state) clone() *state {
	c := &state{
		flights:    make(map[int64]domain.Flight, len(s.flights)),
		passengers: make(map[int64]domain.Passenger, len(s.passengers)),
		bookings:   make(map[bookingKey]struct{}, len(s.bookings)),
	}
	for id, f := range s.flights {
		c.flights[id] = f
	}
	for id, p := range s.passengers {
		c.passengers[id] = p
	}
	for k := range s.bookings {
		c.bookings[k] = struct{}{}
	}
	return c
}

// flight собирает рейс вместе с множеством пассажиров
func (s *state) flight(id int64) (*domain.Flight, bool) {
	record, ok := s.flights[id]
	if !ok {
		return nil, false
	}

	f := record
	f.Passengers = domain.NewIDSet()
	for k := range s.bookings {
		if k.flightID == id {
			f.Passengers.Add(k.passengerID)
		}
	}
	return &f, true
}

// passenger собирает пассажира вместе с множеством рейсов
func (s *state) passenger(id int64) (*domain.Passenger, bool) {
	record, ok := s.passengers[id]
	if !ok {
		return nil, false
	}

	p := record
	p.Bookings = domain.NewIDSet()
	for k := range s.bookings {
		if k.passengerID == id {
			p.Bookings.Add(k.flightID)
		}
	}
	return &p, true
}

func (s *state) allFlights() []*domain.Flight {
	ids := make([]int64, 0, len(s.flights))
	for id := range s.flights {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	flights := make([]*domain.Flight, 0, len(ids))
	for _, id := range ids {
		f, _ := s.flight(id)
		flights = append(flights, f)
	}
	return flights
}

func (s *state) allPassengers() []*domain.Passenger {
	ids := make([]int64, 0, len(s.passengers))
	for id := range s.passengers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	passengers := make([]*domain.Passenger, 0, len(ids))
	for _, id := range ids {
		p, _ := s.passenger(id)
		passengers = append(passengers, p)
	}
	return passengers
}

// Store - хранилище в памяти.
// Транзакция работает с копией данных и подменяет снимок только при успехе,
// поэтому читатели не видят частично примененных изменений
type Store struct {
	mu   sync.RWMutex
	data *state
	seq  Sequence
}

// NewStore создает пустое хранилище
func NewStore(seq Sequence) *Store {
	return &Store{
		data: newState(),
		seq:  seq,
	}
}

var _ repository.TxManager = (*Store)(nil)

// WithinTransaction выполняет fn над копией данных под эксклюзивной блокировкой
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	acc := access{store: s, tx: work}

	repos := repository.Repositories{
		Flights:    &flightRepository{access: acc},
		Passengers: &passengerRepository{access: acc},
		Bookings:   &bookingRepository{access: acc},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	s.data = work
	return nil
}

// access выбирает источник данных: снимок транзакции или общее состояние под блокировкой
type access struct {
	store *Store
	tx    *state
}

func (a access) view(fn func(s *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.data)
}

func (a access) update(fn func(s *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.data)
}

func (a access) nextID(ctx context.Context, name string) (int64, error) {
	return a.store.seq.Next(ctx, name)
}
