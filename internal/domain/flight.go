package domain

import (
	"time"
)

// Flight - рейс с учетом свободных мест и забронированных пассажиров
// ВАЖНО: AvailableSeatsCount никогда не становится отрицательным и меняется
// ровно на 1 при каждом успешном добавлении/удалении пассажира
type Flight struct {
	ID                  int64     `json:"id"`
	FlightNumber        string    `json:"flightNumber"`
	OriginAirport       string    `json:"originAirport"`      // Код аэропорта вылета
	DestinationAirport  string    `json:"destinationAirport"` // Код аэропорта прилета
	DepartureDateTime   time.Time `json:"departureDateTime"`  // Время вылета со смещением UTC
	AvailableSeatsCount int       `json:"availableSeatsCount"`

	// Забронированные пассажиры (таблица flight_passenger)
	Passengers IDSet `json:"passengerIds"`
}

// AddPassenger бронирует место на рейсе для пассажира.
// Возвращает true, если состояние изменилось. Повторное добавление - no-op
func (f *Flight) AddPassenger(p *Passenger) (bool, error) {
	if f.Passengers.Has(p.ID) {
		return false, nil
	}

	if f.AvailableSeatsCount == 0 {
		return false, NewNoAvailableSeats(f.ID)
	}

	if f.Passengers == nil {
		f.Passengers = NewIDSet()
	}
	if p.Bookings == nil {
		p.Bookings = NewIDSet()
	}

	// Обе стороны связи обновляются вместе
	f.Passengers.Add(p.ID)
	p.Bookings.Add(f.ID)
	f.AvailableSeatsCount--

	return true, nil
}

// RemovePassenger снимает бронь пассажира.
// Возвращает true, если пассажир был на рейсе
func (f *Flight) RemovePassenger(p *Passenger) bool {
	if !f.Passengers.Remove(p.ID) {
		return false
	}

	p.Bookings.Remove(f.ID)
	f.AvailableSeatsCount++

	return true
}
