package domain

import "time"

// FlightFilter - критерии фильтрации рейсов.
// nil-поле не накладывает ограничений, заполненные поля объединяются через AND
type FlightFilter struct {
	OriginAirport      *string    `json:"originAirport,omitempty"`
	DestinationAirport *string    `json:"destinationAirport,omitempty"`
	DateFrom           *time.Time `json:"dateFrom,omitempty"` // Включительно
	DateTo             *time.Time `json:"dateTo,omitempty"`   // Включительно
	SeatsCountFrom     *int       `json:"seatsCountFrom,omitempty"`
	SeatsCountTo       *int       `json:"seatsCountTo,omitempty"`
}

// FlightPredicate - условие, которому должен удовлетворять рейс
type FlightPredicate func(f *Flight) bool

// IsEmpty проверяет, что ни один критерий не задан
func (c FlightFilter) IsEmpty() bool {
	return c.OriginAirport == nil &&
		c.DestinationAirport == nil &&
		c.DateFrom == nil &&
		c.DateTo == nil &&
		c.SeatsCountFrom == nil &&
		c.SeatsCountTo == nil
}

// Predicates возвращает условия для заданных критериев.
// Время сравнивается как абсолютный момент, смещение UTC не влияет на результат
func (c FlightFilter) Predicates() []FlightPredicate {
	var predicates []FlightPredicate

	if c.OriginAirport != nil {
		origin := *c.OriginAirport
		predicates = append(predicates, func(f *Flight) bool {
			return f.OriginAirport == origin
		})
	}
	if c.DestinationAirport != nil {
		destination := *c.DestinationAirport
		predicates = append(predicates, func(f *Flight) bool {
			return f.DestinationAirport == destination
		})
	}
	if c.DateFrom != nil {
		from := *c.DateFrom
		predicates = append(predicates, func(f *Flight) bool {
			return !f.DepartureDateTime.Before(from)
		})
	}
	if c.DateTo != nil {
		to := *c.DateTo
		predicates = append(predicates, func(f *Flight) bool {
			return !f.DepartureDateTime.After(to)
		})
	}
	if c.SeatsCountFrom != nil {
		from := *c.SeatsCountFrom
		predicates = append(predicates, func(f *Flight) bool {
			return f.AvailableSeatsCount >= from
		})
	}
	if c.SeatsCountTo != nil {
		to := *c.SeatsCountTo
		predicates = append(predicates, func(f *Flight) bool {
			return f.AvailableSeatsCount <= to
		})
	}

	return predicates
}

// Matches проверяет, что рейс удовлетворяет всем заданным критериям
func (c FlightFilter) Matches(f *Flight) bool {
	for _, p := range c.Predicates() {
		if !p(f) {
			return false
		}
	}
	return true
}

// ApplyFilter возвращает рейсы, удовлетворяющие критериям. Исходный срез не меняется
func ApplyFilter(flights []*Flight, c FlightFilter) []*Flight {
	if c.IsEmpty() {
		return append(make([]*Flight, 0, len(flights)), flights...)
	}

	result := make([]*Flight, 0, len(flights))
	for _, f := range flights {
		if c.Matches(f) {
			result = append(result, f)
		}
	}

	return result
}
