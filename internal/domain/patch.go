package domain

import "time"

// FlightPatch - частичное обновление рейса. nil означает "не менять"
type FlightPatch struct {
	FlightNumber        *string    `json:"flightNumber" validate:"omitempty,max=32"`
	OriginAirport       *string    `json:"originAirport" validate:"omitempty,max=16"`
	DestinationAirport  *string    `json:"destinationAirport" validate:"omitempty,max=16"`
	DepartureDateTime   *time.Time `json:"departureDateTime"`
	AvailableSeatsCount *int       `json:"availableSeatsCount"`
}

// IsEmpty проверяет, что патч ничего не меняет
func (p FlightPatch) IsEmpty() bool {
	return p.FlightNumber == nil &&
		p.OriginAirport == nil &&
		p.DestinationAirport == nil &&
		p.DepartureDateTime == nil &&
		p.AvailableSeatsCount == nil
}

// Validate проверяет, что патч не нарушит инварианты рейса
func (p FlightPatch) Validate() error {
	if p.AvailableSeatsCount != nil && *p.AvailableSeatsCount < 0 {
		return NewValidationError("availableSeatsCount", "Seats count cannot be negative")
	}
	return nil
}

// Apply переносит заданные поля на рейс и возвращает его
func (p FlightPatch) Apply(f *Flight) *Flight {
	if p.FlightNumber != nil {
		f.FlightNumber = *p.FlightNumber
	}
	if p.OriginAirport != nil {
		f.OriginAirport = *p.OriginAirport
	}
	if p.DestinationAirport != nil {
		f.DestinationAirport = *p.DestinationAirport
	}
	if p.DepartureDateTime != nil {
		f.DepartureDateTime = *p.DepartureDateTime
	}
	if p.AvailableSeatsCount != nil {
		f.AvailableSeatsCount = *p.AvailableSeatsCount
	}
	return f
}

// PassengerPatch - частичное обновление пассажира. nil означает "не менять"
type PassengerPatch struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=2,max=40"`
	LastName    *string `json:"lastName" validate:"omitempty,min=2,max=40"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,min=5,max=20"`
}

// IsEmpty проверяет, что патч ничего не меняет
func (p PassengerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.PhoneNumber == nil
}

// Apply переносит заданные поля на пассажира и возвращает его
func (p PassengerPatch) Apply(passenger *Passenger) *Passenger {
	if p.FirstName != nil {
		passenger.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		passenger.LastName = *p.LastName
	}
	if p.PhoneNumber != nil {
		passenger.PhoneNumber = *p.PhoneNumber
	}
	return passenger
}
