package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Доменные ошибки - используются во всех слоях приложения

// Flight errors
var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrNoAvailableSeats = errors.New("no available seats")
)

// Passenger errors
var (
	ErrPassengerNotFound = errors.New("passenger not found")
)

// ResourceError - ошибка ресурса с сообщением для клиента.
// Сопоставляется с сентинелом через errors.Is.
type ResourceError struct {
	kind    error
	message string
}

func (e *ResourceError) Error() string {
	return e.message
}

func (e *ResourceError) Unwrap() error {
	return e.kind
}

// NewFlightNotFound возвращает ошибку отсутствия рейса с указанным ID
func NewFlightNotFound(id int64) error {
	return &ResourceError{
		kind:    ErrFlightNotFound,
		message: fmt.Sprintf("Flight with id = %d not found", id),
	}
}

// NewPassengerNotFound возвращает ошибку отсутствия пассажира с указанным ID
func NewPassengerNotFound(id int64) error {
	return &ResourceError{
		kind:    ErrPassengerNotFound,
		message: fmt.Sprintf("Passenger with id = %d not found", id),
	}
}

// NewNoAvailableSeats возвращает ошибку отсутствия свободных мест на рейсе
func NewNoAvailableSeats(flightID int64) error {
	return &ResourceError{
		kind:    ErrNoAvailableSeats,
		message: fmt.Sprintf("Flight with id = %d has no available seats left", flightID),
	}
}

// ValidationError содержит ошибки валидации в виде "поле -> сообщение"
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
