package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSet(t *testing.T) {
	s := NewIDSet(3, 1)

	assert.True(t, s.Add(2))
	assert.False(t, s.Add(2))
	assert.True(t, s.Has(1))
	assert.Equal(t, []int64{1, 2, 3}, s.Slice())

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.False(t, s.Has(1))

	var empty IDSet
	assert.False(t, empty.Has(1))
	assert.Empty(t, empty.Slice())
}

func TestIDSet_JSON(t *testing.T) {
	f := Flight{ID: 1, Passengers: NewIDSet(5, 2)}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passengerIds":[2,5]`)

	// Пустое множество сериализуется как [], а не null
	data, err = json.Marshal(Flight{ID: 2})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passengerIds":[]`)
}

func TestResourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"рейс не найден", NewFlightNotFound(7), ErrFlightNotFound, "Flight with id = 7 not found"},
		{"пассажир не найден", NewPassengerNotFound(3), ErrPassengerNotFound, "Passenger with id = 3 not found"},
		{"нет мест", NewNoAvailableSeats(9), ErrNoAvailableSeats, "Flight with id = 9 has no available seats left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"lastName":  "too short",
		"firstName": "required",
	}}

	assert.Equal(t, "validation failed: firstName: required; lastName: too short", err.Error())
}
