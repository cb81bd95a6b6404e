package postgres

import (
	"fmt"
	"strings"

	"github.com/frontandrew/flightcrud/internal/domain"
)

// buildFlightFilter формирует WHERE-часть запроса по критериям фильтра.
// Для пустого фильтра возвращает пустую строку.
// departure_date_time имеет тип TIMESTAMPTZ, поэтому сравнение идет по моменту времени
func buildFlightFilter(filter domain.FlightFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.OriginAirport != nil {
		add("origin_airport = $%d", *filter.OriginAirport)
	}
	if filter.DestinationAirport != nil {
		add("destination_airport = $%d", *filter.DestinationAirport)
	}
	if filter.DateFrom != nil {
		add("departure_date_time >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("departure_date_time <= $%d", *filter.DateTo)
	}
	if filter.SeatsCountFrom != nil {
		add("available_seats_count >= $%d", *filter.SeatsCountFrom)
	}
	if filter.SeatsCountTo != nil {
		add("available_seats_count <= $%d", *filter.SeatsCountTo)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
