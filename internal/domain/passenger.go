package domain

// Passenger - пассажир
type Passenger struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`

	// Рейсы, на которые забронирован пассажир (обратная сторона flight_passenger).
	// Не сериализуется, чтобы не дублировать данные рейса
	Bookings IDSet `json:"-"`
}
