package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// BookingEventType - тип события бронирования
type BookingEventType string

const (
	PassengerBooked   BookingEventType = "passenger.booked"
	PassengerUnbooked BookingEventType = "passenger.unbooked"
)

// BookingEvent публикуется после фиксации изменения брони
type BookingEvent struct {
	ID                  uuid.UUID        `json:"id"`
	Type                BookingEventType `json:"type"`
	FlightID            int64            `json:"flightId"`
	PassengerID         int64            `json:"passengerId"`
	AvailableSeatsCount int              `json:"availableSeatsCount"`
	OccurredAt          time.Time        `json:"occurredAt"`
}

// NewBookingEvent создает событие с новым идентификатором
func NewBookingEvent(eventType BookingEventType, flightID, passengerID int64, availableSeats int) BookingEvent {
	return BookingEvent{
		ID:                  uuid.New(),
		Type:                eventType,
		FlightID:            flightID,
		PassengerID:         passengerID,
		AvailableSeatsCount: availableSeats,
		OccurredAt:          time.Now().UTC(),
	}
}

// Publisher - интерфейс для публикации событий бронирования
type Publisher interface {
	// PublishBooking отправляет событие бронирования
	PublishBooking(ctx context.Context, event BookingEvent) error

	// Close освобождает ресурсы
	Close() error
}

// messageWriter - часть kafka.Writer, нужная издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher - реализация Publisher на Kafka
type kafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher создает издателя для указанных брокеров и топика
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &kafkaPublisher{writer: writer, topic: topic}
}

func (p *kafkaPublisher) PublishBooking(ctx context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	// Ключ - ID рейса: события одного рейса попадают в одну партицию по порядку
	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.FlightID, 10)),
		Value: data,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// noopPublisher используется, когда Kafka не настроена
type noopPublisher struct{}

// NewNoopPublisher создает издателя, который ничего не отправляет
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishBooking(context.Context, BookingEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
