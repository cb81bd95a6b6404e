package redis

import (
	"context"
	"fmt"
)

const sequenceKeyPrefix = "seq:"

// incrementer - минимальный интерфейс для атомарного INCR
type incrementer interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// Sequence выдает идентификаторы через INCR, поэтому они монотонно растут
// между перезапусками и общими для нескольких процессов
type Sequence struct {
	client incrementer
}

// NewSequence создает последовательность поверх клиента Redis
func NewSequence(client *Client) *Sequence {
	return &Sequence{client: client}
}

// Next возвращает следующий идентификатор для последовательности name
func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	id, err := s.client.Incr(ctx, sequenceKey(name))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %q: %w", name, err)
	}
	return id, nil
}

func sequenceKey(name string) string {
	return sequenceKeyPrefix + name
}
