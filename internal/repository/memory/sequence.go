package memory

import (
	"context"
	"sync"
)

// CounterSequence - последовательность на счетчиках в памяти
type CounterSequence struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewCounterSequence создает последовательность, начинающуюся с 1
func NewCounterSequence() *CounterSequence {
	return &CounterSequence{values: make(map[string]int64)}
}

// Next возвращает следующий идентификатор для последовательности name
func (s *CounterSequence) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name]++
	return s.values[name], nil
}
