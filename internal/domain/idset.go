package domain

import (
	"encoding/json"
	"sort"
)

// IDSet - множество идентификаторов (порядок не важен, элементы уникальны)
type IDSet map[int64]struct{}

// NewIDSet создает множество из переданных идентификаторов
func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has проверяет наличие идентификатора в множестве
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add добавляет идентификатор. Возвращает false, если он уже был в множестве
func (s IDSet) Add(id int64) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove удаляет идентификатор. Возвращает false, если его не было
func (s IDSet) Remove(id int64) bool {
	if !s.Has(id) {
		return false
	}
	delete(s, id)
	return true
}

// Slice возвращает отсортированный список идентификаторов
func (s IDSet) Slice() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON сериализует множество как отсортированный массив
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}
