package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{
		"error": message,
	})
}

// respondMessage отправляет текстовое сообщение об ошибке ресурса
func respondMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(message))
}

// respondServiceError переводит ошибку сервиса в HTTP ответ
func respondServiceError(w http.ResponseWriter, log logger.Logger, err error, action string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrPassengerNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoAvailableSeats):
		respondMessage(w, http.StatusConflict, err.Error())
	default:
		log.Error("Failed to "+action, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID извлекает числовой идентификатор из пути URL
// Например: /flights/123 -> pathID(r, "id") = 123
func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}

// Разбор необязательных параметров запроса. Пустое значение считается отсутствующим

func queryString(q url.Values, name string) *string {
	value := q.Get(name)
	if value == "" {
		return nil
	}
	return &value
}

func queryInt(q url.Values, name string) (*int, error) {
	value := q.Get(name)
	if value == "" {
		return nil, nil
	}

	// Столбцы мест - INTEGER, значения вне int32 отклоняются
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a 32-bit integer", name, value)
	}
	v := int(n)
	return &v, nil
}

func queryTime(q url.Values, name string) (*time.Time, error) {
	value := q.Get(name)
	if value == "" {
		return nil, nil
	}

	// Незакодированный "+" в смещении приходит как пробел
	value = strings.ReplaceAll(value, " ", "+")

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not an RFC 3339 timestamp", name, value)
	}
	return &t, nil
}

// queryID извлекает обязательный числовой параметр запроса
func queryID(q url.Values, name string) (int64, error) {
	value := q.Get(name)
	if value == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
