// Package validator проверяет DTO по тегам validate и собирает ошибки
// в виде "поле -> сообщение".
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/frontandrew/flightcrud/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Messages - сообщения для пар "поле.тег". Поле - имя из json-тега
type Messages map[string]string

// Validator проверяет структуры и возвращает *domain.ValidationError
type Validator struct {
	validate *validator.Validate
	messages Messages
}

// New создает валидатор с заданными сообщениями
func New(messages Messages) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &Validator{validate: v, messages: messages}
}

// Struct проверяет структуру. Возвращает nil или *domain.ValidationError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	result := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrors))}
	for _, fe := range fieldErrors {
		field := fe.Field()
		if _, exists := result.Fields[field]; exists {
			continue
		}
		result.Fields[field] = v.message(field, fe)
	}

	return result
}

func (v *Validator) message(field string, fe validator.FieldError) string {
	if msg, ok := v.messages[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := v.messages[field]; ok {
		return msg
	}
	return "failed on the '" + fe.Tag() + "' rule"
}
