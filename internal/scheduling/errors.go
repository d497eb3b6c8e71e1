package scheduling

import (
	"errors"
	"fmt"
)

// ErrInvalidInput структурная ошибка входных данных.
// Нарушения бизнес-правил возвращаются в ValidationResult, а не ошибкой.
var ErrInvalidInput = errors.New("scheduling: invalid input")

// InputError некорректные входные данные движка с указанием поля
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

// Unwrap для errors.Is(err, ErrInvalidInput)
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func inputError(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
