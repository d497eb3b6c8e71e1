package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrValidationFailed возвращается, когда запрос не прошел бизнес-валидацию
	ErrValidationFailed = errors.New("create_booking: booking request validation failed")

	// ErrSlotNotAvailable возвращается, когда ни один ресурс не может взять интервал
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError несет результат валидации, чтобы handler мог вернуть список нарушений
type ValidationError struct {
	Result scheduling.ValidationResult
}

func (e *ValidationError) Error() string {
	if len(e.Result.Errors) == 0 {
		return ErrValidationFailed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Result.Errors[0].Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
