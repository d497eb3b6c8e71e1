package validate_booking

import "errors"

var (
	// ErrInvalidInput возвращается при структурно некорректном запросе
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_booking: internal error")
)
