package rules

import "errors"

var (
	// ErrRulesNotFound возвращается, когда правила уровня не сохранены
	ErrRulesNotFound = errors.New("rules not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
