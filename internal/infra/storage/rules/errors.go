package rules

import "errors"

var (
	// ErrRulesNotFound возвращается, когда правила не найдены ни на одном уровне
	ErrRulesNotFound = errors.New("rules.repository: rules not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rules.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rules.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rules.repository: failed to scan row")

	// ErrEncodeHours возвращается, когда таблицу часов работы не удалось сериализовать
	ErrEncodeHours = errors.New("rules.repository: failed to encode business hours")
)
