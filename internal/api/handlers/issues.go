package handlers

import "github.com/m04kA/SMC-BookingEngine/internal/scheduling"

// IssueResponse нарушение или предупреждение валидации
type IssueResponse struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResponse результат валидации запроса на бронирование
type ValidationResponse struct {
	IsValid         bool            `json:"isValid"`
	Errors          []IssueResponse `json:"errors"`
	Warnings        []IssueResponse `json:"warnings"`
	DepositRequired bool            `json:"depositRequired"`
}

// FromIssues конвертирует список нарушений в DTO
func FromIssues(issues []scheduling.Issue) []IssueResponse {
	result := make([]IssueResponse, 0, len(issues))
	for _, i := range issues {
		result = append(result, IssueResponse{
			Code:    string(i.Code),
			Field:   i.Field,
			Message: i.Message,
		})
	}
	return result
}

// FromValidationResult конвертирует результат валидации в DTO
func FromValidationResult(r scheduling.ValidationResult) ValidationResponse {
	return ValidationResponse{
		IsValid:         r.IsValid,
		Errors:          FromIssues(r.Errors),
		Warnings:        FromIssues(r.Warnings),
		DepositRequired: r.DepositRequired,
	}
}
