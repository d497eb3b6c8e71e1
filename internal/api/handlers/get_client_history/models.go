package get_client_history

import (
	clientHistory "github.com/m04kA/SMC-BookingEngine/internal/usecase/client_history"
)

// CategoryCountResponse категория и число бронирований в ней
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// AdvisoryResponse рекомендация по истории клиента
type AdvisoryResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// HistoryResponse HTTP response model
type HistoryResponse struct {
	ClientID             int64                   `json:"clientId"`
	ProfileAvailable     bool                    `json:"profileAvailable"`
	TotalBookings        int                     `json:"totalBookings"`
	TotalHours           float64                 `json:"totalHours"`
	TotalSpend           float64                 `json:"totalSpend"`
	AverageDurationHours float64                 `json:"averageDurationHours"`
	MonthlyFrequency     float64                 `json:"monthlyFrequency"`
	ElevatedShare        float64                 `json:"elevatedShare"`
	TopCategories        []CategoryCountResponse `json:"topCategories"`
	Advisories           []AdvisoryResponse      `json:"advisories"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *clientHistory.Response) *HistoryResponse {
	s := resp.Summary

	categories := make([]CategoryCountResponse, 0, len(s.TopCategories))
	for _, c := range s.TopCategories {
		categories = append(categories, CategoryCountResponse{Category: c.Category, Count: c.Count})
	}

	advisories := make([]AdvisoryResponse, 0, len(s.Advisories))
	for _, a := range s.Advisories {
		advisories = append(advisories, AdvisoryResponse{
			Code:           string(a.Code),
			Message:        a.Message,
			Recommendation: a.Recommendation,
		})
	}

	return &HistoryResponse{
		ClientID:             s.ClientID,
		ProfileAvailable:     resp.ProfileAvailable,
		TotalBookings:        s.TotalBookings,
		TotalHours:           s.TotalHours,
		TotalSpend:           s.TotalSpend,
		AverageDurationHours: s.AverageDurationHours,
		MonthlyFrequency:     s.MonthlyFrequency,
		ElevatedShare:        s.ElevatedShare,
		TopCategories:        categories,
		Advisories:           advisories,
	}
}
