package find_resources

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	findResources "github.com/m04kA/SMC-BookingEngine/internal/usecase/find_resources"
)

// SearchRequest HTTP request model
type SearchRequest struct {
	Start               string `json:"start"` // RFC 3339
	End                 string `json:"end"`
	Category            string `json:"category"`
	Urgency             string `json:"urgency,omitempty"`
	PreferredResourceID *int64 `json:"preferredResourceId,omitempty"`
}

// MatchResponse HTTP response model подходящего ресурса
type MatchResponse struct {
	ResourceID            int64    `json:"resourceId"`
	Name                  string   `json:"name"`
	Profession            string   `json:"profession"`
	Specializations       []string `json:"specializations"`
	HourlyRate            float64  `json:"hourlyRate"`
	Rating                float64  `json:"rating"`
	ExperienceYears       int      `json:"experienceYears"`
	AvailableForEmergency bool     `json:"availableForEmergency"`
	Score                 float64  `json:"score"`
	Preferred             bool     `json:"preferred"`
	Price                 float64  `json:"price"`
}

// SearchResponse HTTP response model
type SearchResponse struct {
	Matches []MatchResponse `json:"matches"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SearchRequest) ToUseCaseRequest(tenantID int64, clientID *int64, loc *time.Location) (*findResources.Request, error) {
	start, err := handlers.ParseTime("start", r.Start, loc)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime("end", r.End, loc)
	if err != nil {
		return nil, err
	}

	return &findResources.Request{
		TenantID:            tenantID,
		ClientID:            clientID,
		Start:               start,
		End:                 end,
		Category:            r.Category,
		Urgency:             domain.Urgency(r.Urgency),
		PreferredResourceID: r.PreferredResourceID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findResources.Response) *SearchResponse {
	matches := make([]MatchResponse, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		specializations := m.Resource.Specializations
		if specializations == nil {
			specializations = []string{}
		}
		matches = append(matches, MatchResponse{
			ResourceID:            m.Resource.ID,
			Name:                  m.Resource.Name,
			Profession:            m.Resource.Profession,
			Specializations:       specializations,
			HourlyRate:            m.Resource.HourlyRate,
			Rating:                m.Resource.Rating,
			ExperienceYears:       m.Resource.ExperienceYears,
			AvailableForEmergency: m.Resource.AvailableForEmergency,
			Score:                 m.Score,
			Preferred:             m.Preferred,
			Price:                 m.Price,
		})
	}
	return &SearchResponse{Matches: matches}
}
