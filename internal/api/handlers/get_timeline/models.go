package get_timeline

import (
	"time"

	getTimeline "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_timeline"
)

// ActivityResponse HTTP response model этапа работы по бронированию
type ActivityResponse struct {
	At              string `json:"at"` // RFC 3339
	End             string `json:"end"`
	Kind            string `json:"kind"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"durationMinutes"`
	ResourceName    string `json:"resourceName"`
}

// TimelineResponse HTTP response model
type TimelineResponse struct {
	BookingID  int64              `json:"bookingId"`
	Activities []ActivityResponse `json:"activities"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeline.Response) *TimelineResponse {
	activities := make([]ActivityResponse, 0, len(resp.Activities))
	for _, a := range resp.Activities {
		activities = append(activities, ActivityResponse{
			At:              a.At.Format(time.RFC3339),
			End:             a.End.Format(time.RFC3339),
			Kind:            string(a.Kind),
			Label:           a.Label,
			DurationMinutes: a.DurationMinutes,
			ResourceName:    a.ResourceName,
		})
	}
	return &TimelineResponse{
		BookingID:  resp.BookingID,
		Activities: activities,
	}
}
