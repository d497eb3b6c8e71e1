package scheduling

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Rejection причина, по которой ресурс не может взять интервал. Пусто - подходит.
type Rejection string

const (
	Eligible            Rejection = ""
	RejectInactive      Rejection = "inactive"
	RejectCapability    Rejection = "capability_mismatch"
	RejectEmergency     Rejection = "not_available_for_emergency"
	RejectWorkingHours  Rejection = "outside_working_hours"
	RejectDailyCapacity Rejection = "daily_capacity_reached"
	RejectConflict      Rejection = "conflicting_booking"
)

// Match ресурс, способный взять запрошенный интервал
type Match struct {
	Resource  domain.Resource
	Score     float64
	Preferred bool
}

// FindAvailableResources возвращает ресурсы, свободные на [start,end), лучшие первыми.
// Предпочтительный ресурс, прошедший все проверки, ставится в начало.
func (e *Engine) FindAvailableResources(
	start, end time.Time,
	category string,
	urgency domain.Urgency,
	bookings []domain.Booking,
	resources []domain.Resource,
	preferredID *int64,
) ([]Match, error) {
	if err := checkInterval(start, end); err != nil {
		return nil, err
	}
	if err := e.checkCategory(category); err != nil {
		return nil, err
	}
	if err := checkUrgency(urgency); err != nil {
		return nil, err
	}

	return e.match(start, end, category, urgency, activeByResource(bookings), resources, preferredID), nil
}

// CheckResource проверяет один ресурс
func (e *Engine) CheckResource(
	resource domain.Resource,
	start, end time.Time,
	category string,
	urgency domain.Urgency,
	bookings []domain.Booking,
) Rejection {
	return e.check(resource, start, end, category, urgency, activeByResource(bookings)[resource.ID])
}

func (e *Engine) match(
	start, end time.Time,
	category string,
	urgency domain.Urgency,
	busy map[int64][]domain.Booking,
	resources []domain.Resource,
	preferredID *int64,
) []Match {
	matches := make([]Match, 0, len(resources))
	for _, r := range resources {
		if e.check(r, start, end, category, urgency, busy[r.ID]) != Eligible {
			continue
		}
		matches = append(matches, Match{Resource: r, Score: e.Score(r, category)})
	}

	rank(matches)

	if preferredID != nil {
		promotePreferred(matches, *preferredID)
	}
	return matches
}

// check по порядку: активность, компетенция, emergency, рабочие часы,
// дневной лимит и конфликты с учетом буфера
func (e *Engine) check(
	r domain.Resource,
	start, end time.Time,
	category string,
	urgency domain.Urgency,
	busy []domain.Booking,
) Rejection {
	if !r.IsActive {
		return RejectInactive
	}
	if !e.capable(r, category) {
		return RejectCapability
	}
	if urgency == domain.UrgencyEmergency && !r.AvailableForEmergency {
		return RejectEmergency
	}
	if !withinDay(r.WorkingHours.ForDay(start.Weekday()), start, end) {
		return RejectWorkingHours
	}
	if r.MaxBookingsPerDay > 0 && bookingsOnDay(busy, start) >= r.MaxBookingsPerDay {
		return RejectDailyCapacity
	}
	if !e.rules.AllowDoubleBooking && conflicts(busy, start, end, e.rules.Buffer()) {
		return RejectConflict
	}
	return Eligible
}

func (e *Engine) capable(r domain.Resource, category string) bool {
	return e.matcher.ProfessionServes(r.Profession, category) ||
		specializationMatches(r.Specializations, category) > 0
}

// conflicts расширяет каждое бронирование на буфер с обеих сторон и ищет пересечение
func conflicts(busy []domain.Booking, start, end time.Time, buffer time.Duration) bool {
	for _, b := range busy {
		if overlaps(start, end, b.StartAt.Add(-buffer), b.EndAt.Add(buffer)) {
			return true
		}
	}
	return false
}

func bookingsOnDay(busy []domain.Booking, day time.Time) int {
	count := 0
	for _, b := range busy {
		if sameDay(day, b.StartAt) {
			count++
		}
	}
	return count
}

func promotePreferred(matches []Match, preferredID int64) {
	for i := range matches {
		if matches[i].Resource.ID != preferredID {
			continue
		}
		preferred := matches[i]
		preferred.Preferred = true
		copy(matches[1:i+1], matches[:i])
		matches[0] = preferred
		return
	}
}

func checkInterval(start, end time.Time) error {
	if start.IsZero() {
		return inputError("start", "is required")
	}
	if end.IsZero() {
		return inputError("end", "is required")
	}
	if !start.Before(end) {
		return inputError("end", "must be after start")
	}
	return nil
}
