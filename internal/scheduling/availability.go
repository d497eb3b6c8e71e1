package scheduling

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// CandidateSlots перечисляет идущие подряд слоты длиной durationMinutes в пределах
// рабочих часов, выбранных по срочности. Слот, выходящий за время закрытия,
// не выдается; в выходной день последовательность пуста.
//
// Базовая доступность учитывает только окно записи: слоты в прошлом, внутри
// минимального срока уведомления (кроме emergency) или дальше лимита
// предварительной записи недоступны. Ресурсы здесь не учитываются.
//
// Последовательность конечна и может обходиться повторно; каждый обход
// заново берет текущее время из часов движка.
func (e *Engine) CandidateSlots(date time.Time, durationMinutes int, urgency domain.Urgency) iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		if date.IsZero() || durationMinutes <= 0 {
			return
		}

		day := e.rules.HoursFor(urgency).ForDay(date.Weekday())
		if !day.IsOpen || day.Start.IsZero() || day.End.IsZero() {
			return
		}

		earliest, latest, limited := e.bookingWindow(urgency)
		step := time.Duration(durationMinutes) * time.Minute
		closeAt := day.End.On(date)

		for start := day.Start.On(date); start.Before(closeAt); start = start.Add(step) {
			end := start.Add(step)
			if end.After(closeAt) {
				return
			}

			available := !start.Before(earliest) && (!limited || !start.After(latest))
			if !yield(domain.Slot{Start: start, End: end, Available: available}) {
				return
			}
		}
	}
}

// GenerateSlots строит слоты дня, назначает каждому доступному слоту лучший
// по рейтингу ресурс и считает цену для клиента. Слот без подходящего ресурса
// возвращается недоступным.
func (e *Engine) GenerateSlots(
	date time.Time,
	category string,
	durationMinutes int,
	resources []domain.Resource,
	bookings []domain.Booking,
	urgency domain.Urgency,
	client *domain.Client,
) ([]domain.Slot, error) {
	if date.IsZero() {
		return nil, inputError("date", "is required")
	}
	if durationMinutes <= 0 {
		return nil, inputError("duration", "must be positive")
	}
	if err := e.checkCategory(category); err != nil {
		return nil, err
	}
	if err := checkUrgency(urgency); err != nil {
		return nil, err
	}

	busy := activeByResource(bookings)
	discount := client.Discount()

	slots := make([]domain.Slot, 0)
	for slot := range e.CandidateSlots(date, durationMinutes, urgency) {
		if slot.Available {
			e.assign(&slot, category, durationMinutes, urgency, busy, resources, discount)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (e *Engine) assign(
	slot *domain.Slot,
	category string,
	durationMinutes int,
	urgency domain.Urgency,
	busy map[int64][]domain.Booking,
	resources []domain.Resource,
	discount float64,
) {
	matches := e.match(slot.Start, slot.End, category, urgency, busy, resources, nil)
	if len(matches) == 0 {
		slot.MarkUnavailable()
		return
	}

	best := matches[0].Resource
	price := CalculatePrice(best.HourlyRate, durationMinutes, urgency, discount)
	id := best.ID

	slot.ResourceID = &id
	slot.ResourceName = best.Name
	slot.Price = &price
}

// bookingWindow возвращает самое раннее и самое позднее допустимое начало.
// Emergency пропускает минимальный срок уведомления, но не может начаться в прошлом.
func (e *Engine) bookingWindow(urgency domain.Urgency) (earliest, latest time.Time, limited bool) {
	now := e.clock.Now()

	earliest = now
	if urgency != domain.UrgencyEmergency {
		earliest = now.Add(time.Duration(e.rules.AdvanceBookingHours) * time.Hour)
	}

	if e.rules.HasAdvanceBookingLimit() {
		latest = now.AddDate(0, 0, e.rules.MaxAdvanceBookingDays)
		limited = true
	}
	return earliest, latest, limited
}
