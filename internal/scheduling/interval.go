package scheduling

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// overlaps проверяет пересечение [s1,e1) и [s2,e2).
// Соприкасающиеся интервалы (e1 == s2) не пересекаются.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// sameDay проверяет, что a и b в одной календарной дате (в поясе a)
func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// withinDay проверяет, что [start,end) внутри рабочего окна дня и не задевает
// перерывы. Интервал не должен переходить через полночь.
func withinDay(day domain.DaySchedule, start, end time.Time) bool {
	if !day.IsOpen || day.Start.IsZero() || day.End.IsZero() {
		return false
	}
	if !sameDay(start, end) {
		return false
	}

	windowStart := day.Start.On(start)
	windowEnd := day.End.On(start)
	if start.Before(windowStart) || end.After(windowEnd) {
		return false
	}

	for _, br := range day.Breaks {
		if overlaps(start, end, br.Start.On(start), br.End.On(start)) {
			return false
		}
	}
	return true
}

// activeByResource группирует занимающие время бронирования по ресурсам
func activeByResource(bookings []domain.Booking) map[int64][]domain.Booking {
	index := make(map[int64][]domain.Booking)
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		index[b.ResourceID] = append(index[b.ResourceID], b)
	}
	return index
}
