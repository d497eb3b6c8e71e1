package domain

import "time"

// Slot is a candidate interval with availability and optional resource/price annotation.
// An unavailable slot never carries a resource or a price.
type Slot struct {
	Start        time.Time
	End          time.Time
	Available    bool
	ResourceID   *int64
	ResourceName string
	Price        *float64
}

// DurationMinutes returns the slot length in whole minutes
func (s *Slot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// MarkUnavailable clears the slot's resource and price annotation
func (s *Slot) MarkUnavailable() {
	s.Available = false
	s.ResourceID = nil
	s.ResourceName = ""
	s.Price = nil
}
