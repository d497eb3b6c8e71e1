package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// fixedClock часы, остановленные на одном моменте
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var (
	// понедельник, достаточно далекий от часов по умолчанию, чтобы пройти все сроки уведомления
	monday   = time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2030, time.June, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2030, time.June, 1, 8, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func openDay(start, end string, breaks ...domain.BreakInterval) domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen: true,
		Start:  types.MustTimeString(start),
		End:    types.MustTimeString(end),
		Breaks: breaks,
	}
}

func testRules() domain.BookingRules {
	return domain.BookingRules{
		AdvanceBookingHours:     domain.DefaultAdvanceBookingHours,
		MaxAdvanceBookingDays:   domain.DefaultMaxAdvanceBookingDays,
		CancellationNoticeHours: domain.DefaultCancellationNoticeHours,
		BufferMinutes:           domain.DefaultBufferMinutes,
		StandardHours:           domain.Uniform(openDay("09:00", "18:00"), domain.Weekdays...),
		EmergencyHours:          domain.Uniform(openDay("06:00", "22:00"), domain.AllWeek...),
	}
}

func testMatcher() CategoryTable {
	return NewCategoryTable(map[string][]string{
		"Lawyer":     {"Contract Review", "Litigation"},
		"Accountant": {"Tax", "Audit"},
	})
}

func newTestEngine(t *testing.T, mutate func(cfg *Config)) *Engine {
	t.Helper()

	cfg := Config{
		Rules:             testRules(),
		Matcher:           testMatcher(),
		ComplexCategories: []string{"litigation"},
		Clock:             fixedClock{now: saturday},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	engine, err := New(cfg)
	require.NoError(t, err)
	return engine
}

// testResources:
//
//	1 Alice: юрист, дежурный, 09-17 с перерывом 12-13, score 150 для contract review
//	2 Bob: юрист, 09-18, score 120
//	3 Carol: бухгалтер со специализацией contract review, 09-18, score 150
func testResources() []domain.Resource {
	return []domain.Resource{
		{
			ID:         1,
			Name:       "Alice",
			Profession: "lawyer",
			WorkingHours: domain.Uniform(openDay("09:00", "17:00",
				domain.BreakInterval{Start: "12:00", End: "13:00"}), domain.Weekdays...),
			HourlyRate:            200,
			MaxBookingsPerDay:     8,
			AvailableForEmergency: true,
			IsActive:              true,
			Rating:                4.5,
			ExperienceYears:       10,
			TotalBookings:         100,
		},
		{
			ID:              2,
			Name:            "Bob",
			Profession:      "lawyer",
			WorkingHours:    domain.Uniform(openDay("09:00", "18:00"), domain.Weekdays...),
			HourlyRate:      150,
			IsActive:        true,
			Rating:          4.0,
			ExperienceYears: 5,
		},
		{
			ID:              3,
			Name:            "Carol",
			Profession:      "accountant",
			Specializations: []string{"Contract review for startups"},
			WorkingHours:    domain.Uniform(openDay("09:00", "18:00"), domain.Weekdays...),
			HourlyRate:      100,
			IsActive:        true,
			Rating:          5,
			ExperienceYears: 25,
		},
	}
}

func booking(id, resourceID int64, start, end time.Time) domain.Booking {
	return domain.Booking{
		ID:         id,
		ResourceID: resourceID,
		Category:   "contract review",
		Urgency:    domain.UrgencyStandard,
		StartAt:    start,
		EndAt:      end,
		Status:     domain.StatusConfirmed,
	}
}

func matchIDs(matches []Match) []int64 {
	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Resource.ID)
	}
	return ids
}

func resourceByID(resources []domain.Resource, id int64) domain.Resource {
	for _, r := range resources {
		if r.ID == id {
			return r
		}
	}
	return domain.Resource{}
}
