package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
)

func TestNew(t *testing.T) {
	t.Run("matcher is required", func(t *testing.T) {
		_, err := New(Config{Rules: testRules()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rules are validated", func(t *testing.T) {
		rules := testRules()
		rules.BufferMinutes = -1

		_, err := New(Config{Rules: rules, Matcher: testMatcher()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("defaults", func(t *testing.T) {
		engine, err := New(Config{Rules: testRules(), Matcher: testMatcher()})
		require.NoError(t, err)
		assert.Equal(t, DefaultHistoryThresholds(), engine.history)
		assert.IsType(t, &RealTimeProvider{}, engine.clock)
	})
}

func TestFindAvailableResources_Ranking(t *testing.T) {
	engine := newTestEngine(t, nil)

	matches, err := engine.FindAvailableResources(
		at(monday, 10, 0), at(monday, 11, 0), "contract review", domain.UrgencyStandard,
		nil, testResources(), nil,
	)
	require.NoError(t, err)

	// у Alice и Carol по 150, выигрывает меньший ID
	assert.Equal(t, []int64{1, 3, 2}, matchIDs(matches))
	assert.Equal(t, 150.0, matches[0].Score)
	assert.Equal(t, 150.0, matches[1].Score)
	assert.Equal(t, 120.0, matches[2].Score)
	for _, m := range matches {
		assert.False(t, m.Preferred)
	}
}

func TestFindAvailableResources_Preferred(t *testing.T) {
	engine := newTestEngine(t, nil)

	t.Run("eligible preferred goes first", func(t *testing.T) {
		matches, err := engine.FindAvailableResources(
			at(monday, 10, 0), at(monday, 11, 0), "contract review", domain.UrgencyStandard,
			nil, testResources(), ptr.Ptr(int64(2)),
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1, 3}, matchIDs(matches))
		assert.True(t, matches[0].Preferred)
	})

	t.Run("ineligible preferred is not included", func(t *testing.T) {
		resources := testResources()
		resources[1].IsActive = false

		matches, err := engine.FindAvailableResources(
			at(monday, 10, 0), at(monday, 11, 0), "contract review", domain.UrgencyStandard,
			nil, resources, ptr.Ptr(int64(2)),
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, matchIDs(matches))
	})
}

func TestFindAvailableResources_BufferedConflicts(t *testing.T) {
	bookings := []domain.Booking{
		booking(1, 2, at(monday, 9, 0), at(monday, 10, 0)),
		booking(2, 2, at(monday, 11, 0), at(monday, 12, 0)),
	}
	bob := []domain.Resource{testResources()[1]}

	t.Run("gap wider than the buffer is free", func(t *testing.T) {
		engine := newTestEngine(t, func(cfg *Config) { cfg.Rules.BufferMinutes = 10 })

		matches, err := engine.FindAvailableResources(
			at(monday, 10, 10), at(monday, 10, 50), "contract review", domain.UrgencyStandard,
			bookings, bob, nil,
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, matchIDs(matches))
	})

	t.Run("request overlapping a booking conflicts", func(t *testing.T) {
		engine := newTestEngine(t, func(cfg *Config) { cfg.Rules.BufferMinutes = 10 })

		matches, err := engine.FindAvailableResources(
			at(monday, 10, 50), at(monday, 11, 10), "contract review", domain.UrgencyStandard,
			bookings, bob, nil,
		)
		require.NoError(t, err)
		assert.Empty(t, matches)
		assert.Equal(t, RejectConflict, engine.CheckResource(
			bob[0], at(monday, 10, 50), at(monday, 11, 10), "contract review", domain.UrgencyStandard, bookings))
	})

	t.Run("buffer expansion blocks adjacent requests", func(t *testing.T) {
		engine := newTestEngine(t, nil) // 15 minute buffer

		assert.Equal(t, RejectConflict, engine.CheckResource(
			bob[0], at(monday, 10, 10), at(monday, 10, 50), "contract review", domain.UrgencyStandard, bookings))
		assert.Equal(t, Eligible, engine.CheckResource(
			bob[0], at(monday, 10, 15), at(monday, 10, 45), "contract review", domain.UrgencyStandard, bookings))
	})

	t.Run("cancelled bookings do not occupy", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		cancelled := booking(3, 2, at(monday, 14, 0), at(monday, 15, 0))
		cancelled.Status = domain.StatusCancelledByClient

		assert.Equal(t, Eligible, engine.CheckResource(
			bob[0], at(monday, 14, 0), at(monday, 15, 0), "contract review", domain.UrgencyStandard,
			[]domain.Booking{cancelled}))
	})

	t.Run("double booking disables the conflict check", func(t *testing.T) {
		engine := newTestEngine(t, func(cfg *Config) { cfg.Rules.AllowDoubleBooking = true })

		assert.Equal(t, Eligible, engine.CheckResource(
			bob[0], at(monday, 9, 30), at(monday, 10, 30), "contract review", domain.UrgencyStandard, bookings))
	})
}

func TestCheckResource(t *testing.T) {
	engine := newTestEngine(t, nil)
	resources := testResources()
	alice := resources[0]

	tests := []struct {
		name     string
		resource domain.Resource
		start    time.Time
		end      time.Time
		category string
		urgency  domain.Urgency
		bookings []domain.Booking
		want     Rejection
	}{
		{
			name:     "eligible",
			resource: alice,
			start:    at(monday, 9, 0),
			end:      at(monday, 10, 0),
			category: "contract review",
			urgency:  domain.UrgencyStandard,
			want:     Eligible,
		},
		{
			name: "inactive",
			resource: func() domain.Resource {
				r := alice
				r.IsActive = false
				return r
			}(),
			start:    at(monday, 9, 0),
			end:      at(monday, 10, 0),
			category: "contract review",
			urgency:  domain.UrgencyStandard,
			want:     RejectInactive,
		},
		{
			name:     "capability mismatch",
			resource: alice,
			start:    at(monday, 9, 0),
			end:      at(monday, 10, 0),
			category: "tax",
			urgency:  domain.UrgencyStandard,
			want:     RejectCapability,
		},
		{
			name:     "not available for emergency",
			resource: resources[1],
			start:    at(monday, 9, 0),
			end:      at(monday, 10, 0),
			category: "contract review",
			urgency:  domain.UrgencyEmergency,
			want:     RejectEmergency,
		},
		{
			name:     "overlaps the break",
			resource: alice,
			start:    at(monday, 11, 30),
			end:      at(monday, 12, 30),
			category: "contract review",
			urgency:  domain.UrgencyStandard,
			want:     RejectWorkingHours,
		},
		{
			name:     "after working hours",
			resource: alice,
			start:    at(monday, 16, 30),
			end:      at(monday, 17, 30),
			category: "contract review",
			urgency:  domain.UrgencyStandard,
			want:     RejectWorkingHours,
		},
		{
			name:     "day off",
			resource: alice,
			start:    at(sunday, 10, 0),
			end:      at(sunday, 11, 0),
			category: "contract review",
			urgency:  domain.UrgencyStandard,
			want:     RejectWorkingHours,
		},
		{
			name: "daily capacity reached",
			resource: func() domain.Resource {
				r := alice
				r.MaxBookingsPerDay = 1
				return r
			}(),
			start:    at(monday, 15, 0),
			end:      at(monday, 16, 0),
			category: "contract review",
			urgency:  domain.UrgencyStandard,
			bookings: []domain.Booking{booking(1, 1, at(monday, 9, 0), at(monday, 10, 0))},
			want:     RejectDailyCapacity,
		},
		{
			name:     "specialization substring",
			resource: resources[2],
			start:    at(monday, 9, 0),
			end:      at(monday, 10, 0),
			category: "CONTRACT REVIEW",
			urgency:  domain.UrgencyStandard,
			want:     Eligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CheckResource(tt.resource, tt.start, tt.end, tt.category, tt.urgency, tt.bookings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAvailableResources_EmergencyWithoutEligibleResources(t *testing.T) {
	engine := newTestEngine(t, nil)
	resources := testResources()
	for i := range resources {
		resources[i].AvailableForEmergency = false
	}

	matches, err := engine.FindAvailableResources(
		at(monday, 10, 0), at(monday, 11, 0), "contract review", domain.UrgencyEmergency,
		nil, resources, nil,
	)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindAvailableResources_InputErrors(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		category string
		urgency  domain.Urgency
		field    string
	}{
		{"zero start", time.Time{}, at(monday, 10, 0), "tax", domain.UrgencyStandard, "start"},
		{"end before start", at(monday, 10, 0), at(monday, 9, 0), "tax", domain.UrgencyStandard, "end"},
		{"empty category", at(monday, 9, 0), at(monday, 10, 0), " ", domain.UrgencyStandard, "category"},
		{"unknown category", at(monday, 9, 0), at(monday, 10, 0), "surgery", domain.UrgencyStandard, "category"},
		{"unknown urgency", at(monday, 9, 0), at(monday, 10, 0), "tax", domain.Urgency("asap"), "urgency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.FindAvailableResources(tt.start, tt.end, tt.category, tt.urgency, nil, testResources(), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestScore_MonotonicInRating(t *testing.T) {
	engine := newTestEngine(t, nil)
	base := testResources()[1]

	for rating := 0.0; rating < 5; rating += 0.5 {
		lower, higher := base, base
		lower.Rating = rating
		higher.Rating = rating + 0.5
		assert.Greater(t, engine.Score(higher, "contract review"), engine.Score(lower, "contract review"))
	}
}

func TestScore_Components(t *testing.T) {
	engine := newTestEngine(t, nil)

	r := domain.Resource{
		Profession:      "lawyer",
		Specializations: []string{"litigation", "Complex Litigation", "tax"},
		Rating:          3,
		ExperienceYears: 40,
		TotalBookings:   1000,
	}

	// 60 + 40 + 30 + 20 + 20
	assert.Equal(t, 170.0, engine.Score(r, "litigation"))
}
