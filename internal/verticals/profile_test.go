package verticals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{Events, Professional, RealEstate, Restaurant, Retail, Salon}, Names())

	_, err := Get("veterinary")
	assert.ErrorIs(t, err, ErrUnknownVertical)
}

func TestProfiles_BuildEngines(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			profile, err := Get(name)
			require.NoError(t, err)

			assert.Equal(t, name, profile.Rules.Vertical)
			require.NoError(t, profile.Rules.Validate())
			assert.NotEmpty(t, profile.Categories())

			engine, err := profile.Engine(nil)
			require.NoError(t, err)
			assert.Equal(t, name, engine.Rules().Vertical)

			for _, c := range profile.ComplexCategories {
				assert.True(t, profile.Matcher.HasCategory(c), "complex category %q is not served", c)
			}
		})
	}
}

func TestProfessional_Matcher(t *testing.T) {
	profile, err := Get(Professional)
	require.NoError(t, err)

	assert.True(t, profile.Matcher.ProfessionServes("Lawyer", "Contract Review"))
	assert.True(t, profile.Matcher.ProfessionServes("tax specialist", "tax preparation"))
	assert.True(t, profile.Matcher.ProfessionServes("accountant", "tax preparation"))
	assert.False(t, profile.Matcher.ProfessionServes("therapist", "audit"))
	assert.False(t, profile.Matcher.HasCategory("haircut"))
}

func TestEngineWithRules_KeepsMatcher(t *testing.T) {
	profile, err := Get(Salon)
	require.NoError(t, err)

	rules := profile.Rules
	rules.BufferMinutes = 0
	rules.Vertical = "something else"

	monday := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
	engine, err := profile.EngineWithRules(rules, fixedClock{now: monday.AddDate(0, 0, -2)})
	require.NoError(t, err)
	assert.Equal(t, Salon, engine.Rules().Vertical)

	stylist := domain.Resource{
		ID:           1,
		Name:         "Jo",
		Profession:   "stylist",
		WorkingHours: profile.Rules.StandardHours,
		HourlyRate:   60,
		IsActive:     true,
	}
	existing := []domain.Booking{{
		ResourceID: 1,
		StartAt:    monday.Add(9 * time.Hour),
		EndAt:      monday.Add(10 * time.Hour),
		Status:     domain.StatusConfirmed,
	}}

	matches, err := engine.FindAvailableResources(
		monday.Add(10*time.Hour), monday.Add(11*time.Hour), "haircut", domain.UrgencyStandard,
		existing, []domain.Resource{stylist}, nil,
	)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestEngineWithRules_RejectsInvalidRules(t *testing.T) {
	profile, err := Get(Events)
	require.NoError(t, err)

	rules := profile.Rules
	rules.AdvanceBookingHours = -1

	_, err = profile.EngineWithRules(rules, nil)
	assert.ErrorIs(t, err, scheduling.ErrInvalidInput)
}
