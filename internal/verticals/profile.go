// Package verticals holds the per-industry configuration of the scheduling
// engine: default rules, business hours and the profession to category table.
package verticals

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// ErrUnknownVertical is returned for a vertical that is not registered
var ErrUnknownVertical = errors.New("unknown vertical")

// Profile is everything the engine needs to serve one vertical
type Profile struct {
	Name              string
	Rules             domain.BookingRules
	Matcher           scheduling.CategoryTable
	ComplexCategories []string
}

// Engine builds an engine with the vertical's default rules
func (p Profile) Engine(clock scheduling.TimeProvider) (*scheduling.Engine, error) {
	return p.EngineWithRules(p.Rules, clock)
}

// EngineWithRules builds an engine with tenant rules and the vertical's matcher
func (p Profile) EngineWithRules(rules domain.BookingRules, clock scheduling.TimeProvider) (*scheduling.Engine, error) {
	rules.Vertical = p.Name
	return scheduling.New(scheduling.Config{
		Rules:             rules,
		Matcher:           p.Matcher,
		ComplexCategories: p.ComplexCategories,
		Clock:             clock,
	})
}

// Categories returns the served categories in alphabetical order
func (p Profile) Categories() []string {
	categories := p.Matcher.Categories()
	sort.Strings(categories)
	return categories
}

var registry = map[string]Profile{}

func register(p Profile) {
	p.Rules.Vertical = p.Name
	registry[p.Name] = p
}

// Get returns the profile of a registered vertical
func Get(name string) (Profile, error) {
	p, ok := registry[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownVertical, name)
	}
	return p, nil
}

// Names returns the registered verticals in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func day(start, end string, breaks ...domain.BreakInterval) domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen: true,
		Start:  types.MustTimeString(start),
		End:    types.MustTimeString(end),
		Breaks: breaks,
	}
}

func defaultRules() domain.BookingRules {
	return domain.BookingRules{
		AdvanceBookingHours:     domain.DefaultAdvanceBookingHours,
		MaxAdvanceBookingDays:   domain.DefaultMaxAdvanceBookingDays,
		CancellationNoticeHours: domain.DefaultCancellationNoticeHours,
		BufferMinutes:           domain.DefaultBufferMinutes,
	}
}
