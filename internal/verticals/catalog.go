package verticals

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

const (
	Salon      = "salon"
	Restaurant = "restaurant"
	Events     = "events"
	RealEstate = "real_estate"
	Retail     = "retail"
)

func init() {
	register(professional())
	register(salon())
	register(restaurant())
	register(events())
	register(realEstate())
	register(retail())
}

func salon() Profile {
	rules := defaultRules()
	rules.AdvanceBookingHours = 1
	rules.MaxAdvanceBookingDays = 60
	rules.CancellationNoticeHours = 12
	rules.BufferMinutes = 10
	rules.StandardHours = domain.Uniform(day("09:00", "20:00"), domain.Weekdays...).
		With(day("10:00", "18:00"), time.Saturday)
	rules.EmergencyHours = rules.StandardHours

	return Profile{
		Name:  Salon,
		Rules: rules,
		Matcher: scheduling.NewCategoryTable(map[string][]string{
			"stylist":           {"haircut", "coloring", "styling", "blowout"},
			"barber":            {"haircut", "beard trim", "shave"},
			"nail technician":   {"manicure", "pedicure", "nail art"},
			"esthetician":       {"facial", "waxing", "skin care"},
			"massage therapist": {"massage", "deep tissue massage", "aromatherapy"},
		}),
		ComplexCategories: []string{"coloring"},
	}
}

func restaurant() Profile {
	rules := defaultRules()
	rules.AdvanceBookingHours = 0
	rules.MaxAdvanceBookingDays = 30
	rules.CancellationNoticeHours = 2
	rules.BufferMinutes = 15
	rules.StandardHours = domain.Uniform(day("11:00", "23:00"), domain.AllWeek...)
	rules.EmergencyHours = rules.StandardHours

	return Profile{
		Name:  Restaurant,
		Rules: rules,
		Matcher: scheduling.NewCategoryTable(map[string][]string{
			"table":        {"dining", "lunch", "dinner"},
			"private room": {"private dining", "group dinner", "business lunch"},
			"chef":         {"chef's table", "tasting menu", "cooking class"},
		}),
		ComplexCategories: []string{"private dining", "tasting menu"},
	}
}

func events() Profile {
	rules := defaultRules()
	rules.AdvanceBookingHours = 72
	rules.MaxAdvanceBookingDays = 365
	rules.CancellationNoticeHours = 168
	rules.BufferMinutes = 60
	rules.DepositRequired = true
	rules.StandardHours = domain.Uniform(day("08:00", "23:00"), domain.AllWeek...)
	rules.EmergencyHours = rules.StandardHours

	return Profile{
		Name:  Events,
		Rules: rules,
		Matcher: scheduling.NewCategoryTable(map[string][]string{
			"venue":         {"wedding", "conference", "party", "corporate event"},
			"photographer":  {"wedding photography", "event photography", "portrait session"},
			"dj":            {"party", "wedding", "corporate event"},
			"event planner": {"wedding planning", "event planning", "conference"},
			"caterer":       {"catering", "wedding", "corporate event"},
		}),
		ComplexCategories: []string{"wedding", "wedding planning", "conference", "catering"},
	}
}

func realEstate() Profile {
	rules := defaultRules()
	rules.AdvanceBookingHours = 4
	rules.CancellationNoticeHours = 4
	rules.BufferMinutes = 30
	rules.StandardHours = domain.Uniform(day("09:00", "19:00"), domain.Weekdays...).
		With(day("10:00", "16:00"), time.Saturday, time.Sunday)
	rules.EmergencyHours = rules.StandardHours

	return Profile{
		Name:  RealEstate,
		Rules: rules,
		Matcher: scheduling.NewCategoryTable(map[string][]string{
			"agent":            {"property viewing", "open house", "listing consultation"},
			"property manager": {"rental viewing", "lease signing", "maintenance inspection"},
			"appraiser":        {"valuation", "appraisal"},
			"mortgage broker":  {"mortgage consultation", "refinancing"},
		}),
		ComplexCategories: []string{"listing consultation", "mortgage consultation"},
	}
}

func retail() Profile {
	rules := defaultRules()
	rules.AdvanceBookingHours = 1
	rules.MaxAdvanceBookingDays = 30
	rules.CancellationNoticeHours = 2
	rules.BufferMinutes = 5
	rules.StandardHours = domain.Uniform(day("10:00", "21:00"), domain.AllWeek...)
	rules.EmergencyHours = rules.StandardHours

	return Profile{
		Name:  Retail,
		Rules: rules,
		Matcher: scheduling.NewCategoryTable(map[string][]string{
			"personal shopper": {"personal shopping", "styling session", "wardrobe consultation"},
			"technician":       {"device repair", "setup", "installation"},
			"fitter":           {"fitting", "alterations", "bridal fitting"},
		}),
		ComplexCategories: []string{"bridal fitting"},
	}
}
