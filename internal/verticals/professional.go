package verticals

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

const Professional = "professional"

// professional services: consultations with lawyers, accountants, advisors
func professional() Profile {
	rules := defaultRules()
	rules.DepositRequired = true
	rules.StandardHours = domain.Uniform(day("09:00", "18:00"), domain.Weekdays...).
		With(day("10:00", "14:00"), time.Saturday)
	rules.EmergencyHours = domain.Uniform(day("07:00", "22:00"), domain.AllWeek...)

	return Profile{
		Name:  Professional,
		Rules: rules,
		Matcher: scheduling.NewCategoryTable(map[string][]string{
			"lawyer": {
				"legal", "contract review", "litigation", "family law",
				"immigration", "real estate law", "corporate law", "estate planning",
			},
			"accountant": {
				"accounting", "bookkeeping", "tax preparation", "audit", "payroll",
			},
			"consultant": {
				"business strategy", "operations", "marketing", "management consulting", "startup advisory",
			},
			"therapist": {
				"therapy", "counseling", "couples therapy", "family therapy", "career coaching",
			},
			"financial advisor": {
				"financial planning", "investment advice", "retirement planning", "insurance review",
			},
			"architect": {
				"architecture", "building design", "renovation planning", "permit review",
			},
			"engineer": {
				"structural assessment", "engineering review", "technical consulting",
			},
			"tax specialist": {
				"tax preparation", "tax planning", "tax dispute", "international tax",
			},
		}),
		ComplexCategories: []string{
			"litigation", "immigration", "corporate law", "estate planning", "audit",
			"tax dispute", "international tax", "structural assessment", "couples therapy",
		},
	}
}
