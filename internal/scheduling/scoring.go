package scheduling

import (
	"math"
	"sort"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

const (
	ratingWeight         = 20.0
	experienceCapYears   = 20
	experienceWeight     = 2.0
	professionBonus      = 30.0
	specializationWeight = 10.0
	bookingsPerPoint     = 10.0
	bookingsPointsCap    = 20.0
)

// Score рейтинг ресурса для категории:
// rating*20 + min(experience,20)*2 + 30 за совпадение профессии
// + 10 за каждую подходящую специализацию + min(bookings/10, 20)
func (e *Engine) Score(r domain.Resource, category string) float64 {
	score := r.Rating * ratingWeight
	score += float64(min(r.ExperienceYears, experienceCapYears)) * experienceWeight
	if e.matcher.ProfessionServes(r.Profession, category) {
		score += professionBonus
	}
	score += float64(specializationMatches(r.Specializations, category)) * specializationWeight
	score += math.Min(float64(r.TotalBookings)/bookingsPerPoint, bookingsPointsCap)
	return score
}

// rank сортирует по убыванию score, при равенстве по возрастанию ID
func rank(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Resource.ID < matches[j].Resource.ID
	})
}
