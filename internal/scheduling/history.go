package scheduling

import (
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

const (
	daysPerMonth     = 30.44
	topCategoryCount = 3
)

// HistoryThresholds пороги советов AnalyzeHistory.
// Сравнение строгое: значение, равное порогу, совет не включает.
type HistoryThresholds struct {
	MaxMonthlyFrequency  float64
	MaxAverageHours      float64
	MaxElevatedShare     float64
	VolumeSpendThreshold float64
}

// DefaultHistoryThresholds 4 записи в месяц, 3 часа, 30% и 10000
func DefaultHistoryThresholds() HistoryThresholds {
	return HistoryThresholds{
		MaxMonthlyFrequency:  4,
		MaxAverageHours:      3,
		MaxElevatedShare:     0.30,
		VolumeSpendThreshold: 10000,
	}
}

// AdvisoryCode код совета по истории
type AdvisoryCode string

const (
	AdvisoryHighFrequency AdvisoryCode = "high_frequency"
	AdvisoryLongSessions  AdvisoryCode = "long_sessions"
	AdvisoryFrequentRush  AdvisoryCode = "frequent_urgent_requests"
	AdvisoryHighVolume    AdvisoryCode = "high_volume"
)

// Advisory неблокирующий флаг риска с рекомендацией
type Advisory struct {
	Code           AdvisoryCode
	Message        string
	Recommendation string
}

// CategoryCount категория и число бронирований в ней
type CategoryCount struct {
	Category string
	Count    int
}

// HistorySummary сводка по бронированиям клиента
type HistorySummary struct {
	ClientID             int64
	TotalBookings        int
	TotalHours           float64
	TotalSpend           float64
	AverageDurationHours float64
	TopCategories        []CategoryCount
	// Бронирований в месяц между первым и последним бронированием
	MonthlyFrequency float64
	ElevatedShare    float64
	Advisories       []Advisory
}

// HasAdvisory проверяет, выставлен ли совет
func (s *HistorySummary) HasAdvisory(code AdvisoryCode) bool {
	for _, a := range s.Advisories {
		if a.Code == code {
			return true
		}
	}
	return false
}

// AnalyzeHistory строит сводку по полному списку бронирований клиента.
// Сумма трат берется из профиля клиента. Знаменатель частоты - число месяцев
// между первым и последним бронированием, не меньше одного.
func (e *Engine) AnalyzeHistory(client *domain.Client, bookings []domain.Booking) (HistorySummary, error) {
	if client == nil {
		return HistorySummary{}, inputError("client", "is required")
	}

	summary := HistorySummary{
		ClientID:      client.ID,
		TotalBookings: len(bookings),
		TotalSpend:    client.TotalSpent,
		TopCategories: make([]CategoryCount, 0, topCategoryCount),
		Advisories:    make([]Advisory, 0),
	}

	if len(bookings) > 0 {
		minutes, elevated := 0, 0
		first, last := bookings[0].StartAt, bookings[0].StartAt
		counts := make(map[string]int)

		for _, b := range bookings {
			minutes += max(b.DurationMinutes(), 0)
			if b.Urgency.IsElevated() {
				elevated++
			}
			if b.Category != "" {
				counts[b.Category]++
			}
			if b.StartAt.Before(first) {
				first = b.StartAt
			}
			if b.StartAt.After(last) {
				last = b.StartAt
			}
		}

		count := float64(len(bookings))
		summary.TotalHours = float64(minutes) / 60
		summary.AverageDurationHours = summary.TotalHours / count
		summary.ElevatedShare = float64(elevated) / count
		summary.MonthlyFrequency = count / math.Max(1, monthsBetween(first, last))
		summary.TopCategories = topCategories(counts, topCategoryCount)
	}

	summary.Advisories = e.advisories(summary)
	return summary, nil
}

func (e *Engine) advisories(s HistorySummary) []Advisory {
	t := e.history
	result := make([]Advisory, 0)

	if s.MonthlyFrequency > t.MaxMonthlyFrequency {
		result = append(result, Advisory{
			Code:           AdvisoryHighFrequency,
			Message:        "Client books more than the usual monthly frequency",
			Recommendation: "Consider offering a retainer arrangement",
		})
	}
	if s.AverageDurationHours > t.MaxAverageHours {
		result = append(result, Advisory{
			Code:           AdvisoryLongSessions,
			Message:        "Average booking is longer than usual",
			Recommendation: "Consider splitting work into shorter sessions",
		})
	}
	if s.ElevatedShare > t.MaxElevatedShare {
		result = append(result, Advisory{
			Code:           AdvisoryFrequentRush,
			Message:        "A large share of bookings are urgent or emergency",
			Recommendation: "Consider proactive scheduling to avoid urgent requests",
		})
	}
	if s.TotalSpend > t.VolumeSpendThreshold {
		result = append(result, Advisory{
			Code:           AdvisoryHighVolume,
			Message:        "Client spend exceeds the volume threshold",
			Recommendation: "Client qualifies for a discount review",
		})
	}
	return result
}

func monthsBetween(first, last time.Time) float64 {
	return last.Sub(first).Hours() / 24 / daysPerMonth
}

// topCategories возвращает n самых частых категорий, при равенстве по алфавиту
func topCategories(counts map[string]int, n int) []CategoryCount {
	all := make([]CategoryCount, 0, len(counts))
	for c, count := range counts {
		all = append(all, CategoryCount{Category: c, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Category < all[j].Category
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
