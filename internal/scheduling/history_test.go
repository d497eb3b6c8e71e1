package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// spread создает n часовых бронирований, равномерно распределенных по days дням
func spread(n int, days int, category string, urgency domain.Urgency) []domain.Booking {
	bookings := make([]domain.Booking, 0, n)
	step := time.Duration(0)
	if n > 1 {
		step = time.Duration(days) * 24 * time.Hour / time.Duration(n-1)
	}
	start := at(monday, 10, 0)
	for i := 0; i < n; i++ {
		s := start.Add(step * time.Duration(i))
		b := booking(int64(i+1), 1, s, s.Add(time.Hour))
		b.Category = category
		b.Urgency = urgency
		bookings = append(bookings, b)
	}
	return bookings
}

func TestAnalyzeHistory_FrequencyBoundary(t *testing.T) {
	engine := newTestEngine(t, nil)
	client := &domain.Client{ID: 1, Tier: domain.TierStandard}

	tests := []struct {
		name    string
		count   int
		flagged bool
	}{
		{"six consultations in a month", 6, true},
		{"five in a month", 5, true},
		{"exactly four in a month", 4, false},
		{"three in a month", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := engine.AnalyzeHistory(client, spread(tt.count, 30, "tax", domain.UrgencyStandard))
			require.NoError(t, err)

			assert.Equal(t, float64(tt.count), summary.MonthlyFrequency)
			assert.Equal(t, tt.flagged, summary.HasAdvisory(AdvisoryHighFrequency))
			assert.False(t, summary.HasAdvisory(AdvisoryLongSessions))
			assert.False(t, summary.HasAdvisory(AdvisoryFrequentRush))
			assert.False(t, summary.HasAdvisory(AdvisoryHighVolume))
		})
	}
}

func TestAnalyzeHistory_Aggregates(t *testing.T) {
	engine := newTestEngine(t, nil)
	client := &domain.Client{ID: 9, Tier: domain.TierGold, TotalSpent: 4200}

	bookings := []domain.Booking{
		booking(1, 1, at(monday, 9, 0), at(monday, 10, 0)),
		booking(2, 1, at(monday, 11, 0), at(monday, 13, 0)),
		booking(3, 2, at(monday, 14, 0), at(monday, 14, 30)),
	}
	bookings[0].Category = "tax"
	bookings[1].Category = "audit"
	bookings[2].Category = "tax"

	summary, err := engine.AnalyzeHistory(client, bookings)
	require.NoError(t, err)

	assert.Equal(t, int64(9), summary.ClientID)
	assert.Equal(t, 3, summary.TotalBookings)
	assert.Equal(t, 3.5, summary.TotalHours)
	assert.InDelta(t, 3.5/3, summary.AverageDurationHours, 1e-9)
	assert.Equal(t, 4200.0, summary.TotalSpend)
	// в один день: знаменатель не меньше одного месяца
	assert.Equal(t, 3.0, summary.MonthlyFrequency)
	assert.Equal(t, []CategoryCount{{"tax", 2}, {"audit", 1}}, summary.TopCategories)
}

func TestAnalyzeHistory_TopCategories(t *testing.T) {
	engine := newTestEngine(t, nil)

	bookings := make([]domain.Booking, 0)
	for i, c := range []string{"b", "a", "c", "d", "d", "c", "a"} {
		b := booking(int64(i), 1, at(monday, 9, 0), at(monday, 10, 0))
		b.Category = c
		bookings = append(bookings, b)
	}

	summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1}, bookings)
	require.NoError(t, err)

	// у a, c и d по два, b отбрасывается
	assert.Equal(t, []CategoryCount{{"a", 2}, {"c", 2}, {"d", 2}}, summary.TopCategories)
}

func TestAnalyzeHistory_SingleBooking(t *testing.T) {
	engine := newTestEngine(t, nil)

	summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1}, spread(1, 0, "tax", domain.UrgencyStandard))
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.MonthlyFrequency)
}

func TestAnalyzeHistory_NoBookings(t *testing.T) {
	engine := newTestEngine(t, nil)

	summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1}, nil)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalBookings)
	assert.Zero(t, summary.MonthlyFrequency)
	assert.Zero(t, summary.AverageDurationHours)
	assert.Empty(t, summary.TopCategories)
	assert.Empty(t, summary.Advisories)
}

func TestAnalyzeHistory_Advisories(t *testing.T) {
	engine := newTestEngine(t, nil)

	t.Run("long sessions", func(t *testing.T) {
		bookings := []domain.Booking{
			booking(1, 1, at(monday, 9, 0), at(monday, 13, 0)),
			booking(2, 1, at(monday.AddDate(0, 0, 60), 9, 0), at(monday.AddDate(0, 0, 60), 12, 0)),
		}
		summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1}, bookings)
		require.NoError(t, err)
		assert.True(t, summary.HasAdvisory(AdvisoryLongSessions))
	})

	t.Run("three hours on average is not flagged", func(t *testing.T) {
		bookings := []domain.Booking{booking(1, 1, at(monday, 9, 0), at(monday, 12, 0))}
		summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1}, bookings)
		require.NoError(t, err)
		assert.False(t, summary.HasAdvisory(AdvisoryLongSessions))
	})

	t.Run("urgent share", func(t *testing.T) {
		bookings := spread(10, 300, "tax", domain.UrgencyStandard)
		for i := 0; i < 3; i++ {
			bookings[i].Urgency = domain.UrgencyUrgent
		}
		summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1}, bookings)
		require.NoError(t, err)
		assert.InDelta(t, 0.3, summary.ElevatedShare, 1e-9)
		assert.False(t, summary.HasAdvisory(AdvisoryFrequentRush))

		bookings[3].Urgency = domain.UrgencyEmergency
		summary, err = engine.AnalyzeHistory(&domain.Client{ID: 1}, bookings)
		require.NoError(t, err)
		assert.True(t, summary.HasAdvisory(AdvisoryFrequentRush))
	})

	t.Run("volume threshold", func(t *testing.T) {
		summary, err := engine.AnalyzeHistory(&domain.Client{ID: 1, TotalSpent: 10000}, nil)
		require.NoError(t, err)
		assert.False(t, summary.HasAdvisory(AdvisoryHighVolume))

		summary, err = engine.AnalyzeHistory(&domain.Client{ID: 1, TotalSpent: 10000.01}, nil)
		require.NoError(t, err)
		assert.True(t, summary.HasAdvisory(AdvisoryHighVolume))
	})

	t.Run("custom thresholds", func(t *testing.T) {
		strict := newTestEngine(t, func(cfg *Config) {
			cfg.History = HistoryThresholds{
				MaxMonthlyFrequency:  1,
				MaxAverageHours:      0.5,
				MaxElevatedShare:     0,
				VolumeSpendThreshold: 100,
			}
		})
		bookings := spread(2, 10, "tax", domain.UrgencyUrgent)

		summary, err := strict.AnalyzeHistory(&domain.Client{ID: 1, TotalSpent: 500}, bookings)
		require.NoError(t, err)
		assert.Len(t, summary.Advisories, 4)
	})
}

func TestAnalyzeHistory_NilClient(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.AnalyzeHistory(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
