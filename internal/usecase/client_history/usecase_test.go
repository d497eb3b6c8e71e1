package client_history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/integrations/clientservice"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/internal/verticals"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type profileEngines struct{}

func (profileEngines) Engine(context.Context, int64, string) (*scheduling.Engine, error) {
	profile, err := verticals.Get(verticals.Professional)
	if err != nil {
		return nil, err
	}
	return profile.Engine(nil)
}

type staticRepo struct {
	bookings []domain.Booking
	err      error
}

func (r staticRepo) GetByClientID(context.Context, int64, int64) ([]domain.Booking, error) {
	return r.bookings, r.err
}

type fakeClients struct {
	client *domain.Client
	err    error
}

func (f fakeClients) GetClientWithGracefulDegradation(context.Context, int64, int64) (*domain.Client, error) {
	return f.client, f.err
}

func history() []domain.Booking {
	start := time.Date(2030, time.January, 7, 10, 0, 0, 0, time.UTC)
	return []domain.Booking{
		{ID: 1, Category: "audit", Urgency: domain.UrgencyStandard, StartAt: start, EndAt: start.Add(time.Hour), Status: domain.StatusCompleted},
		{ID: 2, Category: "audit", Urgency: domain.UrgencyUrgent, StartAt: start.AddDate(0, 0, 7), EndAt: start.AddDate(0, 0, 7).Add(2 * time.Hour), Status: domain.StatusCompleted},
		{ID: 3, Category: "payroll", Urgency: domain.UrgencyStandard, StartAt: start.AddDate(0, 0, 14), EndAt: start.AddDate(0, 0, 14).Add(time.Hour), Status: domain.StatusCancelledByClient},
	}
}

func TestExecute(t *testing.T) {
	clients := fakeClients{client: &domain.Client{ID: 9, Tier: domain.TierGold, TotalSpent: 12000}}
	uc := NewUseCase(staticRepo{bookings: history()}, profileEngines{}, clients, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ClientID: 9})
	require.NoError(t, err)

	assert.True(t, resp.ProfileAvailable)
	assert.Equal(t, 3, resp.Summary.TotalBookings, "cancelled bookings are part of the history")
	assert.Equal(t, 4.0, resp.Summary.TotalHours)
	assert.Equal(t, 12000.0, resp.Summary.TotalSpend)
	assert.Equal(t, []scheduling.CategoryCount{
		{Category: "audit", Count: 2},
		{Category: "payroll", Count: 1},
	}, resp.Summary.TopCategories)
	assert.InDelta(t, 1.0/3, resp.Summary.ElevatedShare, 1e-9)
	assert.True(t, resp.Summary.HasAdvisory(scheduling.AdvisoryHighVolume))
	assert.True(t, resp.Summary.HasAdvisory(scheduling.AdvisoryFrequentRush))
}

func TestExecute_WithoutProfile(t *testing.T) {
	clients := fakeClients{err: clientservice.ErrServiceDegraded}
	uc := NewUseCase(staticRepo{bookings: history()}, profileEngines{}, clients, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ClientID: 9})
	require.NoError(t, err)

	assert.False(t, resp.ProfileAvailable)
	assert.Equal(t, int64(9), resp.Summary.ClientID)
	assert.Zero(t, resp.Summary.TotalSpend)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(staticRepo{err: errors.New("timeout")}, profileEngines{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, ClientID: 9})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.Execute(context.Background(), &Request{TenantID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
