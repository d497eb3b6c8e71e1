package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/internal/verticals"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

var (
	now    = time.Date(2030, time.June, 1, 8, 0, 0, 0, time.UTC)
	monday = time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

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
	return profile.Engine(fixedClock{now: now})
}

type staticCatalog struct {
	resources []domain.Resource
	rooms     []domain.Room
}

func (c staticCatalog) Pool(context.Context, int64) ([]domain.Resource, error) {
	return c.resources, nil
}

func (c staticCatalog) Rooms(context.Context, int64) ([]domain.Room, error) {
	return c.rooms, nil
}

func catalog(rooms ...domain.Room) staticCatalog {
	return staticCatalog{
		resources: []domain.Resource{{
			ID:         1,
			Name:       "Alice",
			Profession: "lawyer",
			WorkingHours: domain.Uniform(domain.DaySchedule{
				IsOpen: true,
				Start:  types.MustTimeString("09:00"),
				End:    types.MustTimeString("18:00"),
			}, domain.Weekdays...),
			HourlyRate: 200,
			IsActive:   true,
		}},
		rooms: rooms,
	}
}

func request() *Request {
	return &Request{
		TenantID: 1,
		Booking: domain.BookingRequest{
			Start:        monday.Add(10 * time.Hour),
			End:          monday.Add(11 * time.Hour),
			Category:     "contract review",
			ContactPhone: "+1 555 123 4567",
		},
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		rooms   []domain.Room
		valid   bool
		outcome string
	}{
		{
			name:    "valid",
			valid:   true,
			outcome: "valid",
		},
		{
			name:    "hourly billing without estimate warns",
			mutate:  func(r *Request) { r.Booking.BillingMode = domain.BillingHourly },
			valid:   true,
			outcome: "valid_with_warnings",
		},
		{
			name:    "remote without a video room",
			mutate:  func(r *Request) { r.Booking.Mode = domain.ModeRemote },
			rooms:   []domain.Room{{ID: 1, Name: "Room A", IsActive: true}},
			outcome: "invalid",
		},
		{
			name:    "outside business hours",
			mutate:  func(r *Request) { r.Booking.Start, r.Booking.End = monday.Add(19*time.Hour), monday.Add(20*time.Hour) },
			outcome: "invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
			uc := NewUseCase(profileEngines{}, catalog(tt.rooms...), nil, m, nopLogger{})

			req := request()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			resp, err := uc.Execute(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, resp.Result.IsValid)
			assert.True(t, resp.Result.DepositRequired)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationOutcomes.WithLabelValues(tt.outcome)))
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(profileEngines{}, catalog(), nil, nil, nopLogger{})

	req := request()
	req.Booking.Category = "plumbing"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request()
	req.TenantID = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
