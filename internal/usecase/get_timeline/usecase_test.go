package get_timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	resourceService "github.com/m04kA/SMC-BookingEngine/internal/service/resources"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type bookings map[int64]domain.Booking

func (b bookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := b[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &booking, nil
}

type resources struct {
	err error
}

func (r resources) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Resource{ID: id, Name: "Alice"}, nil
}

var start = time.Date(2030, time.June, 3, 10, 0, 0, 0, time.UTC)

func store() bookings {
	return bookings{
		1: {
			ID:           1,
			ResourceID:   7,
			ResourceName: "Dr. Smith",
			Category:     "audit",
			StartAt:      start,
			EndAt:        start.Add(time.Hour),
			FollowUp:     true,
		},
	}
}

func TestExecute(t *testing.T) {
	uc := NewUseCase(store(), resources{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 4)

	assert.Equal(t, scheduling.ActivityPreparation, resp.Activities[0].Kind)
	assert.Equal(t, scheduling.ActivityFollowUp, resp.Activities[3].Kind)
	assert.Equal(t, "Alice", resp.Activities[0].ResourceName)
}

func TestExecute_ResourceGone(t *testing.T) {
	uc := NewUseCase(store(), resources{err: resourceService.ErrResourceNotFound}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Smith", resp.Activities[0].ResourceName)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(store(), resources{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 2})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc = NewUseCase(store(), resources{err: errors.New("timeout")}, nopLogger{})
	_, err = uc.Execute(context.Background(), &Request{BookingID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
