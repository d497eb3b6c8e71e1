package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 9, 0, 0, 0, req.Date.Location())
	return &getAvailableSlots.Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		Category:        req.Category,
		Urgency:         domain.UrgencyStandard,
		DurationMinutes: 60,
		Slots: []domain.Slot{
			{Start: start, End: start.Add(time.Hour), Available: true, ResourceID: ptr.Ptr(int64(1)), ResourceName: "Alice", Price: ptr.Ptr(200.0)},
			{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
		},
	}, nil
}

func serve(uc *fakeUseCase, loc *time.Location, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/tenants/{tenantId}/slots", NewHandler(uc, loc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	uc := &fakeUseCase{}
	rec := serve(uc, moscow, "/tenants/10/slots?date=2030-06-03&category=tax&duration=60&urgency=urgent&clientId=5")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(10), uc.got.TenantID)
	assert.Equal(t, "tax", uc.got.Category)
	assert.Equal(t, 60, uc.got.DurationMinutes)
	assert.Equal(t, domain.UrgencyUrgent, uc.got.Urgency)
	require.NotNil(t, uc.got.ClientID)
	assert.Equal(t, int64(5), *uc.got.ClientID)
	// полночь по Москве
	assert.Equal(t, time.Date(2030, 6, 2, 21, 0, 0, 0, time.UTC), uc.got.Date.UTC())

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2030-06-03", resp.Date)
	assert.Equal(t, 1, resp.AvailableCount)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "2030-06-03T09:00:00+03:00", resp.Slots[0].Start)
	assert.Equal(t, 200.0, *resp.Slots[0].Price)
	assert.Nil(t, resp.Slots[1].ResourceID)
}

func TestHandle_Defaults(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, nil, "/tenants/10/slots?date=2030-06-03&category=tax")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Zero(t, uc.got.DurationMinutes)
	assert.Empty(t, uc.got.Urgency)
	assert.Nil(t, uc.got.ClientID)
	assert.Equal(t, time.UTC, uc.got.Date.Location())
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad tenant", "/tenants/x/slots?date=2030-06-03&category=tax", nil, http.StatusBadRequest},
		{"missing date", "/tenants/10/slots?category=tax", nil, http.StatusBadRequest},
		{"missing category", "/tenants/10/slots?date=2030-06-03", nil, http.StatusBadRequest},
		{"bad date", "/tenants/10/slots?date=03.06.2030&category=tax", nil, http.StatusBadRequest},
		{"bad duration", "/tenants/10/slots?date=2030-06-03&category=tax&duration=long", nil, http.StatusBadRequest},
		{"bad client", "/tenants/10/slots?date=2030-06-03&category=tax&clientId=-1", nil, http.StatusBadRequest},
		{"invalid input", "/tenants/10/slots?date=2030-06-03&category=plumbing", fmt.Errorf("%w: category", getAvailableSlots.ErrInvalidInput), http.StatusBadRequest},
		{"internal", "/tenants/10/slots?date=2030-06-03&category=tax", fmt.Errorf("%w: db", getAvailableSlots.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, nil, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
