package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	"github.com/m04kA/SMC-BookingEngine/internal/verticals"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

var (
	now    = time.Date(2030, time.June, 1, 8, 0, 0, 0, time.UTC)
	monday = time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
)

func at(hour, minute int) time.Time {
	return time.Date(monday.Year(), monday.Month(), monday.Day(), hour, minute, 0, 0, time.UTC)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// profileEngines собирает движок профессиональной вертикали, опционально меняя правила
type profileEngines struct {
	mutate func(r *domain.BookingRules)
}

func (p profileEngines) Engine(_ context.Context, tenantID int64, _ string) (*scheduling.Engine, error) {
	profile, err := verticals.Get(verticals.Professional)
	if err != nil {
		return nil, err
	}
	rules := profile.Rules
	rules.TenantID = tenantID
	if p.mutate != nil {
		p.mutate(&rules)
	}
	return profile.EngineWithRules(rules, fixedClock{now: now})
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

type fakeClients struct {
	client *domain.Client
}

func (f fakeClients) GetClientWithGracefulDegradation(context.Context, int64, int64) (*domain.Client, error) {
	if f.client == nil {
		return nil, errors.New("not found")
	}
	return f.client, nil
}

// memStore хранилище в памяти с проверкой, аналогичной exclusion constraint
type memStore struct {
	mu       sync.Mutex
	bookings []domain.Booking
	nextID   int64
	// barrier задерживает чтение, пока все конкурирующие запросы не получат снимок
	barrier *sync.WaitGroup
}

func (s *memStore) GetByResourcesInRange(_ context.Context, ids []int64, from, to time.Time) ([]domain.Booking, error) {
	s.mu.Lock()
	result := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		for _, id := range ids {
			if b.ResourceID == id && b.IsActive() && b.StartAt.Before(to) && b.BufferedEnd().After(from) {
				result = append(result, b)
			}
		}
	}
	s.mu.Unlock()

	if s.barrier != nil {
		s.barrier.Done()
		s.barrier.Wait()
	}
	return result, nil
}

func (s *memStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.ResourceID != booking.ResourceID || !b.Exclusive || !booking.Exclusive || !b.IsActive() {
			continue
		}
		if b.StartAt.Before(booking.BufferedEnd()) && booking.StartAt.Before(b.BufferedEnd()) {
			return nil, fmt.Errorf("%w: Create - exclusion violation", bookingRepo.ErrSlotNotAvailable)
		}
	}

	s.nextID++
	created := *booking
	created.ID = s.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	s.bookings = append(s.bookings, created)
	return &created, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// lockingTx сериализует транзакции целиком
type lockingTx struct {
	mu sync.Mutex
}

func (tx *lockingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

// passthroughTx не изолирует транзакции, конфликты ловит только хранилище
type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type exhaustedTx struct{}

func (exhaustedTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access", txmanager.ErrRetriesExhausted)
}

func lawyer(id int64, name string, rate, rating float64) domain.Resource {
	return domain.Resource{
		ID:         id,
		Name:       name,
		Profession: "lawyer",
		WorkingHours: domain.Uniform(domain.DaySchedule{
			IsOpen: true,
			Start:  types.MustTimeString("09:00"),
			End:    types.MustTimeString("18:00"),
		}, domain.Weekdays...),
		HourlyRate: rate,
		IsActive:   true,
		Rating:     rating,
	}
}

func validRequest() *Request {
	return &Request{
		TenantID:     1,
		ClientID:     42,
		Start:        at(10, 0),
		End:          at(11, 0),
		Category:     "Contract Review",
		ContactPhone: "+1 555 123 4567",
	}
}

type fixture struct {
	store   *memStore
	tx      TransactionManager
	engines profileEngines
	catalog staticCatalog
	clients ClientServiceClient
	metrics *metrics.Metrics
}

func newFixture(resources ...domain.Resource) *fixture {
	return &fixture{
		store:   &memStore{},
		tx:      &lockingTx{},
		catalog: staticCatalog{resources: resources},
		metrics: metrics.NewWithRegisterer("test", prometheus.NewRegistry()),
	}
}

func (f *fixture) useCase() *UseCase {
	return NewUseCase(f.store, f.engines, f.catalog, f.clients, f.tx, f.metrics, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, int64(1), b.TenantID)
	assert.Equal(t, int64(42), b.ClientID)
	assert.Equal(t, int64(1), b.ResourceID)
	assert.Equal(t, "Alice", b.ResourceName)
	assert.Equal(t, "contract review", b.Category)
	assert.Equal(t, domain.UrgencyStandard, b.Urgency)
	assert.Equal(t, domain.ModeInPerson, b.Mode)
	assert.Equal(t, 200.0, b.Price)
	assert.Equal(t, domain.DefaultBufferMinutes, b.BufferMinutes)
	assert.True(t, b.Exclusive)
	// the professional vertical requires a deposit, so the booking waits for it
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.True(t, resp.DepositRequired)
	assert.False(t, resp.Preferred)
	assert.Empty(t, resp.Warnings)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ValidationOutcomes.WithLabelValues("valid")))
}

func TestExecute_ConfirmedWithoutDeposit(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	f.engines = profileEngines{mutate: func(r *domain.BookingRules) { r.DepositRequired = false }}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
}

func TestExecute_RankingAndPreference(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4), lawyer(2, "Bob", 150, 5))

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Booking.ResourceID, "higher rating ranks first")

	req := validRequest()
	req.Start, req.End = at(14, 0), at(15, 0)
	req.PreferredResourceID = ptr.Ptr(int64(1))

	resp, err = f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Booking.ResourceID)
	assert.True(t, resp.Preferred)
}

func TestExecute_ClientDiscount(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	f.clients = fakeClients{client: &domain.Client{ID: 42, Tier: domain.TierGold}}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 180.0, resp.Booking.Price)
}

func TestExecute_ValidationFailed(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	req := validRequest()
	req.ContactPhone = "12"

	_, err := f.useCase().Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrValidationFailed)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.True(t, validationErr.Result.HasError(scheduling.CodeInvalidContact))

	assert.Zero(t, f.store.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ValidationOutcomes.WithLabelValues("invalid")))
}

func TestExecute_ConflictWithExistingBooking(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	f.store.bookings = []domain.Booking{{
		ID:            100,
		ResourceID:    1,
		StartAt:       at(11, 5),
		EndAt:         at(12, 0),
		BufferMinutes: 15,
		Exclusive:     true,
		Status:        domain.StatusConfirmed,
	}}
	f.store.nextID = 100

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingConflicts.WithLabelValues(conflictMatcher)))
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	f.store.bookings = []domain.Booking{{
		ID:         100,
		ResourceID: 1,
		StartAt:    at(10, 0),
		EndAt:      at(11, 0),
		Exclusive:  true,
		Status:     domain.StatusCancelledByClient,
	}}
	f.store.nextID = 100

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_DoubleBookingAllowed(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	f.engines = profileEngines{mutate: func(r *domain.BookingRules) { r.AllowDoubleBooking = true }}

	for i := 0; i < 3; i++ {
		resp, err := f.useCase().Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.False(t, resp.Booking.Exclusive)
	}
	assert.Equal(t, 3, f.store.count())
}

func TestExecute_RetriesExhausted(t *testing.T) {
	f := newFixture(lawyer(1, "Alice", 200, 4))
	f.tx = exhaustedTx{}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingConflicts.WithLabelValues(conflictSerialization)))
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"missing tenant", func(r *Request) { r.TenantID = 0 }},
		{"missing client", func(r *Request) { r.ClientID = -1 }},
		{"missing category", func(r *Request) { r.Category = " " }},
		{"unknown category", func(r *Request) { r.Category = "plumbing" }},
		{"unknown urgency", func(r *Request) { r.Urgency = "whenever" }},
		{"missing start", func(r *Request) { r.Start = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(lawyer(1, "Alice", 200, 4))
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase().Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Параллельные запросы на один слот единственного ресурса: ровно один успех.
func TestExecute_ConcurrentRequests(t *testing.T) {
	const workers = 10

	tests := []struct {
		name   string
		setup  func(f *fixture)
		reason string
	}{
		{
			name:   "serialized transactions re-run the matcher",
			setup:  func(f *fixture) { f.tx = &lockingTx{} },
			reason: conflictMatcher,
		},
		{
			name: "stale snapshots are stopped by the storage constraint",
			setup: func(f *fixture) {
				f.tx = passthroughTx{}
				f.store.barrier = &sync.WaitGroup{}
				f.store.barrier.Add(workers)
			},
			reason: conflictConstraint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(lawyer(1, "Alice", 200, 4))
			tt.setup(f)
			uc := f.useCase()

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
				conflicts int
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(clientID int64) {
					defer wg.Done()
					req := validRequest()
					req.ClientID = clientID

					_, err := uc.Execute(context.Background(), req)

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						succeeded++
					case errors.Is(err, ErrSlotNotAvailable):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(int64(i + 1))
			}
			wg.Wait()

			assert.Equal(t, 1, succeeded)
			assert.Equal(t, workers-1, conflicts)
			assert.Equal(t, 1, f.store.count())
			assert.Equal(t, float64(workers-1), testutil.ToFloat64(f.metrics.BookingConflicts.WithLabelValues(tt.reason)))
		})
	}
}

func TestLockWindow(t *testing.T) {
	from, to := lockWindow(at(0, 10), at(23, 55), 15*time.Minute)
	assert.Equal(t, monday.Add(-5*time.Minute), from)
	assert.Equal(t, monday.AddDate(0, 0, 1).Add(10*time.Minute), to)

	from, to = lockWindow(at(10, 0), at(11, 0), 15*time.Minute)
	assert.Equal(t, monday, from)
	assert.Equal(t, monday.AddDate(0, 0, 1), to)
}
