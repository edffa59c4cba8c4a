package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharadol/sport-booking-backend/internal/field"
)

// fakeFieldService serves fields from memory; only lookups are used here.
type fakeFieldService struct {
	fields map[string]*field.Field
}

func (s *fakeFieldService) GetByID(ctx context.Context, id string) (*field.Field, error) {
	f, ok := s.fields[id]
	if !ok {
		return nil, field.ErrNotFound
	}
	return f, nil
}

func (s *fakeFieldService) Create(ctx context.Context, req field.CreateRequest) (*field.Field, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *fakeFieldService) List(ctx context.Context, filter field.Filter) ([]*field.Field, int, error) {
	return nil, 0, fmt.Errorf("not implemented")
}

func (s *fakeFieldService) Update(ctx context.Context, id string, req field.UpdateRequest) (*field.Field, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *fakeFieldService) Delete(ctx context.Context, id string) error {
	return fmt.Errorf("not implemented")
}

func (s *fakeFieldService) SetImage(ctx context.Context, id string, content io.Reader) (*field.Field, error) {
	return nil, fmt.Errorf("not implemented")
}

// memRepo is an in-memory booking Repository.
type memRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: make(map[string]*Booking)}
}

func (r *memRepo) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt

	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *memRepo) ListByFieldDate(ctx context.Context, fieldID string, date time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		if b.FieldID == fieldID && b.BookingDate.Equal(date) {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != from {
		return ErrInvalidTransition
	}
	b.Status = to
	return nil
}

const testFieldID = "2a0e8a39-4a3e-4a6f-9a53-0a1d9ec1a001"

func newTestService(t *testing.T) (Service, *memRepo) {
	t.Helper()

	fields := &fakeFieldService{fields: map[string]*field.Field{
		testFieldID: {
			ID:           testFieldID,
			Name:         "Main Football Field",
			SportType:    field.SportFootball,
			Capacity:     22,
			PricePerHour: decimal.NewFromInt(200),
			Status:       field.StatusAvailable,
		},
	}}

	repo := newMemRepo()
	return NewService(repo, fields), repo
}

var (
	testNow  = time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func createReq(t *testing.T, start, end string) CreateRequest {
	t.Helper()
	return CreateRequest{
		UserID:    "user-1",
		FieldID:   testFieldID,
		Date:      testDate,
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createReq(t, "10:00", "12:00"), testNow)
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.True(t, b.Hours.Equal(decimal.NewFromInt(2)), "hours = %s", b.Hours)
	assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(400)), "total = %s", b.TotalPrice)
}

func TestCreateBookingConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, createReq(t, "10:00", "12:00"), testNow)
	require.NoError(t, err)

	// Confirmed bookings block just like pending ones.
	_, err = svc.Confirm(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq(t, "11:00", "13:00"), testNow)
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Touching the existing booking's end is not a conflict.
	_, err = svc.Create(ctx, createReq(t, "12:00", "13:00"), testNow)
	assert.NoError(t, err)
}

func TestCreateBookingAfterCancel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, createReq(t, "10:00", "12:00"), testNow)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq(t, "11:00", "13:00"), testNow)
	require.ErrorIs(t, err, ErrTimeConflict)

	// Cancelled bookings stop constraining the slot.
	_, err = svc.Cancel(ctx, first.ID, "user-1", false)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createReq(t, "11:00", "13:00"), testNow)
	assert.NoError(t, err)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("Inverted range", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq(t, "13:00", "12:00"), testNow)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("Past date", func(t *testing.T) {
		req := createReq(t, "10:00", "12:00")
		req.Date = time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC)
		_, err := svc.Create(ctx, req, testNow)
		assert.ErrorIs(t, err, ErrDatePast)
	})

	t.Run("Same-day booking allowed", func(t *testing.T) {
		req := createReq(t, "10:00", "12:00")
		req.Date = time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
		_, err := svc.Create(ctx, req, testNow)
		assert.NoError(t, err)
	})

	t.Run("Unknown field", func(t *testing.T) {
		req := createReq(t, "10:00", "12:00")
		req.FieldID = "b54dd559-3a8c-4f0e-8be7-000000000000"
		_, err := svc.Create(ctx, req, testNow)
		assert.ErrorIs(t, err, ErrFieldNotFound)
	})
}

func TestCreateBookingFieldMaintenance(t *testing.T) {
	svc, _ := newTestService(t)
	fieldSvc := svc.(*service).fieldService.(*fakeFieldService)
	fieldSvc.fields[testFieldID].Status = field.StatusMaintenance

	_, err := svc.Create(context.Background(), createReq(t, "10:00", "12:00"), testNow)
	assert.ErrorIs(t, err, ErrFieldUnavailable)
}

func TestAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mk := func(start, end string) *Booking {
		b, err := svc.Create(ctx, createReq(t, start, end), testNow)
		require.NoError(t, err)
		return b
	}

	late := mk("14:00", "15:00")
	mk("09:00", "10:00")
	cancelled := mk("11:00", "12:00")
	_, err := svc.Cancel(ctx, cancelled.ID, "user-1", false)
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, late.ID)
	require.NoError(t, err)

	slots, err := svc.Availability(ctx, testFieldID, testDate)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, StatusPending, slots[0].Status)
	assert.Equal(t, "14:00", slots[1].StartTime.String())
	assert.Equal(t, StatusConfirmed, slots[1].Status)
}

func TestLifecycleTransitions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createReq(t, "10:00", "12:00"), testNow)
	require.NoError(t, err)

	t.Run("Stranger cannot cancel", func(t *testing.T) {
		_, err := svc.Cancel(ctx, b.ID, "someone-else", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Cannot complete a pending booking", func(t *testing.T) {
		_, err := svc.Complete(ctx, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Confirm then complete", func(t *testing.T) {
		confirmed, err := svc.Confirm(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)

		// Confirming twice is illegal.
		_, err = svc.Confirm(ctx, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		completed, err := svc.Complete(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, completed.Status)
	})

	t.Run("Completed is terminal", func(t *testing.T) {
		_, err := svc.Cancel(ctx, b.ID, "user-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Cancelling twice fails", func(t *testing.T) {
		other, err := svc.Create(ctx, createReq(t, "15:00", "16:00"), testNow)
		require.NoError(t, err)

		// Admin may cancel someone else's booking.
		_, err = svc.Cancel(ctx, other.ID, "admin-1", true)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, other.ID, "user-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	const attempts = 16

	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := createReq(t, "10:00", "12:00")
			req.UserID = fmt.Sprintf("user-%d", i)
			_, err := svc.Create(ctx, req, testNow)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrTimeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one concurrent request may win the slot")
	assert.Equal(t, attempts-1, conflicts)

	stored, err := repo.ListByFieldDate(ctx, testFieldID, testDate)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestConcurrentCreateDisjointSlots(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := createReq(t, TimeOfDay(9*60+i*60).String(), TimeOfDay(10*60+i*60).String())
			req.UserID = fmt.Sprintf("user-%d", i)
			_, err := svc.Create(ctx, req, testNow)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	stored, err := repo.ListByFieldDate(ctx, testFieldID, testDate)
	require.NoError(t, err)
	assert.Len(t, stored, attempts)

	// Persisted intervals must be pairwise disjoint.
	intervals := ConflictingIntervals(stored, "")
	for i := 1; i < len(intervals); i++ {
		assert.False(t, intervals[i-1].Overlaps(intervals[i]),
			"stored bookings %v and %v overlap", intervals[i-1], intervals[i])
	}
}
