package booking

import (
	"context"
	"errors"
	"time"

	"github.com/tharadol/sport-booking-backend/internal/field"
)

// CreateRequest carries a candidate booking. Date is a calendar day; the
// requested slot is the half-open interval [StartTime, EndTime).
type CreateRequest struct {
	UserID    string
	FieldID   string
	Date      time.Time
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Note      string
}

type Service interface {
	// Create validates the candidate slot against the field's bookings for
	// that day and persists a pending booking. The reference time is passed
	// explicitly so date checks are testable.
	Create(ctx context.Context, req CreateRequest, now time.Time) (*Booking, error)

	// Availability returns the occupied slots of a field on a date, ordered
	// by start time. Read-only; runs without taking the slot lock.
	Availability(ctx context.Context, fieldID string, date time.Time) ([]BookedSlot, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel transitions an active booking to cancelled. Only the booking's
	// owner or an admin may cancel.
	Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error)

	// Confirm transitions pending to confirmed (admin operation).
	Confirm(ctx context.Context, id string) (*Booking, error)

	// Complete transitions confirmed to completed (admin operation).
	Complete(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo         Repository
	fieldService field.Service
	locks        *slotLocker
}

func NewService(repo Repository, fieldService field.Service) Service {
	return &service{
		repo:         repo,
		fieldService: fieldService,
		locks:        newSlotLocker(),
	}
}

// day truncates a timestamp to its UTC calendar day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest, now time.Time) (*Booking, error) {
	candidate := Interval{Start: req.StartTime, End: req.EndTime}
	if !candidate.Valid() {
		return nil, ErrInvalidTimeRange
	}

	date := day(req.Date)
	if date.Before(day(now)) {
		return nil, ErrDatePast
	}

	f, err := s.fieldService.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, field.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	if !f.Bookable() {
		return nil, ErrFieldUnavailable
	}

	// Price is snapshotted before the critical section; it depends only on
	// the field's current rate and the slot length.
	hours := BillableHours(candidate)
	total := TotalPrice(hours, f.PricePerHour)

	// Serialise check-then-insert per (field, date) so two overlapping
	// requests cannot both pass the conflict check.
	release := s.locks.acquire(f.ID, date)
	defer release()

	existing, err := s.repo.ListByFieldDate(ctx, f.ID, date)
	if err != nil {
		return nil, err
	}

	if err := CheckSlotFree(ConflictingIntervals(existing, ""), candidate); err != nil {
		return nil, err
	}

	b := &Booking{
		UserID:      req.UserID,
		FieldID:     f.ID,
		FieldName:   f.Name,
		BookingDate: date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Hours:       hours,
		TotalPrice:  total,
		Status:      StatusPending,
		Note:        req.Note,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Availability(ctx context.Context, fieldID string, date time.Time) ([]BookedSlot, error) {
	if _, err := s.fieldService.GetByID(ctx, fieldID); err != nil {
		if errors.Is(err, field.ErrNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	bookings, err := s.repo.ListByFieldDate(ctx, fieldID, day(date))
	if err != nil {
		return nil, err
	}

	return ActiveSlots(bookings), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}

	return s.transition(ctx, b, StatusCancelled)
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, StatusConfirmed)
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, StatusCompleted)
}

func (s *service) transition(ctx context.Context, b *Booking, to Status) (*Booking, error) {
	if !b.Status.CanTransition(to) {
		return nil, ErrInvalidTransition
	}

	// Conditional update: fails if another request changed the status since
	// the read above.
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		return nil, err
	}

	b.Status = to
	return b, nil
}
