package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tharadol/sport-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrFieldNotFound     = apperror.New(http.StatusNotFound, "field not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrDatePast          = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrFieldUnavailable  = apperror.New(http.StatusBadRequest, "field is under maintenance")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "invalid booking status transition")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions is the full booking state machine. cancelled and completed
// are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// BlocksSlot reports whether a booking in this status occupies its time slot.
// Only cancelled bookings free their slot; completed bookings are historical
// truth for past slots and stay in the conflict set.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled
}

// Active reports whether the booking still counts toward availability
// (pending or confirmed).
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Bookings occupy the half-open interval [start, end), so a booking ending
// at 12:00 never conflicts with one starting at 12:00.
type TimeOfDay int

const clockFormat = "15:04"

// DateFormat is the wire format for booking dates.
const DateFormat = "2006-01-02"

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(clockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Booking represents a reservation of a field for a time slot on a date.
// Hours and TotalPrice are computed once at creation time; the price is a
// snapshot of the field's hourly rate, never recomputed.
type Booking struct {
	ID          string // UUID
	UserID      string
	UserName    string
	FieldID     string
	FieldName   string
	BookingDate time.Time // calendar day, midnight UTC
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	Hours       decimal.Decimal
	TotalPrice  decimal.Decimal
	Status      Status
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slot returns the half-open interval this booking occupies.
func (b *Booking) Slot() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookedSlot is one occupied interval in an availability response.
type BookedSlot struct {
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Status    Status
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	FieldID  string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
