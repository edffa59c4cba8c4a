package booking

import (
	"errors"
	"reflect"
	"testing"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestConflictingIntervals(t *testing.T) {
	bookings := []*Booking{
		{ID: "b3", StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "16:00"), Status: StatusCompleted},
		{ID: "b1", StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Status: StatusPending},
		{ID: "b4", StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "09:00"), Status: StatusCancelled},
		{ID: "b2", StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "13:00"), Status: StatusConfirmed},
	}

	t.Run("Cancelled excluded, rest sorted by start", func(t *testing.T) {
		got := ConflictingIntervals(bookings, "")
		want := []Interval{
			iv(t, "10:00", "12:00"),
			iv(t, "12:00", "13:00"),
			iv(t, "14:00", "16:00"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ConflictingIntervals() = %v, want %v", got, want)
		}
	})

	t.Run("Exclude ID removes the booking itself", func(t *testing.T) {
		got := ConflictingIntervals(bookings, "b2")
		want := []Interval{
			iv(t, "10:00", "12:00"),
			iv(t, "14:00", "16:00"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ConflictingIntervals() = %v, want %v", got, want)
		}
	})
}

func TestActiveSlots(t *testing.T) {
	bookings := []*Booking{
		{StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "16:00"), Status: StatusConfirmed},
		{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Status: StatusPending},
		{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "09:00"), Status: StatusCancelled},
		{StartTime: mustTime(t, "17:00"), EndTime: mustTime(t, "18:00"), Status: StatusCompleted},
	}

	got := ActiveSlots(bookings)
	want := []BookedSlot{
		{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Status: StatusPending},
		{StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "16:00"), Status: StatusConfirmed},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ActiveSlots() = %v, want %v", got, want)
	}

	// No two returned slots may overlap.
	for i := 1; i < len(got); i++ {
		a := Interval{Start: got[i-1].StartTime, End: got[i-1].EndTime}
		b := Interval{Start: got[i].StartTime, End: got[i].EndTime}
		if a.Overlaps(b) {
			t.Errorf("ActiveSlots() returned overlapping slots %v and %v", a, b)
		}
	}
}

func TestCheckSlotFree(t *testing.T) {
	day := []Interval{
		{Start: mustTime(t, "09:00"), End: mustTime(t, "10:00")},
		{Start: mustTime(t, "12:00"), End: mustTime(t, "14:00")},
		{Start: mustTime(t, "16:00"), End: mustTime(t, "17:00")},
	}

	tests := []struct {
		name      string
		existing  []Interval
		candidate Interval
		wantErr   error
	}{
		{
			name:      "Empty day is free",
			existing:  nil,
			candidate: iv(t, "10:00", "12:00"),
			wantErr:   nil,
		},
		{
			name:      "Gap between bookings is free",
			existing:  day,
			candidate: iv(t, "10:30", "11:30"),
			wantErr:   nil,
		},
		{
			name:      "Full overlap conflicts",
			existing:  day,
			candidate: iv(t, "12:00", "14:00"),
			wantErr:   ErrTimeConflict,
		},
		{
			name:      "Partial overlap at start conflicts",
			existing:  day,
			candidate: iv(t, "13:00", "15:00"),
			wantErr:   ErrTimeConflict,
		},
		{
			name:      "Partial overlap at end conflicts",
			existing:  day,
			candidate: iv(t, "11:00", "12:30"),
			wantErr:   ErrTimeConflict,
		},
		{
			name:      "Candidate swallowing a booking conflicts",
			existing:  day,
			candidate: iv(t, "11:00", "15:00"),
			wantErr:   ErrTimeConflict,
		},
		{
			name:      "Candidate inside a booking conflicts",
			existing:  day,
			candidate: iv(t, "12:30", "13:30"),
			wantErr:   ErrTimeConflict,
		},
		{
			name:      "Touching an end is not a conflict",
			existing:  day,
			candidate: iv(t, "14:00", "16:00"),
			wantErr:   nil,
		},
		{
			name:      "Touching a start is not a conflict",
			existing:  day,
			candidate: iv(t, "17:00", "18:00"),
			wantErr:   nil,
		},
		{
			name:      "Inverted range is invalid",
			existing:  day,
			candidate: iv(t, "13:00", "12:00"),
			wantErr:   ErrInvalidTimeRange,
		},
		{
			name:      "Zero-length range is invalid",
			existing:  day,
			candidate: iv(t, "12:00", "12:00"),
			wantErr:   ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlotFree(tt.existing, tt.candidate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckSlotFree() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
