package booking

import "sort"

// Interval is a half-open [Start, End) slice of a day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps is the standard half-open interval overlap test. Touching
// endpoints (one interval ending exactly where another starts) do not
// overlap, which is what allows back-to-back bookings.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Valid reports whether the interval is non-empty.
func (iv Interval) Valid() bool {
	return iv.Start < iv.End
}

// ConflictingIntervals extracts the intervals that constrain a new booking
// from a day's bookings: everything except cancelled bookings, minus the
// booking identified by excludeID (used when re-validating an edit so a
// booking does not conflict with itself). The result is sorted by start time.
func ConflictingIntervals(bookings []*Booking, excludeID string) []Interval {
	var intervals []Interval
	for _, b := range bookings {
		if !b.Status.BlocksSlot() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		intervals = append(intervals, b.Slot())
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
	return intervals
}

// ActiveSlots returns the booked slots of a day that count toward
// availability (pending and confirmed bookings), ordered by start time.
func ActiveSlots(bookings []*Booking) []BookedSlot {
	var slots []BookedSlot
	for _, b := range bookings {
		if !b.Status.Active() {
			continue
		}
		slots = append(slots, BookedSlot{
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    b.Status,
		})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}

// CheckSlotFree validates that the candidate interval does not overlap any of
// the given intervals, which must be sorted by start time. It binary-searches
// the insertion point and inspects only the neighbours: with non-overlapping
// existing intervals, the only possible conflicts are the predecessor running
// past the candidate's start and the successor starting before its end.
// Returns ErrTimeConflict on overlap, nil otherwise.
func CheckSlotFree(sorted []Interval, candidate Interval) error {
	if !candidate.Valid() {
		return ErrInvalidTimeRange
	}

	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Start >= candidate.Start
	})

	if i > 0 && sorted[i-1].Overlaps(candidate) {
		return ErrTimeConflict
	}
	if i < len(sorted) && sorted[i].Overlaps(candidate) {
		return ErrTimeConflict
	}
	return nil
}
