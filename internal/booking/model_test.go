package booking

import "testing"

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},

		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusBlocksSlot(t *testing.T) {
	// Everything except cancelled occupies its slot; completed bookings are
	// past truth and keep blocking.
	blocking := []Status{StatusPending, StatusConfirmed, StatusCompleted}
	for _, s := range blocking {
		if !s.BlocksSlot() {
			t.Errorf("%s should block its slot", s)
		}
	}
	if StatusCancelled.BlocksSlot() {
		t.Error("cancelled bookings should free their slot")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := TimeOfDay(570).String(); got != "09:30" {
		t.Errorf("String() = %q, want %q", got, "09:30")
	}
	if got := TimeOfDay(0).String(); got != "00:00" {
		t.Errorf("String() = %q, want %q", got, "00:00")
	}
}
