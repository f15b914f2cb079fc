package validate

import (
	"errors"
	"testing"
	"time"
)

// fixedClock pins "today" to 2020-06-15 12:00 UTC.
func fixedClock() time.Time {
	return time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestIsoDate_Boundaries(t *testing.T) {
	v := NewIsoDate(0) // default 180-day window
	v.Now = fixedClock
	today := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		value time.Time
		want  error
	}{
		{"today", today, nil},
		{"tomorrow", today.AddDate(0, 0, 1), ErrDateInFuture},
		{"window boundary", today.AddDate(0, 0, -180), nil},
		{"past the window", today.AddDate(0, 0, -181), ErrDateTooFarBack},
	}
	for _, tc := range cases {
		err := v.Validate(tc.value)
		if tc.want == nil && err != nil {
			t.Fatalf("%s: Validate(%v) = %v, want nil", tc.name, tc.value, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: Validate(%v) = %v, want %v", tc.name, tc.value, err, tc.want)
		}
	}
}

func TestIsoDate_CustomWindow(t *testing.T) {
	v := NewIsoDate(14)
	v.Now = fixedClock

	if err := v.Validate(fixedClock().AddDate(0, 0, -14)); err != nil {
		t.Fatalf("14 days back with 14-day window: %v", err)
	}
	if err := v.Validate(fixedClock().AddDate(0, 0, -15)); !errors.Is(err, ErrDateTooFarBack) {
		t.Fatalf("15 days back with 14-day window: %v, want ErrDateTooFarBack", err)
	}
}

func TestIsoDate_TimeOfDayIgnored(t *testing.T) {
	v := NewIsoDate(180)
	v.Now = fixedClock

	// Later on today's date is still "today", not the future.
	if err := v.Validate(time.Date(2020, 6, 15, 23, 59, 59, 0, time.UTC)); err != nil {
		t.Fatalf("end of today: %v, want nil", err)
	}
}
