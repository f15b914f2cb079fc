package validate

import (
	"fmt"
	"time"
)

// DefaultMaxBackwardDays is how far back a submitted calendar date may lie
// when no explicit window is configured.
const DefaultMaxBackwardDays = 180

// IsoDate bounds a calendar date to a backward window ending today.
//
// MaxBackwardDays is the size of the window in days; a date exactly at the
// boundary is still accepted, only strictly older dates fail. Now is the
// clock used to compute "today" (UTC civil date) and defaults to time.Now;
// tests inject a fixed clock.
type IsoDate struct {
	MaxBackwardDays int
	Now             func() time.Time
}

// NewIsoDate returns an IsoDate validator with the given window, falling
// back to DefaultMaxBackwardDays when days is zero or negative.
func NewIsoDate(days int) IsoDate {
	if days <= 0 {
		days = DefaultMaxBackwardDays
	}
	return IsoDate{MaxBackwardDays: days}
}

// Validate checks that value is neither in the future nor more than
// MaxBackwardDays before today. Only the civil date components of value are
// considered. It returns nil, ErrDateInFuture, or ErrDateTooFarBack (both
// wrapped with the offending date).
func (v IsoDate) Validate(value time.Time) error {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	today := civilDate(now().UTC())
	day := civilDate(value)
	if day.After(today) {
		return fmt.Errorf("%w: %s", ErrDateInFuture, day.Format("2006-01-02"))
	}
	if today.Sub(day) > time.Duration(v.MaxBackwardDays)*24*time.Hour {
		return fmt.Errorf("%w: %s", ErrDateTooFarBack, day.Format("2006-01-02"))
	}
	return nil
}

// civilDate truncates t to its calendar date at UTC midnight.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
