// Package calendar computes date ranges relative to "now" and renders dates
// with the template mini-language and Chinese phrasing used across the
// publishing front end: formatted timestamps, "N分钟前" relative phrasing,
// week numbers, quarters and time-of-day greetings.
//
// All range operations hang off Tools so the clock and location are
// injectable. The zero Tools value uses the wall clock and time.Local.
package calendar

import "time"

// OneDay is the fixed day length used by the offset arithmetic in Day and
// LaterDay. Range operations step by calendar days instead.
const OneDay = 24 * time.Hour

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Useful for tests and for
// evaluating ranges "as of" a past date.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// Tools evaluates relative ranges against a clock in a fixed location.
type Tools struct {
	Clock    Clock
	Location *time.Location
}

// New returns Tools reading clock in loc. A nil clock means the wall clock;
// a nil loc means time.Local.
func New(clock Clock, loc *time.Location) *Tools {
	return &Tools{Clock: clock, Location: loc}
}

// Now returns the clock's current time in the Tools location.
func (t *Tools) Now() time.Time {
	var now time.Time
	if t == nil || t.Clock == nil {
		now = time.Now()
	} else {
		now = t.Clock.Now()
	}
	return now.In(t.location())
}

func (t *Tools) location() *time.Location {
	if t == nil || t.Location == nil {
		return time.Local
	}
	return t.Location
}
