package testutil

import (
	"context"
	"time"

	"clubswim/pkg/requestcontext"
)

// MeetDay is the fixed "now" used by tests that derive participant ages.
var MeetDay = time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

// MeetContext returns a background context pinned to MeetDay.
func MeetContext() context.Context {
	return requestcontext.WithTime(context.Background(), MeetDay)
}

// FixedClock returns a clock for requesttime.WithClock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
