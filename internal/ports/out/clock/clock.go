package clock

import "time"

// Clock supplies "now" to the application.
//
// Derived values such as a member's age compare calendar fields, so implementations should
// return times in the zone the team's dates are written in.
type Clock interface {
	Now() time.Time
}

// Func adapts an ordinary function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
