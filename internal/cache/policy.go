package cache

import "time"

// MaxAge is the freshness window in calendar days.
const MaxAge = 7

// IsFresh reports whether a snapshot cached at timestamp is still valid at
// now. Days are added on the calendar of now's location, so a daylight
// saving shift does not move the boundary and the location a store hands
// back with timestamp has no effect. Exactly MaxAge days later the snapshot
// has expired.
func IsFresh(timestamp, now time.Time) bool {
	return now.Before(timestamp.In(now.Location()).AddDate(0, 0, MaxAge))
}
