package leave

import "time"

// Leave days follow Turkish civil time. The fixed UTC+3 offset is an exact
// fallback for hosts without a timezone database, since Turkey abolished DST
// in 2016.
var location = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}()

// Location returns the civil timezone for leave day boundaries.
func Location() *time.Location {
	return location
}

// Year returns the Turkish civil year an instant falls in. A late-evening
// UTC instant on December 31 belongs to the next year locally.
func Year(t time.Time) int {
	return t.In(location).Year()
}
