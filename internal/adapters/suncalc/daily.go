package suncalc

import "time"

// DailyTimes are the three daily anchor instants derived from sunrise.
type DailyTimes struct {
	Morning time.Time
	Prep    time.Time
	Evening time.Time
}

// DailyFor derives the anchors from the sunrise on now's calendar day,
// shifted by per-anchor offsets in minutes. ok is false when there is
// no sunrise that day.
func DailyFor(now time.Time, lat, lng float64, morningOffset, prepOffset, eveOffset int) (DailyTimes, bool) {
	rise, ok := eventOn(now, lat, lng, true)
	if !ok {
		return DailyTimes{}, false
	}
	return DailyTimes{
		Morning: rise.Add(time.Duration(morningOffset) * time.Minute),
		Prep:    rise.Add(time.Duration(prepOffset) * time.Minute),
		Evening: rise.Add(time.Duration(eveOffset) * time.Minute),
	}, true
}
