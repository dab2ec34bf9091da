package booking

import (
	"iter"
	"time"
)

// SlotStep is the spacing of candidate start times.
const SlotStep = 15 * time.Minute

// SlotSequence yields every start time t on the grid open, open+SlotStep, ...
// such that [t, t+duration) fits inside [open, close), overlaps no busy
// interval and t is not before notBefore. The sequence is computed lazily and
// can be ranged over any number of times.
func SlotSequence(open, close time.Time, duration time.Duration, busy []Interval, notBefore time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if duration <= 0 {
			return
		}
		for t := open; !t.Add(duration).After(close); t = t.Add(SlotStep) {
			if t.Before(notBefore) {
				continue
			}
			if overlapsAny(Interval{Start: t, Duration: duration}, busy) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
