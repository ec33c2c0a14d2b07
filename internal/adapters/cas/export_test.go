package cas

import "time"

// SetClock replaces the clock used to timestamp records.
func (r *Recorder) SetClock(now func() time.Time) {
	r.now = now
}
