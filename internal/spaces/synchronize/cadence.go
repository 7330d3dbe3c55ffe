package synchronize

import "time"

// DefaultCadenceMinutes is the minute multiple on which scheduled syncs run.
const DefaultCadenceMinutes = 5

// CadenceGuard gates periodic triggers to minutes that are a multiple of Minutes.
type CadenceGuard struct {
	Minutes int
}

// ShouldRun reports whether a trigger firing at moment should synchronize.
// A non-positive cadence falls back to DefaultCadenceMinutes.
func (guard CadenceGuard) ShouldRun(moment time.Time) bool {
	cadence := guard.Minutes
	if cadence <= 0 {
		cadence = DefaultCadenceMinutes
	}
	return moment.Minute()%cadence == 0
}
