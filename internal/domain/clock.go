package domain

import "github.com/jonboulle/clockwork"

// clock stamps ProcessedAt on predictions. Tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used to stamp predictions. Pass nil to
// restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}
