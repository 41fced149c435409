package timers

import (
	"sync"
	"time"
)

// Repeater runs fn on a fixed interval until stopped. It is the cancellable
// repeating-timer used by the round countdown and the match pollers: every
// owner must call Stop when its state exits so no timer outlives the state
// that started it.
type Repeater struct {
	stop chan struct{}
	once sync.Once
}

// Start launches the loop. With immediate set, fn runs once before the first
// interval elapses (the match join poll wants an instant first check).
func Start(interval time.Duration, immediate bool, fn func()) *Repeater {
	return StartSelf(interval, immediate, func(*Repeater) { fn() })
}

// StartSelf is Start with the repeater handed to fn, so a callback that has
// seen what it was waiting for can cancel its own loop.
func StartSelf(interval time.Duration, immediate bool, fn func(r *Repeater)) *Repeater {
	r := &Repeater{stop: make(chan struct{})}

	go func() {
		if immediate {
			fn(r)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				fn(r)
			}
		}
	}()

	return r
}

// Stop cancels the loop. Safe to call more than once and from fn itself.
func (r *Repeater) Stop() {
	r.once.Do(func() { close(r.stop) })
}
