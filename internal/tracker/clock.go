package tracker

import (
	"sync"
	"time"
)

// Clock arms a periodic tick source. The returned cancel func stops further
// deliveries and is safe to call more than once.
type Clock interface {
	Every(interval time.Duration, tick func()) (cancel func())
}

// LoopClock delivers ticks as funcs on a channel so they run on the consumer's
// goroutine (a bubbletea Update loop or a select loop) instead of the ticker's.
type LoopClock struct {
	ticks chan func()
}

// NewLoopClock creates a LoopClock
func NewLoopClock() *LoopClock {
	return &LoopClock{ticks: make(chan func())}
}

// Ticks returns the channel the consumer must drain and run
func (c *LoopClock) Ticks() <-chan func() {
	return c.ticks
}

// Every starts a ticker that hands tick to the consumer once per interval
func (c *LoopClock) Every(interval time.Duration, tick func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			// Once cancelled, stop before waiting on the ticker again
			select {
			case <-done:
				return
			default:
			}

			select {
			case <-ticker.C:
				select {
				case c.ticks <- tick:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
