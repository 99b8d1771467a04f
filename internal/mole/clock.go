package mole

import (
	"sync"
	"time"
)

// TickInterval is the only interval the session is designed for: one tick
// is one second of countdown or play time.
const TickInterval = time.Second

// Clock delivers periodic ticks. The returned cancel func stops delivery and
// is safe to call more than once, including from inside fn.
type Clock interface {
	Subscribe(interval time.Duration, fn func()) (cancel func())
}

// TickerClock is a Clock backed by time.Ticker. Each subscription runs its
// own goroutine.
type TickerClock struct{}

// Subscribe calls fn every interval until cancel is called.
func (TickerClock) Subscribe(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// ManualClock fires ticks only when Advance is called. Useful in tests and
// for driving a session from something other than wall time.
type ManualClock struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewManualClock creates a clock with no subscribers.
func NewManualClock() *ManualClock {
	return &ManualClock{subs: make(map[int]func())}
}

// Subscribe registers fn. The interval is ignored; every Advance is one tick.
func (c *ManualClock) Subscribe(_ time.Duration, fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Advance fires n ticks on every current subscriber, synchronously.
func (c *ManualClock) Advance(n int) {
	for i := 0; i < n; i++ {
		c.mu.Lock()
		fns := make([]func(), 0, len(c.subs))
		for id := 0; id < c.nextID; id++ {
			if fn, ok := c.subs[id]; ok {
				fns = append(fns, fn)
			}
		}
		c.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (c *ManualClock) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
