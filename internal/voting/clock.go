package voting

import (
	"sync"
	"time"
)

// Tick is one observation of the voting window.
type Tick struct {
	Open      bool
	Remaining time.Duration
}

// Clock re-evaluates the voting window every second and reports each
// observation to a callback. One Clock per mounted view; Stop must be
// called on teardown.
type Clock struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewClock() *Clock {
	return &Clock{interval: time.Second, now: time.Now}
}

// Start begins ticking. The callback fires once immediately and then on
// every interval until Stop. Starting a running clock is a no-op.
func (c *Clock) Start(onTick func(Tick)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	stop := c.stop

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		open, remaining := Window(c.now())
		onTick(Tick{Open: open, Remaining: remaining})
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				open, remaining := Window(c.now())
				onTick(Tick{Open: open, Remaining: remaining})
			}
		}
	}()
}

// Stop cancels the ticker and waits for the last callback to finish.
func (c *Clock) Stop() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	c.wg.Wait()
}
