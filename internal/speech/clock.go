package speech

import (
	"sync"
	"time"
)

// recordingClock ticks while audio is being recognized. Elapsed time survives
// stop/start so pauses do not reset it; reset is explicit.
type recordingClock struct {
	interval time.Duration

	mu      sync.Mutex
	elapsed time.Duration
	stopCh  chan struct{}
	done    chan struct{}
}

func newRecordingClock(interval time.Duration) *recordingClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &recordingClock{interval: interval}
}

func (c *recordingClock) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed = 0
}

func (c *recordingClock) start(onTick func(time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopCh != nil {
		return
	}
	c.stopCh = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stopCh, c.done, onTick)
}

func (c *recordingClock) run(stop <-chan struct{}, done chan<- struct{}, onTick func(time.Duration)) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.elapsed += c.interval
			elapsed := c.elapsed
			c.mu.Unlock()
			if onTick != nil {
				onTick(elapsed)
			}
		}
	}
}

// stop cancels the ticker and waits for the last callback to return.
func (c *recordingClock) stop() {
	c.mu.Lock()
	stopCh, done := c.stopCh, c.done
	c.stopCh, c.done = nil, nil
	c.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-done
}

func (c *recordingClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
