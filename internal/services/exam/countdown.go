package exam

import (
	"context"
	"time"
)

// Countdown reports the remaining time every Interval until Total has elapsed.
type Countdown struct {
	Total    time.Duration
	Interval time.Duration
	OnTick   func(remaining time.Duration)
}

// Run blocks until the time is up (nil) or ctx is done (ctx.Err()). OnTick
// is called once at the start, after every interval, and with 0 at the end.
func (c Countdown) Run(ctx context.Context) error {
	start := time.Now()
	tick := func(remaining time.Duration) {
		if c.OnTick != nil {
			c.OnTick(max(remaining, 0))
		}
	}

	deadline := time.NewTimer(c.Total)
	defer deadline.Stop()
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick(c.Total)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			tick(0)
			return nil
		case <-ticker.C:
			tick(c.Total - time.Since(start))
		}
	}
}
