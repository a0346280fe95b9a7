package game

import "time"

// countdown keeps the text shown above the field. It only recomputes once per
// refresh interval, independent of the frame rate.
type countdown struct {
	target   time.Time
	interval time.Duration
	now      func() time.Time

	last time.Time
	text string
}

func newCountdown(target time.Time, interval time.Duration, now func() time.Time) *countdown {
	c := &countdown{target: target, interval: interval, now: now}
	c.refresh(now())
	return c
}

// update refreshes the text when due and reports whether it did.
func (c *countdown) update() bool {
	now := c.now()
	if now.Sub(c.last) < c.interval {
		return false
	}
	c.refresh(now)
	return true
}

func (c *countdown) refresh(now time.Time) {
	c.last = now
	left := c.target.Sub(now)
	if left <= 0 {
		c.text = "Hacking in progress  " + formatCountdown(0)
		return
	}
	c.text = "Starts in " + formatCountdown(left)
}

func (c *countdown) String() string { return c.text }
