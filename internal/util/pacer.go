package util

import "time"

// Pacer enforces the fixed self-throttle applied after every remote call.
// It is a quota courtesy, not a backoff: the delay runs whether the call
// succeeded or failed. A zero delay disables pacing (tests).
type Pacer struct {
	delay time.Duration
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait blocks for the configured delay.
func (p *Pacer) Wait() {
	if p == nil || p.delay <= 0 {
		return
	}
	time.Sleep(p.delay)
}
