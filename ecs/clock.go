package ecs

import "time"

// Clock is simulation time. It only moves when the world steps, so tests
// control time exactly.
type Clock struct {
	now   time.Duration
	delta time.Duration
	tick  uint64
}

// Now returns the simulation time elapsed since the world started.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Delta returns the duration of the current step.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// Tick returns how many steps have run.
func (c *Clock) Tick() uint64 {
	return c.tick
}

// Advance moves the clock forward. Negative durations are treated as zero.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.now += dt
	c.tick++
}
