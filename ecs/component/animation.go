package component

import "time"

type Direction string

const (
	North Direction = "north"
	East  Direction = "east"
	South Direction = "south"
	West  Direction = "west"
)

// FacingFor returns the direction of the larger-magnitude axis of
// (dx, dy). Equal magnitudes resolve to the vertical axis. The zero
// vector keeps fallback.
func FacingFor(dx, dy float64, fallback Direction) Direction {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch {
	case ax == 0 && ay == 0:
		return fallback
	case ax > ay && dx > 0:
		return East
	case ax > ay:
		return West
	case dy > 0:
		return South
	}
	return North
}

// Animation drives walk-cycle frames for a moving entity.
type Animation struct {
	Facing     Direction
	Walking    bool
	Frame      int
	FrameCount int
	FrameTime  time.Duration
	elapsed    time.Duration
}

// Advance steps the walk cycle by dt. Idle entities rest on frame 0.
func (a *Animation) Advance(dt time.Duration) {
	if !a.Walking || a.FrameCount <= 0 || a.FrameTime <= 0 {
		a.Frame = 0
		a.elapsed = 0
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.FrameTime {
		a.elapsed -= a.FrameTime
		a.Frame = (a.Frame + 1) % a.FrameCount
	}
}

var AnimationComponent = NewComponent[Animation]()
