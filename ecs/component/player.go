package component

import "github.com/jakecoffman/cp"

// PlayerTag marks the player avatar.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// PlayerMotion is the player's continuous pixel-space state. Pos is the
// avatar center. Speed is in pixels per second and Threshold is the
// distance at which a waypoint counts as reached.
type PlayerMotion struct {
	Pos       cp.Vector
	Speed     float64
	Threshold float64
	Moving    bool
}

var PlayerMotionComponent = NewComponent[PlayerMotion]()

// PlayerInput is the held direction from the keyboard, each axis in
// [-1, 1]. A non-zero input cancels any active route.
type PlayerInput struct {
	X float64
	Y float64
}

func (in PlayerInput) Active() bool {
	return in.X != 0 || in.Y != 0
}

var PlayerInputComponent = NewComponent[PlayerInput]()
