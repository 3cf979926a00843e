package component

import (
	"github.com/jakecoffman/cp"
	"github.com/paulmach/orb"
)

type FollowMode string

const (
	FollowPlayer FollowMode = "player"
	FollowAgent  FollowMode = "agent"
)

// Camera is a viewport in world pixels. Center is the point shown in the
// middle of the screen. When Manual is set the camera holds still until a
// new player route re-engages following.
type Camera struct {
	Mode       FollowMode
	AgentID    string
	Center     cp.Vector
	Width      float64
	Height     float64
	Smoothness float64
	Manual     bool
}

// Viewport returns the visible world rectangle.
func (c Camera) Viewport() orb.Bound {
	hw, hh := c.Width/2, c.Height/2
	return orb.Bound{
		Min: orb.Point{c.Center.X - hw, c.Center.Y - hh},
		Max: orb.Point{c.Center.X + hw, c.Center.Y + hh},
	}
}

// Visible reports whether the world pixel rectangle [x, x+w) x [y, y+h)
// overlaps the viewport.
func (c Camera) Visible(x, y, w, h float64) bool {
	tile := orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + w, y + h}}
	return c.Viewport().Intersects(tile)
}

var CameraComponent = NewComponent[Camera]()
