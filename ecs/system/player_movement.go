package system

import (
	"github.com/jakecoffman/cp"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// PlayerMovementSystem glides the player between tile centers in pixel
// space. Each tick it moves at most Speed*dt toward the current waypoint
// and never past it, so variable frame rates do not accumulate error.
type PlayerMovementSystem struct {
	grid     Grid
	tileSize float64
}

func NewPlayerMovementSystem(grid Grid, tileSize float64) *PlayerMovementSystem {
	return &PlayerMovementSystem{grid: grid, tileSize: tileSize}
}

func (s *PlayerMovementSystem) SetGrid(grid Grid) {
	s.grid = grid
}

func (s *PlayerMovementSystem) Update(w *ecs.World) {
	dt := w.Clock().Delta().Seconds()
	ecs.ForEach3(w, component.PlayerMotionComponent.Kind(), component.PathFollowerComponent.Kind(), component.GridPositionComponent.Kind(),
		func(e ecs.Entity, motion *component.PlayerMotion, follower *component.PathFollower, grid *component.GridPosition) {
			anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())

			if input, ok := ecs.Get(w, e, component.PlayerInputComponent.Kind()); ok && input.Active() {
				follower.Clear()
				s.steer(motion, anim, *input, dt)
			} else if follower.Following {
				s.follow(w, e, motion, follower, anim, dt)
			} else {
				motion.Moving = false
			}

			tile := PixelToTile(motion.Pos, s.tileSize)
			grid.X, grid.Y = tile.X, tile.Y
			if anim != nil {
				anim.Walking = motion.Moving
			}
		})
}

func (s *PlayerMovementSystem) follow(w *ecs.World, e ecs.Entity, motion *component.PlayerMotion, follower *component.PathFollower, anim *component.Animation, dt float64) {
	budget := motion.Speed * dt
	motion.Moving = true
	for follower.Following {
		target := TileCenter(follower.Path.Nodes[follower.Index], s.tileSize)
		delta := target.Sub(motion.Pos)
		dist := delta.Length()

		if dist <= motion.Threshold {
			follower.Index++
			if follower.Index >= follower.Path.Len() {
				motion.Pos = target
				motion.Moving = false
				follower.Clear()
				w.Bus().Publish(ecs.Event{Kind: EventPlayerArrived, Entity: e, Data: PlayerArrived{At: PixelToTile(target, s.tileSize)}})
			}
			continue
		}
		if budget <= 0 {
			return
		}
		if anim != nil {
			anim.Facing = component.FacingFor(delta.X, delta.Y, anim.Facing)
		}
		step := min(dist, budget)
		motion.Pos = motion.Pos.Add(delta.Mult(step / dist))
		budget -= step
	}
}

func (s *PlayerMovementSystem) steer(motion *component.PlayerMotion, anim *component.Animation, input component.PlayerInput, dt float64) {
	dir := cp.Vector{X: input.X, Y: input.Y}
	if l := dir.Length(); l > 1 {
		dir = dir.Mult(1 / l)
	}
	motion.Pos = s.clampPixel(motion.Pos.Add(dir.Mult(motion.Speed * dt)))
	motion.Moving = true
	if anim != nil {
		anim.Facing = component.FacingFor(dir.X, dir.Y, anim.Facing)
	}
}

// clampPixel keeps the avatar center inside the map's outer tile centers.
func (s *PlayerMovementSystem) clampPixel(v cp.Vector) cp.Vector {
	if s.grid == nil {
		return v
	}
	w, h := s.grid.Bounds()
	lo := TileCenter(station.Pt(0, 0), s.tileSize)
	hi := TileCenter(station.Pt(w-1, h-1), s.tileSize)
	return cp.Vector{X: min(max(v.X, lo.X), hi.X), Y: min(max(v.Y, lo.Y), hi.Y)}
}
