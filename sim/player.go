package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// MovePlayerTo plans a route for the player to (x, y). The player glides
// along it in pixel space; keyboard input cancels it. Starting a route
// releases a manually panned camera that follows the player.
func (s *Simulation) MovePlayerTo(x, y int) bool {
	w := s.world
	pos, ok := ecs.Get(w, s.playerEntity, component.GridPositionComponent.Kind())
	if !ok {
		return false
	}
	path, ok := s.finder.FindPath(pos.X, pos.Y, x, y)
	if !ok {
		s.logger.Printf("sim: player no route to (%d,%d)", x, y)
		return false
	}
	follower, ok := ecs.Get(w, s.playerEntity, component.PathFollowerComponent.Kind())
	if !ok {
		return false
	}
	follower.Assign(path)
	if input, ok := ecs.Get(w, s.playerEntity, component.PlayerInputComponent.Kind()); ok {
		*input = component.PlayerInput{}
	}
	if cam, ok := ecs.Get(w, s.cameraEntity, component.CameraComponent.Kind()); ok && cam.Mode == component.FollowPlayer {
		cam.Manual = false
	}
	return true
}

// SetPlayerInput sets the held keyboard direction. Any non-zero input
// overrides an active route.
func (s *Simulation) SetPlayerInput(dx, dy float64) bool {
	input, ok := ecs.Get(s.world, s.playerEntity, component.PlayerInputComponent.Kind())
	if !ok {
		return false
	}
	input.X, input.Y = clampUnit(dx), clampUnit(dy)
	return true
}

func clampUnit(v float64) float64 {
	return max(-1, min(1, v))
}

// CancelPlayerPath stops the player at its current pixel position.
func (s *Simulation) CancelPlayerPath() {
	if follower, ok := ecs.Get(s.world, s.playerEntity, component.PathFollowerComponent.Kind()); ok {
		follower.Clear()
	}
}

// PlayerRoute returns the waypoints the player has not reached yet.
func (s *Simulation) PlayerRoute() []station.Point {
	follower, ok := ecs.Get(s.world, s.playerEntity, component.PathFollowerComponent.Kind())
	if !ok || !follower.Following {
		return nil
	}
	return append([]station.Point(nil), follower.Path.Nodes[follower.Index:]...)
}

// PlayerPosition returns the player's pixel center and tile.
func (s *Simulation) PlayerPosition() (cp.Vector, station.Point) {
	var tile station.Point
	if pos, ok := ecs.Get(s.world, s.playerEntity, component.GridPositionComponent.Kind()); ok {
		tile = pos.Point()
	}
	if motion, ok := ecs.Get(s.world, s.playerEntity, component.PlayerMotionComponent.Kind()); ok {
		return motion.Pos, tile
	}
	return cp.Vector{}, tile
}

// FollowPlayer points the camera back at the player.
func (s *Simulation) FollowPlayer() {
	if cam, ok := ecs.Get(s.world, s.cameraEntity, component.CameraComponent.Kind()); ok {
		cam.Mode, cam.AgentID, cam.Manual = component.FollowPlayer, "", false
	}
}

// FollowAgent points the camera at an agent.
func (s *Simulation) FollowAgent(id string) bool {
	if _, ok := s.agent(id); !ok {
		return false
	}
	cam, ok := ecs.Get(s.world, s.cameraEntity, component.CameraComponent.Kind())
	if !ok {
		return false
	}
	cam.Mode, cam.AgentID, cam.Manual = component.FollowAgent, id, false
	return true
}

// Pan moves the camera by (dx, dy) pixels and holds it there until the
// player starts a new route or following is re-enabled.
func (s *Simulation) Pan(dx, dy float64) {
	cam, ok := ecs.Get(s.world, s.cameraEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if cam.Mode == component.FollowAgent {
		cam.Mode, cam.AgentID = component.FollowPlayer, ""
	}
	cam.Manual = true
	cam.Center = cam.Center.Add(cp.Vector{X: dx, Y: dy})
}

func (s *Simulation) Camera() component.Camera {
	if cam, ok := ecs.Get(s.world, s.cameraEntity, component.CameraComponent.Kind()); ok {
		return *cam
	}
	return component.Camera{}
}
