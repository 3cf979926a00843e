package system

import (
	"github.com/jakecoffman/cp"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
)

// CameraSystem keeps the camera on its follow target. It only reads
// movement state. In player mode a manual pan holds the view until the
// player starts following a new route.
type CameraSystem struct {
	tileSize float64
}

func NewCameraSystem(tileSize float64) *CameraSystem {
	return &CameraSystem{tileSize: tileSize}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		target, ok := cs.target(w, cam)
		if !ok {
			return
		}
		cam.Center = smooth(cam.Center, target, cam.Smoothness)
	})
}

func (cs *CameraSystem) target(w *ecs.World, cam *component.Camera) (cp.Vector, bool) {
	if cam.Mode == component.FollowAgent {
		if e, ok := FindAgent(w, cam.AgentID); ok {
			if pos, ok := ecs.Get(w, e, component.GridPositionComponent.Kind()); ok {
				return TileCenter(pos.Point(), cs.tileSize), true
			}
		}
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	if cam.Manual {
		return cp.Vector{}, false
	}
	motion, ok := ecs.Get(w, player, component.PlayerMotionComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return motion.Pos, true
}

// smooth eases from toward to. A smoothness of 0 snaps; values toward 1
// trail further behind.
func smooth(from, to cp.Vector, smoothness float64) cp.Vector {
	if smoothness <= 0 || smoothness >= 1 {
		return to
	}
	return from.Lerp(to, 1-smoothness)
}

// FindAgent returns the entity of the agent with the given id.
func FindAgent(w *ecs.World, id string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	if id == "" {
		return found, false
	}
	ecs.ForEach(w, component.AgentComponent.Kind(), func(e ecs.Entity, a *component.Agent) {
		if !ok && a.ID == id {
			found, ok = e, true
		}
	})
	return found, ok
}
