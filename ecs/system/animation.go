package system

import (
	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances walk cycles. Agents walk while they have a route or a
// direct-step target; the player's flag is set by its movement system.
func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.Clock().Delta()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if motion, ok := ecs.Get(w, e, component.AgentMotionComponent.Kind()); ok {
			follower, _ := ecs.Get(w, e, component.PathFollowerComponent.Kind())
			anim.Walking = motion.Target != nil || (follower != nil && follower.Following)
		}
		anim.Advance(dt)
	})
}
