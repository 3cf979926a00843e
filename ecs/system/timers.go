package system

import (
	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
)

// TimerSystem fires scheduled events that have come due: dwell expiry,
// chat bubble expiry, and the end of agent conversations.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	now := w.Clock().Now()
	for _, ev := range w.Timers().PopDue(now) {
		if !ecs.IsAlive(w, ev.Entity) {
			continue
		}
		switch ev.Kind {
		case TimerDwellEnd:
			if act, ok := ecs.Get(w, ev.Entity, component.ActivityComponent.Kind()); ok {
				act.Label = component.ActivityWalking
				act.Since = now
			}
			var at component.GridPosition
			if pos, ok := ecs.Get(w, ev.Entity, component.GridPositionComponent.Kind()); ok {
				at = *pos
			}
			w.Bus().Publish(ecs.Event{Kind: EventDwellEnded, Entity: ev.Entity, Data: DwellEnded{AgentID: agentID(w, ev.Entity), At: at.Point()}})
		case TimerBubbleExpire:
			if bubble, ok := ecs.Get(w, ev.Entity, component.ChatBubbleComponent.Kind()); ok && bubble.Until <= now {
				ecs.Remove(w, ev.Entity, component.ChatBubbleComponent.Kind())
			}
		case TimerInteractionEnd:
			ecs.Remove(w, ev.Entity, component.InteractionComponent.Kind())
		}
	}
}
