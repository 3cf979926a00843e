package system

import (
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const defaultBubbleDuration = 3 * time.Second

// Arrival is what an agent does once it reaches a destination.
type Arrival struct {
	Activity component.ActivityLabel
	Dwell    time.Duration
	Message  string
}

// ArrivalPolicy decides the arrival activity for an agent standing on a
// tile. found is false when the tile is empty or off the map.
type ArrivalPolicy interface {
	Arrive(agent component.Agent, tile station.TileType, found bool) Arrival
}

// AgentMovementSystem advances agents one tile per cadence period along
// their routes, or toward a direct-step target when no route is active.
type AgentMovementSystem struct {
	grid           Grid
	arrivals       ArrivalPolicy
	BubbleDuration time.Duration
}

func NewAgentMovementSystem(grid Grid, arrivals ArrivalPolicy) *AgentMovementSystem {
	return &AgentMovementSystem{grid: grid, arrivals: arrivals, BubbleDuration: defaultBubbleDuration}
}

// SetGrid swaps the map view, e.g. after a reload between ticks.
func (s *AgentMovementSystem) SetGrid(grid Grid) {
	s.grid = grid
}

// SetArrivalPolicy swaps the arrival rules.
func (s *AgentMovementSystem) SetArrivalPolicy(p ArrivalPolicy) {
	s.arrivals = p
}

func (s *AgentMovementSystem) Update(w *ecs.World) {
	now := w.Clock().Now()
	ecs.ForEach3(w, component.AgentMotionComponent.Kind(), component.GridPositionComponent.Kind(), component.PathFollowerComponent.Kind(),
		func(e ecs.Entity, motion *component.AgentMotion, pos *component.GridPosition, follower *component.PathFollower) {
			if !follower.Following {
				s.stepToTarget(w, e, now, motion, pos)
				return
			}
			if now-motion.LastMoveTime < motion.MoveInterval {
				return
			}

			node := follower.Path.Nodes[follower.Index]
			if pos.Point() == node {
				follower.Index++
				motion.LastMoveTime = now
				if follower.Index >= follower.Path.Len() {
					follower.Clear()
					s.arrive(w, e, pos.Point())
				}
				return
			}

			s.step(w, e, pos, node)
			motion.LastMoveTime = now
		})
}

func (s *AgentMovementSystem) stepToTarget(w *ecs.World, e ecs.Entity, now time.Duration, motion *component.AgentMotion, pos *component.GridPosition) {
	if motion.Target == nil || now-motion.LastMoveTime < motion.MoveInterval {
		return
	}
	target := *motion.Target
	if pos.Point() == target {
		motion.Target = nil
		motion.LastMoveTime = now
		s.arrive(w, e, target)
		return
	}
	s.step(w, e, pos, target)
	motion.LastMoveTime = now
}

func (s *AgentMovementSystem) step(w *ecs.World, e ecs.Entity, pos *component.GridPosition, toward station.Point) {
	from := pos.Point()
	next := clampToGrid(s.grid, stepToward(from, toward))
	pos.X, pos.Y = next.X, next.Y

	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		anim.Facing = component.FacingFor(float64(next.X-from.X), float64(next.Y-from.Y), anim.Facing)
	}
	if next != from {
		w.Bus().Publish(ecs.Event{Kind: EventAgentMoved, Entity: e, Data: Moved{AgentID: agentID(w, e), From: from, To: next}})
	}
}

func (s *AgentMovementSystem) arrive(w *ecs.World, e ecs.Entity, at station.Point) {
	agent, ok := ecs.Get(w, e, component.AgentComponent.Kind())
	if !ok {
		return
	}
	var tile station.TileType
	found := false
	if s.grid != nil {
		tile, found = s.grid.TileAt(at.X, at.Y)
	}
	arrival := Arrival{Activity: component.ActivityWorking}
	if s.arrivals != nil {
		arrival = s.arrivals.Arrive(*agent, tile, found)
	}

	now := w.Clock().Now()
	if act, ok := ecs.Get(w, e, component.ActivityComponent.Kind()); ok {
		act.Label = arrival.Activity
		act.Since = now
	} else {
		_ = ecs.Add(w, e, component.ActivityComponent.Kind(), &component.Activity{Label: arrival.Activity, Since: now})
	}

	timers := w.Timers()
	if arrival.Message != "" {
		ShowBubble(w, e, arrival.Message, s.BubbleDuration)
		w.Bus().Publish(ecs.Event{Kind: EventChat, Entity: e, Data: ChatMessage{AgentID: agent.ID, Text: arrival.Message, At: now, Type: ChatAction}})
	}
	timers.CancelKind(e, TimerDwellEnd)
	if arrival.Dwell > 0 {
		timers.Schedule(now+arrival.Dwell, e, TimerDwellEnd, nil)
	}

	w.Bus().Publish(ecs.Event{Kind: EventAgentArrived, Entity: e, Data: Arrived{
		AgentID:  agent.ID,
		At:       at,
		Tile:     tile,
		Activity: arrival.Activity,
		Message:  arrival.Message,
	}})
}

// ShowBubble sets e's chat bubble and schedules its removal.
func ShowBubble(w *ecs.World, e ecs.Entity, text string, d time.Duration) {
	now := w.Clock().Now()
	until := now + d
	if bubble, ok := ecs.Get(w, e, component.ChatBubbleComponent.Kind()); ok {
		bubble.Text, bubble.Until = text, until
	} else {
		_ = ecs.Add(w, e, component.ChatBubbleComponent.Kind(), &component.ChatBubble{Text: text, Until: until})
	}
	w.Timers().Schedule(until, e, TimerBubbleExpire, nil)
}

func agentID(w *ecs.World, e ecs.Entity) string {
	if agent, ok := ecs.Get(w, e, component.AgentComponent.Kind()); ok {
		return agent.ID
	}
	return ""
}
