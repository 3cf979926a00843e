package sim

import (
	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// Snapshot is a read-only copy of the simulation state, safe to hand to
// other goroutines.
type Snapshot struct {
	Tick   uint64               `json:"tick"`
	TimeMS int64                `json:"time_ms"`
	Map    string               `json:"map"`
	Agents []AgentState         `json:"agents"`
	Player PlayerState          `json:"player"`
	Camera CameraState          `json:"camera"`
	Chat   []system.ChatMessage `json:"chat"`
}

type AgentState struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Color     string          `json:"color,omitempty"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Activity  string          `json:"activity"`
	Following bool            `json:"following"`
	Path      []station.Point `json:"path,omitempty"`
	PathIndex int             `json:"path_index"`
	Target    *station.Point  `json:"target,omitempty"`
	Facing    string          `json:"facing"`
	Walking   bool            `json:"walking"`
	Bubble    string          `json:"bubble,omitempty"`
	Partner   string          `json:"partner,omitempty"`
}

type PlayerState struct {
	PixelX    float64         `json:"pixel_x"`
	PixelY    float64         `json:"pixel_y"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Moving    bool            `json:"moving"`
	Facing    string          `json:"facing"`
	Path      []station.Point `json:"path,omitempty"`
	PathIndex int             `json:"path_index"`
}

type CameraState struct {
	Mode    string  `json:"mode"`
	AgentID string  `json:"agent_id,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Manual  bool    `json:"manual"`
}

// Snapshot captures the current state with agents in id order.
func (s *Simulation) Snapshot() Snapshot {
	w := s.world
	snap := Snapshot{
		Tick:   w.Clock().Tick(),
		TimeMS: w.Clock().Now().Milliseconds(),
		Map:    s.m.Name,
		Chat:   s.chat.Messages(),
	}

	for _, id := range s.AgentIDs() {
		e := s.byID[id]
		snap.Agents = append(snap.Agents, s.agentState(e))
	}

	pixel, tile := s.PlayerPosition()
	snap.Player = PlayerState{PixelX: pixel.X, PixelY: pixel.Y, X: tile.X, Y: tile.Y}
	if motion, ok := ecs.Get(w, s.playerEntity, component.PlayerMotionComponent.Kind()); ok {
		snap.Player.Moving = motion.Moving
	}
	if anim, ok := ecs.Get(w, s.playerEntity, component.AnimationComponent.Kind()); ok {
		snap.Player.Facing = string(anim.Facing)
	}
	if follower, ok := ecs.Get(w, s.playerEntity, component.PathFollowerComponent.Kind()); ok && follower.Following {
		snap.Player.Path = append([]station.Point(nil), follower.Path.Nodes...)
		snap.Player.PathIndex = follower.Index
	}

	cam := s.Camera()
	snap.Camera = CameraState{Mode: string(cam.Mode), AgentID: cam.AgentID, X: cam.Center.X, Y: cam.Center.Y, Manual: cam.Manual}
	return snap
}

func (s *Simulation) agentState(e ecs.Entity) AgentState {
	w := s.world
	var st AgentState
	if agent, ok := ecs.Get(w, e, component.AgentComponent.Kind()); ok {
		st.ID, st.Name, st.Kind, st.Color = agent.ID, agent.Name, string(agent.Kind), agent.Color
	}
	if pos, ok := ecs.Get(w, e, component.GridPositionComponent.Kind()); ok {
		st.X, st.Y = pos.X, pos.Y
	}
	if act, ok := ecs.Get(w, e, component.ActivityComponent.Kind()); ok {
		st.Activity = string(act.Label)
	}
	if follower, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind()); ok && follower.Following {
		st.Following = true
		st.Path = append([]station.Point(nil), follower.Path.Nodes...)
		st.PathIndex = follower.Index
	}
	if motion, ok := ecs.Get(w, e, component.AgentMotionComponent.Kind()); ok && motion.Target != nil {
		target := *motion.Target
		st.Target = &target
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		st.Facing, st.Walking = string(anim.Facing), anim.Walking
	}
	if bubble, ok := ecs.Get(w, e, component.ChatBubbleComponent.Kind()); ok {
		st.Bubble = bubble.Text
	}
	if in, ok := ecs.Get(w, e, component.InteractionComponent.Kind()); ok {
		st.Partner = in.Partner
	}
	return st
}
