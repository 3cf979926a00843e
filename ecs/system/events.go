package system

import (
	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const (
	EventAgentMoved    ecs.EventKind = "agent_moved"
	EventAgentArrived  ecs.EventKind = "agent_arrived"
	EventDwellEnded    ecs.EventKind = "dwell_ended"
	EventPlayerArrived ecs.EventKind = "player_arrived"
	EventChat          ecs.EventKind = "chat"
	EventInteraction   ecs.EventKind = "interaction"
)

const (
	TimerDwellEnd       ecs.TimerKind = "dwell_end"
	TimerBubbleExpire   ecs.TimerKind = "bubble_expire"
	TimerInteractionEnd ecs.TimerKind = "interaction_end"
)

// Moved is the payload of EventAgentMoved.
type Moved struct {
	AgentID string
	From    station.Point
	To      station.Point
}

// Arrived is the payload of EventAgentArrived.
type Arrived struct {
	AgentID  string
	At       station.Point
	Tile     station.TileType
	Activity component.ActivityLabel
	Message  string
}

// DwellEnded is the payload of EventDwellEnded.
type DwellEnded struct {
	AgentID string
	At      station.Point
}

// PlayerArrived is the payload of EventPlayerArrived.
type PlayerArrived struct {
	At station.Point
}

// Interacted is the payload of EventInteraction.
type Interacted struct {
	A, B string
}
