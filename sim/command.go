package sim

import (
	"fmt"

	"github.com/bevatsal1122/agentverse-sub000/station"
)

type CommandType string

const (
	CommandMoveAgent           CommandType = "move_agent"
	CommandMoveAgentToBuilding CommandType = "move_agent_to_building"
	CommandMoveAgentToNearest  CommandType = "move_agent_to_nearest"
	CommandCancelPath          CommandType = "cancel_path"
	CommandSpawnAgent          CommandType = "spawn_agent"
	CommandRemoveAgent         CommandType = "remove_agent"
	CommandMovePlayer          CommandType = "move_player"
	CommandPlayerInput         CommandType = "player_input"
	CommandFollowAgent         CommandType = "follow_agent"
	CommandFollowPlayer        CommandType = "follow_player"
)

// Command is a mutation staged from outside the simulation goroutine.
// Only the fields relevant to Type are read.
type Command struct {
	Type       CommandType      `json:"type"`
	AgentID    string           `json:"agent_id,omitempty"`
	X          int              `json:"x,omitempty"`
	Y          int              `json:"y,omitempty"`
	BuildingID string           `json:"building_id,omitempty"`
	TileType   station.TileType `json:"tile_type,omitempty"`
	DX         float64          `json:"dx,omitempty"`
	DY         float64          `json:"dy,omitempty"`
}

func (c Command) String() string {
	switch c.Type {
	case CommandMoveAgent, CommandMovePlayer:
		return fmt.Sprintf("%s %s (%d,%d)", c.Type, c.AgentID, c.X, c.Y)
	case CommandMoveAgentToBuilding:
		return fmt.Sprintf("%s %s %s", c.Type, c.AgentID, c.BuildingID)
	}
	return fmt.Sprintf("%s %s", c.Type, c.AgentID)
}

// Apply runs one command against the simulation. It reports whether the
// command took effect.
func (s *Simulation) Apply(cmd Command) bool {
	var ok bool
	switch cmd.Type {
	case CommandMoveAgent:
		ok = s.MoveAgentTo(cmd.AgentID, cmd.X, cmd.Y)
	case CommandMoveAgentToBuilding:
		ok = s.MoveAgentToBuilding(cmd.AgentID, cmd.BuildingID)
	case CommandMoveAgentToNearest:
		ok = s.MoveAgentToNearest(cmd.AgentID, cmd.TileType)
	case CommandCancelPath:
		ok = s.CancelPath(cmd.AgentID)
	case CommandSpawnAgent:
		_, ok = s.SpawnRandomAgent()
	case CommandRemoveAgent:
		ok = s.RemoveAgent(cmd.AgentID)
	case CommandMovePlayer:
		ok = s.MovePlayerTo(cmd.X, cmd.Y)
	case CommandPlayerInput:
		ok = s.SetPlayerInput(cmd.DX, cmd.DY)
	case CommandFollowAgent:
		ok = s.FollowAgent(cmd.AgentID)
	case CommandFollowPlayer:
		s.FollowPlayer()
		ok = true
	default:
		s.logger.Printf("sim: unknown command %q", cmd.Type)
		return false
	}
	if !ok {
		s.logger.Printf("sim: command rejected: %s", cmd)
	}
	return ok
}

// ApplyAll applies cmds in order and returns how many took effect.
func (s *Simulation) ApplyAll(cmds []Command) int {
	n := 0
	for _, cmd := range cmds {
		if s.Apply(cmd) {
			n++
		}
	}
	return n
}
