package sim

import (
	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// onDwellEnded sends auto-roaming agents on to their next stop: from
// quarters to work, from work back home, otherwise somewhere drawn from
// the archetype's destination weights.
func (s *Simulation) onDwellEnded(evt ecs.Event) {
	w := s.world
	agent, ok := ecs.Get(w, evt.Entity, component.AgentComponent.Kind())
	if !ok || !agent.AutoRoam {
		return
	}
	if follower, ok := ecs.Get(w, evt.Entity, component.PathFollowerComponent.Kind()); ok && follower.Following {
		return
	}
	pos, ok := ecs.Get(w, evt.Entity, component.GridPositionComponent.Kind())
	if !ok {
		return
	}

	here := pos.Point()
	tile, _ := s.m.TileAt(here.X, here.Y)
	var dest station.Point
	switch {
	case tile == station.LivingQuarters && here != agent.Work:
		dest = agent.Work
	case here == agent.Work && here != agent.Home:
		dest = agent.Home
	default:
		dest, ok = s.randomTileOf(s.pickDestinationType(agent.Kind))
		if !ok {
			return
		}
	}
	s.MoveAgentTo(agent.ID, dest.X, dest.Y)
}

// pickDestinationType draws a tile type using the archetype weights for
// kind. Kinds without weights wander the corridors.
func (s *Simulation) pickDestinationType(kind component.AgentKind) station.TileType {
	arch, ok := s.roster.Archetype(string(kind))
	if !ok || len(arch.Weights) == 0 {
		return station.Corridor
	}
	total := 0
	for _, t := range station.TileTypes {
		total += max(arch.Weights[string(t)], 0)
	}
	if total == 0 {
		return station.Corridor
	}
	roll := s.rng.IntN(total)
	for _, t := range station.TileTypes {
		weight := max(arch.Weights[string(t)], 0)
		if roll < weight {
			return t
		}
		roll -= weight
	}
	return station.Corridor
}
