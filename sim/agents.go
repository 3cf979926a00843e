package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/pathfind"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// AgentSpec describes an agent to spawn. Home and Work default to
// Position, and a zero MoveInterval draws one from the configured range.
type AgentSpec struct {
	ID           string
	Name         string
	Kind         component.AgentKind
	Color        string
	Position     station.Point
	Home         *station.Point
	Work         *station.Point
	MoveInterval time.Duration
	AutoRoam     bool
	Goals        []string
}

// SpawnAgent adds an agent. It fails on a duplicate id, a position off
// the map, or when the station is at capacity.
func (s *Simulation) SpawnAgent(spec AgentSpec) bool {
	if spec.ID == "" {
		spec.ID = s.newAgentID()
	}
	if _, exists := s.byID[spec.ID]; exists {
		return false
	}
	if len(s.byID) >= s.spec.Agents.MaxAgents {
		s.logger.Printf("sim: agent limit %d reached, not spawning %s", s.spec.Agents.MaxAgents, spec.ID)
		return false
	}
	if !s.m.InBounds(spec.Position.X, spec.Position.Y) {
		return false
	}
	if spec.Name == "" {
		spec.Name = spec.ID
	}
	if spec.Kind == "" {
		spec.Kind = component.KindCrew
	}
	home, work := spec.Position, spec.Position
	if spec.Home != nil {
		home = *spec.Home
	}
	if spec.Work != nil {
		work = *spec.Work
	}
	interval := spec.MoveInterval
	if interval <= 0 {
		interval = s.spec.Agents.MoveInterval.Pick(s.rng.Float64())
	}

	w := s.world
	now := w.Clock().Now()
	e := ecs.CreateEntity(w)
	for _, err := range []error{
		ecs.Add(w, e, component.AgentComponent.Kind(), &component.Agent{
			ID:       spec.ID,
			Name:     spec.Name,
			Kind:     spec.Kind,
			Color:    spec.Color,
			Home:     home,
			Work:     work,
			AutoRoam: spec.AutoRoam,
			Goals:    append([]string(nil), spec.Goals...),
		}),
		ecs.Add(w, e, component.GridPositionComponent.Kind(), &component.GridPosition{X: spec.Position.X, Y: spec.Position.Y}),
		ecs.Add(w, e, component.AgentMotionComponent.Kind(), &component.AgentMotion{MoveInterval: interval, LastMoveTime: now}),
		ecs.Add(w, e, component.PathFollowerComponent.Kind(), &component.PathFollower{}),
		ecs.Add(w, e, component.ActivityComponent.Kind(), &component.Activity{Label: component.ActivityWalking, Since: now}),
		ecs.Add(w, e, component.AnimationComponent.Kind(), newAnimation()),
	} {
		if err != nil {
			s.logger.Printf("sim: spawn %s: %v", spec.ID, err)
			ecs.DestroyEntity(w, e)
			return false
		}
	}
	s.byID[spec.ID] = e

	for _, b := range s.m.BuildingsByType(station.LivingQuarters) {
		if b.Point() == home && b.AssignedTo == "" {
			s.m.Assign(b.ID, spec.ID)
			break
		}
	}

	w.Bus().Publish(ecs.Event{Kind: system.EventChat, Entity: e, Data: system.ChatMessage{
		AgentID: spec.ID,
		Text:    fmt.Sprintf("%s has come aboard the station", spec.Name),
		At:      now,
		Type:    system.ChatAction,
	}})
	return true
}

// SpawnRandomAgent spawns an agent from a random archetype, homed in a
// free living quarters and working at a tile of the archetype's type.
func (s *Simulation) SpawnRandomAgent() (string, bool) {
	if len(s.roster.Archetypes) == 0 {
		return "", false
	}
	arch := s.roster.Archetypes[s.rng.IntN(len(s.roster.Archetypes))]

	name := "Crewmate"
	if len(s.roster.Names) > 0 {
		name = s.roster.Names[s.rng.IntN(len(s.roster.Names))]
	}
	name = fmt.Sprintf("%s-%d", name, s.rng.IntN(1000))
	color := ""
	if len(s.roster.Colors) > 0 {
		color = s.roster.Colors[s.rng.IntN(len(s.roster.Colors))]
	}

	home, ok := s.randomHome()
	if !ok {
		return "", false
	}
	work, ok := s.randomTileOf(station.ParseTileType(arch.Work))
	if !ok {
		work = home
	}

	id := s.newAgentID()
	spawned := s.SpawnAgent(AgentSpec{
		ID:       id,
		Name:     name,
		Kind:     component.AgentKind(arch.Kind),
		Color:    color,
		Position: home,
		Home:     &home,
		Work:     &work,
		AutoRoam: s.spec.Agents.AutoRoam,
		Goals:    arch.Goals,
	})
	if !spawned {
		return "", false
	}
	return id, true
}

func (s *Simulation) newAgentID() string {
	for {
		s.nextAgent++
		id := fmt.Sprintf("agent_%d", s.nextAgent)
		if _, taken := s.byID[id]; !taken {
			return id
		}
	}
}

func (s *Simulation) randomHome() (station.Point, bool) {
	var free []station.Point
	for _, b := range s.m.BuildingsByType(station.LivingQuarters) {
		if b.AssignedTo == "" {
			free = append(free, b.Point())
		}
	}
	if len(free) > 0 {
		return free[s.rng.IntN(len(free))], true
	}
	if p, ok := s.randomTileOf(station.LivingQuarters); ok {
		return p, true
	}
	return s.randomTile()
}

// randomTileOf picks a tile of type t, falling back to any placed tile.
func (s *Simulation) randomTileOf(t station.TileType) (station.Point, bool) {
	pts := s.m.TilesOfType(t)
	if len(pts) == 0 {
		return s.randomTile()
	}
	return pts[s.rng.IntN(len(pts))], true
}

func (s *Simulation) randomTile() (station.Point, bool) {
	tiles := s.m.Tiles()
	if len(tiles) == 0 {
		return station.Point{}, false
	}
	return tiles[s.rng.IntN(len(tiles))].Point(), true
}

// RemoveAgent despawns an agent and releases its buildings.
func (s *Simulation) RemoveAgent(id string) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	ecs.DestroyEntity(s.world, e)
	delete(s.byID, id)
	for _, b := range s.m.BuildingsAssignedTo(id) {
		s.m.Unassign(b.ID)
	}
	if cam, ok := ecs.Get(s.world, s.cameraEntity, component.CameraComponent.Kind()); ok && cam.Mode == component.FollowAgent && cam.AgentID == id {
		cam.Mode, cam.AgentID = component.FollowPlayer, ""
	}
	return true
}

// AgentIDs returns the ids of all live agents in ascending order.
func (s *Simulation) AgentIDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Simulation) agent(id string) (ecs.Entity, bool) {
	e, ok := s.byID[id]
	if !ok || !ecs.IsAlive(s.world, e) {
		return 0, false
	}
	return e, true
}

// AgentPosition returns the agent's current tile.
func (s *Simulation) AgentPosition(id string) (station.Point, bool) {
	e, ok := s.agent(id)
	if !ok {
		return station.Point{}, false
	}
	pos, ok := ecs.Get(s.world, e, component.GridPositionComponent.Kind())
	if !ok {
		return station.Point{}, false
	}
	return pos.Point(), true
}

// MoveAgentTo plans a route from the agent's tile to (x, y) and starts
// following it. The activity on arrival depends on the agent's kind as
// well as the tile: only scientists research in a research lab and only
// engineers maintain an engineering bay. Any other kind arriving there is
// labelled working.
func (s *Simulation) MoveAgentTo(id string, x, y int) bool {
	from, ok := s.AgentPosition(id)
	if !ok {
		return false
	}
	path, ok := s.finder.FindPath(from.X, from.Y, x, y)
	if !ok {
		s.logger.Printf("sim: agent=%s no route to (%d,%d)", id, x, y)
		return false
	}
	return s.AssignPath(id, path)
}

func (s *Simulation) MoveAgentToBuilding(id, buildingID string) bool {
	b, ok := s.m.Building(buildingID)
	if !ok {
		s.logger.Printf("sim: agent=%s %v: %s", id, station.ErrUnknownBuilding, buildingID)
		return false
	}
	return s.MoveAgentTo(id, b.X, b.Y)
}

// MoveAgentToNearest routes the agent to the closest tile of type t.
func (s *Simulation) MoveAgentToNearest(id string, t station.TileType) bool {
	from, ok := s.AgentPosition(id)
	if !ok {
		return false
	}
	path, ok := s.finder.FindPathToBuilding(from.X, from.Y, t)
	if !ok {
		s.logger.Printf("sim: agent=%s no route to any %s", id, t)
		return false
	}
	return s.AssignPath(id, path)
}

// AssignPath replaces the agent's route. The agent stops any dwell and
// starts walking.
func (s *Simulation) AssignPath(id string, path pathfind.Path) bool {
	e, ok := s.agent(id)
	if !ok || path.Empty() {
		return false
	}
	w := s.world
	follower, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind())
	if !ok {
		return false
	}
	follower.Assign(path)
	if motion, ok := ecs.Get(w, e, component.AgentMotionComponent.Kind()); ok {
		motion.Target = nil
	}
	s.startWalking(e)
	return true
}

// SetTarget drops any route and steps the agent directly toward (x, y),
// one axis at a time, ignoring tile types.
func (s *Simulation) SetTarget(id string, x, y int) bool {
	e, ok := s.agent(id)
	if !ok {
		return false
	}
	w := s.world
	motion, ok := ecs.Get(w, e, component.AgentMotionComponent.Kind())
	if !ok {
		return false
	}
	if follower, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind()); ok {
		follower.Clear()
	}
	target := s.m.Clamp(station.Pt(x, y))
	motion.Target = &target
	s.startWalking(e)
	return true
}

// CancelPath stops the agent where it stands.
func (s *Simulation) CancelPath(id string) bool {
	e, ok := s.agent(id)
	if !ok {
		return false
	}
	w := s.world
	if follower, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind()); ok {
		follower.Clear()
	}
	if motion, ok := ecs.Get(w, e, component.AgentMotionComponent.Kind()); ok {
		motion.Target = nil
	}
	return true
}

func (s *Simulation) startWalking(e ecs.Entity) {
	w := s.world
	w.Timers().CancelKind(e, system.TimerDwellEnd)
	if act, ok := ecs.Get(w, e, component.ActivityComponent.Kind()); ok && act.Label != component.ActivityWalking {
		act.Label = component.ActivityWalking
		act.Since = w.Clock().Now()
	}
}
