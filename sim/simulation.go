package sim

import (
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/pathfind"
	"github.com/bevatsal1122/agentverse-sub000/prefabs"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

var ErrNoMap = errors.New("sim: no station map")

type Options struct {
	Logger *log.Logger
	// Spec is the station tuning; unset fields take their defaults.
	Spec prefabs.StationSpec
	// Agents is the crew roster template. Empty loads agents.yaml.
	Agents prefabs.AgentsSpec
	Map    *station.Map
	// Rand defaults to a PCG source seeded from Spec.Seed.
	Rand *rand.Rand
	// Arrivals overrides the arrival rules, including any script.
	Arrivals system.ArrivalPolicy
}

// Simulation owns the world and everything that mutates it. It is not
// safe for concurrent use; other goroutines go through a CommandBuffer.
type Simulation struct {
	logger *log.Logger
	spec   prefabs.StationSpec
	roster prefabs.AgentsSpec
	rng    *rand.Rand

	world  *ecs.World
	sched  *ecs.Scheduler
	m      *station.Map
	finder *pathfind.Pathfinder

	rules        *DefaultArrivalRules
	movement     *system.AgentMovementSystem
	player       *system.PlayerMovementSystem
	interactions *system.InteractionSystem
	camera       *system.CameraSystem
	chat         *system.ChatLog

	byID         map[string]ecs.Entity
	playerEntity ecs.Entity
	cameraEntity ecs.Entity
	nextAgent    int
}

func New(opts Options) (*Simulation, error) {
	if opts.Map == nil {
		return nil, ErrNoMap
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	spec := opts.Spec
	spec.ApplyDefaults()

	roster := opts.Agents
	if len(roster.Archetypes) == 0 {
		loaded, err := prefabs.LoadAgentsSpec()
		if err != nil {
			return nil, err
		}
		roster = loaded
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(spec.Seed, spec.Seed^0x9e3779b97f4a7c15))
	}

	s := &Simulation{
		logger: logger,
		spec:   spec,
		roster: roster,
		rng:    rng,
		world:  ecs.NewWorld(),
		m:      opts.Map,
		byID:   make(map[string]ecs.Entity),
	}
	s.finder = pathfind.New(s.m, s.pathConfig())
	s.rules = NewDefaultArrivalRules(spec.Dwell, rng)

	arrivals := opts.Arrivals
	if arrivals == nil {
		arrivals = s.loadArrivalPolicy()
	}

	s.movement = system.NewAgentMovementSystem(s.m, arrivals)
	s.player = system.NewPlayerMovementSystem(s.m, spec.TileSize)
	s.interactions = system.NewInteractionSystem(rng)
	s.camera = system.NewCameraSystem(spec.TileSize)
	s.chat = system.NewChatLog(spec.Chat.MaxMessages, spec.Chat.Expiry)
	s.configure()

	s.sched = ecs.NewScheduler(
		system.NewTimerSystem(),
		s.movement,
		s.player,
		s.interactions,
		system.NewAnimationSystem(),
		s.camera,
		system.NewChatLogSystem(s.chat),
	)

	bus := s.world.Bus()
	s.chat.Attach(bus)
	bus.Subscribe(system.EventDwellEnded, s.onDwellEnded)

	if err := s.spawnPlayer(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) pathConfig() pathfind.Config {
	return pathfind.Config{
		SnapRadius:    s.spec.Pathfinding.SnapRadius,
		MaxExpansions: s.spec.Pathfinding.MaxExpansions,
	}
}

func (s *Simulation) configure() {
	s.movement.BubbleDuration = s.spec.Agents.Bubble
	s.interactions.Range = s.spec.Interaction.Range
	s.interactions.Chance = s.spec.Interaction.Chance
	s.interactions.Duration = s.spec.Interaction.Duration
	s.interactions.BubbleDuration = s.spec.Interaction.Duration
	s.chat.Configure(s.spec.Chat.MaxMessages, s.spec.Chat.Expiry)
	s.rules.Dwell = s.spec.Dwell
}

func (s *Simulation) loadArrivalPolicy() system.ArrivalPolicy {
	if s.spec.ArrivalScript == "" {
		return s.rules
	}
	src, err := prefabs.LoadScript(s.spec.ArrivalScript)
	if err != nil {
		s.logger.Printf("sim: arrival script %s: %v", s.spec.ArrivalScript, err)
		return s.rules
	}
	scripted, err := NewScriptedArrivalRules(src, s.rules, s.logger)
	if err != nil {
		s.logger.Printf("sim: arrival script %s: %v", s.spec.ArrivalScript, err)
		return s.rules
	}
	return scripted
}

func (s *Simulation) spawnPlayer() error {
	w := s.world
	at := s.m.Clamp(station.Pt(s.spec.Player.Spawn.X, s.spec.Player.Spawn.Y))
	center := system.TileCenter(at, s.spec.TileSize)

	e := ecs.CreateEntity(w)
	for _, err := range []error{
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.GridPositionComponent.Kind(), &component.GridPosition{X: at.X, Y: at.Y}),
		ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{
			Pos:       center,
			Speed:     s.spec.Player.Speed,
			Threshold: s.spec.Player.ArriveThreshold,
		}),
		ecs.Add(w, e, component.PlayerInputComponent.Kind(), &component.PlayerInput{}),
		ecs.Add(w, e, component.PathFollowerComponent.Kind(), &component.PathFollower{}),
		ecs.Add(w, e, component.AnimationComponent.Kind(), newAnimation()),
	} {
		if err != nil {
			return err
		}
	}
	s.playerEntity = e

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Mode:       component.FollowMode(s.spec.Camera.Follow),
		Center:     center,
		Width:      s.spec.Camera.Width,
		Height:     s.spec.Camera.Height,
		Smoothness: s.spec.Camera.Smoothness,
	}); err != nil {
		return err
	}
	s.cameraEntity = cam
	return nil
}

func newAnimation() *component.Animation {
	return &component.Animation{Facing: component.South, FrameCount: 4, FrameTime: 120 * time.Millisecond}
}

// Tick advances the simulation by dt: systems run in order, then queued
// events are delivered.
func (s *Simulation) Tick(dt time.Duration) {
	s.world.Step(s.sched, dt)
}

// Subscribe registers handler for events of kind; an empty kind receives
// every event. Handlers run on the simulation goroutine.
func (s *Simulation) Subscribe(kind ecs.EventKind, handler ecs.Handler) (unsubscribe func()) {
	return s.world.Bus().Subscribe(kind, handler)
}

func (s *Simulation) World() *ecs.World                { return s.world }
func (s *Simulation) Map() *station.Map                { return s.m }
func (s *Simulation) Pathfinder() *pathfind.Pathfinder { return s.finder }
func (s *Simulation) Spec() prefabs.StationSpec        { return s.spec }
func (s *Simulation) Now() time.Duration               { return s.world.Clock().Now() }
func (s *Simulation) ChatLog() []system.ChatMessage    { return s.chat.Messages() }

// ReplaceMap swaps in a new station map between ticks. Active routes were
// planned against the old map, so they are dropped and every entity is
// clamped into the new bounds.
func (s *Simulation) ReplaceMap(m *station.Map) error {
	if m == nil {
		return ErrNoMap
	}
	s.m = m
	s.finder = pathfind.New(m, s.pathConfig())
	s.movement.SetGrid(m)
	s.player.SetGrid(m)

	w := s.world
	ecs.ForEach2(w, component.GridPositionComponent.Kind(), component.PathFollowerComponent.Kind(),
		func(e ecs.Entity, pos *component.GridPosition, follower *component.PathFollower) {
			follower.Clear()
			p := m.Clamp(pos.Point())
			pos.X, pos.Y = p.X, p.Y
			if motion, ok := ecs.Get(w, e, component.AgentMotionComponent.Kind()); ok {
				motion.Target = nil
			}
			if motion, ok := ecs.Get(w, e, component.PlayerMotionComponent.Kind()); ok {
				motion.Pos = system.TileCenter(p, s.spec.TileSize)
				motion.Moving = false
			}
		})
	for id := range s.byID {
		for _, b := range m.BuildingsAssignedTo(id) {
			m.Unassign(b.ID)
		}
	}
	s.logger.Printf("sim: map replaced with %q", m.Name)
	return nil
}

// ApplySpec updates tuning between ticks. Tile size and spawn point only
// take effect on a new Simulation.
func (s *Simulation) ApplySpec(spec prefabs.StationSpec) {
	spec.ApplyDefaults()
	spec.TileSize = s.spec.TileSize
	s.spec = spec
	s.finder = pathfind.New(s.m, s.pathConfig())
	s.configure()

	if motion, ok := ecs.Get(s.world, s.playerEntity, component.PlayerMotionComponent.Kind()); ok {
		motion.Speed = spec.Player.Speed
		motion.Threshold = spec.Player.ArriveThreshold
	}
	if cam, ok := ecs.Get(s.world, s.cameraEntity, component.CameraComponent.Kind()); ok {
		cam.Smoothness = spec.Camera.Smoothness
		cam.Width, cam.Height = spec.Camera.Width, spec.Camera.Height
	}
	s.logger.Printf("sim: tuning reloaded")
}

// SetRoster replaces the crew templates used by SpawnRandomAgent and
// auto-roaming. Agents already aboard keep their kind.
func (s *Simulation) SetRoster(roster prefabs.AgentsSpec) {
	if len(roster.Archetypes) == 0 {
		return
	}
	s.roster = roster
}

// SetArrivalPolicy replaces the arrival rules. nil restores the built-in
// rules.
func (s *Simulation) SetArrivalPolicy(p system.ArrivalPolicy) {
	if p == nil {
		p = s.rules
	}
	s.movement.SetArrivalPolicy(p)
}

// ReloadArrivalScript recompiles the configured script and installs it.
// On error the current rules stay in place.
func (s *Simulation) ReloadArrivalScript() error {
	if s.spec.ArrivalScript == "" {
		return errors.New("sim: no arrival script configured")
	}
	src, err := prefabs.LoadScript(s.spec.ArrivalScript)
	if err != nil {
		return err
	}
	scripted, err := NewScriptedArrivalRules(src, s.rules, s.logger)
	if err != nil {
		return err
	}
	s.SetArrivalPolicy(scripted)
	return nil
}
