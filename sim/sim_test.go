package sim

import (
	"bytes"
	"log"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/prefabs"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const tick = 100 * time.Millisecond

// testRows is a small deck: quarters and a lab joined by a corridor loop.
var testRows = []string{
	"L####R",
	".#..#.",
	"C####E",
}

func testMap(t *testing.T) *station.Map {
	t.Helper()
	lvl := levels.Level{Name: "test", Rows: testRows}
	m, err := lvl.Build()
	require.NoError(t, err)
	return m
}

func testSim(t *testing.T, tweak func(*prefabs.StationSpec)) (*Simulation, *bytes.Buffer) {
	t.Helper()
	spec := prefabs.DefaultStationSpec()
	spec.Player.Spawn = prefabs.PointSpec{X: 1, Y: 1}
	spec.Interaction.Chance = 0
	if tweak != nil {
		tweak(&spec)
	}
	var buf bytes.Buffer
	s, err := New(Options{
		Logger: log.New(&buf, "", 0),
		Spec:   spec,
		Map:    testMap(t),
		Rand:   rand.New(rand.NewPCG(1, 2)),
	})
	require.NoError(t, err)
	return s, &buf
}

func spawn(t *testing.T, s *Simulation, spec AgentSpec) {
	t.Helper()
	if spec.MoveInterval == 0 {
		spec.MoveInterval = tick
	}
	require.True(t, s.SpawnAgent(spec))
}

func run(s *Simulation, n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		s.Tick(dt)
	}
}

func agentState(t *testing.T, s *Simulation, id string) AgentState {
	t.Helper()
	for _, a := range s.Snapshot().Agents {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("agent %s not in snapshot", id)
	return AgentState{}
}

func TestNewRequiresMap(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrNoMap)
}

func TestSpawnAgentRejects(t *testing.T) {
	s, _ := testSim(t, func(spec *prefabs.StationSpec) { spec.Agents.MaxAgents = 2 })

	assert.True(t, s.SpawnAgent(AgentSpec{ID: "a", Position: station.Pt(1, 0)}))
	assert.False(t, s.SpawnAgent(AgentSpec{ID: "a", Position: station.Pt(2, 0)}), "duplicate id")
	assert.False(t, s.SpawnAgent(AgentSpec{ID: "far", Position: station.Pt(40, 0)}), "off the map")
	assert.True(t, s.SpawnAgent(AgentSpec{ID: "b", Position: station.Pt(2, 0)}))
	assert.False(t, s.SpawnAgent(AgentSpec{ID: "c", Position: station.Pt(3, 0)}), "at capacity")

	assert.Equal(t, []string{"a", "b"}, s.AgentIDs())
}

func TestMoveAgentToArrivesAndResearches(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "ada", Name: "Ada", Kind: component.KindScientist, Position: station.Pt(0, 0)})

	require.True(t, s.MoveAgentTo("ada", 5, 0))
	st := agentState(t, s, "ada")
	assert.Equal(t, []station.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 0}}, st.Path)
	assert.Equal(t, "walking", st.Activity)

	// one tick consumes the start node, then two per remaining node
	run(s, 10, tick)
	st = agentState(t, s, "ada")
	assert.True(t, st.Following)
	assert.Equal(t, 5, st.X)

	s.Tick(tick)
	st = agentState(t, s, "ada")
	assert.False(t, st.Following)
	assert.Empty(t, st.Path)
	assert.Equal(t, "researching", st.Activity)
	assert.Equal(t, "Ada started an experiment", st.Bubble)

	chat := s.ChatLog()
	require.NotEmpty(t, chat)
	assert.Equal(t, "Ada started an experiment", chat[len(chat)-1].Text)
}

func TestMoveAgentRejects(t *testing.T) {
	s, buf := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(1, 0)})

	assert.False(t, s.MoveAgentTo("ghost", 2, 0))
	assert.False(t, s.MoveAgentTo("a", 90, 90))
	assert.Contains(t, buf.String(), "sim: agent=a no route to (90,90)")
	assert.False(t, s.MoveAgentToBuilding("a", "B999"))
	assert.False(t, s.CancelPath("ghost"))
}

func TestMoveAgentToBuildingAndNearest(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(1, 1)})

	lab := s.Map().BuildingsByType(station.ResearchLab)
	require.Len(t, lab, 1)
	require.True(t, s.MoveAgentToBuilding("a", lab[0].ID))
	assert.Equal(t, station.Pt(5, 0), agentState(t, s, "a").Path[5])

	require.True(t, s.MoveAgentToNearest("a", station.Recreation))
	st := agentState(t, s, "a")
	assert.Equal(t, station.Pt(0, 2), st.Path[len(st.Path)-1])
}

func TestCancelPathStopsAgent(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(1, 0)})
	require.True(t, s.MoveAgentTo("a", 4, 0))

	run(s, 2, tick)
	require.True(t, s.CancelPath("a"))
	run(s, 5, tick)

	st := agentState(t, s, "a")
	assert.False(t, st.Following)
	assert.Equal(t, 2, st.X)
}

func TestSetTargetStepsDirectly(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(0, 0)})

	require.True(t, s.SetTarget("a", 2, 2))
	run(s, 4, tick)
	st := agentState(t, s, "a")
	assert.Equal(t, 2, st.X)
	assert.Equal(t, 2, st.Y)
	assert.Equal(t, "walking", st.Activity)

	s.Tick(tick)
	st = agentState(t, s, "a")
	assert.Nil(t, st.Target)
	assert.Equal(t, "working", st.Activity)
}

func TestDwellEndSendsRoamerToWork(t *testing.T) {
	s, _ := testSim(t, func(spec *prefabs.StationSpec) {
		spec.Dwell = map[string]prefabs.DurationRange{"resting": {Min: time.Second, Max: time.Second}}
	})
	home, work := station.Pt(0, 0), station.Pt(5, 0)
	spawn(t, s, AgentSpec{ID: "a", Position: home, Home: &home, Work: &work, AutoRoam: true})

	var ended []system.DwellEnded
	s.Subscribe(system.EventDwellEnded, func(evt ecs.Event) {
		ended = append(ended, evt.Data.(system.DwellEnded))
	})

	require.True(t, s.SetTarget("a", 0, 0))
	s.Tick(tick)
	assert.Equal(t, "resting", agentState(t, s, "a").Activity)

	run(s, 9, tick)
	assert.Empty(t, ended)

	s.Tick(tick)
	require.Len(t, ended, 1)
	assert.Equal(t, home, ended[0].At)
	st := agentState(t, s, "a")
	assert.True(t, st.Following)
	assert.Equal(t, work, st.Path[len(st.Path)-1])
}

func TestAssignPathCancelsDwell(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(0, 0)})
	require.True(t, s.SetTarget("a", 0, 0))
	s.Tick(tick)
	e := s.byID["a"]
	require.True(t, s.World().Timers().Pending(e, system.TimerDwellEnd))

	require.True(t, s.MoveAgentTo("a", 4, 0))
	assert.False(t, s.World().Timers().Pending(e, system.TimerDwellEnd))
	assert.Equal(t, "walking", agentState(t, s, "a").Activity)
}

func TestRemoveAgentReleasesQuarters(t *testing.T) {
	s, _ := testSim(t, nil)
	home := station.Pt(0, 0)
	spawn(t, s, AgentSpec{ID: "a", Position: home, Home: &home})
	require.Len(t, s.Map().BuildingsAssignedTo("a"), 1)
	require.True(t, s.FollowAgent("a"))

	assert.True(t, s.RemoveAgent("a"))
	assert.False(t, s.RemoveAgent("a"))
	assert.Empty(t, s.Map().BuildingsAssignedTo("a"))
	assert.Empty(t, s.Snapshot().Agents)
	assert.Equal(t, component.FollowPlayer, s.Camera().Mode)
}

func TestSpawnRandomAgent(t *testing.T) {
	s, _ := testSim(t, nil)

	id, ok := s.SpawnRandomAgent()
	require.True(t, ok)
	st := agentState(t, s, id)
	assert.Contains(t, []string{"crew", "scientist", "engineer", "captain"}, st.Kind)
	assert.Regexp(t, `^[A-Za-z]+-\d+$`, st.Name)
	assert.Equal(t, station.Pt(0, 0), station.Pt(st.X, st.Y), "only one living quarters")
	assert.Len(t, s.Map().BuildingsAssignedTo(id), 1)
}

func TestPickDestinationType(t *testing.T) {
	s, _ := testSim(t, nil)
	s.roster = prefabs.AgentsSpec{Archetypes: []prefabs.ArchetypeSpec{
		{Kind: "crew", Weights: map[string]int{"recreation": 3}},
		{Kind: "engineer", Weights: map[string]int{"corridor": 0}},
	}}

	for i := 0; i < 20; i++ {
		assert.Equal(t, station.Recreation, s.pickDestinationType(component.KindCrew))
	}
	assert.Equal(t, station.Corridor, s.pickDestinationType(component.KindEngineer))
	assert.Equal(t, station.Corridor, s.pickDestinationType(component.KindCaptain))
}

func TestMovePlayerTo(t *testing.T) {
	s, _ := testSim(t, nil)

	var arrived []system.PlayerArrived
	s.Subscribe(system.EventPlayerArrived, func(evt ecs.Event) {
		arrived = append(arrived, evt.Data.(system.PlayerArrived))
	})

	require.True(t, s.MovePlayerTo(4, 1))
	route := s.PlayerRoute()
	require.NotEmpty(t, route)
	assert.Equal(t, station.Pt(1, 1), route[0])
	assert.Equal(t, station.Pt(4, 1), route[len(route)-1])

	run(s, 60, 50*time.Millisecond)
	pixel, tile := s.PlayerPosition()
	assert.Equal(t, station.Pt(4, 1), tile)
	assert.InDelta(t, 4.5*64, pixel.X, 1e-9)
	assert.InDelta(t, 1.5*64, pixel.Y, 1e-9)
	assert.Empty(t, s.PlayerRoute())
	require.Len(t, arrived, 1)
	assert.Equal(t, station.Pt(4, 1), arrived[0].At)
}

func TestPlayerInputOverridesRoute(t *testing.T) {
	s, _ := testSim(t, nil)
	require.True(t, s.MovePlayerTo(4, 1))
	require.True(t, s.SetPlayerInput(0, -5))

	s.Tick(100 * time.Millisecond)
	assert.Empty(t, s.PlayerRoute())
	pixel, _ := s.PlayerPosition()
	assert.InDelta(t, 1.5*64-20, pixel.Y, 1e-9)

	require.True(t, s.MovePlayerTo(4, 1))
	snap := s.Snapshot()
	assert.NotEmpty(t, snap.Player.Path)
}

func TestCameraPanAndFollow(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(4, 2)})

	s.Pan(10, 0)
	s.Tick(tick)
	cam := s.Camera()
	assert.True(t, cam.Manual)
	assert.InDelta(t, 1.5*64+10, cam.Center.X, 1e-9)

	require.True(t, s.MovePlayerTo(4, 1))
	assert.False(t, s.Camera().Manual, "starting a route re-engages follow")
	s.Tick(tick)

	s.Pan(0, 40)
	held := s.Camera().Center
	s.Tick(tick)
	require.NotEmpty(t, s.PlayerRoute(), "player still walking")
	assert.True(t, s.Camera().Manual)
	assert.Equal(t, held, s.Camera().Center)
	s.FollowPlayer()

	assert.False(t, s.FollowAgent("ghost"))
	require.True(t, s.FollowAgent("a"))
	s.Tick(tick)
	cam = s.Camera()
	assert.Equal(t, component.FollowAgent, cam.Mode)
	assert.InDelta(t, 4.5*64, cam.Center.X, 1e-9)
	assert.InDelta(t, 2.5*64, cam.Center.Y, 1e-9)

	s.FollowPlayer()
	assert.Equal(t, component.FollowPlayer, s.Camera().Mode)
}

func TestSnapshotOrdersAgents(t *testing.T) {
	s, _ := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "b", Position: station.Pt(2, 0)})
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(1, 0)})
	s.Tick(tick)

	snap := s.Snapshot()
	require.Len(t, snap.Agents, 2)
	assert.Equal(t, "a", snap.Agents[0].ID)
	assert.Equal(t, "b", snap.Agents[1].ID)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, int64(100), snap.TimeMS)
	assert.Equal(t, "test", snap.Map)
	assert.Len(t, snap.Chat, 2)
}

func TestReplaceMapDropsRoutes(t *testing.T) {
	s, buf := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(5, 2)})
	require.True(t, s.MoveAgentTo("a", 0, 0))

	small, err := (&levels.Level{Name: "small", Rows: []string{"###", "###"}}).Build()
	require.NoError(t, err)
	require.NoError(t, s.ReplaceMap(small))
	assert.ErrorIs(t, s.ReplaceMap(nil), ErrNoMap)

	st := agentState(t, s, "a")
	assert.False(t, st.Following)
	assert.Equal(t, station.Pt(2, 1), station.Pt(st.X, st.Y))
	assert.Contains(t, buf.String(), `map replaced with "small"`)
	assert.True(t, s.MoveAgentTo("a", 0, 0))
}

func TestApplySpecRetunes(t *testing.T) {
	s, _ := testSim(t, nil)
	spec := s.Spec()
	spec.Player.Speed = 400
	spec.Chat.MaxMessages = 1
	spec.TileSize = 10
	s.ApplySpec(spec)

	assert.Equal(t, 64.0, s.Spec().TileSize)
	assert.Equal(t, 400.0, s.Spec().Player.Speed)

	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(1, 0)})
	spawn(t, s, AgentSpec{ID: "b", Position: station.Pt(2, 0)})
	s.Tick(tick)
	assert.Len(t, s.ChatLog(), 1)
}
