package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/pathfind"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const testTileSize = 64.0

func rowMap(t *testing.T, types ...station.TileType) *station.Map {
	t.Helper()
	m, err := station.NewMap("row", len(types), 3)
	require.NoError(t, err)
	for x, tt := range types {
		require.NoError(t, m.Place(station.Tile{Type: tt, X: x, Y: 0}))
	}
	return m
}

func openMap(t *testing.T, w, h int) *station.Map {
	t.Helper()
	m, err := station.NewMap("open", w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.NoError(t, m.Place(station.Tile{Type: station.Corridor, X: x, Y: y}))
		}
	}
	return m
}

type labelPolicy struct {
	dwell time.Duration
}

func (p labelPolicy) Arrive(agent component.Agent, tile station.TileType, found bool) Arrival {
	label := component.ActivityWorking
	if found && tile == station.ResearchLab {
		label = component.ActivityResearching
	}
	return Arrival{Activity: label, Dwell: p.dwell, Message: agent.Name + " arrived"}
}

func spawnAgent(t *testing.T, w *ecs.World, id string, at station.Point, interval time.Duration) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.AgentComponent.Kind(), &component.Agent{ID: id, Name: id, Kind: component.KindCrew}))
	require.NoError(t, ecs.Add(w, e, component.GridPositionComponent.Kind(), &component.GridPosition{X: at.X, Y: at.Y}))
	require.NoError(t, ecs.Add(w, e, component.AgentMotionComponent.Kind(), &component.AgentMotion{MoveInterval: interval}))
	require.NoError(t, ecs.Add(w, e, component.PathFollowerComponent.Kind(), &component.PathFollower{}))
	require.NoError(t, ecs.Add(w, e, component.ActivityComponent.Kind(), &component.Activity{Label: component.ActivityWalking}))
	require.NoError(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Facing: component.South, FrameCount: 4, FrameTime: 100 * time.Millisecond}))
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, at station.Point) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.GridPositionComponent.Kind(), &component.GridPosition{X: at.X, Y: at.Y}))
	require.NoError(t, ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{
		Pos:       TileCenter(at, testTileSize),
		Speed:     200,
		Threshold: 4,
	}))
	require.NoError(t, ecs.Add(w, e, component.PlayerInputComponent.Kind(), &component.PlayerInput{}))
	require.NoError(t, ecs.Add(w, e, component.PathFollowerComponent.Kind(), &component.PathFollower{}))
	require.NoError(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Facing: component.South, FrameCount: 4, FrameTime: 100 * time.Millisecond}))
	return e
}

func assign(t *testing.T, w *ecs.World, e ecs.Entity, nodes ...station.Point) {
	t.Helper()
	f, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind())
	require.True(t, ok)
	f.Assign(pathfind.Path{Nodes: nodes})
}

func gridOf(t *testing.T, w *ecs.World, e ecs.Entity) station.Point {
	t.Helper()
	pos, ok := ecs.Get(w, e, component.GridPositionComponent.Kind())
	require.True(t, ok)
	return pos.Point()
}

func pixelOf(t *testing.T, w *ecs.World, e ecs.Entity) cp.Vector {
	t.Helper()
	m, ok := ecs.Get(w, e, component.PlayerMotionComponent.Kind())
	require.True(t, ok)
	return m.Pos
}

func follower(t *testing.T, w *ecs.World, e ecs.Entity) *component.PathFollower {
	t.Helper()
	f, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind())
	require.True(t, ok)
	return f
}

func activity(t *testing.T, w *ecs.World, e ecs.Entity) component.ActivityLabel {
	t.Helper()
	a, ok := ecs.Get(w, e, component.ActivityComponent.Kind())
	require.True(t, ok)
	return a.Label
}
