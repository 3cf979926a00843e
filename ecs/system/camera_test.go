package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

func spawnCamera(t *testing.T, w *ecs.World, cam component.Camera) *component.Camera {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.CameraComponent.Kind(), &cam))
	got, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	return got
}

func TestCameraFollowModes(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "centers_on_player",
			run: func(t *testing.T) {
				w := ecs.NewWorld()
				spawnPlayer(t, w, station.Pt(2, 3))
				cam := spawnCamera(t, w, component.Camera{Mode: component.FollowPlayer, Width: 640, Height: 480})
				w.Step(ecs.NewScheduler(NewCameraSystem(testTileSize)), time.Millisecond)
				assert.Equal(t, cp.Vector{X: 160, Y: 224}, cam.Center)
			},
		},
		{
			name: "manual_pan_holds_while_player_moves",
			run: func(t *testing.T) {
				m := openMap(t, 6, 6)
				w := ecs.NewWorld()
				sched := ecs.NewScheduler(NewPlayerMovementSystem(m, testTileSize), NewCameraSystem(testTileSize))
				p := spawnPlayer(t, w, station.Pt(0, 0))
				cam := spawnCamera(t, w, component.Camera{Mode: component.FollowPlayer, Manual: true, Center: cp.Vector{X: 500, Y: 500}})

				input, _ := ecs.Get(w, p, component.PlayerInputComponent.Kind())
				input.X = 1
				w.Step(sched, 100*time.Millisecond)
				assert.Equal(t, cp.Vector{X: 500, Y: 500}, cam.Center, "keyboard movement does not re-engage")

				cam.Manual = false
				w.Step(sched, 100*time.Millisecond)
				assert.Equal(t, pixelOf(t, w, p), cam.Center)
			},
		},
		{
			name: "pan_during_route_holds",
			run: func(t *testing.T) {
				m := openMap(t, 6, 6)
				w := ecs.NewWorld()
				sched := ecs.NewScheduler(NewPlayerMovementSystem(m, testTileSize), NewCameraSystem(testTileSize))
				p := spawnPlayer(t, w, station.Pt(0, 0))
				cam := spawnCamera(t, w, component.Camera{Mode: component.FollowPlayer})

				assign(t, w, p, station.Pt(0, 0), station.Pt(5, 0))
				w.Step(sched, 100*time.Millisecond)
				assert.Equal(t, pixelOf(t, w, p), cam.Center)

				cam.Manual = true
				cam.Center = cp.Vector{X: 900, Y: 900}
				for i := 0; i < 3; i++ {
					w.Step(sched, 100*time.Millisecond)
				}
				require.True(t, follower(t, w, p).Following, "route still active")
				assert.True(t, cam.Manual)
				assert.Equal(t, cp.Vector{X: 900, Y: 900}, cam.Center)
			},
		},
		{
			name: "follows_agent_by_id",
			run: func(t *testing.T) {
				w := ecs.NewWorld()
				spawnPlayer(t, w, station.Pt(0, 0))
				spawnAgent(t, w, "a7", station.Pt(4, 1), time.Second)
				cam := spawnCamera(t, w, component.Camera{Mode: component.FollowAgent, AgentID: "a7"})
				w.Step(ecs.NewScheduler(NewCameraSystem(testTileSize)), time.Millisecond)
				assert.Equal(t, cp.Vector{X: 288, Y: 96}, cam.Center)
			},
		},
		{
			name: "missing_agent_falls_back_to_player",
			run: func(t *testing.T) {
				w := ecs.NewWorld()
				spawnPlayer(t, w, station.Pt(1, 1))
				cam := spawnCamera(t, w, component.Camera{Mode: component.FollowAgent, AgentID: "ghost"})
				w.Step(ecs.NewScheduler(NewCameraSystem(testTileSize)), time.Millisecond)
				assert.Equal(t, cp.Vector{X: 96, Y: 96}, cam.Center)
			},
		},
		{
			name: "smoothing_trails_target",
			run: func(t *testing.T) {
				w := ecs.NewWorld()
				spawnPlayer(t, w, station.Pt(1, 0))
				cam := spawnCamera(t, w, component.Camera{Mode: component.FollowPlayer, Smoothness: 0.75, Center: cp.Vector{X: 0, Y: 32}})
				w.Step(ecs.NewScheduler(NewCameraSystem(testTileSize)), time.Millisecond)
				assert.InDelta(t, 24.0, cam.Center.X, 1e-9)
				assert.InDelta(t, 32.0, cam.Center.Y, 1e-9)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestCameraViewport(t *testing.T) {
	cam := component.Camera{Center: cp.Vector{X: 320, Y: 240}, Width: 640, Height: 480}
	vp := cam.Viewport()
	assert.Equal(t, 0.0, vp.Min[0])
	assert.Equal(t, 480.0, vp.Max[1])

	assert.True(t, cam.Visible(600, 400, 64, 64))
	assert.False(t, cam.Visible(700, 0, 64, 64))
	assert.False(t, cam.Visible(-100, -100, 64, 64))
}
