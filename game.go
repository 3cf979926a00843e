package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/ebitenui/ebitenui"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/prefabs"
	"github.com/bevatsal1122/agentverse-sub000/sim"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool
	paused bool
	status string

	sim      *sim.Simulation
	tileSize float64
	ui       *ebitenui.UI

	dragging  bool
	dragX     int
	dragY     int
	followIdx int
}

func NewGame(levelName string, agents int, debug bool) (*Game, error) {
	spec, err := prefabs.LoadStationSpec()
	if err != nil {
		return nil, err
	}
	if levelName == "" {
		levelName = spec.Level
	}
	if levelName == "" {
		levelName = levels.Metro
	}
	m, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	spec.Camera.Width, spec.Camera.Height = baseWidth, baseHeight

	s, err := sim.New(sim.Options{Spec: spec, Map: m})
	if err != nil {
		return nil, err
	}
	for i := 0; i < agents; i++ {
		if _, ok := s.SpawnRandomAgent(); !ok {
			break
		}
	}

	g := &Game{debug: debug, sim: s, tileSize: spec.TileSize}
	if debug {
		s.Subscribe(system.EventAgentArrived, func(evt ecs.Event) {
			log.Printf("viewer: %+v", evt.Data)
		})
	}
	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	g.handleKeys()
	g.handleMouse()

	g.sim.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) handleKeys() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		dy++
	}
	g.sim.SetPlayerInput(dx, dy)

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.status = copyRoute(g.sim.PlayerRoute())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.spawnAgent()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleFollow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.sim.FollowPlayer()
	}
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	tile := system.PixelToTile(g.screenToWorld(float64(mx), float64(my)), g.tileSize)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !g.sim.MovePlayerTo(tile.X, tile.Y) {
			g.status = fmt.Sprintf("no route to (%d,%d)", tile.X, tile.Y)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if id, ok := g.agentAt(tile); ok {
			g.sim.FollowAgent(id)
		} else {
			g.sim.FollowPlayer()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.dragging, g.dragX, g.dragY = true, mx, my
	}
	if g.dragging {
		if mx != g.dragX || my != g.dragY {
			g.sim.Pan(float64(g.dragX-mx), float64(g.dragY-my))
			g.dragX, g.dragY = mx, my
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
			g.dragging = false
		}
	}
}

func (g *Game) spawnAgent() {
	if id, ok := g.sim.SpawnRandomAgent(); ok {
		g.status = "spawned " + id
	} else {
		g.status = "station is full"
	}
}

func (g *Game) cycleFollow() {
	ids := g.sim.AgentIDs()
	if len(ids) == 0 {
		return
	}
	g.followIdx = (g.followIdx + 1) % len(ids)
	g.sim.FollowAgent(ids[g.followIdx])
}

func (g *Game) agentAt(p station.Point) (string, bool) {
	for _, id := range g.sim.AgentIDs() {
		if pos, ok := g.sim.AgentPosition(id); ok && pos == p {
			return id, true
		}
	}
	return "", false
}

func (g *Game) screenToWorld(x, y float64) cp.Vector {
	cam := g.sim.Camera()
	return cp.Vector{X: x + cam.Center.X - baseWidth/2, Y: y + cam.Center.Y - baseHeight/2}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cam := g.sim.Camera()
	snap := g.sim.Snapshot()

	drawTiles(screen, g.sim.Map(), cam, g.tileSize)
	for _, a := range snap.Agents {
		if g.debug || cam.Mode == "agent" && cam.AgentID == a.ID {
			drawRoute(screen, cam, g.tileSize, a.Path, a.PathIndex, agentColor(a.Color))
		}
	}
	drawRoute(screen, cam, g.tileSize, snap.Player.Path, snap.Player.PathIndex, playerColor)
	for _, a := range snap.Agents {
		drawAgent(screen, cam, g.tileSize, a)
	}
	drawPlayer(screen, cam, snap.Player)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    %s    camera: %s %s",
		g.frames, ebiten.ActualFPS(), snap.Map, cam.Mode, cam.AgentID))
	drawChat(screen, snap.Chat)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 10, baseHeight-20)
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
