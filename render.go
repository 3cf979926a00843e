package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/sim"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

var tileColors = map[station.TileType]color.Color{
	station.Space:          colornames.Midnightblue,
	station.Corridor:       colornames.Slategray,
	station.LivingQuarters: colornames.Lightskyblue,
	station.ResearchLab:    colornames.Mediumpurple,
	station.EngineeringBay: colornames.Darkorange,
	station.Recreation:     colornames.Mediumseagreen,
	station.PowerLine:      colornames.Gold,
	station.Water:          colornames.Steelblue,
}

var (
	playerColor = colornames.White
	gridColor   = color.NRGBA{A: 60}
)

func toScreen(cam component.Camera, x, y float64) (float32, float32) {
	return float32(x - cam.Center.X + cam.Width/2), float32(y - cam.Center.Y + cam.Height/2)
}

// drawTiles fills every visible cell. Empty cells are left black.
func drawTiles(screen *ebiten.Image, m *station.Map, cam component.Camera, ts float64) {
	w, h := m.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			wx, wy := float64(x)*ts, float64(y)*ts
			if !cam.Visible(wx, wy, ts, ts) {
				continue
			}
			t, ok := m.TileAt(x, y)
			if !ok {
				continue
			}
			clr, ok := tileColors[t]
			if !ok {
				clr = colornames.Black
			}
			sx, sy := toScreen(cam, wx, wy)
			vector.FillRect(screen, sx, sy, float32(ts), float32(ts), clr, false)
			vector.StrokeRect(screen, sx, sy, float32(ts), float32(ts), 1, gridColor, false)
		}
	}
}

// drawRoute draws the unvisited part of a path as a polyline through tile
// centers.
func drawRoute(screen *ebiten.Image, cam component.Camera, ts float64, path []station.Point, index int, clr color.Color) {
	if index < 0 {
		index = 0
	}
	for i := index; i+1 < len(path); i++ {
		a := system.TileCenter(path[i], ts)
		b := system.TileCenter(path[i+1], ts)
		x0, y0 := toScreen(cam, a.X, a.Y)
		x1, y1 := toScreen(cam, b.X, b.Y)
		vector.StrokeLine(screen, x0, y0, x1, y1, 3, clr, true)
	}
	if len(path) > 0 {
		end := system.TileCenter(path[len(path)-1], ts)
		ex, ey := toScreen(cam, end.X-ts/4, end.Y-ts/4)
		vector.StrokeRect(screen, ex, ey, float32(ts/2), float32(ts/2), 2, clr, true)
	}
}

func drawAgent(screen *ebiten.Image, cam component.Camera, ts float64, a sim.AgentState) {
	c := system.TileCenter(station.Pt(a.X, a.Y), ts)
	if !cam.Visible(c.X-ts/2, c.Y-ts/2, ts, ts) {
		return
	}
	sx, sy := toScreen(cam, c.X, c.Y)
	vector.FillCircle(screen, sx, sy, float32(ts/3), agentColor(a.Color), true)
	if a.Partner != "" {
		vector.StrokeCircle(screen, sx, sy, float32(ts/3)+3, 2, colornames.Yellow, true)
	}

	label := a.Name
	if a.Activity != "" {
		label = fmt.Sprintf("%s (%s)", a.Name, a.Activity)
	}
	ebitenutil.DebugPrintAt(screen, label, int(sx)-len(label)*3, int(sy)+int(ts/3)+2)
	if a.Bubble != "" {
		ebitenutil.DebugPrintAt(screen, a.Bubble, int(sx)-len(a.Bubble)*3, int(sy)-int(ts/3)-18)
	}
}

func drawPlayer(screen *ebiten.Image, cam component.Camera, p sim.PlayerState) {
	sx, sy := toScreen(cam, p.PixelX, p.PixelY)
	vector.FillRect(screen, sx-10, sy-10, 20, 20, playerColor, false)
	vector.StrokeRect(screen, sx-10, sy-10, 20, 20, 2, colornames.Black, false)
}

const chatLines = 6

func drawChat(screen *ebiten.Image, msgs []system.ChatMessage) {
	if len(msgs) > chatLines {
		msgs = msgs[len(msgs)-chatLines:]
	}
	y := baseHeight - 40 - len(msgs)*16
	for _, m := range msgs {
		ebitenutil.DebugPrintAt(screen, m.Text, 10, y)
		y += 16
	}
}

// agentColor parses "#rrggbb". Anything else falls back to a fixed color.
func agentColor(hex string) color.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return colornames.Hotpink
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colornames.Hotpink
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
