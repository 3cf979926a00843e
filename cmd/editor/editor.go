package main

import (
	"fmt"
	"image/color"
	"log"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/pathfind"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const (
	screenWidth  = 1280
	screenHeight = 720
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

var paletteKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8,
}

func tileColor(t station.TileType) color.Color {
	if c, ok := tileColors[t]; ok {
		return c
	}
	return colornames.Black
}

// Editor paints level glyphs and previews routes over the result.
type Editor struct {
	canvas   *Canvas
	name     string
	cellSize int
	offsetX  int
	offsetY  int

	tool  Tool
	glyph rune

	lineStart *station.Point
	painting  bool

	finder     *pathfind.Pathfinder
	routeStart *station.Point
	routeGoal  *station.Point
	route      []station.Point

	status  string
	ui      *ebitenui.UI
	toolbar *ToolBar
}

func NewEditor(c *Canvas, name string, cellSize int) *Editor {
	e := &Editor{
		canvas:   c,
		name:     name,
		cellSize: cellSize,
		offsetY:  toolbarHeight + 8,
		offsetX:  8,
		glyph:    levels.Glyph(station.Corridor),
		finder:   pathfind.New(c, pathfind.Config{}),
	}
	e.ui, e.toolbar = buildUI(e)
	e.toolbar.SetTool(ToolBrush)
	e.toolbar.SetTile(1)
	return e
}

func (e *Editor) selectTile(idx int) {
	if idx >= 0 && idx < len(station.TileTypes) {
		e.glyph = levels.Glyph(station.TileTypes[idx])
	}
}

func (e *Editor) save() {
	path, err := levels.Save(e.canvas.Level(), e.name)
	if err != nil {
		e.status = "save failed: " + err.Error()
		log.Printf("editor: %v", err)
		return
	}
	e.status = "saved " + path
}

func (e *Editor) cellAt(mx, my int) (station.Point, bool) {
	x, y := mx-e.offsetX, my-e.offsetY
	if x < 0 || y < 0 {
		return station.Point{}, false
	}
	p := station.Pt(x/e.cellSize, y/e.cellSize)
	return p, p.X < e.canvas.Width && p.Y < e.canvas.Height
}

func (e *Editor) Update() error {
	e.ui.Update()
	e.handleKeys()

	mx, my := ebiten.CursorPosition()
	if ebuiinput.UIHovered || my < toolbarHeight {
		e.endPaint()
		return nil
	}
	cell, ok := e.cellAt(mx, my)
	if !ok {
		e.endPaint()
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		e.pickRouteEnd(cell)
	}

	glyph := e.glyph
	if e.tool == ToolErase {
		glyph = empty
	}
	changed := false
	switch e.tool {
	case ToolBrush, ToolErase:
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			if !e.painting {
				e.canvas.BeginStroke()
				e.painting = true
			}
			changed = e.canvas.Paint(cell.X, cell.Y, glyph)
		} else {
			e.endPaint()
		}
	case ToolFill:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			changed = e.canvas.Fill(cell.X, cell.Y, glyph) > 0
		}
	case ToolLine:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			if e.lineStart == nil {
				start := cell
				e.lineStart = &start
			} else {
				changed = e.canvas.Line(e.lineStart.X, e.lineStart.Y, cell.X, cell.Y, glyph) > 0
				e.lineStart = nil
			}
		}
	}
	if changed {
		e.replan()
	}
	return nil
}

func (e *Editor) endPaint() {
	if e.painting {
		e.canvas.EndStroke()
		e.painting = false
	}
}

func (e *Editor) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.save()
		return
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if e.canvas.Undo() {
			e.replan()
		}
		return
	}

	for key, tool := range map[ebiten.Key]Tool{ebiten.KeyB: ToolBrush, ebiten.KeyE: ToolErase, ebiten.KeyF: ToolFill, ebiten.KeyL: ToolLine} {
		if inpututil.IsKeyJustPressed(key) {
			e.tool = tool
			e.toolbar.SetTool(tool)
		}
	}
	for i, key := range paletteKeys {
		if i < len(station.TileTypes) && inpututil.IsKeyJustPressed(key) {
			e.selectTile(i)
			e.toolbar.SetTile(i)
		}
	}

	const pan = 8
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		e.offsetX += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		e.offsetX -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		e.offsetY += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		e.offsetY -= pan
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.lineStart, e.routeStart, e.routeGoal, e.route = nil, nil, nil, nil
	}
}

// pickRouteEnd sets the preview start, then the goal, then starts over.
func (e *Editor) pickRouteEnd(p station.Point) {
	switch {
	case e.routeStart == nil || e.routeGoal != nil:
		e.routeStart, e.routeGoal, e.route = &p, nil, nil
		e.status = fmt.Sprintf("route from (%d,%d)", p.X, p.Y)
	default:
		e.routeGoal = &p
		e.replan()
	}
}

func (e *Editor) replan() {
	if e.routeStart == nil || e.routeGoal == nil {
		return
	}
	path, ok := e.finder.FindPath(e.routeStart.X, e.routeStart.Y, e.routeGoal.X, e.routeGoal.Y)
	if !ok {
		e.route = nil
		e.status = fmt.Sprintf("no route (%d,%d) -> (%d,%d)", e.routeStart.X, e.routeStart.Y, e.routeGoal.X, e.routeGoal.Y)
		return
	}
	e.route = path.Nodes
	e.status = fmt.Sprintf("route: %d nodes", path.Len())
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	cs := float32(e.cellSize)
	for y := 0; y < e.canvas.Height; y++ {
		for x := 0; x < e.canvas.Width; x++ {
			sx, sy := float32(e.offsetX)+float32(x)*cs, float32(e.offsetY)+float32(y)*cs
			if t, ok := e.canvas.TileAt(x, y); ok {
				vector.FillRect(screen, sx, sy, cs, cs, tileColor(t), false)
			}
			vector.StrokeRect(screen, sx, sy, cs, cs, 1, color.NRGBA{R: 80, G: 80, B: 80, A: 255}, false)
		}
	}

	center := func(p station.Point) (float32, float32) {
		return float32(e.offsetX) + (float32(p.X)+0.5)*cs, float32(e.offsetY) + (float32(p.Y)+0.5)*cs
	}
	for i := 0; i+1 < len(e.route); i++ {
		x0, y0 := center(e.route[i])
		x1, y1 := center(e.route[i+1])
		vector.StrokeLine(screen, x0, y0, x1, y1, 3, colornames.White, true)
	}
	for _, p := range []*station.Point{e.routeStart, e.routeGoal, e.lineStart} {
		if p != nil {
			x, y := center(*p)
			vector.StrokeRect(screen, x-cs/4, y-cs/4, cs/2, cs/2, 2, colornames.Red, false)
		}
	}

	e.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %dx%d  tool: %s  tile: %q  %s",
		e.name, e.canvas.Width, e.canvas.Height, e.tool, e.glyph, e.status), 8, screenHeight-20)
}

func (e *Editor) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return screenWidth, screenHeight
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
