package main

import (
	"strings"

	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

type Tool int

const (
	ToolBrush Tool = iota
	ToolErase
	ToolFill
	ToolLine
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolErase:
		return "Erase"
	case ToolFill:
		return "Fill"
	case ToolLine:
		return "Line"
	default:
		return "Unknown"
	}
}

const empty = ' '

// delta records the previous glyph of every cell touched by one edit.
type delta map[int]rune

// Canvas is the editable glyph grid of one level. It satisfies
// pathfind.TileSource so routes can be previewed without building a map.
type Canvas struct {
	Name   string
	Width  int
	Height int

	cells   []rune
	zones   []levels.Zone
	stroke  delta
	undo    []delta
	maxUndo int
}

func NewCanvas(name string, w, h int) *Canvas {
	c := &Canvas{Name: name, Width: w, Height: h, cells: make([]rune, w*h), maxUndo: 200}
	for i := range c.cells {
		c.cells[i] = empty
	}
	return c
}

// CanvasFromLevel copies the level's rows into a canvas sized to the
// declared or row-derived extents.
func CanvasFromLevel(lvl *levels.Level) *Canvas {
	w, h := lvl.Width, lvl.Height
	if h == 0 {
		h = len(lvl.Rows)
	}
	if w == 0 {
		for _, row := range lvl.Rows {
			w = max(w, len([]rune(row)))
		}
	}
	c := NewCanvas(lvl.Name, w, h)
	c.zones = append([]levels.Zone(nil), lvl.Zones...)
	for y, row := range lvl.Rows {
		for x, ch := range []rune(row) {
			if c.inBounds(x, y) {
				c.cells[y*w+x] = ch
			}
		}
	}
	return c
}

// Level renders the canvas back into the on-disk form.
func (c *Canvas) Level() *levels.Level {
	rows := make([]string, c.Height)
	for y := range rows {
		rows[y] = string(c.cells[y*c.Width : (y+1)*c.Width])
	}
	return &levels.Level{Name: c.Name, Width: c.Width, Height: c.Height, Rows: rows, Zones: c.zones}
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

func (c *Canvas) At(x, y int) rune {
	if !c.inBounds(x, y) {
		return empty
	}
	return c.cells[y*c.Width+x]
}

func (c *Canvas) TileAt(x, y int) (station.TileType, bool) {
	t, ok := levels.Legend[c.At(x, y)]
	return t, ok
}

func (c *Canvas) Bounds() (int, int) {
	return c.Width, c.Height
}

// BeginStroke groups the following Paint calls into one undo step.
func (c *Canvas) BeginStroke() {
	if c.stroke == nil {
		c.stroke = delta{}
	}
}

// EndStroke closes the current stroke. Empty strokes leave no undo entry.
func (c *Canvas) EndStroke() {
	if len(c.stroke) > 0 {
		c.undo = append(c.undo, c.stroke)
		if len(c.undo) > c.maxUndo {
			c.undo = c.undo[1:]
		}
	}
	c.stroke = nil
}

// Paint sets one cell. Outside a stroke it is its own undo step.
func (c *Canvas) Paint(x, y int, glyph rune) bool {
	if !c.inBounds(x, y) {
		return false
	}
	i := y*c.Width + x
	if c.cells[i] == glyph {
		return false
	}
	own := c.stroke == nil
	if own {
		c.BeginStroke()
	}
	if _, seen := c.stroke[i]; !seen {
		c.stroke[i] = c.cells[i]
	}
	c.cells[i] = glyph
	if own {
		c.EndStroke()
	}
	return true
}

// Fill replaces the 4-connected region of equal glyphs around (x, y) and
// returns how many cells changed.
func (c *Canvas) Fill(x, y int, glyph rune) int {
	if !c.inBounds(x, y) {
		return 0
	}
	target := c.At(x, y)
	if target == glyph {
		return 0
	}
	c.BeginStroke()
	defer c.EndStroke()

	n := 0
	queue := []station.Point{station.Pt(x, y)}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if !c.inBounds(p.X, p.Y) || c.At(p.X, p.Y) != target {
			continue
		}
		c.Paint(p.X, p.Y, glyph)
		n++
		queue = append(queue,
			station.Pt(p.X+1, p.Y), station.Pt(p.X-1, p.Y),
			station.Pt(p.X, p.Y+1), station.Pt(p.X, p.Y-1))
	}
	return n
}

// Line paints a Bresenham line between two cells, endpoints included.
func (c *Canvas) Line(x0, y0, x1, y1 int, glyph rune) int {
	c.BeginStroke()
	defer c.EndStroke()

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errv := dx + dy
	n := 0
	for {
		if c.Paint(x0, y0, glyph) {
			n++
		}
		if x0 == x1 && y0 == y1 {
			return n
		}
		e2 := 2 * errv
		if e2 >= dy {
			errv += dy
			x0 += sx
		}
		if e2 <= dx {
			errv += dx
			y0 += sy
		}
	}
}

// Undo reverts the most recent edit.
func (c *Canvas) Undo() bool {
	if len(c.undo) == 0 {
		return false
	}
	last := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	for i, prev := range last {
		c.cells[i] = prev
	}
	return true
}

// String draws the grid the way level files store it.
func (c *Canvas) String() string {
	return strings.Join(c.Level().Rows, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
