package station

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidDimensions = errors.New("station: invalid map dimensions")
	ErrOutOfBounds       = errors.New("station: tile out of bounds")
	ErrUnknownBuilding   = errors.New("station: unknown building")
)

// Map is a sparse grid of tiles with fixed bounds. Cells with no placed
// tile read as absent. Map is not safe for concurrent mutation; callers
// place and delete tiles only between simulation ticks.
type Map struct {
	Name string

	width  int
	height int
	tiles  map[Point]TileType

	buildings []*Building
	byID      map[string]*Building
}

// NewMap creates an empty map with the given bounds.
func NewMap(name string, width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Map{
		Name:   name,
		width:  width,
		height: height,
		tiles:  make(map[Point]TileType),
		byID:   make(map[string]*Building),
	}, nil
}

// Bounds returns the map width and height in tiles.
func (m *Map) Bounds() (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.width, m.height
}

// InBounds reports whether (x, y) lies within [0,width) x [0,height).
func (m *Map) InBounds(x, y int) bool {
	return m != nil && x >= 0 && y >= 0 && x < m.width && y < m.height
}

// Clamp pins p to the map bounds.
func (m *Map) Clamp(p Point) Point {
	if m == nil {
		return p
	}
	p.X = clampInt(p.X, 0, m.width-1)
	p.Y = clampInt(p.Y, 0, m.height-1)
	return p
}

// Place sets the tile at (t.X, t.Y), replacing any previous tile.
func (m *Map) Place(t Tile) error {
	if !m.InBounds(t.X, t.Y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, t.X, t.Y)
	}
	m.tiles[t.Point()] = t.Type
	return nil
}

// Delete removes the tile at (x, y) along with any building registered there.
func (m *Map) Delete(x, y int) {
	if m == nil {
		return
	}
	p := Point{X: x, Y: y}
	delete(m.tiles, p)
	for i, b := range m.buildings {
		if b.X == x && b.Y == y {
			delete(m.byID, b.ID)
			m.buildings = append(m.buildings[:i], m.buildings[i+1:]...)
			break
		}
	}
}

// TileAt returns the tile type at (x, y). Out-of-range or empty cells
// report false.
func (m *Map) TileAt(x, y int) (TileType, bool) {
	if !m.InBounds(x, y) {
		return "", false
	}
	t, ok := m.tiles[Point{X: x, Y: y}]
	return t, ok
}

// IsWalkable reports whether (x, y) holds a transit tile.
func (m *Map) IsWalkable(x, y int) bool {
	t, ok := m.TileAt(x, y)
	return ok && t.Walkable()
}

// Len returns the number of placed tiles.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tiles)
}

// Tiles returns every placed tile in row-major order.
func (m *Map) Tiles() []Tile {
	if m == nil {
		return nil
	}
	out := make([]Tile, 0, len(m.tiles))
	for p, t := range m.tiles {
		out = append(out, Tile{Type: t, X: p.X, Y: p.Y})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// TilesOfType returns the coordinates of every tile of type t in row-major
// order, so callers that pick among them stay deterministic.
func (m *Map) TilesOfType(t TileType) []Point {
	var out []Point
	for _, tile := range m.Tiles() {
		if tile.Type == t {
			out = append(out, tile.Point())
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
