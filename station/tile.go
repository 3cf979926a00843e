package station

import "strings"

// TileType classifies a single map cell.
type TileType string

const (
	Space          TileType = "space"
	Corridor       TileType = "corridor"
	LivingQuarters TileType = "living_quarters"
	ResearchLab    TileType = "research_lab"
	EngineeringBay TileType = "engineering_bay"
	Recreation     TileType = "recreation"
	PowerLine      TileType = "power_line"
	Water          TileType = "water"
)

// TileTypes lists every known tile type in palette order.
var TileTypes = []TileType{
	Space,
	Corridor,
	LivingQuarters,
	ResearchLab,
	EngineeringBay,
	Recreation,
	PowerLine,
	Water,
}

var tileAliases = map[string]TileType{
	"grass":         Space,
	"road":          Corridor,
	"main_road":     Corridor,
	"main_corridor": Corridor,
	"highway":       Corridor,
	"residential":   LivingQuarters,
	"commercial":    ResearchLab,
	"industrial":    EngineeringBay,
	"park":          Recreation,
}

// ParseTileType maps a tile name to its type. Legacy names from older maps are
// accepted; anything unrecognized becomes Space.
func ParseTileType(s string) TileType {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range TileTypes {
		if string(t) == name {
			return t
		}
	}
	if t, ok := tileAliases[name]; ok {
		return t
	}
	return Space
}

// Valid reports whether t is one of the known tile types.
func (t TileType) Valid() bool {
	for _, known := range TileTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Walkable reports whether paths may pass through a tile of this type.
func (t TileType) Walkable() bool {
	return t == Corridor
}

// Building reports whether the type is a destination building. Buildings
// are valid path endpoints but never transit tiles.
func (t TileType) Building() bool {
	switch t {
	case LivingQuarters, ResearchLab, EngineeringBay, Recreation:
		return true
	}
	return false
}

func (t TileType) String() string {
	return string(t)
}

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Manhattan returns the 4-connected grid distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Tile is a typed cell at a grid coordinate.
type Tile struct {
	Type TileType `json:"type"`
	X    int      `json:"x"`
	Y    int      `json:"y"`
}

func (t Tile) Point() Point {
	return Point{X: t.X, Y: t.Y}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
