package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/bevatsal1122/agentverse-sub000/pathfind"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// Grid is the read-only map view systems step against.
type Grid = pathfind.TileSource

// TileCenter converts a tile coordinate to the pixel at its center.
func TileCenter(p station.Point, tileSize float64) cp.Vector {
	return cp.Vector{X: (float64(p.X) + 0.5) * tileSize, Y: (float64(p.Y) + 0.5) * tileSize}
}

// PixelToTile returns the tile containing pixel v.
func PixelToTile(v cp.Vector, tileSize float64) station.Point {
	if tileSize <= 0 {
		return station.Point{}
	}
	return station.Pt(int(math.Floor(v.X/tileSize)), int(math.Floor(v.Y/tileSize)))
}

func clampToGrid(g Grid, p station.Point) station.Point {
	if g == nil {
		return p
	}
	w, h := g.Bounds()
	if w <= 0 || h <= 0 {
		return p
	}
	p.X = min(max(p.X, 0), w-1)
	p.Y = min(max(p.Y, 0), h-1)
	return p
}

// stepToward moves one unit along the axis with the larger gap to target.
// Equal gaps move vertically.
func stepToward(from, to station.Point) station.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && dy == 0:
		return from
	case abs(dx) > abs(dy):
		from.X += sign(dx)
	default:
		from.Y += sign(dy)
	}
	return from
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
