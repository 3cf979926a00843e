// Package pathfind routes entities across the station's corridor network.
package pathfind

import (
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const (
	DefaultSnapRadius = 10
)

// TileSource is the read-only view of the map the pathfinder searches.
type TileSource interface {
	TileAt(x, y int) (station.TileType, bool)
	Bounds() (int, int)
}

// Config tunes the search.
type Config struct {
	// SnapRadius is the largest ring searched when an endpoint is not on a
	// corridor. Zero means DefaultSnapRadius.
	SnapRadius int
	// MaxExpansions caps how many nodes one search may close. Zero means
	// unbounded.
	MaxExpansions int
}

// Path is an ordered route from a literal start to a literal goal.
type Path struct {
	Nodes []station.Point `json:"nodes"`
}

// Len returns the number of nodes in the path.
func (p Path) Len() int {
	return len(p.Nodes)
}

// Empty reports whether the path has no nodes.
func (p Path) Empty() bool {
	return len(p.Nodes) == 0
}

// Start returns the first node.
func (p Path) Start() station.Point {
	if len(p.Nodes) == 0 {
		return station.Point{}
	}
	return p.Nodes[0]
}

// Goal returns the last node.
func (p Path) Goal() station.Point {
	if len(p.Nodes) == 0 {
		return station.Point{}
	}
	return p.Nodes[len(p.Nodes)-1]
}

// Intn is the random source used to pick among candidate buildings.
// *math/rand/v2.Rand satisfies it.
type Intn interface {
	IntN(n int) int
}

// Pathfinder computes corridor-constrained routes. It keeps no state
// between calls, so one value may serve every entity.
type Pathfinder struct {
	tiles         TileSource
	snapRadius    int
	maxExpansions int
}

// New returns a pathfinder over tiles.
func New(tiles TileSource, cfg Config) *Pathfinder {
	radius := cfg.SnapRadius
	if radius <= 0 {
		radius = DefaultSnapRadius
	}
	maxExp := cfg.MaxExpansions
	if maxExp < 0 {
		maxExp = 0
	}
	return &Pathfinder{tiles: tiles, snapRadius: radius, maxExpansions: maxExp}
}

// Walkable reports whether (x, y) may be crossed mid-route.
func (pf *Pathfinder) Walkable(x, y int) bool {
	if pf == nil || pf.tiles == nil {
		return false
	}
	w, h := pf.tiles.Bounds()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	t, ok := pf.tiles.TileAt(x, y)
	return ok && t.Walkable()
}

// FindPath routes from start to goal. Endpoints that are not on a corridor
// are snapped to the nearest corridor tile, and the literal endpoints are
// restored at either end of the result. The bool is false when either
// endpoint has no corridor within reach or the corridors do not connect.
func (pf *Pathfinder) FindPath(startX, startY, goalX, goalY int) (Path, bool) {
	start := station.Pt(startX, startY)
	goal := station.Pt(goalX, goalY)

	startRoad, ok := pf.Snap(start)
	if !ok {
		return Path{}, false
	}
	goalRoad, ok := pf.Snap(goal)
	if !ok {
		return Path{}, false
	}

	nodes := pf.search(startRoad, goalRoad)
	if nodes == nil {
		return Path{}, false
	}
	if start != startRoad {
		nodes = append([]station.Point{start}, nodes...)
	}
	if goal != goalRoad {
		nodes = append(nodes, goal)
	}
	return Path{Nodes: nodes}, true
}

// FindPathToBuilding routes to the nearest tile of type t by Manhattan
// distance. Ties go to the first tile in row-major order.
func (pf *Pathfinder) FindPathToBuilding(startX, startY int, t station.TileType) (Path, bool) {
	candidates := pf.tilesOfType(t)
	if len(candidates) == 0 {
		return Path{}, false
	}
	start := station.Pt(startX, startY)
	best := candidates[0]
	bestDist := start.Manhattan(best)
	for _, c := range candidates[1:] {
		if d := start.Manhattan(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return pf.FindPath(startX, startY, best.X, best.Y)
}

// FindPathToRandomBuilding routes to a uniformly chosen tile of type t.
func (pf *Pathfinder) FindPathToRandomBuilding(startX, startY int, t station.TileType, rng Intn) (Path, bool) {
	candidates := pf.tilesOfType(t)
	if len(candidates) == 0 || rng == nil {
		return Path{}, false
	}
	pick := candidates[rng.IntN(len(candidates))]
	return pf.FindPath(startX, startY, pick.X, pick.Y)
}

func (pf *Pathfinder) tilesOfType(t station.TileType) []station.Point {
	if pf == nil || pf.tiles == nil {
		return nil
	}
	w, h := pf.tiles.Bounds()
	var out []station.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if tt, ok := pf.tiles.TileAt(x, y); ok && tt == t {
				out = append(out, station.Pt(x, y))
			}
		}
	}
	return out
}
