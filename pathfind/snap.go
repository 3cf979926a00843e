package pathfind

import "github.com/bevatsal1122/agentverse-sub000/station"

// Snap returns p when it is walkable, otherwise the nearest walkable tile
// found on square rings of radius 1 up to the snap radius. Within the first
// ring holding any corridor, the candidate with the smallest Manhattan
// distance wins; equal distances keep scan order (x, then y, ascending).
func (pf *Pathfinder) Snap(p station.Point) (station.Point, bool) {
	if pf.Walkable(p.X, p.Y) {
		return p, true
	}
	for r := 1; r <= pf.snapRadius; r++ {
		best, bestDist, found := station.Point{}, 0, false
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				c := station.Pt(p.X+dx, p.Y+dy)
				if !pf.Walkable(c.X, c.Y) {
					continue
				}
				if d := abs(dx) + abs(dy); !found || d < bestDist {
					best, bestDist, found = c, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return station.Point{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
