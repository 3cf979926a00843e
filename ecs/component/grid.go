package component

import "github.com/bevatsal1122/agentverse-sub000/station"

// GridPosition is an entity's tile coordinate. It is always integral.
type GridPosition struct {
	X int
	Y int
}

func (p GridPosition) Point() station.Point {
	return station.Pt(p.X, p.Y)
}

var GridPositionComponent = NewComponent[GridPosition]()
