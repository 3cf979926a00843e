package component

import "github.com/bevatsal1122/agentverse-sub000/pathfind"

// PathFollower holds an entity's active route and its cursor. The whole
// value is replaced on assignment or cancellation so a reader never sees a
// cursor from one route paired with another route's nodes.
type PathFollower struct {
	Path      pathfind.Path
	Index     int
	Following bool
}

// Assign replaces the route and rewinds the cursor.
func (f *PathFollower) Assign(p pathfind.Path) {
	*f = PathFollower{Path: p, Following: !p.Empty()}
}

// Clear drops the route.
func (f *PathFollower) Clear() {
	*f = PathFollower{}
}

// Remaining returns the nodes not yet consumed.
func (f *PathFollower) Remaining() int {
	if !f.Following {
		return 0
	}
	return f.Path.Len() - f.Index
}

var PathFollowerComponent = NewComponent[PathFollower]()
