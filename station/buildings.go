package station

import "fmt"

// Building is a registered destination tile with a stable id.
type Building struct {
	ID         string   `json:"id"`
	Type       TileType `json:"type"`
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Zone       string   `json:"zone"`
	AssignedTo string   `json:"assigned_agent,omitempty"`
}

func (b Building) Point() Point {
	return Point{X: b.X, Y: b.Y}
}

// AddBuilding places the building's tile and registers it. An empty ID is
// replaced by the next sequential "B%03d" id.
func (m *Map) AddBuilding(b Building) (string, error) {
	if b.ID == "" {
		b.ID = fmt.Sprintf("B%03d", len(m.buildings)+1)
	}
	if _, exists := m.byID[b.ID]; exists {
		return "", fmt.Errorf("station: duplicate building %s", b.ID)
	}
	if err := m.Place(Tile{Type: b.Type, X: b.X, Y: b.Y}); err != nil {
		return "", err
	}
	stored := b
	m.buildings = append(m.buildings, &stored)
	m.byID[stored.ID] = &stored
	return stored.ID, nil
}

// Building returns a copy of the building registered under id.
func (m *Map) Building(id string) (Building, bool) {
	if m == nil {
		return Building{}, false
	}
	b, ok := m.byID[id]
	if !ok {
		return Building{}, false
	}
	return *b, true
}

// Buildings returns all registered buildings in registration order.
func (m *Map) Buildings() []Building {
	return m.filterBuildings(func(*Building) bool { return true })
}

func (m *Map) BuildingsByZone(zone string) []Building {
	return m.filterBuildings(func(b *Building) bool { return b.Zone == zone })
}

func (m *Map) BuildingsByType(t TileType) []Building {
	return m.filterBuildings(func(b *Building) bool { return b.Type == t })
}

// AvailableBuildings returns buildings with no assigned agent.
func (m *Map) AvailableBuildings() []Building {
	return m.filterBuildings(func(b *Building) bool { return b.AssignedTo == "" })
}

func (m *Map) BuildingsAssignedTo(agentID string) []Building {
	return m.filterBuildings(func(b *Building) bool { return agentID != "" && b.AssignedTo == agentID })
}

// Assign claims a building for an agent. It fails when the building is
// unknown or already claimed.
func (m *Map) Assign(buildingID, agentID string) bool {
	if m == nil {
		return false
	}
	b, ok := m.byID[buildingID]
	if !ok || b.AssignedTo != "" {
		return false
	}
	b.AssignedTo = agentID
	return true
}

// Unassign releases a claimed building.
func (m *Map) Unassign(buildingID string) bool {
	if m == nil {
		return false
	}
	b, ok := m.byID[buildingID]
	if !ok || b.AssignedTo == "" {
		return false
	}
	b.AssignedTo = ""
	return true
}

func (m *Map) filterBuildings(keep func(*Building) bool) []Building {
	if m == nil {
		return nil
	}
	var out []Building
	for _, b := range m.buildings {
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}
