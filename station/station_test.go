package station

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTileType(t *testing.T) {
	cases := []struct {
		in   string
		want TileType
	}{
		{"corridor", Corridor},
		{"CORRIDOR", Corridor},
		{" research_lab ", ResearchLab},
		{"road", Corridor},
		{"highway", Corridor},
		{"main_corridor", Corridor},
		{"residential", LivingQuarters},
		{"commercial", ResearchLab},
		{"industrial", EngineeringBay},
		{"park", Recreation},
		{"grass", Space},
		{"lava", Space},
		{"", Space},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, ParseTileType(c.in))
		})
	}
}

func TestTileTypeClassification(t *testing.T) {
	for _, tt := range TileTypes {
		assert.True(t, tt.Valid(), tt)
		assert.Equal(t, tt == Corridor, tt.Walkable(), tt)
	}
	assert.True(t, LivingQuarters.Building())
	assert.True(t, Recreation.Building())
	assert.False(t, Corridor.Building())
	assert.False(t, Water.Building())
	assert.False(t, TileType("lava").Valid())
}

func TestMapBounds(t *testing.T) {
	_, err := NewMap("bad", 0, 3)
	require.True(t, errors.Is(err, ErrInvalidDimensions))

	m, err := NewMap("small", 3, 2)
	require.NoError(t, err)

	require.NoError(t, m.Place(Tile{Type: Corridor, X: 2, Y: 1}))
	err = m.Place(Tile{Type: Corridor, X: 3, Y: 0})
	require.True(t, errors.Is(err, ErrOutOfBounds))

	cases := []struct {
		name     string
		x, y     int
		walkable bool
		present  bool
	}{
		{"placed", 2, 1, true, true},
		{"empty", 0, 0, false, false},
		{"negative", -1, 0, false, false},
		{"past_width", 3, 1, false, false},
		{"past_height", 0, 2, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := m.TileAt(c.x, c.y)
			assert.Equal(t, c.present, ok)
			assert.Equal(t, c.walkable, m.IsWalkable(c.x, c.y))
		})
	}

	assert.Equal(t, Pt(2, 0), m.Clamp(Pt(9, -4)))
}

func TestMapDeleteRemovesBuilding(t *testing.T) {
	m, err := NewMap("small", 4, 4)
	require.NoError(t, err)
	id, err := m.AddBuilding(Building{Type: ResearchLab, X: 1, Y: 1, Zone: "lab"})
	require.NoError(t, err)
	assert.Equal(t, "B001", id)

	m.Delete(1, 1)
	_, ok := m.TileAt(1, 1)
	assert.False(t, ok)
	_, ok = m.Building(id)
	assert.False(t, ok)
}

func TestBuildingAssignment(t *testing.T) {
	m, err := NewMap("small", 4, 4)
	require.NoError(t, err)
	a, _ := m.AddBuilding(Building{Type: LivingQuarters, X: 0, Y: 0, Zone: "north"})
	b, _ := m.AddBuilding(Building{Type: ResearchLab, X: 3, Y: 0, Zone: "north"})
	_, _ = m.AddBuilding(Building{Type: ResearchLab, X: 3, Y: 3, Zone: "south"})

	_, err = m.AddBuilding(Building{ID: a, Type: Recreation, X: 2, Y: 2})
	require.Error(t, err)

	require.True(t, m.Assign(a, "agent-1"))
	assert.False(t, m.Assign(a, "agent-2"), "already claimed")
	assert.False(t, m.Assign("B999", "agent-1"))
	require.True(t, m.Assign(b, "agent-1"))

	assert.Len(t, m.BuildingsAssignedTo("agent-1"), 2)
	assert.Len(t, m.AvailableBuildings(), 1)
	assert.Len(t, m.BuildingsByZone("north"), 2)
	assert.Len(t, m.BuildingsByType(ResearchLab), 2)

	require.True(t, m.Unassign(a))
	assert.False(t, m.Unassign(a))
	assert.Len(t, m.AvailableBuildings(), 2)
}

func TestMetroCity(t *testing.T) {
	m := MetroCity()
	w, h := m.Bounds()
	require.Equal(t, 25, w)
	require.Equal(t, 25, h)
	assert.Equal(t, 25*25, m.Len())

	for i := 0; i < 25; i++ {
		assert.True(t, m.IsWalkable(6, i))
		assert.True(t, m.IsWalkable(i, 10))
	}
	assert.True(t, m.IsWalkable(3, 12), "local street wins over river")
	water, _ := m.TileAt(0, 11)
	assert.Equal(t, Water, water)

	first, ok := m.Building("B001")
	require.True(t, ok)
	assert.Equal(t, Building{ID: "B001", Type: Recreation, X: 0, Y: 0, Zone: "Historic District"}, first)

	second, ok := m.Building("B002")
	require.True(t, ok)
	assert.Equal(t, LivingQuarters, second.Type)
	assert.Equal(t, Pt(1, 0), second.Point())

	for _, b := range m.Buildings() {
		tile, ok := m.TileAt(b.X, b.Y)
		require.True(t, ok)
		assert.Equal(t, b.Type, tile, b.ID)
	}
	assert.NotEmpty(t, m.BuildingsByZone("Central Park"))
	assert.NotEmpty(t, m.BuildingsByType(EngineeringBay))
}
