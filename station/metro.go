package station

// MetroCityName is the name of the built-in default station layout.
const MetroCityName = "Metro City"

type district struct {
	zone   string
	x0, x1 int
	y0, y1 int
	pick   func(x, y int) TileType
}

func everyNth(n int, hit, miss TileType) func(x, y int) TileType {
	return func(x, y int) TileType {
		if (x+y)%n == 0 {
			return hit
		}
		return miss
	}
}

var metroDistricts = []district{
	{"Historic District", 0, 6, 0, 4, everyNth(5, Recreation, LivingQuarters)},
	{"Downtown Business", 7, 12, 0, 10, everyNth(7, Recreation, ResearchLab)},
	{"High-Rise District", 13, 18, 5, 16, everyNth(6, Recreation, ResearchLab)},
	{"Upscale Residential", 19, 25, 0, 16, everyNth(4, Recreation, LivingQuarters)},
	{"Middle-Class Residential", 0, 6, 5, 16, everyNth(6, Recreation, LivingQuarters)},
	{"Industrial District", 0, 12, 17, 25, func(x, y int) TileType {
		switch {
		case x%4 == 0:
			return PowerLine
		case (x+y)%3 == 0:
			return EngineeringBay
		}
		return LivingQuarters
	}},
	{"Commercial District", 13, 18, 17, 25, everyNth(5, Recreation, ResearchLab)},
	{"Suburban Area", 19, 25, 17, 25, everyNth(4, Recreation, LivingQuarters)},
	{"Central Park", 7, 12, 11, 16, func(int, int) TileType { return Recreation }},
}

var metroRiver = []Point{
	{0, 11}, {1, 11}, {2, 12}, {3, 12}, {4, 12}, {5, 11},
	{7, 11}, {8, 11}, {9, 12}, {10, 12}, {11, 11},
}

// MetroCity builds the default 25x25 station: a corridor grid of main
// streets and local streets, a river, and districts filled with buildings
// numbered B001 onward in placement order.
func MetroCity() *Map {
	const size = 25
	m, _ := NewMap(MetroCityName, size, size)

	grid := make([][]TileType, size)
	for y := range grid {
		grid[y] = make([]TileType, size)
		for x := range grid[y] {
			grid[y][x] = Space
		}
	}
	fill := func(x, y int) {
		if grid[y][x] == Space {
			grid[y][x] = Corridor
		}
	}

	for i := 0; i < size; i++ {
		for _, x := range []int{6, 12, 18} {
			grid[i][x] = Corridor
		}
		for _, y := range []int{4, 10, 16, 21} {
			grid[y][i] = Corridor
		}
	}
	for x := 13; x < 18; x++ {
		fill(x, 7)
		fill(x, 13)
	}
	for y := 5; y < 10; y++ {
		fill(15, y)
		fill(21, y)
	}
	for x := 1; x < 6; x++ {
		fill(x, 2)
		fill(x, 8)
		fill(x, 14)
	}
	for y := 11; y < 16; y++ {
		fill(3, y)
	}
	for x := 19; x < 25; x++ {
		fill(x, 2)
		fill(x, 8)
		fill(x, 14)
	}
	for x := 1; x < 12; x++ {
		fill(x, 19)
		fill(x, 23)
	}
	for y := 17; y < 21; y++ {
		fill(9, y)
	}
	for _, p := range metroRiver {
		if grid[p.Y][p.X] == Space {
			grid[p.Y][p.X] = Water
		}
	}

	for y := range grid {
		for x, t := range grid[y] {
			_ = m.Place(Tile{Type: t, X: x, Y: y})
		}
	}

	for _, d := range metroDistricts {
		for y := d.y0; y < d.y1; y++ {
			for x := d.x0; x < d.x1; x++ {
				if t, _ := m.TileAt(x, y); t != Space {
					continue
				}
				_, _ = m.AddBuilding(Building{Type: d.pick(x, y), X: x, Y: y, Zone: d.zone})
			}
		}
	}
	return m
}
