package universe

import "sort"

//Pattern is the seeding template stamped relative to an anchor cell
type Pattern struct {
	Name    string   //pattern name
	Descr   string   //pattern descr
	Offsets [][2]int //array of [row, column] offsets from the anchor
}

var (
	Glider = Pattern{
		"glider",
		"5-cell spaceship moving one cell down and right every 4 generations",
		[][2]int{
			{-1, 0},
			{0, 1},
			{1, -1}, {1, 0}, {1, 1},
		},
	}

	Pulsar = Pattern{
		"pulsar",
		"48-cell oscillator with period 3 centred on the anchor",
		[][2]int{
			{-6, -4}, {-6, -3}, {-6, -2}, {-6, 2}, {-6, 3}, {-6, 4},
			{-4, -6}, {-4, -1}, {-4, 1}, {-4, 6},
			{-3, -6}, {-3, -1}, {-3, 1}, {-3, 6},
			{-2, -6}, {-2, -1}, {-2, 1}, {-2, 6},
			{-1, -4}, {-1, -3}, {-1, -2}, {-1, 2}, {-1, 3}, {-1, 4},
			{1, -4}, {1, -3}, {1, -2}, {1, 2}, {1, 3}, {1, 4},
			{2, -6}, {2, -1}, {2, 1}, {2, 6},
			{3, -6}, {3, -1}, {3, 1}, {3, 6},
			{4, -6}, {4, -1}, {4, 1}, {4, 6},
			{6, -4}, {6, -3}, {6, -2}, {6, 2}, {6, 3}, {6, 4},
		},
	}

	Blinker = Pattern{
		"blinker",
		"3-cell horizontal line oscillating with period 2",
		[][2]int{{0, -1}, {0, 0}, {0, 1}},
	}

	Block = Pattern{
		"block",
		"2x2 still life",
		[][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}

	patterns = map[string]Pattern{
		Glider.Name:  Glider,
		Pulsar.Name:  Pulsar,
		Blinker.Name: Blinker,
		Block.Name:   Block,
	}
)

//PatternByName looks up the built-in pattern
func PatternByName(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

//PatternNames returns the sorted names of the built-in patterns
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for k := range patterns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//AddPattern sets alive the pattern's cells around the anchor at row, column
//cells falling outside the field wrap around, other cells are left as is
func (u *Universe) AddPattern(p Pattern, row int, column int) {
	for _, o := range p.Offsets {
		u.cells.set(u.wrappedIndex(row+o[0], column+o[1]), true)
	}
}

func (u *Universe) AddGlider(row int, column int) {
	u.AddPattern(Glider, row, column)
}

func (u *Universe) AddPulsar(row int, column int) {
	u.AddPattern(Pulsar, row, column)
}
