package universe

import (
	"math/rand"
	"strings"
	"time"
)

/*
	Universe is the toroidal Game of Life field packed one bit per cell
	Cells are stored row-major, cell (row, column) is the bit row*width+column
	Every coordinate passed in is wrapped around the field, so negative and
	oversized values address the cell they would reach on the torus

	Universe is not safe for concurrent use, the caller serializes access
*/
type Universe struct {
	width      int
	height     int
	cells      bitSet
	next       bitSet
	rng        *rand.Rand
	generation int
	changed    bool
}

//glyphs used by Render
const (
	LiveGlyph = '◼'
	DeadGlyph = '◻'
)

//New creates the Universe with the given options
//nil options means DefaultOptions
func New(o *Options) *Universe {
	if o == nil {
		o = &DefaultOptions
	}
	width, height := o.Width, o.Height
	if width <= 0 {
		width = DefWidth
	}
	if height <= 0 {
		height = DefHeight
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u := &Universe{
		width:  width,
		height: height,
		cells:  newBitSet(width * height),
		next:   newBitSet(width * height),
		rng:    rand.New(rand.NewSource(seed)),
	}
	if o.Randomize {
		u.cells.fill(u.rng, width*height)
	}
	return u
}

//NewDefault creates the empty Universe of the default size
func NewDefault() *Universe {
	return New(nil)
}

//NewRandom creates the Universe of the default size populated with random data
func NewRandom() *Universe {
	o := DefaultOptions
	o.Randomize = true
	return New(&o)
}

func (u *Universe) Width() int {
	return u.width
}

func (u *Universe) Height() int {
	return u.height
}

//Cells returns the packed cell buffer without copying
//bit n is at byte n/8, mask 1<<(n%8), n = Index(row, column)
//the slice must not be modified and is only valid until the next mutating call
func (u *Universe) Cells() []byte {
	return u.cells
}

//Generation returns the number of ticks done since creation or the last Clear
func (u *Universe) Generation() int {
	return u.generation
}

//Changed reports whether the last Tick altered any cell
func (u *Universe) Changed() bool {
	return u.changed
}

//LiveCells returns the count of live cells
func (u *Universe) LiveCells() int {
	return u.cells.count()
}

//Index maps the in-range coordinates to the bit number
func (u *Universe) Index(row int, column int) int {
	return row*u.width + column
}

//Alive returns the state of the cell at row, column
func (u *Universe) Alive(row int, column int) bool {
	return u.cells.get(u.wrappedIndex(row, column))
}

//Set puts the cell at row, column into the given state
func (u *Universe) Set(row int, column int, alive bool) {
	u.cells.set(u.wrappedIndex(row, column), alive)
}

//ToggleCell inverts the cell state at row, column
func (u *Universe) ToggleCell(row int, column int) {
	u.cells.flip(u.wrappedIndex(row, column))
}

//Clear kills all cells and resets the generation counter
func (u *Universe) Clear() {
	u.cells.zero()
	u.generation = 0
	u.changed = false
}

//Randomize populates every cell independently with probability 1/2
func (u *Universe) Randomize() {
	u.cells.fill(u.rng, u.width*u.height)
}

//Tick calculates the next generation for the entire field
//the new state is built in the spare buffer from the current one and then
//the buffers are swapped
func (u *Universe) Tick() {
	changed := false
	for row := 0; row < u.height; row++ {
		for column := 0; column < u.width; column++ {
			idx := u.Index(row, column)
			live := u.cells.get(idx)
			alive := nextState(live, u.liveNeighbours(row, column))
			changed = changed || alive != live
			u.next.set(idx, alive)
		}
	}
	u.cells, u.next = u.next, u.cells
	u.generation++
	u.changed = changed
}

//Render returns the field as text, one glyph per cell and one line per row
func (u *Universe) Render() string {
	var b strings.Builder
	b.Grow(u.height * (u.width*3 + 1))
	for row := 0; row < u.height; row++ {
		for column := 0; column < u.width; column++ {
			if u.cells.get(u.Index(row, column)) {
				b.WriteRune(LiveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (u *Universe) String() string {
	return u.Render()
}

//liveNeighbours counts the live cells among the 8 neighbours on the torus
func (u *Universe) liveNeighbours(row int, column int) int {
	n := 0
	for dr := -1; dr < 2; dr++ {
		for dc := -1; dc < 2; dc++ {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr + u.height) % u.height
			c := (column + dc + u.width) % u.width
			if u.cells.get(u.Index(r, c)) {
				n++
			}
		}
	}
	return n
}

//wrappedIndex maps any coordinates to the bit number on the torus
func (u *Universe) wrappedIndex(row int, column int) int {
	return u.Index(wrap(row, u.height), wrap(column, u.width))
}

func wrap(v int, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

//nextState applies B3/S23: birth on 3 neighbours, survival on 2 or 3
func nextState(live bool, liveNeighbours int) bool {
	return liveNeighbours == 3 || (live && liveNeighbours == 2)
}
