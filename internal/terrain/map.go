package terrain

import (
	"github.com/vovakirdan/hexfront/internal/hex"
)

// Map stores one terrain kind per offset cell of a width x height board.
type Map struct {
	width  int
	height int
	seed   int64
	cells  []Kind // row-major by offset coordinate
}

// NewMap creates an all-Plain map.
func NewMap(width, height int) *Map {
	return &Map{
		width:  width,
		height: height,
		cells:  make([]Kind, width*height),
	}
}

// Width returns the number of offset columns.
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of offset rows.
func (m *Map) Height() int {
	return m.height
}

// Seed returns the seed the map was generated from.
func (m *Map) Seed() int64 {
	return m.seed
}

// InBounds reports whether c is a cell of this map.
func (m *Map) InBounds(c hex.Coord) bool {
	return hex.InBounds(c, m.width, m.height)
}

func (m *Map) index(c hex.Coord) (int, bool) {
	if !m.InBounds(c) {
		return 0, false
	}
	o := hex.ToOffset(c)
	return o.Row*m.width + o.Col, true
}

// At returns the terrain at c. Unassigned coordinates read as Plain.
func (m *Map) At(c hex.Coord) Kind {
	i, ok := m.index(c)
	if !ok {
		return Plain
	}
	return m.cells[i]
}

// Set changes the terrain at c. Out-of-bounds coordinates are ignored.
func (m *Map) Set(c hex.Coord, k Kind) {
	i, ok := m.index(c)
	if !ok {
		return
	}
	m.cells[i] = k
}

// Cost returns the movement cost of entering c.
func (m *Map) Cost(c hex.Coord) int {
	return m.At(c).Cost()
}

// Cells calls fn for every in-bounds coordinate, column by column.
func (m *Map) Cells(fn func(c hex.Coord, k Kind)) {
	for col := 0; col < m.width; col++ {
		for row := 0; row < m.height; row++ {
			c := hex.FromOffset(hex.Offset{Col: col, Row: row})
			fn(c, m.cells[row*m.width+col])
		}
	}
}

// Count returns how many cells hold each terrain kind.
func (m *Map) Count() map[Kind]int {
	counts := make(map[Kind]int)
	for _, k := range m.cells {
		counts[k]++
	}
	return counts
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	c := *m
	c.cells = append([]Kind(nil), m.cells...)
	return &c
}
