// Package hex provides axial-coordinate geometry for a flat-top hex grid.
// All functions are pure; every spatial query in the engine builds on them.
package hex

import (
	"fmt"
	"math"
)

// Size is the hex radius in pixels used by the pixel projection.
const Size = 28.0

var sqrt3 = math.Sqrt(3)

// Coord is a position on the grid in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Coord struct {
	Q int `yaml:"q" json:"q"`
	R int `yaml:"r" json:"r"`
}

// Offset is the odd-q column/row form of a coordinate.
// It is only used for rectangular bounds checks and terrain storage keys.
type Offset struct {
	Col int
	Row int
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// String formats the coordinate as "(q,r)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Directions lists the six neighbor offsets in clockwise order.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates in Directions order.
func Neighbors(c Coord) [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the number of hex steps between a and b.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// ToPixel projects a coordinate to the pixel center of its hex.
func ToPixel(c Coord) (x, y float64) {
	q, r := float64(c.Q), float64(c.R)
	x = Size * (3.0 / 2.0 * q)
	y = Size * (sqrt3/2*q + sqrt3*r)
	return x, y
}

// NearestHex returns the hex containing the pixel (x, y).
func NearestHex(x, y float64) Coord {
	q := (2.0 / 3.0 * x) / Size
	r := (-1.0/3.0*x + sqrt3/3.0*y) / Size
	return Round(q, r)
}

// Round snaps fractional axial coordinates to the nearest hex.
// The component with the largest rounding error is recomputed from the
// other two so that q+r+s stays zero.
func Round(fq, fr float64) Coord {
	fs := -fq - fr
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	qDiff := math.Abs(q - fq)
	rDiff := math.Abs(r - fr)
	sDiff := math.Abs(s - fs)

	if qDiff > rDiff && qDiff > sDiff {
		q = -r - s
	} else if rDiff > sDiff {
		r = -q - s
	}
	return Coord{Q: int(q), R: int(r)}
}

// ToOffset converts an axial coordinate to odd-q offset form.
func ToOffset(c Coord) Offset {
	return Offset{
		Col: c.Q,
		Row: c.R + (c.Q-(c.Q&1))/2,
	}
}

// FromOffset converts an odd-q offset coordinate back to axial form.
func FromOffset(o Offset) Coord {
	return Coord{
		Q: o.Col,
		R: o.Row - (o.Col-(o.Col&1))/2,
	}
}

// InBounds reports whether c lies inside a width x height rectangle
// of offset cells.
func InBounds(c Coord, width, height int) bool {
	o := ToOffset(c)
	return o.Col >= 0 && o.Col < width && o.Row >= 0 && o.Row < height
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
