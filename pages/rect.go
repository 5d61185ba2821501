package pages

import (
	"fmt"
	"math"

	"github.com/tsawler/pdfpage/core"
)

// Rect is a rectangle in default user space units, stored as its lower-left
// corner plus a non-negative width and height.
type Rect struct {
	Left   float64
	Bottom float64
	Width  float64
	Height float64
}

// NewRect builds a Rect from two opposite corners in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		Left:   math.Min(x0, x1),
		Bottom: math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// RectFromArray parses a stored box array [x0 y0 x1 y1].
func RectFromArray(arr core.Array) (Rect, error) {
	if len(arr) != 4 {
		return Rect{}, fmt.Errorf("rectangle must have 4 elements, got %d", len(arr))
	}
	var v [4]float64
	for i := range v {
		n, ok := arr.GetNumber(i)
		if !ok {
			return Rect{}, fmt.Errorf("rectangle element %d is not numeric: %T", i, arr[i])
		}
		v[i] = n
	}
	return NewRect(v[0], v[1], v[2], v[3]), nil
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Bottom + r.Height }

// IsZero reports whether r is the zero rectangle, which box getters return
// when no box can be produced.
func (r Rect) IsZero() bool { return r == Rect{} }

// ToArray returns r in stored form, [left bottom right top].
func (r Rect) ToArray() core.Array {
	return core.Array{core.Real(r.Left), core.Real(r.Bottom), core.Real(r.Right()), core.Real(r.Top())}
}

func (r Rect) swapped() Rect {
	r.Width, r.Height = r.Height, r.Width
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r.Left, r.Bottom, r.Right(), r.Top())
}
