package layout

import (
	"fmt"
	"math"
)

// Point is a position in CSS pixels.
type Point struct {
	X float64
	Y float64
}

func (p Point) Translated(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Size represents dimensions (width and height)
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangular region. Rects are half-open: a rect contains
// the points with X <= px < X+Width and Y <= py < Y+Height.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectAt builds a rect from a location and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{p.X, p.Y, s.Width, s.Height}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Location() Point { return Point{r.X, r.Y} }
func (r Rect) Size() Size      { return Size{r.Width, r.Height} }
func (r Rect) TopLeft() Point  { return Point{r.X, r.Y} }
func (r Rect) TopRight() Point { return Point{r.Right(), r.Y} }

func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func (r Rect) Translated(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inflated grows the rect by the given amount on each side.
func (r Rect) Inflated(top, right, bottom, left float64) Rect {
	return Rect{r.X - left, r.Y - top, r.Width + left + right, r.Height + top + bottom}
}

// Intersected returns the overlap; disjoint rects give an empty rect.
func (r Rect) Intersected(o Rect) Rect {
	x0, y0 := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	x1, y1 := math.Min(r.Right(), o.Right()), math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// United returns the bounding rect of both; empty rects are ignored.
func (r Rect) United(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return r.UnitedHorizontally(o).UnitedVertically(o)
}

func (r Rect) UnitedHorizontally(o Rect) Rect {
	left, right := math.Min(r.X, o.X), math.Max(r.Right(), o.Right())
	r.X, r.Width = left, right-left
	return r
}

func (r Rect) UnitedVertically(o Rect) Rect {
	top, bottom := math.Min(r.Y, o.Y), math.Max(r.Bottom(), o.Bottom())
	r.Y, r.Height = top, bottom-top
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g @ %g,%g", r.Width, r.Height, r.X, r.Y)
}
