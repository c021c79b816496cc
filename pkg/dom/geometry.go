package dom

// Point is a pointer position in document coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Intersects reports whether two rectangles overlap. Touching edges do not
// count.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Expand grows the rectangle vertically by margin on both sides, the way an
// intersection root margin does for a vertical scroller.
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X, Y: r.Y - margin, Width: r.Width, Height: r.Height + 2*margin}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
