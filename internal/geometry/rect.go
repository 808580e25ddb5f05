package geometry

// Point is a location in a surface or target coordinate space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle. A rect with non-positive width or
// height is empty; negative dimensions are tolerated and simply behave
// as empty, they are never normalized.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty reports whether the rect covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Contains reports whether p lies inside the rect. Points on the left
// and top edges are inside, points on the right and bottom edges are
// outside, matching integer pixel-coverage conventions.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Union returns the smallest rect containing both r and other.
// Unioning with an empty rect returns the other rect unchanged, so an
// empty drawable area never drags a bounding box toward the origin.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.Right(), other.Right())
	y2 := max(r.Bottom(), other.Bottom())

	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersect returns the overlap of r and other, or the zero rect when
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Corners returns the four corners in clockwise order starting at the
// top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}

// BoundingBox returns the smallest rect containing every point. An
// empty slice yields the zero rect.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
