package world

// Rect is an axis-aligned window onto one floor.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Center returns the center coordinates of the rect.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this rect overlaps with another rect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// CenterOn moves the rect so (x, y) sits at its centre, then pulls it back
// inside a width×depth floor where the floor is large enough.
func (r Rect) CenterOn(x, y, width, depth int) Rect {
	r.X = x - r.Width/2
	r.Y = y - r.Height/2
	r.X = max(0, min(r.X, width-r.Width))
	r.Y = max(0, min(r.Y, depth-r.Height))
	return r
}

// Bounds returns the smallest rect holding every non-Blank cell of a floor,
// or a zero rect when the floor is empty.
func Bounds(l Layout, floor int) Rect {
	minX, minY, maxX, maxY := l.Width(), l.Depth(), -1, -1
	for x := 0; x < l.Width(); x++ {
		for y := 0; y < l.Depth(); y++ {
			if l.At(Point{Floor: floor, X: x, Y: y}) == Blank {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}
