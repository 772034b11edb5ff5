package core

// Point represents a 2D cell coordinate
type Point struct {
	X, Y int
}

// Add returns the component-wise sum
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Area represents a rectangular region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Empty reports whether the area covers no cells
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// Right returns the exclusive right edge
func (a Area) Right() int {
	return a.X + a.Width
}

// Bottom returns the exclusive bottom edge
func (a Area) Bottom() int {
	return a.Y + a.Height
}

// Contains reports whether the point lies inside the area
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.Right() && p.Y >= a.Y && p.Y < a.Bottom()
}

// Intersects reports whether two areas overlap by at least one cell
func (a Area) Intersects(b Area) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom()
}

// Offset returns the area moved by p
func (a Area) Offset(p Point) Area {
	return Area{X: a.X + p.X, Y: a.Y + p.Y, Width: a.Width, Height: a.Height}
}
