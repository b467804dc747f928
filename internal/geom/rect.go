package geom

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offsets reserve space on a monitor (panels, bars). They are applied as
// x+=X, y+=Y, width-=Width, height-=Height.
type Offsets struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Inset applies the offsets to r.
func (r Rect) Inset(o Offsets) Rect {
	return Rect{
		X:      r.X + o.X,
		Y:      r.Y + o.Y,
		Width:  r.Width - o.Width,
		Height: r.Height - o.Height,
	}
}

// Area holds the full bounds of a monitor (or of the root screen when a
// window has no monitor) together with the bounds left once offsets are
// applied.
type Area struct {
	Full Rect
	Work Rect
}

// NewArea builds an Area from full bounds and the configured offsets.
func NewArea(full Rect, o Offsets) Area {
	return Area{Full: full, Work: full.Inset(o)}
}

// Bounds returns the work area when withOffsets is set, the full bounds
// otherwise.
func (a Area) Bounds(withOffsets bool) Rect {
	if withOffsets {
		return a.Work
	}
	return a.Full
}

// Round adds 0.5 and truncates.
func Round(f float64) int {
	return int(f + 0.5)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
