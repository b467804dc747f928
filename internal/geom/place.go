package geom

// Anchor names a teleport target on the monitor.
type Anchor int

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
	Center
	// CenterX centers horizontally and keeps y.
	CenterX
	// CenterY centers vertically and keeps x.
	CenterY
)

var anchorNames = map[Anchor]string{
	TopLeft:     "top_left",
	TopRight:    "top_right",
	BottomLeft:  "bottom_left",
	BottomRight: "bottom_right",
	Center:      "center",
	CenterX:     "center_x",
	CenterY:     "center_y",
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return "unknown"
}

// Teleport returns the position that puts r, with its border, against the
// anchor inside b. The size is never changed.
func Teleport(r Rect, b Rect, border int, a Anchor) (x, y int) {
	outerW := r.Width + 2*border
	outerH := r.Height + 2*border
	centerX := b.X + Round(float64(b.Width-outerW)/2)
	centerY := b.Y + Round(float64(b.Height-outerH)/2)

	switch a {
	case TopRight:
		return b.Right() - outerW, b.Y
	case BottomLeft:
		return b.X, b.Bottom() - outerH
	case BottomRight:
		return b.Right() - outerW, b.Bottom() - outerH
	case Center:
		return centerX, centerY
	case CenterX:
		return centerX, r.Y
	case CenterY:
		return r.X, centerY
	default:
		return b.X, b.Y
	}
}

// PointerInside reports whether a pointer position relative to the window
// origin still falls on the window or its border.
func PointerInside(px, py int, r Rect, border int) bool {
	return px > -border-1 && px < r.Width+border+1 &&
		py > -border-1 && py < r.Height+border+1
}

// CenterOn returns the position that centers r on parent.
func CenterOn(r Rect, parent Rect) (x, y int) {
	x = Round(float64(parent.X) + float64(parent.Width)/2 - float64(r.Width)/2)
	y = Round(float64(parent.Y) + float64(parent.Height)/2 - float64(r.Height)/2)
	return x, y
}

// Retarget translates the position of r from one monitor to another keeping
// its offset as a fraction of the monitor size.
func Retarget(r Rect, from, to Rect) (x, y int) {
	x, y = to.X, to.Y
	if from.Width > 0 {
		x = to.X + Round(float64(to.Width)*float64(r.X-from.X)/float64(from.Width))
	}
	if from.Height > 0 {
		y = to.Y + Round(float64(to.Height)*float64(r.Y-from.Y)/float64(from.Height))
	}
	return x, y
}

// Direction is a keyboard step direction.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

var directionNames = map[Direction]string{
	Left:  "left",
	Down:  "down",
	Up:    "up",
	Right: "right",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// MoveStep shifts r by step pixels in direction d.
func MoveStep(r Rect, d Direction, step int) (x, y int) {
	x, y = r.X, r.Y
	switch d {
	case Left:
		x -= step
	case Right:
		x += step
	case Up:
		y -= step
	case Down:
		y += step
	}
	return x, y
}

// ResizeStep grows (Right, Down) or shrinks (Left, Up) r by step pixels.
func ResizeStep(r Rect, d Direction, step int) (width, height int) {
	width, height = r.Width, r.Height
	switch d {
	case Left:
		width -= step
	case Right:
		width += step
	case Up:
		height -= step
	case Down:
		height += step
	}
	return atLeastOne(width), atLeastOne(height)
}

// ScaleAspect scales both dimensions by ratio (grow) or by its inverse.
func ScaleAspect(r Rect, ratio float64, grow bool) (width, height int) {
	if ratio <= 0 {
		return r.Width, r.Height
	}
	if grow {
		return Round(float64(r.Width) * ratio), Round(float64(r.Height) * ratio)
	}
	return atLeastOne(Round(float64(r.Width) / ratio)), atLeastOne(Round(float64(r.Height) / ratio))
}

// SnapToIncrement trims size down to base plus a whole number of inc steps.
func SnapToIncrement(size, base, inc int) int {
	if inc <= 1 {
		return size
	}
	return atLeastOne(size - (size-base)%inc)
}
