package geom

// MoveClamp keeps r on the bounds b. An edge that comes within snap pixels
// of a monitor edge, or crosses it, is pushed flush against it.
func MoveClamp(r Rect, b Rect, border, snap int) (x, y int) {
	x, y = r.X, r.Y

	if y-border < b.Y || y < b.Y+snap {
		y = b.Y
	} else if y+r.Height+2*border > b.Bottom()-snap {
		y = b.Bottom() - r.Height - 2*border
	}

	if x < b.X+snap {
		x = b.X
	} else if x+r.Width+2*border > b.Right()-snap {
		x = b.Right() - r.Width - 2*border
	}

	return x, y
}

// ResizeClamp applies the size hints to r and shrinks it so its right and
// bottom edges stay on b.
func ResizeClamp(r Rect, h Hints, b Rect, border int) (width, height int) {
	width, height = r.Width, r.Height

	if h.MinWidth > 0 && width < h.MinWidth {
		width = h.MinWidth
	}
	if h.MinHeight > 0 && height < h.MinHeight {
		height = h.MinHeight
	}
	if h.MaxWidth > 0 && width > h.MaxWidth {
		width = h.MaxWidth
	}
	if h.MaxHeight > 0 && height > h.MaxHeight {
		height = h.MaxHeight
	}

	if r.X+width+border > b.Right() {
		width = b.Width - ((r.X - b.X) + 2*border)
	}
	if r.Y+height+border > b.Bottom() {
		height = b.Height - ((r.Y - b.Y) + 2*border)
	}

	return atLeastOne(width), atLeastOne(height)
}

// Snap aligns r against the neighbours it comes within dist pixels of, in
// each of the four directions. Neighbours must overlap r on the
// perpendicular axis. Only the position changes.
func Snap(r Rect, others []Rect, border, dist int) (x, y int) {
	c := r
	overlapY := func(o Rect) bool { return c.Y+c.Height > o.Y && c.Y < o.Bottom() }
	overlapX := func(o Rect) bool { return c.X+c.Width > o.X && c.X < o.Right() }

	for _, o := range others {
		// Our left edge near their right edge.
		if abs(o.Right()-c.X+border) < dist && overlapY(o) {
			c.X = o.Right() + 2*border
		}
		// Our top edge near their bottom edge.
		if abs(o.Bottom()-c.Y+border) < dist && overlapX(o) {
			c.Y = o.Bottom() + 2*border
		}
		// Our right edge near their left edge.
		if abs(c.Right()-o.X+border) < dist && overlapY(o) {
			c.X = o.X - c.Width - 2*border
		}
		// Our bottom edge near their top edge.
		if abs(c.Bottom()-o.Y+border) < dist && overlapX(o) {
			c.Y = o.Y - c.Height - 2*border
		}
	}
	return c.X, c.Y
}
