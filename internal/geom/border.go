package geom

// BorderRings returns the rectangles of the outer and inner rings painted
// into the border pixmap of a width x height window. The pixmap is
// (width+2*border) x (height+2*border) and tiles from the window's inner
// origin, so the rings start right of and below the client area and wrap
// around. outer is the thickness of the outer ring.
func BorderRings(width, height, border, outer int) (outerRing, innerRing []Rect) {
	inner := border - outer

	innerRing = []Rect{
		{X: width, Y: 0, Width: inner, Height: height + border - outer},
		{X: width + border + outer, Y: 0, Width: inner, Height: height + border - outer},
		{X: 0, Y: height, Width: width + border - outer, Height: inner},
		{X: 0, Y: height + border + outer, Width: width + border - outer, Height: inner},
		{X: width + border + outer, Y: height + border + outer, Width: border, Height: border},
	}

	outerRing = []Rect{
		{X: width + border - outer, Y: 0, Width: outer, Height: height + 2*border},
		{X: width + border, Y: 0, Width: outer, Height: height + 2*border},
		{X: 0, Y: height + border - outer, Width: width + 2*border, Height: outer},
		{X: 0, Y: height + border, Width: width + 2*border, Height: outer},
		{X: 1, Y: 1, Width: 1, Height: 1},
	}

	return outerRing, innerRing
}
