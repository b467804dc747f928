package geom

// Fit describes the outcome of FitOnScreen.
type Fit struct {
	Change
	// Maximized is set when the window ended up filling its bounds with the
	// border stripped.
	Maximized bool
}

// FitOnScreen corrects w so it lies inside its monitor area and respects its
// size hints. border is the border width in effect for the window (zero for
// windows drawn without decoration). Applying it twice in a row yields the
// same geometry.
//
// A maximized window is refitted to the current bounds of the same variant
// (with or without offsets) so a monitor change keeps it maximized. A window
// whose size already matches the bounds is maximized instead of getting a
// border squeezed back in.
func FitOnScreen(w *Window, a Area, border int) Fit {
	w.VertMaxed = false
	w.HorMaxed = false

	if w.Maxed {
		return Fit{Change: w.fill(a.Bounds(!w.Fullscreen)), Maximized: true}
	}

	for _, withOffsets := range []bool{true, false} {
		b := a.Bounds(withOffsets)
		if w.Width != b.Width || w.Height != b.Height {
			continue
		}
		w.Orig = Rect{
			X:      b.X,
			Y:      b.Y,
			Width:  atLeastOne(w.Width - 2*border),
			Height: atLeastOne(w.Height - 2*border),
		}
		w.Maxed = true
		w.Fullscreen = !withOffsets
		return Fit{Change: w.fill(b), Maximized: true}
	}

	b := a.Work
	var ch Change

	// Any edge outside the bounds: translate back in.
	if w.X > b.Right() || w.Y > b.Bottom() || w.X < b.X || w.Y < b.Y {
		ch |= ChangeMove
		if w.X > b.Right() {
			w.X = b.Right() - w.Width - 2*border
		}
		if w.Y > b.Bottom() {
			w.Y = b.Bottom() - w.Height - 2*border
		}
		if w.X < b.X {
			w.X = b.X
		}
		if w.Y < b.Y {
			w.Y = b.Y
		}
	}

	if w.Hints.MinHeight > 0 && w.Height < w.Hints.MinHeight {
		w.Height = w.Hints.MinHeight
		ch |= ChangeResize
	}
	if w.Hints.MinWidth > 0 && w.Width < w.Hints.MinWidth {
		w.Width = w.Hints.MinWidth
		ch |= ChangeResize
	}

	// The monitor is the hard ceiling, even over a minimum size.
	if w.Width+2*border > b.Width {
		w.X = b.X
		w.Width = atLeastOne(b.Width - 2*border)
		ch |= ChangeMove | ChangeResize
	} else if w.X+w.Width+2*border > b.Right() {
		w.X = b.Right() - (w.Width + 2*border)
		ch |= ChangeMove
	}

	if w.Height+2*border > b.Height {
		w.Y = b.Y
		w.Height = atLeastOne(b.Height - 2*border)
		ch |= ChangeMove | ChangeResize
	} else if w.Y+w.Height+2*border > b.Bottom() {
		w.Y = b.Bottom() - (w.Height + 2*border)
		ch |= ChangeMove
	}

	return Fit{Change: ch}
}
