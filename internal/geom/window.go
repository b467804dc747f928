package geom

// Hints are the size constraints a window asked for. Zero means unset.
type Hints struct {
	MinWidth   int
	MinHeight  int
	MaxWidth   int
	MaxHeight  int
	WidthInc   int
	HeightInc  int
	BaseWidth  int
	BaseHeight int
}

// Window is the placement state of a managed window. Width and Height
// exclude the border.
type Window struct {
	Rect

	// Orig is the geometry saved before a maximize so it can be restored.
	Orig  Rect
	Hints Hints

	Maxed      bool
	Fullscreen bool
	VertMaxed  bool
	HorMaxed   bool
	// VertHor marks a half-screen or fold layout from MaximizeHalf. Any
	// later maximize, restore or resize clears it.
	VertHor bool
}

// Change records which protocol requests a placement needs.
type Change uint8

const (
	ChangeMove Change = 1 << iota
	ChangeResize
)

// Moved reports whether the position changed.
func (c Change) Moved() bool {
	return c&ChangeMove != 0
}

// Resized reports whether the size changed.
func (c Change) Resized() bool {
	return c&ChangeResize != 0
}

// fill sets the window geometry to b and reports what changed.
func (w *Window) fill(b Rect) Change {
	var ch Change
	if w.X != b.X || w.Y != b.Y {
		ch |= ChangeMove
	}
	if w.Width != b.Width || w.Height != b.Height {
		ch |= ChangeResize
	}
	w.Rect = b
	return ch
}

// Maximize saves the current geometry and makes the window fill b.
// fullscreen records that b came without offsets.
func Maximize(w *Window, b Rect, fullscreen bool) Change {
	w.Orig = w.Rect
	w.Maxed = true
	w.Fullscreen = fullscreen
	w.VertHor = false
	return w.fill(b)
}

// Restore puts back the geometry saved by Maximize or MaximizeAxis and
// clears every maximize flag.
func Restore(w *Window) Change {
	w.Maxed = false
	w.Fullscreen = false
	w.VertMaxed = false
	w.HorMaxed = false
	w.VertHor = false
	return w.fill(w.Orig)
}

// MaximizeAxis toggles a vertical or horizontal maximize inside b. When
// either axis is already maximized the saved geometry comes back and
// restored is true. A fully maximized window is left alone.
func MaximizeAxis(w *Window, b Rect, border int, vertical bool) (ch Change, restored bool) {
	if w.Maxed {
		return 0, false
	}

	if w.VertMaxed || w.HorMaxed {
		ch = w.fill(w.Orig)
		w.VertMaxed = false
		w.HorMaxed = false
		return ch, true
	}

	w.Orig = w.Rect
	w.VertHor = false
	if vertical {
		w.Y = b.Y
		w.Height = atLeastOne(b.Height - 2*border)
		w.VertMaxed = true
	} else {
		w.X = b.X
		w.Width = atLeastOne(b.Width - 2*border)
		w.HorMaxed = true
	}
	return ChangeMove | ChangeResize, false
}
