package geom

// HalfMode selects a relative fold/unfold or a half-monitor placement.
type HalfMode int

const (
	// FoldHorizontal halves the width.
	FoldHorizontal HalfMode = iota
	// UnfoldHorizontal doubles the width.
	UnfoldHorizontal
	HorizontalTop
	HorizontalBottom
	VerticalRight
	VerticalLeft
	// UnfoldVertical doubles the height.
	UnfoldVertical
	// FoldVertical halves the height.
	FoldVertical
)

var halfModeNames = map[HalfMode]string{
	FoldHorizontal:   "fold_horizontal",
	UnfoldHorizontal: "unfold_horizontal",
	HorizontalTop:    "top",
	HorizontalBottom: "bottom",
	VerticalRight:    "right",
	VerticalLeft:     "left",
	UnfoldVertical:   "unfold_vertical",
	FoldVertical:     "fold_vertical",
}

func (m HalfMode) String() string {
	if name, ok := halfModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Placement reports whether the mode positions the window against a
// monitor edge rather than scaling it.
func (m HalfMode) Placement() bool {
	switch m {
	case HorizontalTop, HorizontalBottom, VerticalLeft, VerticalRight:
		return true
	}
	return false
}

// MaximizeHalf applies mode to w inside the work bounds b. Folding and
// unfolding are relative to the current size and are not clamped; repeated
// unfolds can grow past the monitor. Maximized windows are left alone.
func MaximizeHalf(w *Window, b Rect, border int, mode HalfMode) Change {
	if w.Maxed {
		return 0
	}

	switch mode {
	case FoldVertical:
		w.Height = atLeastOne(w.Height/2 - border)
	case UnfoldVertical:
		w.Height = w.Height*2 + 2*border
	case VerticalLeft, VerticalRight:
		w.Y = b.Y
		w.Height = atLeastOne(b.Height - 2*border)
		w.Width = atLeastOne(b.Width/2 - 2*border)
		w.X = b.X
		if mode == VerticalRight {
			w.X = b.Right() - (w.Width + 2*border)
		}
	case FoldHorizontal:
		w.Width = atLeastOne(w.Width/2 - border)
	case UnfoldHorizontal:
		w.Width = w.Width*2 + 2*border
	case HorizontalTop, HorizontalBottom:
		w.X = b.X
		w.Width = atLeastOne(b.Width - 2*border)
		w.Height = atLeastOne(b.Height/2 - 2*border)
		w.Y = b.Y
		if mode == HorizontalBottom {
			w.Y = b.Bottom() - (w.Height + 2*border)
		}
	default:
		return 0
	}

	w.VertHor = true
	return ChangeMove | ChangeResize
}
