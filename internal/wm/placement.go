package wm

import (
	"github.com/1broseidon/ringwm/internal/geom"
)

// apply sends the requests recorded in ch for c.
func (s *State) apply(c *Client, ch geom.Change) {
	switch {
	case ch.Moved() && ch.Resized():
		s.conn.MoveResize(c.ID, c.Rect)
	case ch.Moved():
		s.conn.Move(c.ID, c.X, c.Y)
	case ch.Resized():
		s.conn.Resize(c.ID, c.Width, c.Height)
	}
}

// fit corrects c against its monitor.
func (s *State) fit(c *Client) {
	wasMaxed := c.Maxed
	f := geom.FitOnScreen(&c.Window, s.area(c), s.border(c))
	if f.Maximized && !wasMaxed {
		s.conn.SetBorderWidth(c.ID, 0)
	}
	s.apply(c, f.Change)
}

// Arrange refits every client, used when the root window changes size
// without RandR.
func (s *State) Arrange() {
	for _, c := range s.sortedClients() {
		s.fit(c)
	}
}

func (s *State) moveClamped(c *Client) {
	c.X, c.Y = geom.MoveClamp(c.Rect, s.area(c).Work, s.border(c), s.opts.SnapDistance)
	s.conn.Move(c.ID, c.X, c.Y)
}

func (s *State) resizeClamped(c *Client) {
	c.Width, c.Height = geom.ResizeClamp(c.Rect, c.Hints, s.area(c).Work, s.border(c))
	s.conn.Resize(c.ID, c.Width, c.Height)
}

// ToggleMaximize maximizes c over its monitor, or restores it when it is
// already maximized. withOffsets keeps the configured offsets free;
// without them the window goes fullscreen.
func (s *State) ToggleMaximize(c *Client, withOffsets bool) {
	if c == nil {
		return
	}
	if c.Maxed {
		s.unmaximize(c)
		return
	}
	s.maximize(c, withOffsets)
}

func (s *State) maximize(c *Client, withOffsets bool) {
	s.conn.SetBorderWidth(c.ID, 0)
	geom.Maximize(&c.Window, s.area(c).Bounds(withOffsets), !withOffsets)
	s.conn.MoveResize(c.ID, c.Rect)
	s.raise(c)
	if !withOffsets {
		s.conn.SetNetState(c.ID, []string{"_NET_WM_STATE_FULLSCREEN"})
	}
}

func (s *State) unmaximize(c *Client) {
	geom.Restore(&c.Window)
	s.conn.MoveResize(c.ID, c.Rect)
	s.centerPointer(c)
	s.setBorders(c, c == s.focus)
	s.conn.SetNetState(c.ID, nil)
}

// MaximizeAxis toggles a vertical or horizontal maximize of the focused
// client.
func (s *State) MaximizeAxis(vertical bool) {
	c := s.focus
	if c == nil || c.Maxed {
		return
	}
	ch, restored := geom.MaximizeAxis(&c.Window, s.area(c).Work, s.border(c), vertical)
	s.apply(c, ch)
	if restored {
		s.fit(c)
		s.setBorders(c, true)
		return
	}
	s.raise(c)
	s.centerPointer(c)
	s.setBorders(c, true)
}

// MaximizeHalf folds, unfolds or places the focused client against a
// monitor edge. Placements are refitted; folds are not.
func (s *State) MaximizeHalf(mode geom.HalfMode) {
	c := s.focus
	if c == nil || c.Maxed {
		return
	}
	geom.MaximizeHalf(&c.Window, s.area(c).Work, s.border(c), mode)
	s.conn.MoveResize(c.ID, c.Rect)
	s.raise(c)
	if mode.Placement() {
		s.fit(c)
	}
	s.centerPointer(c)
	s.setBorders(c, true)
}

// Teleport moves the focused client to an anchor on its monitor.
func (s *State) Teleport(a geom.Anchor) {
	c := s.focus
	if c == nil || c.Maxed || len(s.workspaces[s.current]) == 0 {
		return
	}
	px, py, ok := s.conn.PointerIn(c.ID)
	c.X, c.Y = geom.Teleport(c.Rect, s.area(c).Work, s.border(c), a)
	s.conn.Move(c.ID, c.X, c.Y)
	if ok {
		s.movePointerBack(c, px, py)
	}
	s.raise(c)
}

// MoveStep nudges the focused client by the slow or fast step.
func (s *State) MoveStep(d geom.Direction, fast bool) {
	c := s.focus
	if c == nil || c.Maxed {
		return
	}
	px, py, ok := s.conn.PointerIn(c.ID)
	step := s.opts.Movements.Slow
	if fast {
		step = s.opts.Movements.Fast
	}
	c.X, c.Y = geom.MoveStep(c.Rect, d, step)
	s.raise(c)
	s.moveClamped(c)
	if ok {
		s.movePointerBack(c, px, py)
	}
}

// ResizeStep grows or shrinks the focused client. Clients with resize
// increments above 7 pixels step by their increment.
func (s *State) ResizeStep(d geom.Direction, fast bool) {
	c := s.focus
	if c == nil || c.Maxed {
		return
	}
	step := s.opts.Movements.Slow
	if fast {
		step = s.opts.Movements.Fast
	}
	if c.Hints.WidthInc > 7 && c.Hints.HeightInc > 7 {
		step = c.Hints.WidthInc
		if d == geom.Up || d == geom.Down {
			step = c.Hints.HeightInc
		}
	}
	c.Width, c.Height = geom.ResizeStep(c.Rect, d, step)
	s.finishResize(c)
}

// ResizeAspect scales the focused client keeping its aspect.
func (s *State) ResizeAspect(grow bool) {
	c := s.focus
	if c == nil || c.Maxed {
		return
	}
	c.Width, c.Height = geom.ScaleAspect(c.Rect, s.opts.AspectRatio, grow)
	s.finishResize(c)
}

func (s *State) finishResize(c *Client) {
	c.VertMaxed = false
	c.HorMaxed = false
	c.VertHor = false
	s.resizeClamped(c)
	s.centerPointer(c)
	s.raise(c)
	s.setBorders(c, true)
}
