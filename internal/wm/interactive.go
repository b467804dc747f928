package wm

import (
	"github.com/1broseidon/ringwm/internal/geom"
)

// Mode is the interactive pointer mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMove
	ModeResize
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMove:
		return "move"
	case ModeResize:
		return "resize"
	default:
		return "unknown"
	}
}

type drag struct {
	client *Client
	startX int
	startY int
	orig   geom.Rect
}

// BeginDrag grabs the pointer and starts moving or resizing the focused
// client with the mouse.
func (s *State) BeginDrag(mode Mode) {
	c := s.focus
	if mode == ModeIdle || s.mode != ModeIdle || c == nil || c.Maxed || c.Workspace != s.current {
		return
	}
	px, py, ok := s.conn.Pointer()
	if !ok {
		return
	}
	s.raise(c)

	cursor := CursorMove
	if mode == ModeResize {
		cursor = CursorResize
	}
	if !s.conn.GrabPointer(cursor) {
		s.log.Debug("pointer grab failed", "mode", mode)
		return
	}

	s.mode = mode
	s.drag = drag{client: c, startX: px, startY: py, orig: c.Rect}
	if mode == ModeResize {
		s.conn.ShowOutline(c.Rect, s.border(c), s.opts.Colors.Focus)
	}
	s.log.Debug("drag started", "mode", mode, "window", c.ID)
}

// dispatchInteractive routes events while a drag is active. Structural
// requests keep being served; crossing events are dropped.
func (s *State) dispatchInteractive(ev Event) {
	switch e := ev.(type) {
	case MapRequest, ConfigureRequest, DestroyNotify, UnmapNotify:
		s.handle(ev)
		if c := s.drag.client; s.Find(c.ID) != c {
			s.endDrag()
		}
	case MotionNotify:
		s.dragTo(e.RootX, e.RootY)
	case ButtonPress:
		s.finishDrag(e.RootX, e.RootY)
	case ButtonRelease:
		s.finishDrag(e.RootX, e.RootY)
	case KeyPress:
		s.finishDrag(e.RootX, e.RootY)
	case KeyRelease:
		s.finishDrag(e.RootX, e.RootY)
	}
}

func (s *State) dragTo(x, y int) {
	c := s.drag.client
	dx := x - s.drag.startX
	dy := y - s.drag.startY

	switch s.mode {
	case ModeMove:
		if c.Workspace != s.current {
			return
		}
		c.X = s.drag.orig.X + dx
		c.Y = s.drag.orig.Y + dy
		if s.opts.SnapDistance > 0 {
			c.X, c.Y = geom.Snap(c.Rect, s.neighbours(c), s.border(c), s.opts.SnapDistance)
		}
		s.moveClamped(c)
	case ModeResize:
		// Only the outline follows the pointer; the client is resized on
		// release.
		if c.Maxed {
			return
		}
		r := c.Rect
		r.Width, r.Height = s.dragSize(c, s.drag.orig.Width+dx, s.drag.orig.Height+dy)
		s.conn.ShowOutline(r, s.border(c), s.opts.Colors.Focus)
	}
}

// dragSize returns the size c would get from a resize drag to width by
// height, after increment snapping and clamping.
func (s *State) dragSize(c *Client, width, height int) (int, int) {
	r := c.Rect
	r.Width = max(width, -width)
	r.Height = max(height, -height)
	if s.opts.ResizeByLine {
		r.Width = geom.SnapToIncrement(r.Width, c.Hints.BaseWidth, c.Hints.WidthInc)
		r.Height = geom.SnapToIncrement(r.Height, c.Hints.BaseHeight, c.Hints.HeightInc)
	}
	return geom.ResizeClamp(r, c.Hints, s.area(c).Work, s.border(c))
}

func (s *State) resizeTo(c *Client, width, height int) {
	if c.Maxed {
		return
	}
	c.Width, c.Height = s.dragSize(c, width, height)
	s.conn.Resize(c.ID, c.Width, c.Height)
	c.VertMaxed = false
	c.HorMaxed = false
	c.VertHor = false
}

func (s *State) finishDrag(x, y int) {
	c := s.drag.client
	if s.mode == ModeResize {
		s.resizeTo(c, s.drag.orig.Width+x-s.drag.startX, s.drag.orig.Height+y-s.drag.startY)
		s.setBorders(c, c == s.focus)
	}
	s.endDrag()
}

func (s *State) endDrag() {
	if s.mode == ModeResize {
		s.conn.HideOutline()
	}
	s.conn.UngrabPointer()
	s.log.Debug("drag finished", "mode", s.mode)
	s.mode = ModeIdle
	s.drag = drag{}
}

// neighbours returns the geometry of the other clients on the visible
// workspace, used for edge snapping.
func (s *State) neighbours(c *Client) []geom.Rect {
	var rects []geom.Rect
	for _, o := range s.workspaces[s.current] {
		if o != c {
			rects = append(rects, o.Rect)
		}
	}
	return rects
}
