package wm

import (
	"slices"

	"github.com/1broseidon/ringwm/internal/geom"
)

// SetFocus gives c the input focus, or hands it to the root window when c
// is nil. Clients outside the visible workspace are not focused.
func (s *State) SetFocus(c *Client) {
	if c == nil {
		if prev := s.focus; prev != nil && s.clients[prev.ID] == prev {
			s.setBorders(prev, false)
		}
		s.focus = nil
		s.conn.Focus(0)
		s.conn.SetActive(0)
		return
	}
	if c == s.focus || c.Workspace != s.current {
		return
	}

	if prev := s.focus; prev != nil {
		s.setBorders(prev, false)
	}
	s.conn.SetWMState(c.ID, StateNormal)
	s.conn.Focus(c.ID)
	s.conn.SetActive(c.ID)
	s.focus = c
	s.conn.GrabButtons(c.ID, s.opts.windowButtons())
	s.setBorders(c, true)
}

// FocusCycle rotates the visible workspace and focuses the new front
// client. Without a focus on this workspace the first non-iconic member is
// focused instead.
func (s *State) FocusCycle(forward bool) {
	list := s.workspaces[s.current]
	if len(list) == 0 {
		return
	}

	var next *Client
	i := slices.Index(list, s.focus)
	if s.focus == nil || i < 0 {
		for _, c := range list {
			if !c.Iconic {
				next = c
				break
			}
		}
		if next == nil {
			return
		}
	} else {
		// Rotate the focused client to the front, then step.
		list = append(slices.Clone(list[i:]), list[:i]...)
		for range list {
			if forward {
				list = append(list[1:], list[0])
			} else {
				list = append([]*Client{list[len(list)-1]}, list[:len(list)-1]...)
			}
			next = list[0]
			if !s.opts.FocusCycleSkipIconic || !next.Iconic {
				break
			}
		}
		s.workspaces[s.current] = list
	}

	s.raise(next)
	s.centerPointer(next)
	s.SetFocus(next)
}

func (s *State) raise(c *Client) {
	s.conn.Restack(c.ID, StackAbove)
}

// RaiseOrLower flips the focused client between top and bottom.
func (s *State) RaiseOrLower() {
	if s.focus == nil {
		return
	}
	s.conn.Restack(s.focus.ID, StackOpposite)
}

// ToggleAlwaysOnTop makes the focused client the always-on-top window, or
// clears the slot when it already holds it.
func (s *State) ToggleAlwaysOnTop() {
	c := s.focus
	if c == nil {
		return
	}
	if s.top == c.ID {
		s.top = 0
	} else {
		prev := s.Find(s.top)
		s.top = c.ID
		if prev != nil {
			s.setBorders(prev, false)
		}
		s.raise(c)
	}
	s.setBorders(c, true)
}

// centerPointer warps the pointer to the configured spot in c.
func (s *State) centerPointer(c *Client) {
	var x, y int
	switch s.opts.CursorPosition {
	case CursorTopLeft:
	case CursorTopRight:
		x = c.Width
	case CursorBottomLeft:
		y = c.Height
	case CursorBottomRight:
		x, y = c.Width, c.Height
	default:
		x, y = c.Width/2, c.Height/2
	}
	s.conn.Warp(c.ID, x, y)
}

// movePointerBack puts the pointer back at px, py in c if that is still
// inside the window.
func (s *State) movePointerBack(c *Client, px, py int) {
	if geom.PointerInside(px, py, c.Rect, s.border(c)) {
		s.conn.Warp(c.ID, px, py)
	}
}

// CursorMove warps the pointer one step in d.
func (s *State) CursorMove(d geom.Direction, fast bool) {
	step := s.opts.Movements.MouseSlow
	if fast {
		step = s.opts.Movements.MouseFast
	}
	var dx, dy int
	switch d {
	case geom.Left:
		dx = -step
	case geom.Right:
		dx = step
	case geom.Up:
		dy = -step
	case geom.Down:
		dy = step
	}
	s.conn.WarpRelative(dx, dy)
}

// CloseFocused asks the focused client to close, killing it when it does
// not speak WM_DELETE_WINDOW. Unkillable clients are left alone.
func (s *State) CloseFocused() {
	s.closeClient(s.focus)
}

func (s *State) closeClient(c *Client) {
	if c == nil || c.Unkillable {
		return
	}
	if c.ID == s.top {
		s.top = 0
	}
	if slices.Contains(s.conn.Protocols(c.ID), "WM_DELETE_WINDOW") {
		s.conn.Close(c.ID)
		return
	}
	s.conn.Kill(c.ID)
}
