package wm

import (
	"fmt"
	"slices"
)

func (s *State) addToWorkspace(c *Client, ws int) {
	s.workspaces[ws] = append(s.workspaces[ws], c)
	c.Workspace = ws
	if !c.Fixed {
		s.conn.SetDesktop(c.ID, uint32(ws))
	}
}

func (s *State) removeFromWorkspace(c *Client) {
	if c.Workspace == NoWorkspace {
		return
	}
	list := s.workspaces[c.Workspace]
	if i := slices.Index(list, c); i >= 0 {
		s.workspaces[c.Workspace] = append(list[:i:i], list[i+1:]...)
	}
	c.Workspace = NoWorkspace
}

// SwitchWorkspace makes ws the visible workspace. Fixed clients travel with
// the switch; iconic clients stay unmapped. Focus goes to the client under
// the pointer afterwards.
func (s *State) SwitchWorkspace(ws int) {
	if ws == s.current || ws < 0 || ws >= Workspaces {
		return
	}
	s.conn.SetCurrentDesktop(ws)

	for _, c := range slices.Clone(s.workspaces[s.current]) {
		s.setBorders(c, false)
		if c.Fixed {
			s.removeFromWorkspace(c)
			s.addToWorkspace(c, ws)
			continue
		}
		s.conn.Unmap(c.ID)
	}

	for _, c := range s.workspaces[ws] {
		if !c.Fixed && !c.Iconic {
			s.conn.Map(c.ID)
		}
	}

	s.log.Debug("workspace switched", "from", s.current, "to", ws)
	s.current = ws
	target := s.Find(s.conn.PointerChild())
	if target != nil && target == s.focus {
		// A focused fixed client was repainted unfocused with the rest.
		s.setBorders(target, true)
		return
	}
	s.SetFocus(target)
}

// SendToWorkspace moves the focused client to ws and hides it.
func (s *State) SendToWorkspace(ws int) {
	c := s.focus
	if c == nil || c.Fixed || ws == s.current || ws < 0 || ws >= Workspaces {
		return
	}
	s.removeFromWorkspace(c)
	s.addToWorkspace(c, ws)
	s.conn.Unmap(c.ID)
	s.SetFocus(nil)
}

// SendClient moves the client managing w to ws; w == 0 picks the focused
// client. Unlike SendToWorkspace it also unfixes a fixed client.
func (s *State) SendClient(w Window, ws int) error {
	c := s.focus
	if w != 0 {
		c = s.Find(w)
	}
	if c == nil {
		return fmt.Errorf("no managed window %#x", uint32(w))
	}
	if ws < 0 || ws >= Workspaces {
		return fmt.Errorf("workspace %d out of range", ws)
	}
	s.moveToDesktop(c, uint32(ws))
	return nil
}

// NextWorkspace switches one workspace forward, wrapping around.
func (s *State) NextWorkspace() {
	s.SwitchWorkspace((s.current + 1) % Workspaces)
}

// PrevWorkspace switches one workspace back, wrapping around.
func (s *State) PrevWorkspace() {
	s.SwitchWorkspace((s.current + Workspaces - 1) % Workspaces)
}

func (s *State) SendToNext() {
	s.SendToWorkspace((s.current + 1) % Workspaces)
}

func (s *State) SendToPrev() {
	s.SendToWorkspace((s.current + Workspaces - 1) % Workspaces)
}

// ToggleFixed pins c to every workspace or unpins it onto the current one.
func (s *State) ToggleFixed(c *Client) {
	if c == nil {
		return
	}
	if c.Fixed {
		c.Fixed = false
		s.conn.SetDesktop(c.ID, uint32(s.current))
	} else {
		s.raise(c)
		c.Fixed = true
		s.conn.SetDesktop(c.ID, DesktopFixed)
	}
	s.setBorders(c, c == s.focus)
}

// ToggleUnkillable protects c from close requests, or lifts the
// protection.
func (s *State) ToggleUnkillable(c *Client) {
	if c == nil {
		return
	}
	c.Unkillable = !c.Unkillable
	if c.Unkillable {
		s.raise(c)
	}
	s.conn.SetUnkillable(c.ID, c.Unkillable)
	s.setBorders(c, c == s.focus)
}

// Hide iconifies the focused client.
func (s *State) Hide() {
	c := s.focus
	if c == nil {
		return
	}
	s.SetFocus(nil)
	s.hide(c)
}

func (s *State) hide(c *Client) {
	if c == nil {
		return
	}
	c.Iconic = true
	s.conn.Unmap(c.ID)
	s.conn.SetWMState(c.ID, StateIconic)
	s.conn.SetNetState(c.ID, []string{"_NET_WM_STATE_HIDDEN"})
}

// unhide maps an iconic client again, switching to its workspace first.
func (s *State) unhide(c *Client) {
	c.Iconic = false
	if !c.Fixed && c.Workspace != s.current {
		s.SwitchWorkspace(c.Workspace)
	}
	s.conn.Map(c.ID)
	s.conn.SetNetState(c.ID, nil)
	s.SetFocus(c)
}

// moveToDesktop handles a _NET_WM_DESKTOP request for c.
func (s *State) moveToDesktop(c *Client, desktop uint32) {
	if desktop == DesktopFixed {
		if !c.Fixed {
			s.ToggleFixed(c)
		}
		return
	}
	if desktop >= Workspaces {
		return
	}
	ws := int(desktop)
	if c.Fixed {
		c.Fixed = false
	} else if ws == c.Workspace {
		return
	}
	s.removeFromWorkspace(c)
	s.addToWorkspace(c, ws)
	if ws != s.current {
		s.conn.Unmap(c.ID)
		if c == s.focus {
			s.SetFocus(nil)
		}
	}
	s.setBorders(c, c == s.focus)
}
