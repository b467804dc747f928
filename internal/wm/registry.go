package wm

import (
	"strings"

	"github.com/1broseidon/ringwm/internal/geom"
)

// Find returns the managed client for w, or nil.
func (s *State) Find(w Window) *Client {
	if w == 0 {
		return nil
	}
	return s.clients[w]
}

// register starts managing w. Docks, toolbars and desktop windows are
// mapped as they are and nil is returned.
func (s *State) register(w Window, info WindowInfo) *Client {
	for _, t := range info.Types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_DOCK", "_NET_WM_WINDOW_TYPE_TOOLBAR", "_NET_WM_WINDOW_TYPE_DESKTOP":
			s.conn.Map(w)
			return nil
		}
	}

	s.conn.Prepare(w, s.opts.Colors.Empty)

	c := &Client{ID: w, Depth: info.Depth, Workspace: NoWorkspace}
	c.Rect = info.Rect
	c.Hints = info.Hints
	if c.Hints.MaxWidth == 0 {
		c.Hints.MaxWidth = s.screen.Width
	}
	if c.Hints.MaxHeight == 0 {
		c.Hints.MaxHeight = s.screen.Height
	}
	c.UserCoord = info.UserPosition

	if parent := s.Find(info.TransientFor); parent != nil {
		c.X, c.Y = geom.CenterOn(c.Rect, parent.Rect)
		c.UserCoord = true
	}

	if s.ignored(info.Name) {
		c.IgnoreBorders = true
		s.conn.SetBorderWidth(w, 0)
	}

	s.clients[w] = c
	s.log.Debug("client registered", "window", w, "name", info.Name, "geometry", c.Rect)
	return c
}

func (s *State) ignored(name string) bool {
	if name == "" {
		return false
	}
	for _, sub := range s.opts.IgnoreNames {
		if sub != "" && strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

// forget drops c from the registry, its workspace, the focus and the
// always-on-top slot.
func (s *State) forget(c *Client) {
	if c == nil {
		return
	}
	if c.ID == s.top {
		s.top = 0
	}
	if s.focus == c {
		s.focus = nil
	}
	s.removeFromWorkspace(c)
	delete(s.clients, c.ID)
	s.log.Debug("client forgotten", "window", c.ID)
}

// updateClientList publishes the managed windows in stacking order.
func (s *State) updateClientList() {
	tops, err := s.conn.TopLevels()
	if err != nil {
		s.log.Debug("failed to read stacking order", "error", err)
		return
	}
	list := make([]Window, 0, len(s.clients))
	for _, t := range tops {
		if s.Find(t.ID) != nil {
			list = append(list, t.ID)
		}
	}
	s.conn.SetClientList(list)
}

// Adopt manages windows that were mapped before the manager started.
// Override-redirect and unmapped windows are skipped. Persisted workspace
// and unkillable hints are restored.
func (s *State) Adopt(tops []Toplevel) {
	for _, t := range tops {
		if t.OverrideRedirect || !t.Viewable || s.Find(t.ID) != nil {
			continue
		}
		info, err := s.conn.WindowInfo(t.ID)
		if err != nil {
			s.log.Debug("skipping window", "window", t.ID, "error", err)
			continue
		}
		c := s.register(t.ID, info)
		if c == nil {
			continue
		}

		s.placeOnMonitor(c)
		s.fit(c)
		s.setBorders(c, false)

		if s.conn.Unkillable(c.ID) {
			s.ToggleUnkillable(c)
		}

		desktop, ok := s.conn.Desktop(c.ID)
		switch {
		case ok && desktop == DesktopFixed:
			s.addToWorkspace(c, s.current)
			s.ToggleFixed(c)
		case ok && desktop < Workspaces:
			ws := int(desktop)
			s.addToWorkspace(c, ws)
			if ws != s.current {
				s.conn.Unmap(c.ID)
			}
		default:
			s.addToWorkspace(c, s.current)
		}
	}
	s.updateClientList()
}
