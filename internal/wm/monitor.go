package wm

import (
	"github.com/1broseidon/ringwm/internal/geom"
)

// Monitor returns the monitor with the given id, or nil.
func (s *State) Monitor(id MonitorID) *Monitor {
	if id == 0 {
		return nil
	}
	for _, m := range s.monitors {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *State) monitorIndex(id MonitorID) int {
	for i, m := range s.monitors {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// MonitorAt returns the first monitor containing the point, or nil.
func (s *State) MonitorAt(x, y int) *Monitor {
	for _, m := range s.monitors {
		if m.Contains(x, y) {
			return m
		}
	}
	return nil
}

// placeOnMonitor assigns c to the monitor holding its center, falling back
// to the first monitor.
func (s *State) placeOnMonitor(c *Client) {
	if len(s.monitors) == 0 {
		c.Monitor = 0
		return
	}
	m := s.MonitorAt(c.X+c.Width/2, c.Y+c.Height/2)
	if m == nil {
		m = s.monitors[0]
	}
	c.Monitor = m.ID
}

// area returns the bounds a client is fitted into: its monitor, or the root
// screen when it has none.
func (s *State) area(c *Client) geom.Area {
	full := s.screen
	if c != nil {
		if m := s.Monitor(c.Monitor); m != nil {
			full = m.Rect
		}
	}
	return geom.NewArea(full, s.opts.Offsets)
}

// UpdateOutputs merges a RandR output listing into the monitor list.
// Outputs without a CRTC are unplugged first so a clone of an output that
// just went away is kept. Clones of a known monitor are then ignored, new
// outputs are appended and changed geometry refits the clients on that
// monitor.
func (s *State) UpdateOutputs(outputs []Output) {
	for _, out := range outputs {
		if !out.Connected {
			s.unplug(out.ID)
		}
	}

	for _, out := range outputs {
		if !out.Connected {
			continue
		}
		if clone := s.cloneOf(out); clone != nil {
			s.log.Debug("ignoring cloned output", "output", out.Name, "clone_of", clone.Name)
			continue
		}

		m := s.Monitor(out.ID)
		if m == nil {
			s.monitors = append(s.monitors, &Monitor{ID: out.ID, Name: out.Name, Rect: out.Rect})
			s.log.Info("monitor added", "output", out.Name, "geometry", out.Rect)
			continue
		}

		m.Name = out.Name
		if m.Rect == out.Rect {
			continue
		}
		m.Rect = out.Rect
		s.log.Info("monitor changed", "output", out.Name, "geometry", out.Rect)
		for _, c := range s.sortedClients() {
			if c.Monitor == m.ID {
				s.fit(c)
			}
		}
	}

	if len(s.monitors) == 0 {
		return
	}
	// Clients left on the root by an unplug get the monitor under them.
	for _, c := range s.sortedClients() {
		if s.Monitor(c.Monitor) == nil {
			s.placeOnMonitor(c)
			s.fit(c)
		}
	}
}

// cloneOf returns a different monitor starting at the same origin.
func (s *State) cloneOf(out Output) *Monitor {
	for _, m := range s.monitors {
		if m.ID != out.ID && m.X == out.X && m.Y == out.Y {
			return m
		}
	}
	return nil
}

// unplug removes a monitor and moves its clients to the next one.
func (s *State) unplug(id MonitorID) {
	idx := s.monitorIndex(id)
	if idx < 0 {
		return
	}
	removed := s.monitors[idx]

	var next MonitorID
	if len(s.monitors) > 1 {
		next = s.monitors[(idx+1)%len(s.monitors)].ID
	}
	s.monitors = append(s.monitors[:idx:idx], s.monitors[idx+1:]...)
	s.log.Info("monitor removed", "output", removed.Name)

	for _, c := range s.sortedClients() {
		if c.Monitor == id {
			c.Monitor = next
			s.fit(c)
		}
	}
}

// ChangeMonitor moves the focused client to the next or previous monitor,
// keeping its relative position.
func (s *State) ChangeMonitor(next bool) {
	c := s.focus
	if c == nil || len(s.monitors) == 0 {
		return
	}
	from := s.Monitor(c.Monitor)
	if from == nil {
		return
	}

	idx := s.monitorIndex(from.ID)
	n := len(s.monitors)
	var to *Monitor
	if next {
		to = s.monitors[(idx+1)%n]
	} else {
		to = s.monitors[(idx+n-1)%n]
	}

	c.X, c.Y = geom.Retarget(c.Rect, from.Rect, to.Rect)
	c.Monitor = to.ID
	s.raise(c)
	s.fit(c)
	s.moveClamped(c)
	s.setBorders(c, true)
	s.centerPointer(c)
}
