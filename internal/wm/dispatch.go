package wm

import (
	"slices"
)

func newHandlers() map[EventKind]func(*State, Event) {
	return map[EventKind]func(*State, Event){
		KindMapRequest:       (*State).onMapRequest,
		KindDestroyNotify:    (*State).onDestroyNotify,
		KindUnmapNotify:      (*State).onUnmapNotify,
		KindConfigureRequest: (*State).onConfigureRequest,
		KindConfigureNotify:  (*State).onConfigureNotify,
		KindCirculateRequest: (*State).onCirculateRequest,
		KindButtonPress:      (*State).onButtonPress,
		KindKeyPress:         (*State).onKeyPress,
		KindEnterNotify:      (*State).onEnterNotify,
		KindMappingNotify:    (*State).onMappingNotify,
		KindClientMessage:    (*State).onClientMessage,
		KindScreenChange:     (*State).onScreenChange,
	}
}

// Dispatch handles one event. While a drag is active only the events that
// concern the drag or the window structure are acted on.
func (s *State) Dispatch(ev Event) {
	if s.mode != ModeIdle {
		s.dispatchInteractive(ev)
		return
	}
	s.handle(ev)
}

func (s *State) handle(ev Event) {
	if h, ok := s.handlers[ev.Kind()]; ok {
		h(s, ev)
	}
}

func (s *State) onMapRequest(ev Event) {
	e := ev.(MapRequest)
	if s.Find(e.Window) != nil {
		return
	}

	info, err := s.conn.WindowInfo(e.Window)
	if err != nil {
		s.log.Debug("mapping unreadable window unmanaged", "window", e.Window, "error", err)
		s.conn.Map(e.Window)
		return
	}
	c := s.register(e.Window, info)
	if c == nil {
		return
	}
	s.addToWorkspace(c, s.current)

	if !c.UserCoord {
		px, py, ok := s.conn.Pointer()
		if !ok {
			px, py = 0, 0
		}
		c.X = px - c.Width/2
		c.Y = py - c.Height/2
		s.conn.Move(c.ID, c.X, c.Y)
	}

	s.placeOnMonitor(c)
	s.fit(c)
	s.conn.Map(c.ID)
	s.conn.SetWMState(c.ID, StateNormal)
	s.centerPointer(c)
	s.updateClientList()
	s.SetFocus(c)
}

func (s *State) onDestroyNotify(ev Event) {
	e := ev.(DestroyNotify)
	if s.focus != nil && s.focus.ID == e.Window {
		s.focus = nil
	}
	if c := s.Find(e.Window); c != nil {
		s.forget(c)
		s.updateClientList()
	}
}

func (s *State) onUnmapNotify(ev Event) {
	e := ev.(UnmapNotify)
	c := s.Find(e.Window)
	if c == nil || c.Workspace != s.current {
		return
	}
	if s.focus == c {
		s.focus = nil
	}
	if !c.Iconic {
		s.forget(c)
	}
	s.updateClientList()
}

func (s *State) onConfigureRequest(ev Event) {
	e := ev.(ConfigureRequest)
	c := s.Find(e.Window)
	if c == nil {
		e.Mask &^= ConfigBorderWidth
		s.conn.Configure(e)
		return
	}

	if e.Mask&ConfigWidth != 0 && !c.Maxed && !c.HorMaxed {
		c.Width = e.Width
	}
	if e.Mask&ConfigHeight != 0 && !c.Maxed && !c.VertMaxed {
		c.Height = e.Height
	}
	if e.Mask&ConfigX != 0 && !c.Maxed && !c.HorMaxed {
		c.X = e.X
	}
	if e.Mask&ConfigY != 0 && !c.Maxed && !c.VertMaxed {
		c.Y = e.Y
	}

	if stack := e.Mask & (ConfigSibling | ConfigStackMode); stack != 0 {
		s.conn.Configure(ConfigureRequest{
			Window:    c.ID,
			Mask:      stack,
			Sibling:   e.Sibling,
			StackMode: e.StackMode,
		})
	}

	if !c.Maxed {
		s.resizeClamped(c)
		s.moveClamped(c)
		s.fit(c)
	}
	s.setBorders(c, c == s.focus)
}

func (s *State) onConfigureNotify(ev Event) {
	e := ev.(ConfigureNotify)
	if !e.Root {
		return
	}
	if e.Width == s.screen.Width && e.Height == s.screen.Height {
		return
	}
	s.screen.Width = e.Width
	s.screen.Height = e.Height
	s.log.Info("screen resized", "width", e.Width, "height", e.Height)
	if !s.randr {
		s.Arrange()
	}
}

func (s *State) onCirculateRequest(ev Event) {
	e := ev.(CirculateRequest)
	s.conn.Circulate(e.Window, e.Place)
}

func (s *State) onButtonPress(ev Event) {
	e := ev.(ButtonPress)

	if !s.opts.SloppyFocus && e.Button == 1 && e.State == 0 {
		if c := s.Find(e.Window); c != nil && c != s.focus {
			s.SetFocus(c)
			s.raise(c)
		}
		return
	}

	for _, b := range s.opts.Buttons {
		if !s.conn.ButtonMatch(b.Button, e.State, e.Button) {
			continue
		}
		if b.RootOnly && !e.Root {
			continue
		}
		if err := s.runButtonAction(b.Action, e); err != nil {
			s.log.Warn("button binding failed", "button", b.Button, "error", err)
		}
		return
	}
}

func (s *State) onKeyPress(ev Event) {
	e := ev.(KeyPress)
	for _, k := range s.opts.Keys {
		if !s.conn.KeyMatch(k.Keys, e.State, e.Code) {
			continue
		}
		if err := s.RunAction(k.Action); err != nil {
			s.log.Warn("key binding failed", "keys", k.Keys, "error", err)
		}
		return
	}
}

func (s *State) onEnterNotify(ev Event) {
	e := ev.(EnterNotify)
	if e.Mode != NotifyNormal && e.Mode != NotifyUngrab {
		return
	}
	if s.focus != nil && s.focus.ID == e.Window {
		return
	}
	c := s.Find(e.Window)
	if c == nil {
		return
	}
	if !s.opts.SloppyFocus {
		s.conn.GrabFocusClick(c.ID)
		return
	}
	s.SetFocus(c)
}

func (s *State) onMappingNotify(Event) {
	s.conn.RefreshKeyboard()
	s.conn.GrabKeys(s.opts.keySequences())
}

func (s *State) onClientMessage(ev Event) {
	e := ev.(ClientMessage)

	switch e.Type {
	case MsgActivate, MsgChangeState:
		if e.Type == MsgChangeState && e.Data[0] != uint32(StateIconic) {
			return
		}
		c := s.Find(e.Window)
		if c == nil {
			return
		}
		if c.Iconic {
			s.unhide(c)
			return
		}
		if e.Type == MsgChangeState {
			if c == s.focus {
				s.SetFocus(nil)
			}
			s.hide(c)
			return
		}
		if !c.Fixed && c.Workspace != s.current {
			s.SwitchWorkspace(c.Workspace)
		}
		s.SetFocus(c)
		s.raise(c)

	case MsgCurrentDesktop:
		s.SwitchWorkspace(int(e.Data[0]))

	case MsgWMState:
		c := s.Find(e.Window)
		if c == nil || !slices.Contains(e.Atoms, "_NET_WM_STATE_FULLSCREEN") {
			return
		}
		switch e.Data[0] {
		case 0:
			if c.Maxed {
				s.unmaximize(c)
			}
		case 1:
			if !c.Maxed {
				s.maximize(c, false)
			}
		case 2:
			s.ToggleMaximize(c, false)
		}

	case MsgWMDesktop:
		if c := s.Find(e.Window); c != nil {
			s.moveToDesktop(c, e.Data[0])
		}

	case MsgCloseWindow:
		s.closeClient(s.Find(e.Window))
	}
}

func (s *State) onScreenChange(Event) {
	outputs, err := s.conn.Outputs()
	if err != nil {
		s.log.Warn("failed to read monitor layout", "error", err)
		return
	}
	s.UpdateOutputs(outputs)
}
