package wm

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/1broseidon/ringwm/internal/geom"
)

// Action is a named operation bound to a key, a button or an IPC request.
type Action func(*State)

var actions = buildActions()

func buildActions() map[string]Action {
	a := map[string]Action{
		"focus_next":     func(s *State) { s.FocusCycle(true) },
		"focus_prev":     func(s *State) { s.FocusCycle(false) },
		"close":          (*State).CloseFocused,
		"hide":           (*State).Hide,
		"fix":            func(s *State) { s.ToggleFixed(s.focus) },
		"unkillable":     func(s *State) { s.ToggleUnkillable(s.focus) },
		"always_on_top":  (*State).ToggleAlwaysOnTop,
		"raise_or_lower": (*State).RaiseOrLower,
		"maximize":       func(s *State) { s.ToggleMaximize(s.focus, true) },
		"fullscreen":     func(s *State) { s.ToggleMaximize(s.focus, false) },
		"max_vertical":   func(s *State) { s.MaximizeAxis(true) },
		"max_horizontal": func(s *State) { s.MaximizeAxis(false) },

		"resize_aspect_grow":   func(s *State) { s.ResizeAspect(true) },
		"resize_aspect_shrink": func(s *State) { s.ResizeAspect(false) },

		"monitor_next":   func(s *State) { s.ChangeMonitor(true) },
		"monitor_prev":   func(s *State) { s.ChangeMonitor(false) },
		"workspace_next": (*State).NextWorkspace,
		"workspace_prev": (*State).PrevWorkspace,
		"send_next":      (*State).SendToNext,
		"send_prev":      (*State).SendToPrev,

		"restart": func(s *State) { s.Stop(StopRestart) },
		"exit":    func(s *State) { s.Stop(StopExit) },
	}

	for _, mode := range []geom.HalfMode{
		geom.FoldHorizontal, geom.UnfoldHorizontal,
		geom.HorizontalTop, geom.HorizontalBottom,
		geom.VerticalRight, geom.VerticalLeft,
		geom.UnfoldVertical, geom.FoldVertical,
	} {
		a["half_"+mode.String()] = func(s *State) { s.MaximizeHalf(mode) }
	}

	for _, anchor := range []geom.Anchor{
		geom.TopLeft, geom.TopRight, geom.BottomLeft, geom.BottomRight,
		geom.Center, geom.CenterX, geom.CenterY,
	} {
		a["teleport_"+anchor.String()] = func(s *State) { s.Teleport(anchor) }
	}

	for _, d := range []geom.Direction{geom.Left, geom.Right, geom.Up, geom.Down} {
		a["move_"+d.String()] = func(s *State) { s.MoveStep(d, true) }
		a["move_"+d.String()+"_slow"] = func(s *State) { s.MoveStep(d, false) }
		a["cursor_"+d.String()] = func(s *State) { s.CursorMove(d, true) }
		a["cursor_"+d.String()+"_slow"] = func(s *State) { s.CursorMove(d, false) }
	}

	resizes := map[string]geom.Direction{
		"grow_width":    geom.Right,
		"shrink_width":  geom.Left,
		"grow_height":   geom.Down,
		"shrink_height": geom.Up,
	}
	for name, d := range resizes {
		a["resize_"+name] = func(s *State) { s.ResizeStep(d, true) }
		a["resize_"+name+"_slow"] = func(s *State) { s.ResizeStep(d, false) }
	}

	for ws := range Workspaces {
		n := strconv.Itoa(ws)
		a["workspace_"+n] = func(s *State) { s.SwitchWorkspace(ws) }
		a["send_"+n] = func(s *State) { s.SendToWorkspace(ws) }
	}

	return a
}

// buttonActions only make sense for a pointer press.
var buttonActions = map[string]func(*State, ButtonPress){
	"move":   func(s *State, _ ButtonPress) { s.BeginDrag(ModeMove) },
	"resize": func(s *State, _ ButtonPress) { s.BeginDrag(ModeResize) },
	"focus": func(s *State, e ButtonPress) {
		if c := s.Find(e.Window); c != nil {
			s.SetFocus(c)
			s.raise(c)
		}
	},
}

// IsAction reports whether name is a keyboard action.
func IsAction(name string) bool {
	_, ok := actions[name]
	return ok
}

// IsButtonAction reports whether name can be bound to a pointer button.
func IsButtonAction(name string) bool {
	_, ok := buttonActions[name]
	return ok || IsAction(name)
}

// ActionNames lists every keyboard action, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RunAction runs the named keyboard action.
func (s *State) RunAction(name string) error {
	act, ok := actions[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	s.log.Debug("running action", "action", name)
	act(s)
	return nil
}

func (s *State) runButtonAction(name string, e ButtonPress) error {
	if act, ok := buttonActions[name]; ok {
		if s.focus == nil && (name == "move" || name == "resize") {
			return nil
		}
		act(s, e)
		return nil
	}
	return s.RunAction(name)
}
