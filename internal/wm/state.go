package wm

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/1broseidon/ringwm/internal/geom"
)

// State is the whole window manager: the client registry, the workspaces,
// the monitor list and the focus. It is owned by a single goroutine; other
// goroutines reach it through Command values passed to Run.
type State struct {
	conn Conn
	opts Options
	log  *slog.Logger

	screen   geom.Rect
	randr    bool
	monitors []*Monitor

	clients    map[Window]*Client
	workspaces [Workspaces][]*Client
	current    int

	focus *Client
	// top is the always-on-top window, or 0.
	top Window

	mode Mode
	drag drag

	handlers map[EventKind]func(*State, Event)
	stop     StopReason
}

// New creates a manager on conn. Call Setup before Run.
func New(conn Conn, opts Options) *State {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		conn:     conn,
		opts:     opts,
		log:      logger,
		screen:   conn.Screen(),
		clients:  make(map[Window]*Client),
		handlers: newHandlers(),
	}
}

// Setup publishes the current desktop, reads the monitor layout, adopts the
// windows that are already mapped and grabs the key bindings.
func (s *State) Setup() error {
	s.conn.SetCurrentDesktop(s.current)

	outputs, err := s.conn.Outputs()
	switch {
	case errors.Is(err, ErrNoRandR):
		s.log.Info("randr not available, using root window as the only screen")
	case err != nil:
		s.randr = true
		s.log.Warn("failed to read monitor layout", "error", err)
	default:
		s.randr = true
		s.UpdateOutputs(outputs)
	}

	tops, err := s.conn.TopLevels()
	if err != nil {
		return fmt.Errorf("failed to query top-level windows: %w", err)
	}
	s.Adopt(tops)
	s.conn.GrabKeys(s.opts.keySequences())

	s.log.Info("window manager ready",
		"clients", len(s.clients),
		"monitors", len(s.monitors),
		"randr", s.randr)
	return nil
}

// Reconfigure swaps in new options, re-grabs keys and refits and repaints
// every client.
func (s *State) Reconfigure(opts Options) {
	if opts.Logger == nil {
		opts.Logger = s.log
	}
	s.opts = opts
	s.log = opts.Logger
	s.conn.GrabKeys(s.opts.keySequences())
	if s.focus != nil {
		s.conn.GrabButtons(s.focus.ID, s.opts.windowButtons())
	}
	for _, c := range s.sortedClients() {
		s.fit(c)
		s.setBorders(c, c == s.focus)
	}
	s.log.Info("configuration applied", "keys", len(opts.Keys), "buttons", len(opts.Buttons))
}

// Close drops all state and hands the input focus back to the root window.
func (s *State) Close() {
	if s.mode != ModeIdle {
		s.endDrag()
	}
	s.conn.Focus(0)
	s.conn.SetActive(0)
	s.focus = nil
	s.top = 0
	s.clients = make(map[Window]*Client)
	s.workspaces = [Workspaces][]*Client{}
	s.monitors = nil
}

// Current returns the index of the visible workspace.
func (s *State) Current() int {
	return s.current
}

// Focused returns the focused client, or nil.
func (s *State) Focused() *Client {
	return s.focus
}

// Mode returns the interactive mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Workspace returns the members of workspace ws in list order.
func (s *State) Workspace(ws int) []*Client {
	if ws < 0 || ws >= Workspaces {
		return nil
	}
	return slices.Clone(s.workspaces[ws])
}

// Status is a summary of the manager for status queries.
type Status struct {
	Workspace int    `json:"workspace"`
	Focused   Window `json:"focused"`
	Top       Window `json:"always_on_top"`
	Clients   int    `json:"clients"`
	Monitors  int    `json:"monitors"`
	RandR     bool   `json:"randr"`
	Mode      string `json:"mode"`
}

// Status summarises the current state.
func (s *State) Status() Status {
	st := Status{
		Workspace: s.current,
		Top:       s.top,
		Clients:   len(s.clients),
		Monitors:  len(s.monitors),
		RandR:     s.randr,
		Mode:      s.mode.String(),
	}
	if s.focus != nil {
		st.Focused = s.focus.ID
	}
	return st
}

// ClientInfo is a copy of a client for status queries.
type ClientInfo struct {
	ID         Window    `json:"id"`
	Workspace  int       `json:"workspace"`
	Monitor    MonitorID `json:"monitor"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Focused    bool      `json:"focused"`
	Maxed      bool      `json:"maximized"`
	Half       bool      `json:"half"`
	Fixed      bool      `json:"fixed"`
	Unkillable bool      `json:"unkillable"`
	Iconic     bool      `json:"iconic"`
}

// ClientInfos lists every managed client ordered by workspace then id.
func (s *State) ClientInfos() []ClientInfo {
	infos := make([]ClientInfo, 0, len(s.clients))
	for _, c := range s.sortedClients() {
		infos = append(infos, ClientInfo{
			ID:         c.ID,
			Workspace:  c.Workspace,
			Monitor:    c.Monitor,
			X:          c.X,
			Y:          c.Y,
			Width:      c.Width,
			Height:     c.Height,
			Focused:    c == s.focus,
			Maxed:      c.Maxed,
			Half:       c.VertHor,
			Fixed:      c.Fixed,
			Unkillable: c.Unkillable,
			Iconic:     c.Iconic,
		})
	}
	return infos
}

// Monitors returns copies of the known monitors in discovery order.
func (s *State) Monitors() []Monitor {
	out := make([]Monitor, 0, len(s.monitors))
	for _, m := range s.monitors {
		out = append(out, *m)
	}
	return out
}

func (s *State) sortedClients() []*Client {
	list := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b *Client) int {
		if n := cmp.Compare(a.Workspace, b.Workspace); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return list
}
