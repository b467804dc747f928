package wm

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/1broseidon/ringwm/internal/geom"
)

// fakeConn is an in-memory display. Queries read the fields set up by the
// test; requests are recorded.
type fakeConn struct {
	screen     geom.Rect
	outputs    []Output
	outputsErr error
	infos      map[Window]WindowInfo
	tops       []Toplevel

	pointerX, pointerY int
	pointerOK          bool
	pointerChild       Window
	grabFails          bool

	desktops   map[Window]uint32
	unkillable map[Window]bool
	protocols  map[Window][]string

	mapped         map[Window]bool
	geometry       map[Window]geom.Rect
	borderWidth    map[Window]int
	borders        map[Window]BorderStyle
	wmState        map[Window]WMState
	netState       map[Window][]string
	focused        Window
	active         Window
	current        int
	clientList     []Window
	restacks       []Window
	configured     []ConfigureRequest
	closed         []Window
	killed         []Window
	grabbedKeys    []string
	focusClicks    []Window
	pointerGrabbed bool
	outline        geom.Rect
	outlineShown   bool
	cursor         Cursor
	warps          int
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		screen:      geom.Rect{Width: 1920, Height: 1080},
		outputsErr:  ErrNoRandR,
		infos:       make(map[Window]WindowInfo),
		pointerOK:   true,
		desktops:    make(map[Window]uint32),
		unkillable:  make(map[Window]bool),
		protocols:   make(map[Window][]string),
		mapped:      make(map[Window]bool),
		geometry:    make(map[Window]geom.Rect),
		borderWidth: make(map[Window]int),
		borders:     make(map[Window]BorderStyle),
		wmState:     make(map[Window]WMState),
		netState:    make(map[Window][]string),
	}
}

func (f *fakeConn) Screen() geom.Rect { return f.screen }

func (f *fakeConn) Outputs() ([]Output, error) { return f.outputs, f.outputsErr }

func (f *fakeConn) WindowInfo(w Window) (WindowInfo, error) {
	info, ok := f.infos[w]
	if !ok {
		return WindowInfo{}, fmt.Errorf("bad window %d", w)
	}
	return info, nil
}

func (f *fakeConn) Pointer() (int, int, bool) { return f.pointerX, f.pointerY, f.pointerOK }

func (f *fakeConn) PointerIn(w Window) (int, int, bool) {
	r := f.geometry[w]
	return f.pointerX - r.X, f.pointerY - r.Y, f.pointerOK
}

func (f *fakeConn) PointerChild() Window { return f.pointerChild }

// TopLevels returns the configured list, or every known window in id order.
func (f *fakeConn) TopLevels() ([]Toplevel, error) {
	if f.tops != nil {
		return f.tops, nil
	}
	ids := make([]Window, 0, len(f.infos))
	for id := range f.infos {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	tops := make([]Toplevel, 0, len(ids))
	for _, id := range ids {
		tops = append(tops, Toplevel{ID: id, Viewable: f.mapped[id]})
	}
	return tops, nil
}

func (f *fakeConn) Desktop(w Window) (uint32, bool) {
	d, ok := f.desktops[w]
	return d, ok
}

func (f *fakeConn) Unkillable(w Window) bool { return f.unkillable[w] }

func (f *fakeConn) Protocols(w Window) []string { return f.protocols[w] }

// Bindings are written as "state:code" in tests.
func (f *fakeConn) KeyMatch(keys string, state uint16, code byte) bool {
	return keys == fmt.Sprintf("%d:%d", state, code)
}

func (f *fakeConn) ButtonMatch(button string, state uint16, detail byte) bool {
	return button == fmt.Sprintf("%d:%d", state, detail)
}

func (f *fakeConn) Map(w Window) { f.mapped[w] = true }
func (f *fakeConn) Unmap(w Window) { f.mapped[w] = false }

func (f *fakeConn) Move(w Window, x, y int) {
	r := f.geometry[w]
	r.X, r.Y = x, y
	f.geometry[w] = r
}

func (f *fakeConn) Resize(w Window, width, height int) {
	r := f.geometry[w]
	r.Width, r.Height = width, height
	f.geometry[w] = r
}

func (f *fakeConn) MoveResize(w Window, r geom.Rect) { f.geometry[w] = r }

func (f *fakeConn) Configure(req ConfigureRequest) { f.configured = append(f.configured, req) }

func (f *fakeConn) Restack(w Window, mode StackMode) {
	if mode == StackAbove {
		f.restacks = append(f.restacks, w)
	}
}

func (f *fakeConn) Circulate(Window, Place) {}

func (f *fakeConn) SetBorderWidth(w Window, width int) { f.borderWidth[w] = width }

func (f *fakeConn) PaintBorder(w Window, _ uint8, _ geom.Rect, style BorderStyle) {
	f.borders[w] = style
}

func (f *fakeConn) Prepare(w Window, _ uint32) { f.geometry[w] = f.infos[w].Rect }

func (f *fakeConn) Focus(w Window) { f.focused = w }
func (f *fakeConn) SetActive(w Window) { f.active = w }

func (f *fakeConn) SetDesktop(w Window, d uint32) { f.desktops[w] = d }
func (f *fakeConn) SetCurrentDesktop(n int) { f.current = n }
func (f *fakeConn) SetClientList(ws []Window) { f.clientList = ws }

func (f *fakeConn) SetWMState(w Window, st WMState) { f.wmState[w] = st }
func (f *fakeConn) SetNetState(w Window, states []string) { f.netState[w] = states }
func (f *fakeConn) SetUnkillable(w Window, on bool) { f.unkillable[w] = on }

func (f *fakeConn) Warp(Window, int, int) { f.warps++ }
func (f *fakeConn) WarpRelative(dx, dy int) {
	f.pointerX += dx
	f.pointerY += dy
}

func (f *fakeConn) GrabKeys(keys []string) { f.grabbedKeys = keys }
func (f *fakeConn) GrabButtons(Window, []string) {}
func (f *fakeConn) GrabFocusClick(w Window) { f.focusClicks = append(f.focusClicks, w) }
func (f *fakeConn) GrabPointer(c Cursor) bool {
	if f.grabFails {
		return false
	}
	f.pointerGrabbed = true
	f.cursor = c
	return true
}
func (f *fakeConn) UngrabPointer() { f.pointerGrabbed = false }

func (f *fakeConn) ShowOutline(r geom.Rect, border int, color uint32) {
	f.outline = r
	f.outlineShown = true
}

func (f *fakeConn) HideOutline() { f.outlineShown = false }

func (f *fakeConn) Close(w Window) { f.closed = append(f.closed, w) }
func (f *fakeConn) Kill(w Window) { f.killed = append(f.killed, w) }
func (f *fakeConn) RefreshKeyboard() {}

func testOptions() Options {
	return Options{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		BorderWidth:  5,
		OuterBorder:  3,
		SnapDistance: 5,
		Movements:    Movements{Slow: 20, Fast: 40, MouseSlow: 15, MouseFast: 400},
		AspectRatio:  1.03,
		SloppyFocus:  true,
		Colors: Colors{
			Focus:           0x35586c,
			Unfocus:         0x333333,
			Fixed:           0x7a8c5c,
			Unkillable:      0xff6666,
			FixedUnkillable: 0xcc9933,
			Outer:           0x0d131a,
		},
	}
}

// newTestState returns a manager on a 1920x1080 root without RandR.
func newTestState(t *testing.T, fc *fakeConn, opts Options) *State {
	t.Helper()
	s := New(fc, opts)
	if err := s.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return s
}

// manage maps a window at a user-chosen position and returns its client.
func manage(t *testing.T, s *State, fc *fakeConn, id Window, r geom.Rect) *Client {
	t.Helper()
	fc.infos[id] = WindowInfo{Rect: r, Depth: 24, UserPosition: true}
	s.Dispatch(MapRequest{Window: id})
	c := s.Find(id)
	if c == nil {
		t.Fatalf("window %d was not managed", id)
	}
	return c
}

func ids(list []*Client) []Window {
	out := make([]Window, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}
