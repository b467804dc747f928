package wm

import (
	"slices"
	"testing"

	"github.com/1broseidon/ringwm/internal/geom"
)

func TestSwitchWorkspace_MembershipAndMapping(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())

	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	b := manage(t, s, fc, 2, geom.Rect{X: 400, Y: 100, Width: 200, Height: 150})
	c := manage(t, s, fc, 3, geom.Rect{X: 700, Y: 100, Width: 200, Height: 150})
	s.ToggleFixed(b)

	d := manage(t, s, fc, 4, geom.Rect{X: 100, Y: 400, Width: 200, Height: 150})
	s.SendToWorkspace(1)
	e := manage(t, s, fc, 5, geom.Rect{X: 400, Y: 400, Width: 200, Height: 150})
	s.SendToWorkspace(1)
	e.Iconic = true

	fc.pointerChild = d.ID
	s.SwitchWorkspace(1)

	if s.Current() != 1 || fc.current != 1 {
		t.Fatalf("expected workspace 1, got state=%d published=%d", s.Current(), fc.current)
	}
	for _, gone := range []*Client{a, c} {
		if fc.mapped[gone.ID] {
			t.Errorf("window %d from the old workspace is still mapped", gone.ID)
		}
	}
	if !fc.mapped[d.ID] {
		t.Errorf("window %d on the new workspace is not mapped", d.ID)
	}
	if fc.mapped[e.ID] {
		t.Errorf("iconic window %d was mapped", e.ID)
	}
	if !fc.mapped[b.ID] {
		t.Errorf("fixed window %d was unmapped", b.ID)
	}

	if got := ids(s.Workspace(0)); !slices.Equal(got, []Window{1, 3}) {
		t.Fatalf("workspace 0 = %v, want [1 3]", got)
	}
	if got := ids(s.Workspace(1)); !slices.Equal(got, []Window{4, 5, 2}) {
		t.Fatalf("workspace 1 = %v, want [4 5 2]", got)
	}
	if b.Workspace != 1 {
		t.Fatalf("fixed client should follow the switch, workspace=%d", b.Workspace)
	}
	if s.Focused() != d {
		t.Fatalf("focus should follow the pointer to window 4, got %v", s.Focused())
	}
}

func TestSwitchWorkspace_FocusedFixedKeepsFocusBorder(t *testing.T) {
	fc := newFakeConn()
	opts := testOptions()
	s := newTestState(t, fc, opts)

	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	s.ToggleFixed(c)
	if s.Focused() != c {
		t.Fatalf("expected window 1 to be focused")
	}

	fc.pointerChild = c.ID
	s.SwitchWorkspace(1)

	if s.Focused() != c {
		t.Fatalf("fixed client should keep the focus, got %v", s.Focused())
	}
	if got := fc.borders[c.ID].InnerColor; got != opts.Colors.Focus {
		t.Fatalf("inner border = %#x, want focus color %#x", got, opts.Colors.Focus)
	}
}

func TestSwitchWorkspace_SameOrOutOfRangeIsNoop(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})

	s.SwitchWorkspace(0)
	s.SwitchWorkspace(Workspaces)
	s.SwitchWorkspace(-1)

	if s.Current() != 0 || !fc.mapped[a.ID] || s.Focused() != a {
		t.Fatalf("expected nothing to change, current=%d mapped=%v", s.Current(), fc.mapped[a.ID])
	}
}

func TestToggleFixed_TwiceRestoresState(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	manage(t, s, fc, 2, geom.Rect{X: 400, Y: 100, Width: 200, Height: 150})

	before := ids(s.Workspace(0))

	s.ToggleFixed(a)
	if !a.Fixed || fc.desktops[a.ID] != DesktopFixed {
		t.Fatalf("expected fixed client, fixed=%v desktop=%#x", a.Fixed, fc.desktops[a.ID])
	}
	s.ToggleFixed(a)

	if a.Fixed {
		t.Fatalf("expected fixed flag cleared")
	}
	if fc.desktops[a.ID] != 0 {
		t.Fatalf("expected desktop 0, got %#x", fc.desktops[a.ID])
	}
	if got := ids(s.Workspace(0)); !slices.Equal(got, before) {
		t.Fatalf("membership changed: %v, want %v", got, before)
	}
}

func TestSendToWorkspace_MovesAndClearsFocus(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})

	if err := s.RunAction("send_3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Workspace != 3 || fc.desktops[a.ID] != 3 {
		t.Fatalf("expected workspace 3, got %d (desktop %d)", a.Workspace, fc.desktops[a.ID])
	}
	if fc.mapped[a.ID] {
		t.Fatalf("sent client should be unmapped")
	}
	if s.Focused() != nil || fc.focused != 0 {
		t.Fatalf("focus should be cleared")
	}
	if len(s.Workspace(0)) != 0 {
		t.Fatalf("workspace 0 should be empty")
	}

	// The unmap caused by the send must not unmanage the client.
	s.Dispatch(UnmapNotify{Window: a.ID})
	if s.Find(a.ID) == nil {
		t.Fatalf("client on another workspace was forgotten")
	}
}

func TestSendToWorkspace_FixedClientStays(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	s.ToggleFixed(a)

	s.SendToWorkspace(2)

	if a.Workspace != 0 || !fc.mapped[a.ID] {
		t.Fatalf("fixed client should not be sent, workspace=%d", a.Workspace)
	}
}

func TestNextPrevWorkspace_Wrap(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())

	s.PrevWorkspace()
	if s.Current() != Workspaces-1 {
		t.Fatalf("expected wrap to %d, got %d", Workspaces-1, s.Current())
	}
	s.NextWorkspace()
	if s.Current() != 0 {
		t.Fatalf("expected wrap to 0, got %d", s.Current())
	}
}

func TestAdopt_RestoresPersistedState(t *testing.T) {
	fc := newFakeConn()
	for id := Window(1); id <= 5; id++ {
		fc.infos[id] = WindowInfo{Rect: geom.Rect{X: 100 * int(id), Y: 100, Width: 80, Height: 60}}
		fc.mapped[id] = true
	}
	fc.tops = []Toplevel{
		{ID: 1, Viewable: true},
		{ID: 2, Viewable: true},
		{ID: 3, Viewable: true, OverrideRedirect: true},
		{ID: 4, Viewable: false},
		{ID: 5, Viewable: true},
	}
	fc.desktops[2] = 3
	fc.desktops[5] = DesktopFixed
	fc.unkillable[1] = true

	s := newTestState(t, fc, testOptions())

	if s.Find(3) != nil || s.Find(4) != nil {
		t.Fatalf("override-redirect and unmapped windows must not be adopted")
	}

	c1 := s.Find(1)
	if c1 == nil || c1.Workspace != 0 || !c1.Unkillable {
		t.Fatalf("window 1 should be unkillable on workspace 0: %+v", c1)
	}

	c2 := s.Find(2)
	if c2 == nil || c2.Workspace != 3 {
		t.Fatalf("window 2 should be on workspace 3: %+v", c2)
	}
	if fc.mapped[2] {
		t.Fatalf("window 2 is on a hidden workspace and should be unmapped")
	}

	c5 := s.Find(5)
	if c5 == nil || !c5.Fixed || c5.Workspace != 0 {
		t.Fatalf("window 5 should be fixed on workspace 0: %+v", c5)
	}
	if fc.desktops[5] != DesktopFixed {
		t.Fatalf("fixed marker should be kept, got %#x", fc.desktops[5])
	}

	if !slices.Equal(fc.clientList, []Window{1, 2, 5}) {
		t.Fatalf("client list = %v, want [1 2 5]", fc.clientList)
	}
}

func TestSendClient_ByWindowAndFocus(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	b := manage(t, s, fc, 2, geom.Rect{X: 400, Y: 100, Width: 200, Height: 150})

	if err := s.SendClient(a.ID, 3); err != nil {
		t.Fatalf("SendClient: %v", err)
	}
	if a.Workspace != 3 || fc.mapped[a.ID] {
		t.Fatalf("window 1 should be on hidden workspace 3, workspace=%d mapped=%v", a.Workspace, fc.mapped[a.ID])
	}

	if err := s.SendClient(0, 2); err != nil {
		t.Fatalf("SendClient focused: %v", err)
	}
	if b.Workspace != 2 || s.Focused() != nil {
		t.Fatalf("focused window should move to workspace 2 and lose focus, workspace=%d", b.Workspace)
	}

	if err := s.SendClient(99, 1); err == nil {
		t.Fatalf("expected an unknown window to fail")
	}
	if err := s.SendClient(b.ID, Workspaces); err == nil {
		t.Fatalf("expected an out of range workspace to fail")
	}
}
