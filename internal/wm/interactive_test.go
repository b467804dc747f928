package wm

import (
	"testing"

	"github.com/1broseidon/ringwm/internal/geom"
)

func dragOptions() Options {
	opts := testOptions()
	opts.BorderWidth = 2
	opts.SnapDistance = 10
	opts.Buttons = []ButtonBinding{
		{Button: "64:1", Action: "move"},
		{Button: "64:3", Action: "resize"},
	}
	return opts
}

func TestDragMove_SnapsToNeighbour(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, dragOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 500, Y: 300, Width: 100, Height: 100})
	b := manage(t, s, fc, 2, geom.Rect{X: 596, Y: 300, Width: 100, Height: 100})
	s.SetFocus(a)

	fc.pointerX, fc.pointerY = 550, 350
	s.Dispatch(ButtonPress{Window: a.ID, Button: 1, State: 64, RootX: 550, RootY: 350})
	if s.Mode() != ModeMove || !fc.pointerGrabbed || fc.cursor != CursorMove {
		t.Fatalf("expected move mode with the pointer grabbed, mode=%v", s.Mode())
	}

	// Right edge of A comes within 10px of B's left edge.
	s.Dispatch(MotionNotify{RootX: 540, RootY: 350})

	want := b.X - a.Width - 2*2
	if a.X != want || a.Y != 300 {
		t.Fatalf("A at (%d,%d), want (%d,300)", a.X, a.Y, want)
	}
	if fc.geometry[a.ID].X != want {
		t.Fatalf("sent x = %d, want %d", fc.geometry[a.ID].X, want)
	}

	s.Dispatch(ButtonRelease{Button: 1, RootX: 540, RootY: 350})
	if s.Mode() != ModeIdle || fc.pointerGrabbed {
		t.Fatalf("release should end the drag")
	}
}

func TestDragMove_NeedsFocusAndGrab(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, dragOptions())

	s.Dispatch(ButtonPress{Window: 1, Button: 1, State: 64})
	if s.Mode() != ModeIdle {
		t.Fatalf("drag started without a focused client")
	}

	manage(t, s, fc, 1, geom.Rect{X: 500, Y: 300, Width: 100, Height: 100})
	fc.grabFails = true
	s.Dispatch(ButtonPress{Window: 1, Button: 1, State: 64})
	if s.Mode() != ModeIdle {
		t.Fatalf("drag started although the pointer grab failed")
	}
}

func TestDragResize(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, dragOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	a.VertMaxed = true

	fc.pointerX, fc.pointerY = 300, 200
	s.Dispatch(ButtonPress{Window: a.ID, Button: 3, State: 64, RootX: 300, RootY: 200})
	if s.Mode() != ModeResize || fc.cursor != CursorResize {
		t.Fatalf("expected resize mode")
	}
	if !fc.outlineShown || fc.outline != a.Rect {
		t.Fatalf("outline should start on the client, got %+v shown=%v", fc.outline, fc.outlineShown)
	}

	s.Dispatch(MotionNotify{RootX: 250, RootY: 150})
	if want := (geom.Rect{X: 100, Y: 100, Width: 150, Height: 50}); fc.outline != want {
		t.Fatalf("outline during drag %+v, want %+v", fc.outline, want)
	}
	if a.Width != 200 || a.Height != 100 || fc.geometry[a.ID].Width == 150 {
		t.Fatalf("client resized before release: %+v", a.Rect)
	}

	s.Dispatch(ButtonRelease{Button: 3, RootX: 350, RootY: 260})
	if a.Width != 250 || a.Height != 160 {
		t.Fatalf("final size %dx%d, want 250x160", a.Width, a.Height)
	}
	if fc.geometry[a.ID].Width != 250 || fc.geometry[a.ID].Height != 160 {
		t.Fatalf("resize not sent: %+v", fc.geometry[a.ID])
	}
	if a.VertMaxed {
		t.Fatalf("resizing should clear the axis flags")
	}
	if s.Mode() != ModeIdle || fc.outlineShown {
		t.Fatalf("release should end the drag and hide the outline")
	}
}

func TestDragResize_ByLine(t *testing.T) {
	fc := newFakeConn()
	opts := dragOptions()
	opts.ResizeByLine = true
	s := newTestState(t, fc, opts)
	fc.infos[1] = WindowInfo{
		Rect:         geom.Rect{X: 100, Y: 100, Width: 204, Height: 104},
		Hints:        geom.Hints{WidthInc: 10, HeightInc: 20, BaseWidth: 4, BaseHeight: 4},
		UserPosition: true,
	}
	s.Dispatch(MapRequest{Window: 1})
	a := s.Find(1)

	fc.pointerX, fc.pointerY = 300, 200
	s.Dispatch(ButtonPress{Window: 1, Button: 3, State: 64})
	s.Dispatch(MotionNotify{RootX: 317, RootY: 233})
	if fc.outline.Width != 214 || fc.outline.Height != 124 {
		t.Fatalf("outline %dx%d, want 214x124", fc.outline.Width, fc.outline.Height)
	}

	s.Dispatch(ButtonRelease{Button: 3, RootX: 317, RootY: 233})
	if a.Width != 214 || a.Height != 124 {
		t.Fatalf("size %dx%d, want 214x124", a.Width, a.Height)
	}
}

func TestDrag_RedispatchesStructuralEvents(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, dragOptions())
	a := manage(t, s, fc, 1, geom.Rect{X: 500, Y: 300, Width: 100, Height: 100})
	b := manage(t, s, fc, 2, geom.Rect{X: 100, Y: 100, Width: 100, Height: 100})
	s.SetFocus(a)

	s.Dispatch(ButtonPress{Window: a.ID, Button: 1, State: 64})

	s.Dispatch(EnterNotify{Window: b.ID, Mode: NotifyNormal})
	if s.Focused() != a {
		t.Fatalf("crossing events should be dropped during a drag")
	}

	s.Dispatch(ConfigureRequest{Window: 50, Mask: ConfigWidth, Width: 10})
	if len(fc.configured) != 1 {
		t.Fatalf("configure request should be served during a drag")
	}

	fc.infos[3] = WindowInfo{Rect: geom.Rect{X: 800, Y: 300, Width: 100, Height: 100}, UserPosition: true}
	s.Dispatch(MapRequest{Window: 3})
	if s.Find(3) == nil || s.Mode() != ModeMove {
		t.Fatalf("map request should be served and the drag kept")
	}

	s.Dispatch(DestroyNotify{Window: a.ID})
	if s.Find(a.ID) != nil {
		t.Fatalf("destroy should be served during a drag")
	}
	if s.Mode() != ModeIdle || fc.pointerGrabbed {
		t.Fatalf("drag should end when its client goes away")
	}
}
