package wm

import (
	"testing"

	"github.com/1broseidon/ringwm/internal/geom"
)

func dualHead() []Output {
	return []Output{
		{ID: 1, Name: "DP-1", Connected: true, Rect: geom.Rect{Width: 1920, Height: 1080}},
		{ID: 2, Name: "HDMI-1", Connected: true, Rect: geom.Rect{X: 1920, Width: 1280, Height: 1024}},
		{ID: 3, Name: "DP-2", Connected: true, Rect: geom.Rect{Width: 1920, Height: 1080}},
		{ID: 4, Name: "VGA-1", Connected: false},
	}
}

func newDualHeadState(t *testing.T) (*State, *fakeConn) {
	t.Helper()
	fc := newFakeConn()
	fc.screen = geom.Rect{Width: 3200, Height: 1080}
	fc.outputsErr = nil
	fc.outputs = dualHead()
	return newTestState(t, fc, testOptions()), fc
}

func TestUpdateOutputs_SkipsClones(t *testing.T) {
	s, _ := newDualHeadState(t)

	mons := s.Monitors()
	if len(mons) != 2 {
		t.Fatalf("expected 2 monitors, got %d: %+v", len(mons), mons)
	}
	if mons[0].Name != "DP-1" || mons[1].Name != "HDMI-1" {
		t.Fatalf("monitors out of discovery order: %+v", mons)
	}
	if m := s.MonitorAt(2000, 500); m == nil || m.ID != 2 {
		t.Fatalf("point (2000,500) should be on HDMI-1")
	}
	if m := s.MonitorAt(2000, 1050); m != nil {
		t.Fatalf("point below HDMI-1 should not match, got %s", m.Name)
	}
}

func TestMapRequest_PicksMonitorUnderWindowCenter(t *testing.T) {
	s, fc := newDualHeadState(t)
	fc.pointerX, fc.pointerY = 2500, 500
	fc.infos[1] = WindowInfo{Rect: geom.Rect{Width: 400, Height: 300}}

	s.Dispatch(MapRequest{Window: 1})

	c := s.Find(1)
	if c.Monitor != 2 {
		t.Fatalf("monitor = %d, want 2", c.Monitor)
	}
	if c.X != 2300 || c.Y != 350 {
		t.Fatalf("position (%d,%d), want (2300,350)", c.X, c.Y)
	}
}

func TestUpdateOutputs_UnplugReassignsAndRefits(t *testing.T) {
	s, fc := newDualHeadState(t)
	c := manage(t, s, fc, 1, geom.Rect{X: 2300, Y: 350, Width: 400, Height: 300})
	if c.Monitor != 2 {
		t.Fatalf("monitor = %d, want 2", c.Monitor)
	}

	fc.outputs = []Output{{ID: 2, Name: "HDMI-1", Connected: false}}
	s.Dispatch(ScreenChange{})

	if len(s.Monitors()) != 1 {
		t.Fatalf("expected one monitor left")
	}
	if s.Monitor(c.Monitor) == nil || c.Monitor != 1 {
		t.Fatalf("client left on monitor %d", c.Monitor)
	}
	if c.X+c.Width+10 > 1920 || c.X < 0 {
		t.Fatalf("client %+v not refitted to DP-1", c.Rect)
	}
}

func TestUpdateOutputs_LastMonitorFallsBackToRoot(t *testing.T) {
	fc := newFakeConn()
	fc.outputsErr = nil
	fc.outputs = []Output{{ID: 1, Name: "DP-1", Connected: true, Rect: geom.Rect{Width: 1920, Height: 1080}}}
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})

	s.UpdateOutputs([]Output{{ID: 1, Connected: false}})

	if c.Monitor != 0 || len(s.Monitors()) != 0 {
		t.Fatalf("expected no monitors and monitor 0, got %d", c.Monitor)
	}
	if a := s.area(c); a.Full != fc.screen {
		t.Fatalf("client should fall back to root bounds, got %+v", a.Full)
	}
}

func TestUpdateOutputs_CloneTakesOverUnpluggedOutput(t *testing.T) {
	fc := newFakeConn()
	fc.outputsErr = nil
	fc.outputs = []Output{
		{ID: 1, Name: "eDP-1", Connected: true, Rect: geom.Rect{Width: 1920, Height: 1080}},
		{ID: 2, Name: "HDMI-1", Connected: true, Rect: geom.Rect{Width: 1920, Height: 1080}},
	}
	s := newTestState(t, fc, testOptions())
	if mons := s.Monitors(); len(mons) != 1 || mons[0].ID != 1 {
		t.Fatalf("expected only eDP-1, got %+v", mons)
	}
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})

	// The clone is listed before the output it mirrored goes away.
	s.UpdateOutputs([]Output{
		{ID: 2, Name: "HDMI-1", Connected: true, Rect: geom.Rect{Width: 1280, Height: 1024}},
		{ID: 1, Name: "eDP-1", Connected: false},
	})

	mons := s.Monitors()
	if len(mons) != 1 || mons[0].ID != 2 {
		t.Fatalf("expected HDMI-1 to remain, got %+v", mons)
	}
	if c.Monitor != 2 {
		t.Fatalf("client left on monitor %d, want 2", c.Monitor)
	}
}

func TestUpdateOutputs_GeometryChangeRefits(t *testing.T) {
	s, fc := newDualHeadState(t)
	c := manage(t, s, fc, 1, geom.Rect{X: 1000, Y: 500, Width: 400, Height: 300})

	s.UpdateOutputs([]Output{{ID: 1, Name: "DP-1", Connected: true, Rect: geom.Rect{Width: 1280, Height: 720}}})

	if got := s.Monitor(1).Rect; got != (geom.Rect{Width: 1280, Height: 720}) {
		t.Fatalf("monitor not updated in place: %+v", got)
	}
	if c.X != 870 || c.Y != 410 {
		t.Fatalf("client at (%d,%d), want (870,410)", c.X, c.Y)
	}
}

func TestChangeMonitor_KeepsRelativePosition(t *testing.T) {
	s, fc := newDualHeadState(t)
	c := manage(t, s, fc, 1, geom.Rect{X: 960, Y: 540, Width: 100, Height: 100})

	s.ChangeMonitor(true)

	if c.Monitor != 2 {
		t.Fatalf("monitor = %d, want 2", c.Monitor)
	}
	if c.X != 2560 || c.Y != 512 {
		t.Fatalf("position (%d,%d), want (2560,512)", c.X, c.Y)
	}

	s.ChangeMonitor(true)
	if c.Monitor != 1 {
		t.Fatalf("next from the last monitor should wrap, got %d", c.Monitor)
	}
}
