package wm

import (
	"testing"

	"github.com/1broseidon/ringwm/internal/geom"
)

func TestFit_Idempotent(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())

	cases := []geom.Rect{
		{X: 1800, Y: 1000, Width: 400, Height: 300},
		{X: -50, Y: -20, Width: 100, Height: 100},
		{X: 10, Y: 10, Width: 3000, Height: 2000},
		{X: 0, Y: 0, Width: 1920, Height: 1080},
	}
	for i, r := range cases {
		c := manage(t, s, fc, Window(10+i), r)
		first := c.Window
		s.fit(c)
		if c.Window != first {
			t.Fatalf("case %d: second fit changed %+v to %+v", i, first, c.Window)
		}
	}
}

func TestMaximize_RoundTrip(t *testing.T) {
	fc := newFakeConn()
	opts := testOptions()
	opts.Offsets = geom.Offsets{Y: 20, Height: 20}
	s := newTestState(t, fc, opts)
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 120, Width: 400, Height: 300})
	before := c.Rect

	if err := s.RunAction("maximize"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Rect != (geom.Rect{Y: 20, Width: 1920, Height: 1060}) || !c.Maxed {
		t.Fatalf("maximized to %+v", c.Rect)
	}
	if fc.borderWidth[c.ID] != 0 {
		t.Fatalf("maximized window should have no border")
	}

	if err := s.RunAction("maximize"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Rect != before || c.Maxed {
		t.Fatalf("restored to %+v, want %+v", c.Rect, before)
	}
	if fc.geometry[c.ID] != before {
		t.Fatalf("sent %+v, want %+v", fc.geometry[c.ID], before)
	}
	if fc.borderWidth[c.ID] != opts.BorderWidth {
		t.Fatalf("border width not restored")
	}
}

func TestMaximizeAxis_Toggle(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 120, Width: 400, Height: 300})

	s.MaximizeAxis(true)
	if !c.VertMaxed || c.Y != 0 || c.Height != 1070 {
		t.Fatalf("vertical maximize gave %+v", c.Rect)
	}

	s.MaximizeAxis(false)
	if c.VertMaxed || c.HorMaxed || c.Rect != (geom.Rect{X: 100, Y: 120, Width: 400, Height: 300}) {
		t.Fatalf("second toggle should restore, got %+v", c.Rect)
	}
}

func TestMaximizeHalf_PlacementAndFold(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 120, Width: 400, Height: 300})

	if err := s.RunAction("half_left"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.X != 0 || c.Y != 0 || c.Width != 950 || c.Height != 1070 {
		t.Fatalf("left half gave %+v", c.Rect)
	}

	if err := s.RunAction("half_fold_horizontal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Width != 470 {
		t.Fatalf("fold gave width %d, want 470", c.Width)
	}
	if infos := s.ClientInfos(); !infos[0].Half {
		t.Fatalf("client info should report the half layout")
	}

	if err := s.RunAction("resize_grow_height_slow"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.VertHor || s.ClientInfos()[0].Half {
		t.Fatalf("a keyboard resize should clear the half layout")
	}
}

func TestTeleport(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	fc.pointerX, fc.pointerY = 150, 150

	s.Teleport(geom.BottomRight)

	if c.X != 1710 || c.Y != 970 {
		t.Fatalf("teleported to (%d,%d), want (1710,970)", c.X, c.Y)
	}
	if fc.geometry[c.ID].X != 1710 {
		t.Fatalf("move not sent")
	}
}

func TestTeleport_WithoutPointer(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	fc.pointerOK = false
	warps := fc.warps

	s.Teleport(geom.BottomRight)

	if c.X != 1710 || c.Y != 970 {
		t.Fatalf("teleported to (%d,%d), want (1710,970)", c.X, c.Y)
	}
	if fc.warps != warps {
		t.Fatalf("pointer should not be warped when its position is unknown")
	}
}

func TestMoveStep_WithoutPointer(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	fc.pointerOK = false
	warps := fc.warps

	if err := s.RunAction("move_down_slow"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.X != 100 || c.Y != 120 {
		t.Fatalf("moved to (%d,%d), want (100,120)", c.X, c.Y)
	}
	if fc.warps != warps {
		t.Fatalf("pointer should not be warped when its position is unknown")
	}
}

func TestMoveStep_PointerFollows(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	fc.pointerX, fc.pointerY = 150, 150
	warps := fc.warps

	if err := s.RunAction("move_right_slow"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.X != 120 || c.Y != 100 {
		t.Fatalf("moved to (%d,%d), want (120,100)", c.X, c.Y)
	}
	if fc.warps != warps+1 {
		t.Fatalf("pointer should be warped back into the window")
	}
}

func TestResizeStep(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})

	if err := s.RunAction("resize_grow_width"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Width != 240 {
		t.Fatalf("width = %d, want 240", c.Width)
	}
	if err := s.RunAction("resize_shrink_height_slow"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Height != 80 {
		t.Fatalf("height = %d, want 80", c.Height)
	}

	c.Hints.WidthInc, c.Hints.HeightInc = 8, 16
	s.ResizeStep(geom.Down, true)
	if c.Height != 96 {
		t.Fatalf("height = %d, want 96 (one increment)", c.Height)
	}
}

func TestResizeAspect(t *testing.T) {
	fc := newFakeConn()
	s := newTestState(t, fc, testOptions())
	c := manage(t, s, fc, 1, geom.Rect{X: 100, Y: 100, Width: 200, Height: 100})

	s.ResizeAspect(true)

	if c.Width != 206 || c.Height != 103 {
		t.Fatalf("size %dx%d, want 206x103", c.Width, c.Height)
	}
}
