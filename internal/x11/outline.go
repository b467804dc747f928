package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/ringwm/internal/geom"
)

// ShowOutline draws the resize preview: an override-redirect window whose
// border is the frame. It is created on first use and kept for later drags.
func (c *Connection) ShowOutline(r geom.Rect, border int, color uint32) {
	conn := c.XUtil.Conn()
	if c.outline == 0 {
		win, err := xproto.NewWindowId(conn)
		if err != nil {
			c.should(err, "allocate outline window")
			return
		}
		screen := c.XUtil.Screen()
		xproto.CreateWindow(conn, screen.RootDepth, win, c.Root,
			int16(r.X), int16(r.Y), uint16(max(r.Width, 1)), uint16(max(r.Height, 1)), uint16(border),
			xproto.WindowClassInputOutput, screen.RootVisual,
			xproto.CwBackPixmap|xproto.CwBorderPixel|xproto.CwOverrideRedirect,
			[]uint32{xproto.BackPixmapNone, color, 1})
		c.outline = win
	} else {
		xproto.ChangeWindowAttributes(conn, c.outline, xproto.CwBorderPixel, []uint32{color})
	}

	xproto.ConfigureWindow(conn, c.outline,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|
			xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(int32(r.X)), uint32(int32(r.Y)),
			uint32(max(r.Width, 1)), uint32(max(r.Height, 1)),
			uint32(border), xproto.StackModeAbove,
		})
	xproto.MapWindow(conn, c.outline)
}

// HideOutline unmaps the resize preview.
func (c *Connection) HideOutline() {
	if c.outline != 0 {
		xproto.UnmapWindow(c.XUtil.Conn(), c.outline)
	}
}
