package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/ringwm/internal/geom"
	"github.com/1broseidon/ringwm/internal/wm"
)

// fill is one PolyFillRectangle pass over the border pixmap.
type fill struct {
	color uint32
	rects []xproto.Rectangle
}

// borderFills returns the two passes that paint the rings of style into the
// border pixmap of a width x height window, outer ring first. Inverted
// styles swap the ring geometry, not the colors.
func borderFills(width, height int, depth uint8, style wm.BorderStyle) []fill {
	outerRing, innerRing := geom.BorderRings(width, height, style.Width, style.Outer)
	if style.Inverted {
		outerRing, innerRing = innerRing, outerRing
	}
	return []fill{
		{color: pixel(style.OuterColor, depth), rects: rectangles(outerRing)},
		{color: pixel(style.InnerColor, depth), rects: rectangles(innerRing)},
	}
}

// pixel makes an RGB color opaque on 32 bit visuals.
func pixel(color uint32, depth uint8) uint32 {
	if depth == 32 {
		return color | 0xff000000
	}
	return color
}

func rectangles(rs []geom.Rect) []xproto.Rectangle {
	out := make([]xproto.Rectangle, len(rs))
	for i, r := range rs {
		out[i] = xproto.Rectangle{
			X:      int16(r.X),
			Y:      int16(r.Y),
			Width:  uint16(max(r.Width, 0)),
			Height: uint16(max(r.Height, 0)),
		}
	}
	return out
}

// PaintBorder draws the two-ring border of w into a temporary pixmap and
// installs it as the border pixmap.
func (c *Connection) PaintBorder(w wm.Window, depth uint8, size geom.Rect, style wm.BorderStyle) {
	if style.Width <= 0 {
		return
	}
	if depth == 0 {
		depth = c.XUtil.Screen().RootDepth
	}

	conn := c.XUtil.Conn()
	win := xproto.Window(w)

	pmap, err := xproto.NewPixmapId(conn)
	if err != nil {
		c.should(err, "allocate border pixmap")
		return
	}
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		c.should(err, "allocate border gc")
		return
	}

	xproto.CreatePixmap(conn, depth, pmap, xproto.Drawable(win),
		uint16(size.Width+2*style.Width), uint16(size.Height+2*style.Width))
	xproto.CreateGC(conn, gc, xproto.Drawable(pmap), 0, nil)

	for _, f := range borderFills(size.Width, size.Height, depth, style) {
		xproto.ChangeGC(conn, gc, xproto.GcForeground, []uint32{f.color})
		xproto.PolyFillRectangle(conn, xproto.Drawable(pmap), gc, f.rects)
	}

	xproto.ChangeWindowAttributes(conn, win, xproto.CwBorderPixmap, []uint32{uint32(pmap)})
	xproto.FreePixmap(conn, pmap)
	xproto.FreeGC(conn, gc)
}
