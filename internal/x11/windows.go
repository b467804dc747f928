package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/ringwm/internal/geom"
	"github.com/1broseidon/ringwm/internal/wm"
)

// unkillableProp marks a window the manager refuses to close. It survives a
// restart of the manager.
const unkillableProp = "_RINGWM_UNKILLABLE"

func (c *Connection) window(w wm.Window) *xwindow.Window {
	return xwindow.New(c.XUtil, xproto.Window(w))
}

// WindowInfo collects the geometry and the ICCCM/EWMH hints of a window
// about to be managed. Only a failed geometry query is an error.
func (c *Connection) WindowInfo(w wm.Window) (wm.WindowInfo, error) {
	win := xproto.Window(w)

	g, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return wm.WindowInfo{}, fmt.Errorf("failed to get geometry of 0x%x: %w", uint32(w), err)
	}

	info := wm.WindowInfo{
		Rect: geom.Rect{
			X:      int(g.X),
			Y:      int(g.Y),
			Width:  int(g.Width),
			Height: int(g.Height),
		},
		Depth: g.Depth,
	}

	if nh, err := icccm.WmNormalHintsGet(c.XUtil, win); err == nil {
		info.Hints, info.UserPosition = sizeHints(nh)
	}

	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
		info.Name = name
	} else if name, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		info.Name = name
	}

	if types, err := ewmh.WmWindowTypeGet(c.XUtil, win); err == nil {
		info.Types = types
	}

	if parent, err := icccm.WmTransientForGet(c.XUtil, win); err == nil {
		info.TransientFor = wm.Window(parent)
	}

	return info, nil
}

// sizeHints converts WM_NORMAL_HINTS, keeping only the fields whose flag is
// set. The second result reports a user specified position.
func sizeHints(nh *icccm.NormalHints) (geom.Hints, bool) {
	var h geom.Hints
	if nh.Flags&icccm.SizeHintPMinSize > 0 {
		h.MinWidth, h.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPMaxSize > 0 {
		h.MaxWidth, h.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc > 0 {
		h.WidthInc, h.HeightInc = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPBaseSize > 0 {
		h.BaseWidth, h.BaseHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	return h, nh.Flags&icccm.SizeHintUSPosition > 0
}

// TopLevels returns the children of the root in stacking order.
func (c *Connection) TopLevels() ([]wm.Toplevel, error) {
	conn := c.XUtil.Conn()
	tree, err := xproto.QueryTree(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query tree: %w", err)
	}

	tops := make([]wm.Toplevel, 0, len(tree.Children))
	for _, child := range tree.Children {
		if (c.check != nil && child == c.check.Id) || child == c.outline {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(conn, child).Reply()
		if err != nil {
			continue
		}
		tops = append(tops, wm.Toplevel{
			ID:               wm.Window(child),
			Viewable:         attrs.MapState == xproto.MapStateViewable,
			OverrideRedirect: attrs.OverrideRedirect,
		})
	}
	return tops, nil
}

func (c *Connection) Desktop(w wm.Window) (uint32, bool) {
	d, err := ewmh.WmDesktopGet(c.XUtil, xproto.Window(w))
	if err != nil {
		return 0, false
	}
	return uint32(d), true
}

func (c *Connection) Unkillable(w wm.Window) bool {
	v, err := xprop.PropValNum(xprop.GetProperty(c.XUtil, xproto.Window(w), unkillableProp))
	return err == nil && v != 0
}

func (c *Connection) Protocols(w wm.Window) []string {
	protos, err := icccm.WmProtocolsGet(c.XUtil, xproto.Window(w))
	if err != nil {
		return nil
	}
	return protos
}

// Pointer returns the pointer position in root coordinates.
func (c *Connection) Pointer() (x, y int, ok bool) {
	p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(p.RootX), int(p.RootY), true
}

// PointerIn returns the pointer position relative to w.
func (c *Connection) PointerIn(w wm.Window) (x, y int, ok bool) {
	p, err := xproto.QueryPointer(c.XUtil.Conn(), xproto.Window(w)).Reply()
	if err != nil || !p.SameScreen {
		return 0, 0, false
	}
	return int(p.WinX), int(p.WinY), true
}

// PointerChild returns the top-level window under the pointer, or 0.
func (c *Connection) PointerChild() wm.Window {
	p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0
	}
	return wm.Window(p.Child)
}

func (c *Connection) Map(w wm.Window) {
	c.window(w).Map()
}

func (c *Connection) Unmap(w wm.Window) {
	c.window(w).Unmap()
}

func (c *Connection) Move(w wm.Window, x, y int) {
	c.window(w).Move(x, y)
}

func (c *Connection) Resize(w wm.Window, width, height int) {
	c.window(w).Resize(width, height)
}

func (c *Connection) MoveResize(w wm.Window, r geom.Rect) {
	c.window(w).MoveResize(r.X, r.Y, r.Width, r.Height)
}

// Configure forwards a client's configure request. The border width bit is
// dropped by xwindow.
func (c *Connection) Configure(req wm.ConfigureRequest) {
	c.window(req.Window).Configure(int(req.Mask), req.X, req.Y, req.Width, req.Height,
		xproto.Window(req.Sibling), byte(req.StackMode))
}

func (c *Connection) Restack(w wm.Window, mode wm.StackMode) {
	c.window(w).Stack(byte(mode))
}

func (c *Connection) Circulate(w wm.Window, place wm.Place) {
	direction := byte(xproto.CirculateRaiseLowest)
	if place == wm.PlaceOnBottom {
		direction = xproto.CirculateLowerHighest
	}
	xproto.CirculateWindow(c.XUtil.Conn(), direction, xproto.Window(w))
}

func (c *Connection) SetBorderWidth(w wm.Window, width int) {
	xproto.ConfigureWindow(c.XUtil.Conn(), xproto.Window(w),
		xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

// Close asks w to go away with WM_DELETE_WINDOW. The message is built by
// hand like the other client messages in this package.
func (c *Connection) Close(w wm.Window) {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		c.should(err, "intern WM_PROTOCOLS")
		return
	}
	del, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		c.should(err, "intern WM_DELETE_WINDOW")
		return
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   protocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(del), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}
	xproto.SendEvent(c.XUtil.Conn(), false, xproto.Window(w),
		xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (c *Connection) Kill(w wm.Window) {
	c.window(w).Kill()
}
