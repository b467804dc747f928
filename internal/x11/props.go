package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/ringwm/internal/wm"
)

// Prepare subscribes w to enter events, gives it a background pixel and
// adds it to the save set so it survives the manager exiting.
func (c *Connection) Prepare(w wm.Window, background uint32) {
	conn := c.XUtil.Conn()
	win := xproto.Window(w)
	xproto.ChangeWindowAttributes(conn, win,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{background, xproto.EventMaskEnterWindow})
	xproto.ChangeSaveSet(conn, xproto.SetModeInsert, win)
}

// Focus moves the input focus to w, or to PointerRoot when w is 0.
func (c *Connection) Focus(w wm.Window) {
	target := xproto.Window(w)
	if w == 0 {
		target = xproto.InputFocusPointerRoot
	}
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
		target, xproto.TimeCurrentTime)
}

func (c *Connection) SetActive(w wm.Window) {
	c.should(ewmh.ActiveWindowSet(c.XUtil, xproto.Window(w)), "set _NET_ACTIVE_WINDOW")
}

func (c *Connection) SetDesktop(w wm.Window, desktop uint32) {
	c.should(ewmh.WmDesktopSet(c.XUtil, xproto.Window(w), uint(desktop)), "set _NET_WM_DESKTOP")
}

func (c *Connection) SetCurrentDesktop(n int) {
	c.should(ewmh.CurrentDesktopSet(c.XUtil, uint(n)), "set _NET_CURRENT_DESKTOP")
}

func (c *Connection) SetClientList(ws []wm.Window) {
	wins := make([]xproto.Window, len(ws))
	for i, w := range ws {
		wins[i] = xproto.Window(w)
	}
	c.should(ewmh.ClientListSet(c.XUtil, wins), "set _NET_CLIENT_LIST")
}

func (c *Connection) SetWMState(w wm.Window, state wm.WMState) {
	c.should(icccm.WmStateSet(c.XUtil, xproto.Window(w), &icccm.WmState{State: uint(state)}),
		"set WM_STATE")
}

// SetNetState replaces _NET_WM_STATE. An empty list deletes the property.
func (c *Connection) SetNetState(w wm.Window, states []string) {
	if len(states) == 0 {
		c.deleteProp(w, "_NET_WM_STATE")
		return
	}
	c.should(ewmh.WmStateSet(c.XUtil, xproto.Window(w), states), "set _NET_WM_STATE")
}

func (c *Connection) SetUnkillable(w wm.Window, on bool) {
	if !on {
		c.deleteProp(w, unkillableProp)
		return
	}
	c.should(xprop.ChangeProp32(c.XUtil, xproto.Window(w), unkillableProp, "CARDINAL", 1),
		"set "+unkillableProp)
}

func (c *Connection) deleteProp(w wm.Window, name string) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		c.should(err, "intern "+name)
		return
	}
	xproto.DeleteProperty(c.XUtil.Conn(), xproto.Window(w), atom)
}
