package x11

import (
	"context"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/ringwm/internal/wm"
)

// messageTypes maps the client message atoms the manager understands.
var messageTypes = map[string]wm.MessageType{
	"_NET_ACTIVE_WINDOW":   wm.MsgActivate,
	"WM_CHANGE_STATE":      wm.MsgChangeState,
	"_NET_CURRENT_DESKTOP": wm.MsgCurrentDesktop,
	"_NET_WM_STATE":        wm.MsgWMState,
	"_NET_WM_DESKTOP":      wm.MsgWMDesktop,
	"_NET_CLOSE_WINDOW":    wm.MsgCloseWindow,
}

// Events starts a reader goroutine and returns the translated event stream.
// The channel is closed when the connection to the server is lost or ctx is
// done. Protocol errors from unchecked requests are logged and dropped.
func (c *Connection) Events(ctx context.Context) <-chan wm.Event {
	out := make(chan wm.Event, 64)
	conn := c.XUtil.Conn()

	go func() {
		defer close(out)
		for {
			ev, xerr := conn.WaitForEvent()
			if ev == nil && xerr == nil {
				c.log.Info("x11 connection closed")
				return
			}
			if xerr != nil {
				c.log.Debug("x11 error", "error", xerr)
				continue
			}

			t := translator{
				root:     c.Root,
				locks:    uint16(c.locks.Load()),
				atomName: c.atomName,
			}
			e, ok := t.translate(ev)
			if !ok {
				continue
			}
			if press, isPress := ev.(xproto.ButtonPressEvent); isPress && press.Event != c.Root {
				// Releases a synchronous focus-click grab.
				xproto.AllowEvents(conn, xproto.AllowReplayPointer, xproto.TimeCurrentTime)
			}

			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (c *Connection) atomName(a xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, a)
	if err != nil {
		return ""
	}
	return name
}

// translator turns raw protocol events into manager events.
type translator struct {
	root     xproto.Window
	locks    uint16
	atomName func(xproto.Atom) string
}

func (t translator) translate(ev xgb.Event) (wm.Event, bool) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return wm.MapRequest{Window: wm.Window(e.Window)}, true

	case xproto.DestroyNotifyEvent:
		return wm.DestroyNotify{Window: wm.Window(e.Window)}, true

	case xproto.UnmapNotifyEvent:
		return wm.UnmapNotify{Window: wm.Window(e.Window)}, true

	case xproto.ConfigureRequestEvent:
		return wm.ConfigureRequest{
			Window:    wm.Window(e.Window),
			Mask:      wm.ConfigMask(e.ValueMask),
			X:         int(e.X),
			Y:         int(e.Y),
			Width:     int(e.Width),
			Height:    int(e.Height),
			Sibling:   wm.Window(e.Sibling),
			StackMode: wm.StackMode(e.StackMode),
		}, true

	case xproto.ConfigureNotifyEvent:
		if e.Window != t.root {
			return nil, false
		}
		return wm.ConfigureNotify{
			Window: wm.Window(e.Window),
			Root:   true,
			Width:  int(e.Width),
			Height: int(e.Height),
		}, true

	case xproto.CirculateRequestEvent:
		place := wm.PlaceOnTop
		if e.Place == xproto.PlaceOnBottom {
			place = wm.PlaceOnBottom
		}
		return wm.CirculateRequest{Window: wm.Window(e.Window), Place: place}, true

	case xproto.ButtonPressEvent:
		win := e.Event
		if win == t.root && e.Child != 0 {
			win = e.Child
		}
		return wm.ButtonPress{
			Window: wm.Window(win),
			Root:   e.Event == t.root && e.Child == 0,
			Button: byte(e.Detail),
			State:  cleanMask(e.State, t.locks),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}, true

	case xproto.ButtonReleaseEvent:
		return wm.ButtonRelease{
			Button: byte(e.Detail),
			State:  cleanMask(e.State, t.locks),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}, true

	case xproto.MotionNotifyEvent:
		return wm.MotionNotify{
			State: cleanMask(e.State, t.locks),
			RootX: int(e.RootX),
			RootY: int(e.RootY),
		}, true

	case xproto.KeyPressEvent:
		return wm.KeyPress{
			Code:  byte(e.Detail),
			State: cleanMask(e.State, t.locks),
			RootX: int(e.RootX),
			RootY: int(e.RootY),
		}, true

	case xproto.KeyReleaseEvent:
		return wm.KeyRelease{
			Code:  byte(e.Detail),
			State: cleanMask(e.State, t.locks),
			RootX: int(e.RootX),
			RootY: int(e.RootY),
		}, true

	case xproto.EnterNotifyEvent:
		return wm.EnterNotify{Window: wm.Window(e.Event), Mode: wm.NotifyMode(e.Mode)}, true

	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingPointer {
			return nil, false
		}
		return wm.MappingNotify{}, true

	case xproto.ClientMessageEvent:
		return t.clientMessage(e)

	case randr.ScreenChangeNotifyEvent:
		return wm.ScreenChange{}, true
	}

	return nil, false
}

func (t translator) clientMessage(e xproto.ClientMessageEvent) (wm.Event, bool) {
	if e.Format != 32 {
		return nil, false
	}
	typ, ok := messageTypes[t.atomName(e.Type)]
	if !ok {
		return nil, false
	}

	msg := wm.ClientMessage{Window: wm.Window(e.Window), Type: typ}
	copy(msg.Data[:], e.Data.Data32)

	if typ == wm.MsgWMState {
		for _, a := range msg.Data[1:3] {
			if a == 0 {
				continue
			}
			if name := t.atomName(xproto.Atom(a)); name != "" {
				msg.Atoms = append(msg.Atoms, name)
			}
		}
	}
	return msg, true
}
