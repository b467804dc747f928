package x11

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/ringwm/internal/geom"
	"github.com/1broseidon/ringwm/internal/wm"
)

// Name is written to _NET_WM_NAME of the root and check windows.
const Name = "ringwm"

// rootEvents is the event mask selected on the root window. Only one client
// may hold SubstructureRedirect, which is how a running manager is detected.
const rootEvents = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskButtonPress

// supported is advertised in _NET_SUPPORTED.
var supported = []string{
	"_NET_SUPPORTED",
	"_NET_WM_DESKTOP",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_NAME",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_PID",
	"_NET_CLIENT_LIST",
	"_NET_CLOSE_WINDOW",
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
}

// Connection manages the X11 connection and implements wm.Conn on top of it.
// Requests are expected from a single goroutine; Events runs its own reader.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	log     *slog.Logger
	randr   bool
	check   *xwindow.Window
	outline xproto.Window
	cursors map[wm.Cursor]xproto.Cursor

	// locks holds the union of the lock modifiers (caps, num, scroll) that
	// are stripped from event state. It is read by the event reader.
	locks atomic.Uint32

	keys    map[string]keyBinding
	buttons map[string]buttonBinding
}

var _ wm.Conn = (*Connection)(nil)

// NewConnection establishes a connection to the X11 server and loads the
// keyboard mapping. It does not take over the display; see Manage.
func NewConnection(log *slog.Logger) (*Connection, error) {
	if log == nil {
		log = slog.Default()
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	keybind.Initialize(xu)

	c := &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		log:     log,
		cursors: make(map[wm.Cursor]xproto.Cursor),
		keys:    make(map[string]keyBinding),
		buttons: make(map[string]buttonBinding),
	}
	c.configureIgnoreMods()
	return c, nil
}

// Manage makes this connection the window manager of the display: it
// selects the substructure events on the root, enables RandR notifications
// and advertises the supported EWMH hints.
func (c *Connection) Manage() error {
	conn := c.XUtil.Conn()

	err := xproto.ChangeWindowAttributesChecked(conn, c.Root,
		xproto.CwEventMask, []uint32{rootEvents}).Check()
	if err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}

	if err := randr.Init(conn); err != nil {
		c.log.Warn("randr not available, using the root window as the only screen", "error", err)
	} else {
		c.randr = true
		randr.SelectInput(conn, c.Root, randr.NotifyMaskScreenChange)
	}

	if err := c.advertise(); err != nil {
		return err
	}
	c.loadCursors()
	return nil
}

// advertise creates the supporting check window and publishes the root
// properties pagers read.
func (c *Connection) advertise() error {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("failed to allocate check window: %w", err)
	}
	if err := win.CreateChecked(c.Root, -1, -1, 1, 1, 0); err != nil {
		return fmt.Errorf("failed to create check window: %w", err)
	}
	c.check = win

	names := make([]string, wm.Workspaces)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}

	c.should(ewmh.SupportingWmCheckSet(c.XUtil, c.Root, win.Id), "set _NET_SUPPORTING_WM_CHECK")
	c.should(ewmh.SupportingWmCheckSet(c.XUtil, win.Id, win.Id), "set _NET_SUPPORTING_WM_CHECK")
	c.should(ewmh.WmNameSet(c.XUtil, win.Id, Name), "set _NET_WM_NAME")
	c.should(ewmh.WmNameSet(c.XUtil, c.Root, Name), "set _NET_WM_NAME")
	c.should(ewmh.WmPidSet(c.XUtil, c.Root, uint(os.Getpid())), "set _NET_WM_PID")
	c.should(ewmh.SupportedSet(c.XUtil, supported), "set _NET_SUPPORTED")
	c.should(ewmh.NumberOfDesktopsSet(c.XUtil, wm.Workspaces), "set _NET_NUMBER_OF_DESKTOPS")
	c.should(ewmh.DesktopNamesSet(c.XUtil, names), "set _NET_DESKTOP_NAMES")
	return nil
}

// Disconnect gives the focus back to the pointer root, drops the check
// window and closes the connection to the X11 server.
func (c *Connection) Disconnect() {
	conn := c.XUtil.Conn()
	xproto.SetInputFocus(conn, xproto.InputFocusPointerRoot,
		xproto.InputFocusPointerRoot, xproto.TimeCurrentTime)
	if c.check != nil {
		c.check.Destroy()
	}
	if c.outline != 0 {
		xproto.DestroyWindow(conn, c.outline)
	}
	conn.Close()
}

// Screen returns the root window geometry.
func (c *Connection) Screen() geom.Rect {
	r, err := xwindow.RawGeometry(c.XUtil, xproto.Drawable(c.Root))
	if err != nil {
		s := c.XUtil.Screen()
		return geom.Rect{Width: int(s.WidthInPixels), Height: int(s.HeightInPixels)}
	}
	return geom.Rect{X: r.X(), Y: r.Y(), Width: r.Width(), Height: r.Height()}
}

// should logs a failed property write; the manager keeps running.
func (c *Connection) should(err error, what string) {
	if err != nil {
		c.log.Debug("x11 request failed", "request", what, "error", err)
	}
}
