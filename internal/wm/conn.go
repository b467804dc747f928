package wm

import (
	"errors"

	"github.com/1broseidon/ringwm/internal/geom"
)

// ErrNoRandR is returned by Conn.Outputs when the server lacks RandR. The
// manager then treats the root window as the only screen.
var ErrNoRandR = errors.New("randr extension not available")

// Conn is the display connection as seen by the manager. Queries report
// failure through ok or error; requests are fire and forget and any error
// they cause is logged by the implementation.
type Conn interface {
	// Screen returns the root window geometry.
	Screen() geom.Rect
	Outputs() ([]Output, error)
	WindowInfo(w Window) (WindowInfo, error)
	// Pointer returns the pointer position in root coordinates.
	Pointer() (x, y int, ok bool)
	// PointerIn returns the pointer position relative to w.
	PointerIn(w Window) (x, y int, ok bool)
	// PointerChild returns the top-level window under the pointer, or 0.
	PointerChild() Window
	TopLevels() ([]Toplevel, error)
	// Desktop returns the persisted _NET_WM_DESKTOP value of w.
	Desktop(w Window) (uint32, bool)
	Unkillable(w Window) bool
	Protocols(w Window) []string
	// KeyMatch reports whether a key event matches a binding string such as
	// "Mod4-Tab". state has the lock modifiers already removed.
	KeyMatch(keys string, state uint16, code byte) bool
	// ButtonMatch is KeyMatch for pointer buttons ("Mod4-1").
	ButtonMatch(button string, state uint16, detail byte) bool

	Map(w Window)
	Unmap(w Window)
	Move(w Window, x, y int)
	Resize(w Window, width, height int)
	MoveResize(w Window, r geom.Rect)
	// Configure forwards a configure request. The border width is never
	// passed on.
	Configure(req ConfigureRequest)
	Restack(w Window, mode StackMode)
	Circulate(w Window, place Place)
	SetBorderWidth(w Window, width int)
	PaintBorder(w Window, depth uint8, size geom.Rect, style BorderStyle)
	// Prepare subscribes w to enter events, sets its background and adds
	// it to the save set.
	Prepare(w Window, background uint32)
	// Focus moves the input focus to w, or to PointerRoot when w is 0.
	Focus(w Window)
	SetActive(w Window)
	SetDesktop(w Window, desktop uint32)
	SetCurrentDesktop(n int)
	SetClientList(ws []Window)
	SetWMState(w Window, state WMState)
	SetNetState(w Window, states []string)
	SetUnkillable(w Window, on bool)
	// Warp moves the pointer to x, y relative to w.
	Warp(w Window, x, y int)
	WarpRelative(dx, dy int)
	GrabKeys(keys []string)
	// GrabButtons grabs the given bindings on w and releases the plain
	// button 1 grab set up by GrabFocusClick.
	GrabButtons(w Window, buttons []string)
	GrabFocusClick(w Window)
	GrabPointer(c Cursor) bool
	UngrabPointer()
	// ShowOutline draws the resize preview frame at r, creating or moving
	// it as needed.
	ShowOutline(r geom.Rect, border int, color uint32)
	HideOutline()
	// Close asks w to close itself with WM_DELETE_WINDOW.
	Close(w Window)
	Kill(w Window)
	RefreshKeyboard()
}
