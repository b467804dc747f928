package wm

import (
	"github.com/1broseidon/ringwm/internal/geom"
)

// Workspaces is the number of virtual desktops.
const Workspaces = 10

// NoWorkspace marks a client that has not been put on a workspace yet.
const NoWorkspace = -1

// Values stored in _NET_WM_DESKTOP besides a workspace index.
const (
	// DesktopFixed means the window is visible on every workspace.
	DesktopFixed uint32 = 0xffffffff
	// DesktopNone means the window carried no workspace hint.
	DesktopNone uint32 = 0xfffffffe
)

// Window is an X window id.
type Window uint32

// MonitorID identifies a RandR output. Zero means no monitor.
type MonitorID uint32

// Client is everything the manager knows about a top-level window.
type Client struct {
	ID Window
	geom.Window

	Depth uint8

	// UserCoord is set when the position came from the user or from a
	// transient parent and must not be replaced by pointer placement.
	UserCoord     bool
	Fixed         bool
	Unkillable    bool
	IgnoreBorders bool
	Iconic        bool

	// Workspace is the index of the list holding the client, or NoWorkspace.
	Workspace int
	// Monitor is a handle resolved through State.Monitor.
	Monitor MonitorID
}

// Monitor is one physical output.
type Monitor struct {
	ID   MonitorID
	Name string
	geom.Rect
}

// Output is a RandR output as reported by the connection. Connected is false
// when the output has no CRTC driving it.
type Output struct {
	ID        MonitorID
	Name      string
	Connected bool
	geom.Rect
}

// WindowInfo is what the connection reports about a window about to be
// managed. Zero hint fields mean the hint was not set.
type WindowInfo struct {
	Rect         geom.Rect
	Depth        uint8
	Name         string
	Types        []string
	Hints        geom.Hints
	UserPosition bool
	TransientFor Window
}

// Toplevel is a child of the root window, in stacking order.
type Toplevel struct {
	ID               Window
	Viewable         bool
	OverrideRedirect bool
}

// BorderStyle describes the two rings painted into a window border.
type BorderStyle struct {
	Width int
	// Outer is the thickness of the outer ring.
	Outer int
	// Inverted swaps the rings the two colors are painted into.
	Inverted   bool
	OuterColor uint32
	InnerColor uint32
}

// StackMode mirrors the X stack modes.
type StackMode uint8

const (
	StackAbove StackMode = iota
	StackBelow
	StackTopIf
	StackBottomIf
	StackOpposite
)

// Place is the target of a circulate request.
type Place uint8

const (
	PlaceOnTop Place = iota
	PlaceOnBottom
)

// Cursor selects the pointer shape used while a pointer grab is active.
type Cursor int

const (
	CursorMove Cursor = iota
	CursorResize
)

// WMState is the ICCCM WM_STATE value.
type WMState uint32

const (
	StateWithdrawn WMState = 0
	StateNormal    WMState = 1
	StateIconic    WMState = 3
)

// ConfigMask mirrors the X configure-window value mask.
type ConfigMask uint16

const (
	ConfigX ConfigMask = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)
