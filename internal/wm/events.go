package wm

// EventKind identifies the events the manager reacts to.
type EventKind int

const (
	KindMapRequest EventKind = iota
	KindDestroyNotify
	KindUnmapNotify
	KindConfigureRequest
	KindConfigureNotify
	KindCirculateRequest
	KindButtonPress
	KindButtonRelease
	KindMotionNotify
	KindKeyPress
	KindKeyRelease
	KindEnterNotify
	KindMappingNotify
	KindClientMessage
	KindScreenChange
)

var kindNames = map[EventKind]string{
	KindMapRequest:       "MapRequest",
	KindDestroyNotify:    "DestroyNotify",
	KindUnmapNotify:      "UnmapNotify",
	KindConfigureRequest: "ConfigureRequest",
	KindConfigureNotify:  "ConfigureNotify",
	KindCirculateRequest: "CirculateRequest",
	KindButtonPress:      "ButtonPress",
	KindButtonRelease:    "ButtonRelease",
	KindMotionNotify:     "MotionNotify",
	KindKeyPress:         "KeyPress",
	KindKeyRelease:       "KeyRelease",
	KindEnterNotify:      "EnterNotify",
	KindMappingNotify:    "MappingNotify",
	KindClientMessage:    "ClientMessage",
	KindScreenChange:     "ScreenChange",
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a display event translated into the manager's terms.
type Event interface {
	Kind() EventKind
}

type MapRequest struct {
	Window Window
}

type DestroyNotify struct {
	Window Window
}

type UnmapNotify struct {
	Window Window
}

// ConfigureRequest is a client asking for new geometry or stacking. Only
// the fields named in Mask are meaningful.
type ConfigureRequest struct {
	Window    Window
	Mask      ConfigMask
	X, Y      int
	Width     int
	Height    int
	Sibling   Window
	StackMode StackMode
}

// ConfigureNotify is only forwarded for the root window.
type ConfigureNotify struct {
	Window Window
	Root   bool
	Width  int
	Height int
}

type CirculateRequest struct {
	Window Window
	Place  Place
}

// ButtonPress carries the window the press was reported on. Root is set
// when the press landed on the bare root window. State has the lock
// modifiers removed.
type ButtonPress struct {
	Window       Window
	Root         bool
	Button       byte
	State        uint16
	RootX, RootY int
}

type ButtonRelease struct {
	Button       byte
	State        uint16
	RootX, RootY int
}

type MotionNotify struct {
	State        uint16
	RootX, RootY int
}

type KeyPress struct {
	Code         byte
	State        uint16
	RootX, RootY int
}

type KeyRelease struct {
	Code         byte
	State        uint16
	RootX, RootY int
}

// NotifyMode mirrors the crossing-event modes.
type NotifyMode uint8

const (
	NotifyNormal NotifyMode = iota
	NotifyGrab
	NotifyUngrab
	NotifyWhileGrabbed
)

type EnterNotify struct {
	Window Window
	Mode   NotifyMode
}

type MappingNotify struct{}

// MessageType is the recognised type of a client message.
type MessageType int

const (
	MsgUnknown MessageType = iota
	MsgActivate
	MsgChangeState
	MsgCurrentDesktop
	MsgWMState
	MsgWMDesktop
	MsgCloseWindow
)

// ClientMessage is an EWMH or ICCCM request sent to the root window. Atoms
// holds the names of data[1] and data[2] for _NET_WM_STATE messages.
type ClientMessage struct {
	Window Window
	Type   MessageType
	Data   [5]uint32
	Atoms  []string
}

// ScreenChange reports that the RandR output layout changed.
type ScreenChange struct{}

func (MapRequest) Kind() EventKind       { return KindMapRequest }
func (DestroyNotify) Kind() EventKind    { return KindDestroyNotify }
func (UnmapNotify) Kind() EventKind      { return KindUnmapNotify }
func (ConfigureRequest) Kind() EventKind { return KindConfigureRequest }
func (ConfigureNotify) Kind() EventKind  { return KindConfigureNotify }
func (CirculateRequest) Kind() EventKind { return KindCirculateRequest }
func (ButtonPress) Kind() EventKind      { return KindButtonPress }
func (ButtonRelease) Kind() EventKind    { return KindButtonRelease }
func (MotionNotify) Kind() EventKind     { return KindMotionNotify }
func (KeyPress) Kind() EventKind         { return KindKeyPress }
func (KeyRelease) Kind() EventKind       { return KindKeyRelease }
func (EnterNotify) Kind() EventKind      { return KindEnterNotify }
func (MappingNotify) Kind() EventKind    { return KindMappingNotify }
func (ClientMessage) Kind() EventKind    { return KindClientMessage }
func (ScreenChange) Kind() EventKind     { return KindScreenChange }
