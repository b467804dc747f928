package wm

import (
	"log/slog"

	"github.com/1broseidon/ringwm/internal/geom"
)

// CursorPosition is where the pointer is warped inside a window after focus
// moves to it.
type CursorPosition int

const (
	CursorMiddle CursorPosition = iota
	CursorTopLeft
	CursorTopRight
	CursorBottomLeft
	CursorBottomRight
)

// Movements are the step sizes in pixels for keyboard moves and pointer
// warps.
type Movements struct {
	Slow      int
	Fast      int
	MouseSlow int
	MouseFast int
}

// Colors are 0xRRGGBB pixel values.
type Colors struct {
	Focus           uint32
	Unfocus         uint32
	Fixed           uint32
	Unkillable      uint32
	FixedUnkillable uint32
	Outer           uint32
	Empty           uint32
}

// KeyBinding maps a key sequence such as "Mod4-Shift-Tab" to an action.
type KeyBinding struct {
	Keys   string
	Action string
}

// ButtonBinding maps a pointer button sequence such as "Mod4-1" to an
// action. RootOnly bindings fire only on the bare root window.
type ButtonBinding struct {
	Button   string
	Action   string
	RootOnly bool
}

// Options configure the manager.
type Options struct {
	Logger *slog.Logger

	BorderWidth  int
	OuterBorder  int
	SnapDistance int
	Offsets      geom.Offsets
	Movements    Movements
	// AspectRatio is the factor used by the aspect-keeping resize.
	AspectRatio    float64
	ResizeByLine   bool
	InvertedColors bool
	SloppyFocus    bool
	// FocusCycleSkipIconic makes focus cycling pass over hidden clients.
	FocusCycleSkipIconic bool
	CursorPosition       CursorPosition
	// IgnoreNames are WM_NAME substrings of windows drawn without a border.
	IgnoreNames []string
	Colors      Colors

	Keys    []KeyBinding
	Buttons []ButtonBinding
}

func (o Options) keySequences() []string {
	keys := make([]string, 0, len(o.Keys))
	for _, k := range o.Keys {
		keys = append(keys, k.Keys)
	}
	return keys
}

// windowButtons returns the bindings grabbed on a focused client.
func (o Options) windowButtons() []string {
	var buttons []string
	for _, b := range o.Buttons {
		if !b.RootOnly {
			buttons = append(buttons, b.Button)
		}
	}
	return buttons
}
