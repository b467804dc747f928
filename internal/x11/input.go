package x11

import (
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/ringwm/internal/wm"
)

// modifierBits covers Shift, Lock, Control and Mod1 through Mod5. Button
// masks above it never take part in binding matches.
const modifierBits = 0xff

type keyBinding struct {
	mods  uint16
	codes []xproto.Keycode
	err   error
}

type buttonBinding struct {
	mods   uint16
	button xproto.Button
	err    error
}

// cleanMask strips the pointer buttons and the lock modifiers from an event
// state.
func cleanMask(state, locks uint16) uint16 {
	return state & modifierBits &^ locks
}

func (c *Connection) keyBinding(keys string) keyBinding {
	if b, ok := c.keys[keys]; ok {
		return b
	}
	mods, codes, err := keybind.ParseString(c.XUtil, keys)
	b := keyBinding{mods: mods, codes: codes, err: err}
	c.keys[keys] = b
	return b
}

func (c *Connection) buttonBinding(button string) buttonBinding {
	if b, ok := c.buttons[button]; ok {
		return b
	}
	mods, btn, err := mousebind.ParseString(c.XUtil, button)
	b := buttonBinding{mods: mods, button: btn, err: err}
	c.buttons[button] = b
	return b
}

// KeyMatch reports whether a key event matches a binding string such as
// "Mod4-Tab". state must already be cleaned.
func (c *Connection) KeyMatch(keys string, state uint16, code byte) bool {
	b := c.keyBinding(keys)
	if b.err != nil {
		return false
	}
	return b.mods == state && slices.Contains(b.codes, xproto.Keycode(code))
}

func (c *Connection) ButtonMatch(button string, state uint16, detail byte) bool {
	b := c.buttonBinding(button)
	if b.err != nil {
		return false
	}
	return b.mods == state && byte(b.button) == detail
}

// GrabKeys replaces every key grab on the root window.
func (c *Connection) GrabKeys(keys []string) {
	xproto.UngrabKey(c.XUtil.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny)
	for _, k := range keys {
		b := c.keyBinding(k)
		if b.err != nil {
			c.log.Warn("invalid key binding", "keys", k, "error", b.err)
			continue
		}
		for _, code := range b.codes {
			keybind.Grab(c.XUtil, c.Root, b.mods, code)
		}
	}
}

// GrabButtons replaces the button grabs on w, which also drops the plain
// click grab installed by GrabFocusClick.
func (c *Connection) GrabButtons(w wm.Window, buttons []string) {
	win := xproto.Window(w)
	xproto.UngrabButton(c.XUtil.Conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny)
	for _, s := range buttons {
		b := c.buttonBinding(s)
		if b.err != nil {
			c.log.Warn("invalid button binding", "button", s, "error", b.err)
			continue
		}
		mousebind.Grab(c.XUtil, win, b.mods, b.button, false)
	}
}

// GrabFocusClick grabs a plain button 1 press on w synchronously. The event
// reader replays the press to the client after the manager has seen it.
func (c *Connection) GrabFocusClick(w wm.Window) {
	mousebind.Grab(c.XUtil, xproto.Window(w), 0, 1, true)
}

func (c *Connection) GrabPointer(cur wm.Cursor) bool {
	ok, err := mousebind.GrabPointer(c.XUtil, c.Root, xproto.WindowNone, c.cursors[cur])
	if err != nil {
		c.log.Debug("pointer grab failed", "error", err)
		return false
	}
	return ok
}

func (c *Connection) UngrabPointer() {
	mousebind.UngrabPointer(c.XUtil)
}

// Warp moves the pointer to x, y relative to w.
func (c *Connection) Warp(w wm.Window, x, y int) {
	xproto.WarpPointer(c.XUtil.Conn(), xproto.WindowNone, xproto.Window(w),
		0, 0, 0, 0, int16(x), int16(y))
}

func (c *Connection) WarpRelative(dx, dy int) {
	xproto.WarpPointer(c.XUtil.Conn(), xproto.WindowNone, xproto.WindowNone,
		0, 0, 0, 0, int16(dx), int16(dy))
}

// RefreshKeyboard reloads the keyboard and modifier maps after a
// MappingNotify. The caller grabs the keys again.
func (c *Connection) RefreshKeyboard() {
	keyMap, modMap := keybind.MapsGet(c.XUtil)
	keybind.KeyMapSet(c.XUtil, keyMap)
	keybind.ModMapSet(c.XUtil, modMap)
	c.configureIgnoreMods()
	clear(c.keys)
	clear(c.buttons)
}

func (c *Connection) loadCursors() {
	shapes := map[wm.Cursor]uint16{
		wm.CursorMove:   xcursor.Fleur,
		wm.CursorResize: xcursor.Sizing,
	}
	for cur, shape := range shapes {
		id, err := xcursor.CreateCursor(c.XUtil, shape)
		if err != nil {
			c.log.Warn("failed to create cursor", "cursor", shape, "error", err)
			continue
		}
		c.cursors[cur] = id
	}
}

// configureIgnoreMods makes grabs and matches insensitive to CapsLock,
// NumLock and ScrollLock in every combination.
func (c *Connection) configureIgnoreMods() {
	caps := uint16(xproto.ModMaskLock)
	numLock := c.modMaskForKeysym("Num_Lock")
	scrollLock := c.modMaskForKeysym("Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = lockCombinations(base)

	var locks uint16
	for _, m := range base {
		locks |= m
	}
	c.locks.Store(uint32(locks))
}

// lockCombinations returns every subset of the given lock masks OR-ed
// together, starting with 0.
func lockCombinations(base []uint16) []uint16 {
	combos := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		combos = append(combos, mask)
	}
	return combos
}

func (c *Connection) modMaskForKeysym(keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(c.XUtil, keysym) {
		if mask := keybind.ModGet(c.XUtil, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
