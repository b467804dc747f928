package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/ringwm/internal/geom"
	"github.com/1broseidon/ringwm/internal/wm"
)

// ErrInvalid is matched by every validation error.
var ErrInvalid = errors.New("invalid configuration")

type Offsets struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Movements struct {
	Slow      int `yaml:"slow"`
	Fast      int `yaml:"fast"`
	MouseSlow int `yaml:"mouse_slow"`
	MouseFast int `yaml:"mouse_fast"`
}

// Colors are hex strings such as "#35586c".
type Colors struct {
	Focus           string `yaml:"focus"`
	Unfocus         string `yaml:"unfocus"`
	Fixed           string `yaml:"fixed"`
	Unkillable      string `yaml:"unkillable"`
	FixedUnkillable string `yaml:"fixed_unkillable"`
	Outer           string `yaml:"outer"`
	Empty           string `yaml:"empty"`
}

type ButtonBinding struct {
	Button   string `yaml:"button"`
	Action   string `yaml:"action"`
	RootOnly bool   `yaml:"root_only,omitempty"`
}

// Cursor positions accepted by cursor_position.
const (
	CursorMiddle      = "middle"
	CursorTopLeft     = "top_left"
	CursorTopRight    = "top_right"
	CursorBottomLeft  = "bottom_left"
	CursorBottomRight = "bottom_right"
)

var cursorPositions = map[string]wm.CursorPosition{
	CursorMiddle:      wm.CursorMiddle,
	CursorTopLeft:     wm.CursorTopLeft,
	CursorTopRight:    wm.CursorTopRight,
	CursorBottomLeft:  wm.CursorBottomLeft,
	CursorBottomRight: wm.CursorBottomRight,
}

// CursorPositions lists the accepted cursor_position values.
func CursorPositions() []string {
	return []string{CursorMiddle, CursorTopLeft, CursorTopRight, CursorBottomLeft, CursorBottomRight}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the effective configuration.
type Config struct {
	BorderWidth  int `yaml:"border_width"`
	OuterBorder  int `yaml:"outer_border"`
	SnapDistance int `yaml:"snap_distance"`
	// ResizeBorder is kept for config compatibility; the core resizes from
	// the bottom-right corner only.
	ResizeBorder          int                `yaml:"resize_border"`
	Offsets               Offsets            `yaml:"offsets"`
	Movements             Movements          `yaml:"movements"`
	ResizeKeepAspectRatio float64            `yaml:"resize_keep_aspect_ratio"`
	ResizeByLine          bool               `yaml:"resize_by_line"`
	InvertedColors        bool               `yaml:"inverted_colors"`
	SloppyFocus           bool               `yaml:"sloppy_focus"`
	FocusCycleSkipIconic  bool               `yaml:"focus_cycle_skip_iconic"`
	CursorPosition        string             `yaml:"cursor_position"`
	IgnoreNames           []string           `yaml:"ignore_names"`
	Colors                Colors             `yaml:"colors"`
	Keys                  map[string]KeyList `yaml:"keys"`
	Buttons               []ButtonBinding    `yaml:"buttons"`
	LogLevel              string             `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		BorderWidth:  5,
		OuterBorder:  3,
		SnapDistance: 5,
		ResizeBorder: 4,
		Movements: Movements{
			Slow:      20,
			Fast:      40,
			MouseSlow: 15,
			MouseFast: 400,
		},
		ResizeKeepAspectRatio: 1.03,
		InvertedColors:        true,
		SloppyFocus:           true,
		CursorPosition:        CursorMiddle,
		IgnoreNames:           []string{"bar"},
		Colors: Colors{
			Focus:           "#35586c",
			Unfocus:         "#333333",
			Fixed:           "#7a8c5c",
			Unkillable:      "#ff6666",
			FixedUnkillable: "#cc9933",
			Outer:           "#0d131a",
			Empty:           "#000000",
		},
		Keys: defaultKeys(),
		Buttons: []ButtonBinding{
			{Button: "Mod4-1", Action: "move"},
			{Button: "Mod4-3", Action: "resize"},
		},
		LogLevel: "info",
	}
}

func defaultKeys() map[string]KeyList {
	keys := map[string]KeyList{
		"focus_next":     {"Mod4-Tab"},
		"focus_prev":     {"Mod4-Shift-Tab"},
		"close":          {"Mod4-q"},
		"maximize":       {"Mod4-x"},
		"fullscreen":     {"Mod4-Shift-x"},
		"max_vertical":   {"Mod4-m"},
		"max_horizontal": {"Mod4-Shift-m"},
		"raise_or_lower": {"Mod4-r"},
		"fix":            {"Mod4-f"},
		"unkillable":     {"Mod4-a"},
		"always_on_top":  {"Mod4-t"},
		"hide":           {"Mod4-i"},

		"move_left":       {"Mod4-h"},
		"move_down":       {"Mod4-j"},
		"move_up":         {"Mod4-k"},
		"move_right":      {"Mod4-l"},
		"move_left_slow":  {"Mod4-Shift-h"},
		"move_down_slow":  {"Mod4-Shift-j"},
		"move_up_slow":    {"Mod4-Shift-k"},
		"move_right_slow": {"Mod4-Shift-l"},

		"resize_shrink_width":       {"Mod4-Control-h"},
		"resize_grow_height":        {"Mod4-Control-j"},
		"resize_shrink_height":      {"Mod4-Control-k"},
		"resize_grow_width":         {"Mod4-Control-l"},
		"resize_shrink_width_slow":  {"Mod4-Control-Shift-h"},
		"resize_grow_height_slow":   {"Mod4-Control-Shift-j"},
		"resize_shrink_height_slow": {"Mod4-Control-Shift-k"},
		"resize_grow_width_slow":    {"Mod4-Control-Shift-l"},
		"resize_aspect_grow":        {"Mod4-equal"},
		"resize_aspect_shrink":      {"Mod4-minus"},

		"cursor_left":       {"Mod4-Left"},
		"cursor_down":       {"Mod4-Down"},
		"cursor_up":         {"Mod4-Up"},
		"cursor_right":      {"Mod4-Right"},
		"cursor_left_slow":  {"Mod4-Shift-Left"},
		"cursor_down_slow":  {"Mod4-Shift-Down"},
		"cursor_up_slow":    {"Mod4-Shift-Up"},
		"cursor_right_slow": {"Mod4-Shift-Right"},

		"teleport_center":       {"Mod4-g"},
		"teleport_top_left":     {"Mod4-y"},
		"teleport_top_right":    {"Mod4-u"},
		"teleport_bottom_left":  {"Mod4-b"},
		"teleport_bottom_right": {"Mod4-n"},

		"half_left":   {"Mod4-Mod1-h"},
		"half_bottom": {"Mod4-Mod1-j"},
		"half_top":    {"Mod4-Mod1-k"},
		"half_right":  {"Mod4-Mod1-l"},

		"workspace_next": {"Mod4-v"},
		"workspace_prev": {"Mod4-c"},
		"send_next":      {"Mod4-Shift-v"},
		"send_prev":      {"Mod4-Shift-c"},
		"monitor_next":   {"Mod4-period"},
		"monitor_prev":   {"Mod4-comma"},

		"restart": {"Mod4-Control-r"},
		"exit":    {"Mod4-Escape"},
	}

	// Mod4-1 .. Mod4-9 then Mod4-0 select workspaces 0 .. 9.
	digits := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}
	for i, d := range digits {
		keys[fmt.Sprintf("workspace_%d", i)] = KeyList{"Mod4-" + d}
		keys[fmt.Sprintf("send_%d", i)] = KeyList{"Mod4-Shift-" + d}
	}
	return keys
}

// Level returns the slog level for log_level.
func (c *Config) Level() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Options converts the configuration into manager options. Key bindings are
// ordered by action name so grabs happen in a stable order.
func (c *Config) Options(log *slog.Logger) (wm.Options, error) {
	colors, err := c.Colors.pixels()
	if err != nil {
		return wm.Options{}, err
	}

	opts := wm.Options{
		Logger:       log,
		BorderWidth:  c.BorderWidth,
		OuterBorder:  c.OuterBorder,
		SnapDistance: c.SnapDistance,
		Offsets: geom.Offsets{
			X:      c.Offsets.X,
			Y:      c.Offsets.Y,
			Width:  c.Offsets.Width,
			Height: c.Offsets.Height,
		},
		Movements: wm.Movements{
			Slow:      c.Movements.Slow,
			Fast:      c.Movements.Fast,
			MouseSlow: c.Movements.MouseSlow,
			MouseFast: c.Movements.MouseFast,
		},
		AspectRatio:          c.ResizeKeepAspectRatio,
		ResizeByLine:         c.ResizeByLine,
		InvertedColors:       c.InvertedColors,
		SloppyFocus:          c.SloppyFocus,
		FocusCycleSkipIconic: c.FocusCycleSkipIconic,
		CursorPosition:       cursorPositions[c.CursorPosition],
		IgnoreNames:          append([]string(nil), c.IgnoreNames...),
		Colors:               colors,
	}

	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		for _, seq := range c.Keys[action] {
			opts.Keys = append(opts.Keys, wm.KeyBinding{Keys: seq, Action: action})
		}
	}

	for _, b := range c.Buttons {
		opts.Buttons = append(opts.Buttons, wm.ButtonBinding{
			Button:   b.Button,
			Action:   b.Action,
			RootOnly: b.RootOnly,
		})
	}
	return opts, nil
}

// Save writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration. All
// field errors are reported together.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf(format, args...)})
	}

	if c.BorderWidth < 0 {
		fail("border_width", "border_width must be >= 0")
	}
	if c.OuterBorder < 0 || c.OuterBorder > c.BorderWidth {
		fail("outer_border", "outer_border must be between 0 and border_width (%d)", c.BorderWidth)
	}
	if c.SnapDistance < 0 {
		fail("snap_distance", "snap_distance must be >= 0")
	}
	if c.ResizeBorder < 0 {
		fail("resize_border", "resize_border must be >= 0")
	}
	if c.Offsets.X < 0 || c.Offsets.Y < 0 || c.Offsets.Width < 0 || c.Offsets.Height < 0 {
		fail("offsets", "offsets values must be >= 0")
	}
	if c.Movements.Slow <= 0 || c.Movements.Fast <= 0 || c.Movements.MouseSlow <= 0 || c.Movements.MouseFast <= 0 {
		fail("movements", "movements values must be > 0")
	}
	if c.ResizeKeepAspectRatio <= 0 {
		fail("resize_keep_aspect_ratio", "resize_keep_aspect_ratio must be > 0")
	}
	if _, ok := cursorPositions[c.CursorPosition]; !ok {
		fail("cursor_position", "cursor_position must be one of: middle, top_left, top_right, bottom_left, bottom_right")
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		fail("log_level", "log_level must be one of: debug, info, warn, error")
	}

	for _, field := range c.Colors.fields() {
		if _, err := ParseColor(field.value); err != nil {
			fail("colors."+field.name, "%v", err)
		}
	}

	errs = append(errs, c.validateKeys()...)

	for i, b := range c.Buttons {
		path := fmt.Sprintf("buttons[%d]", i)
		if !validSequence(b.Button) {
			fail(path+".button", "invalid button sequence %q", b.Button)
		}
		if !wm.IsButtonAction(b.Action) {
			fail(path+".action", "unknown button action %q", b.Action)
		}
	}

	return errors.Join(errs...)
}

func (c *Config) validateKeys() []error {
	var errs []error

	actions := make([]string, 0, len(c.Keys))
	for action := range c.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	owner := make(map[string]string)
	for _, action := range actions {
		path := "keys." + action
		if !wm.IsAction(action) {
			errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf("unknown action %q", action)})
			continue
		}
		for _, seq := range c.Keys[action] {
			if !validSequence(seq) {
				errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf("invalid key sequence %q", seq)})
				continue
			}
			if prev, ok := owner[seq]; ok {
				errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf("%q is already bound to %s", seq, prev)})
				continue
			}
			owner[seq] = action
		}
	}
	return errs
}

// validSequence checks the shape of an xgbutil binding string such as
// "Mod4-Shift-Tab". Whether the key exists is only known once the keyboard
// mapping is loaded.
func validSequence(seq string) bool {
	if strings.TrimSpace(seq) != seq || seq == "" {
		return false
	}
	for _, part := range strings.Split(seq, "-") {
		if part == "" || strings.ContainsAny(part, " \t") {
			return false
		}
	}
	return true
}
