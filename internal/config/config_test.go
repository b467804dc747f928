package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/ringwm/internal/wm"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	for action := range cfg.Keys {
		if !wm.IsAction(action) {
			t.Fatalf("default key binding for unknown action %q", action)
		}
	}
	if got := cfg.Keys["workspace_0"]; len(got) != 1 || got[0] != "Mod4-1" {
		t.Fatalf("workspace_0 bound to %v, want Mod4-1", got)
	}
	if got := cfg.Keys["send_9"]; len(got) != 1 || got[0] != "Mod4-Shift-0" {
		t.Fatalf("send_9 bound to %v, want Mod4-Shift-0", got)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Exists {
		t.Fatalf("expected Exists=false for a missing file")
	}
	if res.Config.BorderWidth != DefaultConfig().BorderWidth {
		t.Fatalf("expected default border_width, got %d", res.Config.BorderWidth)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Exists {
		t.Fatalf("expected Exists=true")
	}
	if res.Config.CursorPosition != CursorMiddle {
		t.Fatalf("expected cursor_position %q, got %q", CursorMiddle, res.Config.CursorPosition)
	}
}

func TestLoadFromPath_OverridesNestedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"border_width: 8",
		"outer_border: 2",
		"movements:",
		"  fast: 60",
		"offsets:",
		"  y: 24",
		"  height: 24",
		"colors:",
		"  focus: \"#ff0000\"",
		"sloppy_focus: false",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.BorderWidth != 8 || cfg.OuterBorder != 2 {
		t.Fatalf("unexpected borders %d/%d", cfg.BorderWidth, cfg.OuterBorder)
	}
	if cfg.Movements.Fast != 60 || cfg.Movements.Slow != 20 {
		t.Fatalf("expected fast=60 and default slow=20, got %+v", cfg.Movements)
	}
	if cfg.Offsets.Y != 24 || cfg.Offsets.Height != 24 || cfg.Offsets.X != 0 {
		t.Fatalf("unexpected offsets %+v", cfg.Offsets)
	}
	if cfg.Colors.Focus != "#ff0000" || cfg.Colors.Unfocus != "#333333" {
		t.Fatalf("unexpected colors %+v", cfg.Colors)
	}
	if cfg.SloppyFocus {
		t.Fatalf("expected sloppy_focus=false")
	}
}

func TestLoadFromPath_KeysMergePerAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"keys:",
		"  focus_next: Mod1-Tab",
		"  close: [Mod4-q, Mod4-w]",
		"  hide: []",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	keys := res.Config.Keys
	if got := keys["focus_next"]; len(got) != 1 || got[0] != "Mod1-Tab" {
		t.Fatalf("focus_next = %v", got)
	}
	if got := keys["close"]; len(got) != 2 || got[1] != "Mod4-w" {
		t.Fatalf("close = %v", got)
	}
	if _, ok := keys["hide"]; ok {
		t.Fatalf("expected hide to be unbound")
	}
	if got := keys["focus_prev"]; len(got) != 1 || got[0] != "Mod4-Shift-Tab" {
		t.Fatalf("expected default focus_prev to survive, got %v", got)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "border_widht: 3\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown field to fail")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"border_width: 2",
		"snap_distance: -1",
		"cursor_position: nowhere",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{
		":2:16: snap_distance:",
		":3:18: cursor_position:",
		"outer_border:",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error, got:\n%s", want, msg)
		}
	}
}

func TestLoadFromPath_ButtonErrorsPointAtEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"buttons:",
		"  - button: Mod4-1",
		"    action: move",
		"  - button: Mod4-3",
		"    action: fly",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "buttons[1].action" || verr.Source.Line != 5 {
		t.Fatalf("unexpected error location %s line %d", verr.Path, verr.Source.Line)
	}
}

func TestValidate_DuplicateKeySequence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys["hide"] = KeyList{"Mod4-q"}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected duplicate binding to fail")
	}
	if !strings.Contains(err.Error(), `"Mod4-q" is already bound to close`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"unknown action", func(c *Config) { c.Keys["teleport"] = KeyList{"Mod4-z"} }, "keys.teleport"},
		{"bad sequence", func(c *Config) { c.Keys["hide"] = KeyList{"Mod4--i"} }, "keys.hide"},
		{"bad color", func(c *Config) { c.Colors.Outer = "blue" }, "colors.outer"},
		{"zero movement", func(c *Config) { c.Movements.MouseSlow = 0 }, "movements"},
		{"outer wider than border", func(c *Config) { c.OuterBorder = 9 }, "outer_border"},
		{"bad aspect", func(c *Config) { c.ResizeKeepAspectRatio = 0 }, "resize_keep_aspect_ratio"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestInclude_MergesAndMainFileWins(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "config.yaml")
	writeFile(t, filepath.Join(dir, "conf.d", "10-borders.yaml"), "border_width: 9\nouter_border: 4\n")
	writeFile(t, filepath.Join(dir, "conf.d", "20-snap.yaml"), "snap_distance: 12\n")
	writeFile(t, main, "include: conf.d\nouter_border: 1\n")

	res, err := LoadFromPath(main)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.BorderWidth != 9 || res.Config.OuterBorder != 1 || res.Config.SnapDistance != 12 {
		t.Fatalf("unexpected merge result %d/%d/%d", res.Config.BorderWidth, res.Config.OuterBorder, res.Config.SnapDistance)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
	if filepath.Base(res.Files[2]) != "config.yaml" {
		t.Fatalf("expected the main file to load last, got %v", res.Files)
	}

	_, src, err := Explain(res, "outer_border")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "config.yaml" {
		t.Fatalf("expected outer_border from config.yaml, got %+v", src)
	}
	_, src, err = Explain(res, "border_width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "10-borders.yaml" {
		t.Fatalf("expected border_width from 10-borders.yaml, got %+v", src)
	}
}

func TestInclude_CycleDetected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle detected") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestExplain_DefaultsAndIndexes(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	v, src, err := Explain(res, "movements.mouse_fast")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if v != 400 || src.Kind != SourceDefault {
		t.Fatalf("got %v from %v", v, src.Kind)
	}

	v, _, err = Explain(res, "buttons[1].action")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if v != "resize" {
		t.Fatalf("expected resize, got %v", v)
	}

	v, _, err = Explain(res, "keys.focus_next")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if v != "Mod4-Tab" {
		t.Fatalf("expected Mod4-Tab, got %v", v)
	}

	if _, _, err := Explain(res, "buttons[7]"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, _, err := Explain(res, "no_such_key"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestDefaultConfigPath_HonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if want := filepath.Join(dir, "ringwm", "config.yaml"); path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.BorderWidth = 7
	cfg.Keys["close"] = KeyList{"Mod4-q", "Mod4-w"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if res.Config.BorderWidth != 7 {
		t.Fatalf("expected border_width 7, got %d", res.Config.BorderWidth)
	}
	if got := res.Config.Keys["close"]; len(got) != 2 {
		t.Fatalf("expected two close bindings, got %v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"#35586c", 0x35586c},
		{"#000000", 0},
		{"#fff", 0xffffff},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseColor(%q) = %#06x, want %#06x", tt.in, got, tt.want)
		}
	}
	if _, err := ParseColor("35586c"); err == nil {
		t.Fatalf("expected a missing # to fail")
	}
}

func TestOptions_Conversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CursorPosition = CursorBottomRight
	cfg.Keys = map[string]KeyList{
		"hide":       {"Mod4-i"},
		"close":      {"Mod4-q", "Mod4-w"},
		"focus_next": {"Mod4-Tab"},
	}

	opts, err := cfg.Options(slog.Default())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.CursorPosition != wm.CursorBottomRight {
		t.Fatalf("unexpected cursor position %v", opts.CursorPosition)
	}
	if opts.Colors.Focus != 0x35586c || opts.Colors.Outer != 0x0d131a {
		t.Fatalf("unexpected colors %+v", opts.Colors)
	}
	if opts.AspectRatio != 1.03 {
		t.Fatalf("unexpected aspect ratio %v", opts.AspectRatio)
	}

	want := []wm.KeyBinding{
		{Keys: "Mod4-q", Action: "close"},
		{Keys: "Mod4-w", Action: "close"},
		{Keys: "Mod4-Tab", Action: "focus_next"},
		{Keys: "Mod4-i", Action: "hide"},
	}
	if len(opts.Keys) != len(want) {
		t.Fatalf("expected %d key bindings, got %v", len(want), opts.Keys)
	}
	for i := range want {
		if opts.Keys[i] != want[i] {
			t.Fatalf("binding %d = %+v, want %+v", i, opts.Keys[i], want[i])
		}
	}
	if len(opts.Buttons) != 2 || opts.Buttons[0].Action != "move" {
		t.Fatalf("unexpected buttons %+v", opts.Buttons)
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level() != slog.LevelInfo {
		t.Fatalf("expected info by default")
	}
	cfg.LogLevel = "debug"
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("expected debug")
	}
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "border_width: 5\n")

	w, err := NewWatcher([]string{path}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, filepath.Join(filepath.Dir(path), "other.txt"), "ignored\n")
	writeFile(t, path, "border_width: 6\n")

	select {
	case <-w.Updates:
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for a change notification")
	}
}
