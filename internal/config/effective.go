package config

import (
	"fmt"
	"maps"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes every validation error match ErrInvalid.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// BuildEffectiveConfig overlays a merged raw config onto the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.BorderWidth != nil {
		cfg.BorderWidth = *raw.BorderWidth
	}
	if raw.OuterBorder != nil {
		cfg.OuterBorder = *raw.OuterBorder
	}
	if raw.SnapDistance != nil {
		cfg.SnapDistance = *raw.SnapDistance
	}
	if raw.ResizeBorder != nil {
		cfg.ResizeBorder = *raw.ResizeBorder
	}
	if raw.Offsets != nil {
		if raw.Offsets.X != nil {
			cfg.Offsets.X = *raw.Offsets.X
		}
		if raw.Offsets.Y != nil {
			cfg.Offsets.Y = *raw.Offsets.Y
		}
		if raw.Offsets.Width != nil {
			cfg.Offsets.Width = *raw.Offsets.Width
		}
		if raw.Offsets.Height != nil {
			cfg.Offsets.Height = *raw.Offsets.Height
		}
	}
	if raw.Movements != nil {
		if raw.Movements.Slow != nil {
			cfg.Movements.Slow = *raw.Movements.Slow
		}
		if raw.Movements.Fast != nil {
			cfg.Movements.Fast = *raw.Movements.Fast
		}
		if raw.Movements.MouseSlow != nil {
			cfg.Movements.MouseSlow = *raw.Movements.MouseSlow
		}
		if raw.Movements.MouseFast != nil {
			cfg.Movements.MouseFast = *raw.Movements.MouseFast
		}
	}
	if raw.ResizeKeepAspectRatio != nil {
		cfg.ResizeKeepAspectRatio = *raw.ResizeKeepAspectRatio
	}
	if raw.ResizeByLine != nil {
		cfg.ResizeByLine = *raw.ResizeByLine
	}
	if raw.InvertedColors != nil {
		cfg.InvertedColors = *raw.InvertedColors
	}
	if raw.SloppyFocus != nil {
		cfg.SloppyFocus = *raw.SloppyFocus
	}
	if raw.FocusCycleSkipIconic != nil {
		cfg.FocusCycleSkipIconic = *raw.FocusCycleSkipIconic
	}
	if raw.CursorPosition != nil {
		cfg.CursorPosition = *raw.CursorPosition
	}
	if raw.IgnoreNames != nil {
		cfg.IgnoreNames = append([]string(nil), (*raw.IgnoreNames)...)
	}
	if raw.Colors != nil {
		applyColor(&cfg.Colors.Focus, raw.Colors.Focus)
		applyColor(&cfg.Colors.Unfocus, raw.Colors.Unfocus)
		applyColor(&cfg.Colors.Fixed, raw.Colors.Fixed)
		applyColor(&cfg.Colors.Unkillable, raw.Colors.Unkillable)
		applyColor(&cfg.Colors.FixedUnkillable, raw.Colors.FixedUnkillable)
		applyColor(&cfg.Colors.Outer, raw.Colors.Outer)
		applyColor(&cfg.Colors.Empty, raw.Colors.Empty)
	}

	// Keys overlay the defaults per action. An empty list removes the
	// default binding.
	if raw.Keys != nil {
		keys := maps.Clone(cfg.Keys)
		for action, seqs := range raw.Keys {
			if len(seqs) == 0 {
				delete(keys, action)
				continue
			}
			keys[action] = append(KeyList(nil), seqs...)
		}
		cfg.Keys = keys
	}

	if raw.Buttons != nil {
		cfg.Buttons = append([]ButtonBinding(nil), (*raw.Buttons)...)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg
}

func applyColor(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
