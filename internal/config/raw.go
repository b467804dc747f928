package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	out, err := stringOrList(value, "include")
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// KeyList is the set of key sequences bound to one action. A single string
// and a list of strings are both accepted; an empty list unbinds the action.
type KeyList []string

func (l *KeyList) UnmarshalYAML(value *yaml.Node) error {
	out, err := stringOrList(value, "key binding")
	if err != nil {
		return err
	}
	if out == nil {
		out = KeyList{}
	}
	*l = out
	return nil
}

func (l KeyList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

func stringOrList(value *yaml.Node, what string) ([]string, error) {
	switch value.Kind {
	case 0:
		// Not present.
		return nil, nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return nil, fmt.Errorf("%s must be a string or list of strings", what)
		}
		return []string{value.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return nil, fmt.Errorf("%s entries must be strings", what)
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or list of strings", what)
	}
}

type RawOffsets struct {
	X      *int `yaml:"x"`
	Y      *int `yaml:"y"`
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawMovements struct {
	Slow      *int `yaml:"slow"`
	Fast      *int `yaml:"fast"`
	MouseSlow *int `yaml:"mouse_slow"`
	MouseFast *int `yaml:"mouse_fast"`
}

type RawColors struct {
	Focus           *string `yaml:"focus"`
	Unfocus         *string `yaml:"unfocus"`
	Fixed           *string `yaml:"fixed"`
	Unkillable      *string `yaml:"unkillable"`
	FixedUnkillable *string `yaml:"fixed_unkillable"`
	Outer           *string `yaml:"outer"`
	Empty           *string `yaml:"empty"`
}

// RawConfig is one YAML file as written: unset fields stay nil so that
// includes and overlays only replace what they mention.
type RawConfig struct {
	Include               IncludeList        `yaml:"include"`
	BorderWidth           *int               `yaml:"border_width"`
	OuterBorder           *int               `yaml:"outer_border"`
	SnapDistance          *int               `yaml:"snap_distance"`
	ResizeBorder          *int               `yaml:"resize_border"`
	Offsets               *RawOffsets        `yaml:"offsets"`
	Movements             *RawMovements      `yaml:"movements"`
	ResizeKeepAspectRatio *float64           `yaml:"resize_keep_aspect_ratio"`
	ResizeByLine          *bool              `yaml:"resize_by_line"`
	InvertedColors        *bool              `yaml:"inverted_colors"`
	SloppyFocus           *bool              `yaml:"sloppy_focus"`
	FocusCycleSkipIconic  *bool              `yaml:"focus_cycle_skip_iconic"`
	CursorPosition        *string            `yaml:"cursor_position"`
	IgnoreNames           *[]string          `yaml:"ignore_names"`
	Colors                *RawColors         `yaml:"colors"`
	Keys                  map[string]KeyList `yaml:"keys"`
	Buttons               *[]ButtonBinding   `yaml:"buttons"`
	LogLevel              *string            `yaml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.BorderWidth != nil {
		out.BorderWidth = overlay.BorderWidth
	}
	if overlay.OuterBorder != nil {
		out.OuterBorder = overlay.OuterBorder
	}
	if overlay.SnapDistance != nil {
		out.SnapDistance = overlay.SnapDistance
	}
	if overlay.ResizeBorder != nil {
		out.ResizeBorder = overlay.ResizeBorder
	}
	if overlay.Offsets != nil {
		if out.Offsets == nil {
			out.Offsets = &RawOffsets{}
		}
		merged := mergeRawOffsets(*out.Offsets, *overlay.Offsets)
		out.Offsets = &merged
	}
	if overlay.Movements != nil {
		if out.Movements == nil {
			out.Movements = &RawMovements{}
		}
		merged := mergeRawMovements(*out.Movements, *overlay.Movements)
		out.Movements = &merged
	}
	if overlay.ResizeKeepAspectRatio != nil {
		out.ResizeKeepAspectRatio = overlay.ResizeKeepAspectRatio
	}
	if overlay.ResizeByLine != nil {
		out.ResizeByLine = overlay.ResizeByLine
	}
	if overlay.InvertedColors != nil {
		out.InvertedColors = overlay.InvertedColors
	}
	if overlay.SloppyFocus != nil {
		out.SloppyFocus = overlay.SloppyFocus
	}
	if overlay.FocusCycleSkipIconic != nil {
		out.FocusCycleSkipIconic = overlay.FocusCycleSkipIconic
	}
	if overlay.CursorPosition != nil {
		out.CursorPosition = overlay.CursorPosition
	}
	if overlay.IgnoreNames != nil {
		out.IgnoreNames = overlay.IgnoreNames
	}
	if overlay.Colors != nil {
		if out.Colors == nil {
			out.Colors = &RawColors{}
		}
		merged := mergeRawColors(*out.Colors, *overlay.Colors)
		out.Colors = &merged
	}

	// Key bindings merge per action so an include can rebind one action
	// without restating the rest.
	if overlay.Keys != nil {
		keys := make(map[string]KeyList, len(out.Keys)+len(overlay.Keys))
		for action, seqs := range out.Keys {
			keys[action] = seqs
		}
		for action, seqs := range overlay.Keys {
			keys[action] = seqs
		}
		out.Keys = keys
	}

	if overlay.Buttons != nil {
		out.Buttons = overlay.Buttons
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}

func mergeRawOffsets(base RawOffsets, overlay RawOffsets) RawOffsets {
	out := base
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return out
}

func mergeRawMovements(base RawMovements, overlay RawMovements) RawMovements {
	out := base
	if overlay.Slow != nil {
		out.Slow = overlay.Slow
	}
	if overlay.Fast != nil {
		out.Fast = overlay.Fast
	}
	if overlay.MouseSlow != nil {
		out.MouseSlow = overlay.MouseSlow
	}
	if overlay.MouseFast != nil {
		out.MouseFast = overlay.MouseFast
	}
	return out
}

func mergeRawColors(base RawColors, overlay RawColors) RawColors {
	out := base
	if overlay.Focus != nil {
		out.Focus = overlay.Focus
	}
	if overlay.Unfocus != nil {
		out.Unfocus = overlay.Unfocus
	}
	if overlay.Fixed != nil {
		out.Fixed = overlay.Fixed
	}
	if overlay.Unkillable != nil {
		out.Unkillable = overlay.Unkillable
	}
	if overlay.FixedUnkillable != nil {
		out.FixedUnkillable = overlay.FixedUnkillable
	}
	if overlay.Outer != nil {
		out.Outer = overlay.Outer
	}
	if overlay.Empty != nil {
		out.Empty = overlay.Empty
	}
	return out
}
