package config

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/ringwm/internal/wm"
)

// ParseColor converts a "#rrggbb" or "#rgb" string into a 0xRRGGBB pixel.
func ParseColor(s string) (uint32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

type colorField struct {
	name  string
	value string
}

func (c Colors) fields() []colorField {
	return []colorField{
		{"focus", c.Focus},
		{"unfocus", c.Unfocus},
		{"fixed", c.Fixed},
		{"unkillable", c.Unkillable},
		{"fixed_unkillable", c.FixedUnkillable},
		{"outer", c.Outer},
		{"empty", c.Empty},
	}
}

func (c Colors) pixels() (wm.Colors, error) {
	var out wm.Colors
	targets := []*uint32{
		&out.Focus,
		&out.Unfocus,
		&out.Fixed,
		&out.Unkillable,
		&out.FixedUnkillable,
		&out.Outer,
		&out.Empty,
	}
	for i, field := range c.fields() {
		px, err := ParseColor(field.value)
		if err != nil {
			return wm.Colors{}, &ValidationError{Path: "colors." + field.name, Err: err}
		}
		*targets[i] = px
	}
	return out, nil
}
