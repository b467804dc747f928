package wm

// border returns the border width in effect for c.
func (s *State) border(c *Client) int {
	if c.IgnoreBorders {
		return 0
	}
	return s.opts.BorderWidth
}

// borderStyle picks the ring colors for c. The outer ring shows the fixed
// and unkillable flags; the inner ring shows focus.
func (s *State) borderStyle(c *Client, focused bool) BorderStyle {
	colors := s.opts.Colors

	outer := colors.Outer
	switch {
	case c.Fixed && c.Unkillable:
		outer = colors.FixedUnkillable
	case c.Fixed:
		outer = colors.Fixed
	case c.Unkillable:
		outer = colors.Unkillable
	}

	inner := colors.Unfocus
	if focused {
		inner = colors.Focus
	}

	inverted := s.opts.InvertedColors
	if s.top != 0 && c.ID == s.top {
		inverted = !inverted
	}

	return BorderStyle{
		Width:      s.opts.BorderWidth,
		Outer:      s.opts.OuterBorder,
		Inverted:   inverted,
		OuterColor: outer,
		InnerColor: inner,
	}
}

// setBorders restores the border width of c and repaints it. Maximized and
// borderless clients are skipped.
func (s *State) setBorders(c *Client, focused bool) {
	if c.Maxed || c.IgnoreBorders {
		return
	}
	s.conn.SetBorderWidth(c.ID, s.opts.BorderWidth)
	s.conn.PaintBorder(c.ID, c.Depth, c.Rect, s.borderStyle(c, focused))
}
