package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/ringwm/internal/config"
)

// SettingsTab shows the general settings and edits them with a form.
type SettingsTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fBorderWidth    string
	fOuterBorder    string
	fSnapDistance   string
	fMoveSlow       string
	fMoveFast       string
	fCursorPosition string
	fSloppyFocus    bool
	fInverted       bool
	fSkipIconic     bool
	fFocusColor     string
	fUnfocusColor   string
	fLogLevel       string
}

func NewSettingsTab(cfg *config.Config) SettingsTab {
	return SettingsTab{cfg: cfg}
}

func (s SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" && s.cfg != nil {
			s.startEditing()
			return s, s.form.Init()
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}
	return s, nil
}

func (s SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.editing = false
			s.form = nil
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		s.applyForm()
		s.editing = false
		s.form = nil
		return s, nil
	}
	return s, cmd
}

func (s *SettingsTab) loadForm() {
	cfg := s.cfg
	s.fBorderWidth = strconv.Itoa(cfg.BorderWidth)
	s.fOuterBorder = strconv.Itoa(cfg.OuterBorder)
	s.fSnapDistance = strconv.Itoa(cfg.SnapDistance)
	s.fMoveSlow = strconv.Itoa(cfg.Movements.Slow)
	s.fMoveFast = strconv.Itoa(cfg.Movements.Fast)
	s.fCursorPosition = cfg.CursorPosition
	s.fSloppyFocus = cfg.SloppyFocus
	s.fInverted = cfg.InvertedColors
	s.fSkipIconic = cfg.FocusCycleSkipIconic
	s.fFocusColor = cfg.Colors.Focus
	s.fUnfocusColor = cfg.Colors.Unfocus
	s.fLogLevel = cfg.LogLevel
}

func (s *SettingsTab) startEditing() {
	s.loadForm()

	w := max(s.width-4, 40)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("border_width").
				Title("Border Width").
				Description("Total border width in pixels").
				Validate(nonNegative).
				Value(&s.fBorderWidth),
			huh.NewInput().
				Key("outer_border").
				Title("Outer Border").
				Description("Width of the outer ring, at most the border width").
				Validate(nonNegative).
				Value(&s.fOuterBorder),
			huh.NewInput().
				Key("snap_distance").
				Title("Snap Distance").
				Description("Pixels from a monitor edge at which moves snap").
				Validate(nonNegative).
				Value(&s.fSnapDistance),
			huh.NewInput().
				Key("movements.slow").
				Title("Keyboard Step (slow)").
				Validate(positive).
				Value(&s.fMoveSlow),
			huh.NewInput().
				Key("movements.fast").
				Title("Keyboard Step (fast)").
				Validate(positive).
				Value(&s.fMoveFast),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("sloppy_focus").
				Title("Sloppy Focus").
				Description("Focus follows the pointer").
				Value(&s.fSloppyFocus),
			huh.NewConfirm().
				Key("focus_cycle_skip_iconic").
				Title("Skip Hidden Windows").
				Description("Focus cycling ignores hidden windows").
				Value(&s.fSkipIconic),
			huh.NewSelect[string]().
				Key("cursor_position").
				Title("Cursor Position").
				Description("Where the pointer is warped when a window is focused from the keyboard").
				Options(huh.NewOptions(config.CursorPositions()...)...).
				Value(&s.fCursorPosition),
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&s.fLogLevel),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("inverted_colors").
				Title("Inverted Colors").
				Description("Paint the outer ring with the state color").
				Value(&s.fInverted),
			huh.NewInput().
				Key("colors.focus").
				Title("Focus Color").
				Validate(validColor).
				Value(&s.fFocusColor),
			huh.NewInput().
				Key("colors.unfocus").
				Title("Unfocus Color").
				Validate(validColor).
				Value(&s.fUnfocusColor),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	s.editing = true
}

func nonNegative(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return fmt.Errorf("must be a whole number >= 0")
	}
	return nil
}

func positive(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a whole number > 0")
	}
	return nil
}

func validColor(v string) error {
	_, err := config.ParseColor(strings.TrimSpace(v))
	return err
}

// applyForm copies the validated form values into the config.
func (s *SettingsTab) applyForm() {
	if s.cfg == nil {
		return
	}
	atoi := func(v string, dst *int) {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
	atoi(s.fBorderWidth, &s.cfg.BorderWidth)
	atoi(s.fOuterBorder, &s.cfg.OuterBorder)
	atoi(s.fSnapDistance, &s.cfg.SnapDistance)
	atoi(s.fMoveSlow, &s.cfg.Movements.Slow)
	atoi(s.fMoveFast, &s.cfg.Movements.Fast)
	s.cfg.OuterBorder = min(s.cfg.OuterBorder, s.cfg.BorderWidth)

	if s.fCursorPosition != "" {
		s.cfg.CursorPosition = s.fCursorPosition
	}
	if s.fLogLevel != "" {
		s.cfg.LogLevel = s.fLogLevel
	}
	s.cfg.SloppyFocus = s.fSloppyFocus
	s.cfg.InvertedColors = s.fInverted
	s.cfg.FocusCycleSkipIconic = s.fSkipIconic
	s.cfg.Colors.Focus = strings.TrimSpace(s.fFocusColor)
	s.cfg.Colors.Unfocus = strings.TrimSpace(s.fUnfocusColor)
}

func (s SettingsTab) View() string {
	if s.editing && s.form != nil {
		header := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Render("Editing Settings") +
			dimStyle.Render("  (esc to cancel)")
		return lipgloss.NewStyle().
			Width(s.width).
			Height(s.height).
			Padding(1, 2).
			Render(header + "\n\n" + s.form.View())
	}

	cfg := s.cfg
	if cfg == nil {
		return placeholder("No config loaded", s.width, s.height)
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(24).
		Align(lipgloss.Right).
		PaddingRight(2)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	swatch := func(hex string) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " " + hex
	}

	lines := []string{
		"",
		row("Border", fmt.Sprintf("%d (outer %d)", cfg.BorderWidth, cfg.OuterBorder)),
		row("Snap Distance", strconv.Itoa(cfg.SnapDistance)),
		row("Offsets", fmt.Sprintf("x:%d y:%d w:%d h:%d", cfg.Offsets.X, cfg.Offsets.Y, cfg.Offsets.Width, cfg.Offsets.Height)),
		row("Keyboard Steps", fmt.Sprintf("slow:%d fast:%d", cfg.Movements.Slow, cfg.Movements.Fast)),
		row("Pointer Steps", fmt.Sprintf("slow:%d fast:%d", cfg.Movements.MouseSlow, cfg.Movements.MouseFast)),
		row("Aspect Ratio Step", strconv.FormatFloat(cfg.ResizeKeepAspectRatio, 'g', -1, 64)),
		"",
		row("Sloppy Focus", strconv.FormatBool(cfg.SloppyFocus)),
		row("Skip Hidden Windows", strconv.FormatBool(cfg.FocusCycleSkipIconic)),
		row("Cursor Position", cfg.CursorPosition),
		row("Ignored Names", displayOrDefault(strings.Join(cfg.IgnoreNames, ", "), "(none)")),
		"",
		row("Inverted Colors", strconv.FormatBool(cfg.InvertedColors)),
		row("Focus", swatch(cfg.Colors.Focus)),
		row("Unfocus", swatch(cfg.Colors.Unfocus)),
		row("Fixed", swatch(cfg.Colors.Fixed)),
		row("Unkillable", swatch(cfg.Colors.Unkillable)),
		row("Outer", swatch(cfg.Colors.Outer)),
		"",
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings, ctrl-s to save"),
	}

	return lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}
