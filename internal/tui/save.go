package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/ringwm/internal/config"
)

type savePhase int

const (
	saveHidden  savePhase = iota
	savePreview           // showing diff, awaiting confirm
	saveResult            // showing outcome message
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

// saveTarget is where a confirmed save goes.
type saveTarget struct {
	cfg       *config.Config
	path      string
	daemon    Daemon
	connected bool
}

// SaveOverlay previews the pending config changes as a diff and writes them
// on confirmation.
type SaveOverlay struct {
	phase        savePhase
	diffLines    []diffLine
	err          error
	reloaded     bool
	scrollOffset int
}

func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show computes the diff and opens the preview.
func (s *SaveOverlay) Show(original, current *config.Config) {
	s.err = nil
	s.reloaded = false
	s.scrollOffset = 0

	lines := configDiff(original, current)
	if len(lines) == 0 {
		s.phase = saveResult
		s.err = fmt.Errorf("no changes to save")
		return
	}
	s.diffLines = lines
	s.phase = savePreview
}

// SaveSucceeded reports whether the last save completed without error.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

func (s SaveOverlay) Update(msg tea.KeyMsg, target saveTarget) SaveOverlay {
	switch s.phase {
	case savePreview:
		switch msg.String() {
		case "esc":
			s.phase = saveHidden
		case "enter", "y":
			s.err = s.save(target)
			s.phase = saveResult
		case "up", "k":
			s.scrollOffset = max(s.scrollOffset-1, 0)
		case "down", "j":
			s.scrollOffset++
		}
	case saveResult:
		s.phase = saveHidden
	}
	return s
}

func (s *SaveOverlay) save(target saveTarget) error {
	if target.cfg == nil || target.path == "" {
		return fmt.Errorf("no config file to save to")
	}
	if err := target.cfg.Save(target.path); err != nil {
		return err
	}
	if target.connected && target.daemon != nil {
		s.reloaded = target.daemon.Reload() == nil
	}
	return nil
}

func (s SaveOverlay) View(width, height int) string {
	switch s.phase {
	case savePreview:
		return s.viewPreview(width, height)
	case saveResult:
		return s.viewResult(width, height)
	}
	return ""
}

func boxed(content string, width, areaW, areaH int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width).
		Render(content)
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) viewPreview(areaW, areaH int) string {
	boxW := min(max(areaW-8, 30), 80)
	innerW := max(boxW-6, 10)
	visible := max(areaH-10, 3)

	off := min(s.scrollOffset, max(len(s.diffLines)-visible, 0))
	end := min(off+visible, len(s.diffLines))

	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ctxStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	rendered := make([]string, 0, end-off)
	for _, dl := range s.diffLines[off:end] {
		text := dl.text
		if len(text) > innerW-2 {
			text = text[:innerW-2]
		}
		switch dl.kind {
		case diffAdded:
			rendered = append(rendered, addStyle.Render("+ "+text))
		case diffRemoved:
			rendered = append(rendered, rmStyle.Render("- "+text))
		default:
			rendered = append(rendered, ctxStyle.Render("  "+text))
		}
	}

	content := titleStyle.Render("Save Config: Pending Changes") + "\n\n" +
		strings.Join(rendered, "\n") + "\n\n" +
		dimStyle.Render("enter: save  esc: cancel  j/k: scroll")
	return boxed(content, boxW, areaW, areaH)
}

func (s SaveOverlay) viewResult(areaW, areaH int) string {
	boxW := min(max(areaW-8, 30), 60)

	var msg string
	if s.err != nil {
		msg = errorStyle.Bold(true).Render("Error: " + s.err.Error())
	} else {
		msg = okStyle.Bold(true).Render("Config saved successfully")
		if s.reloaded {
			msg += "\n" + okStyle.Render("ringwm reloaded")
		}
	}
	return boxed(msg+"\n\n"+dimStyle.Render("press any key to dismiss"), boxW, areaW, areaH)
}

// configDiff diffs the YAML renderings of two configs, keeping two lines of
// context around each change.
func configDiff(original, current *config.Config) []diffLine {
	if original == nil || current == nil {
		return nil
	}
	a, err := yamlLines(original)
	if err != nil {
		return nil
	}
	b, err := yamlLines(current)
	if err != nil {
		return nil
	}
	if slices.Equal(a, b) {
		return nil
	}
	return trimContext(lineDiff(a, b), 2)
}

func yamlLines(cfg *config.Config) ([]string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n"), nil
}

// lineDiff returns the edit script turning a into b. common[i][j] holds the
// length of the longest common subsequence of a[i:] and b[j:].
func lineDiff(a, b []string) []diffLine {
	common := make([][]int, len(a)+1)
	for i := range common {
		common[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				common[i][j] = common[i+1][j+1] + 1
			} else {
				common[i][j] = max(common[i+1][j], common[i][j+1])
			}
		}
	}

	out := make([]diffLine, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			out = append(out, diffLine{diffContext, a[i]})
			i++
			j++
		case j == len(b) || (i < len(a) && common[i+1][j] >= common[i][j+1]):
			out = append(out, diffLine{diffRemoved, a[i]})
			i++
		default:
			out = append(out, diffLine{diffAdded, b[j]})
			j++
		}
	}
	return out
}

// trimContext drops unchanged lines further than ctx lines from a change and
// marks each gap with "...".
func trimContext(lines []diffLine, ctx int) []diffLine {
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.kind == diffContext {
			continue
		}
		changed = true
		for j := max(i-ctx, 0); j <= min(i+ctx, len(lines)-1); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return nil
	}

	var out []diffLine
	gap := false
	for i, l := range lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap && len(out) > 0 {
			out = append(out, diffLine{diffContext, "..."})
		}
		gap = false
		out = append(out, l)
	}
	return out
}

// cloneConfig deep-copies a config through YAML.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil
	}
	var clone config.Config
	if err := yaml.Unmarshal(data, &clone); err != nil {
		return nil
	}
	return &clone
}
