package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/ringwm/internal/wm"
)

var (
	currentCell = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Width(7).
			Align(lipgloss.Center)

	busyCell = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("238")).
			Width(7).
			Align(lipgloss.Center)

	emptyCell = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Width(7).
			Align(lipgloss.Center)
)

// OverviewTab shows the workspaces, the monitors and the daemon status.
type OverviewTab struct {
	daemon Daemon
	snap   snapshot

	width  int
	height int
}

func NewOverviewTab(daemon Daemon) OverviewTab {
	return OverviewTab{daemon: daemon}
}

func (o *OverviewTab) SetSnapshot(snap snapshot) {
	o.snap = snap
}

func (o OverviewTab) Update(msg tea.Msg) (OverviewTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height
	case tea.KeyMsg:
		key := msg.String()
		if ws, ok := workspaceKey(key); ok {
			return o, o.switchWorkspace(ws)
		}
		if key == "r" {
			return o, o.reload()
		}
	}
	return o, nil
}

func (o OverviewTab) switchWorkspace(ws int) tea.Cmd {
	d := o.daemon
	return func() tea.Msg {
		if err := d.SwitchWorkspace(ws); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: fmt.Sprintf("workspace %d", ws)}
	}
}

func (o OverviewTab) reload() tea.Cmd {
	d := o.daemon
	return func() tea.Msg {
		if err := d.Reload(); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: "config reloaded"}
	}
}

// workspaceKey maps the digit keys to workspace indexes.
func workspaceKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}

// workspaceCounts returns how many clients live on each workspace. Fixed
// clients count towards the current one.
func workspaceCounts(clients []wm.ClientInfo, current int) [wm.Workspaces]int {
	var counts [wm.Workspaces]int
	for _, c := range clients {
		ws := c.Workspace
		if c.Fixed {
			ws = current
		}
		if ws >= 0 && ws < wm.Workspaces {
			counts[ws]++
		}
	}
	return counts
}

func (o OverviewTab) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}
	if o.snap.err != nil || o.snap.status == nil {
		msg := "ringwm is not running"
		if o.snap.err != nil {
			msg += "\n" + o.snap.err.Error()
		}
		return placeholder(msg, o.width, o.height)
	}

	st := o.snap.status
	counts := workspaceCounts(o.snap.clients, st.Workspace)

	cells := make([]string, 0, wm.Workspaces)
	for ws := 0; ws < wm.Workspaces; ws++ {
		label := fmt.Sprintf("%d:%d", ws, counts[ws])
		switch {
		case ws == st.Workspace:
			cells = append(cells, currentCell.Render(label))
		case counts[ws] > 0:
			cells = append(cells, busyCell.Render(label))
		default:
			cells = append(cells, emptyCell.Render(label))
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(cells, " ")...)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(16).
		Align(lipgloss.Right).
		PaddingRight(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	focused := "none"
	if st.Focused != 0 {
		focused = fmt.Sprintf("%#x", uint32(st.Focused))
	}
	top := "none"
	if st.Top != 0 {
		top = fmt.Sprintf("%#x", uint32(st.Top))
	}
	randr := "no (root window)"
	if st.RandR {
		randr = "yes"
	}

	lines := []string{
		titleStyle.Render("Workspaces"),
		"",
		strip,
		"",
		row("Focused", focused),
		row("Always on top", top),
		row("Mode", st.Mode),
		row("RandR", randr),
		row("Uptime", (time.Duration(st.UptimeSeconds) * time.Second).String()),
		row("Config", displayOrDefault(st.ConfigPath, "(defaults)")),
		"",
		titleStyle.Render("Monitors"),
		"",
	}
	if len(o.snap.monitors) == 0 {
		lines = append(lines, dimStyle.Render("  single screen"))
	}
	for _, mon := range o.snap.monitors {
		lines = append(lines, fmt.Sprintf("  %-10s %dx%d+%d+%d", mon.Name, mon.Width, mon.Height, mon.X, mon.Y))
	}

	return lipgloss.NewStyle().
		Width(o.width).
		Height(o.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
