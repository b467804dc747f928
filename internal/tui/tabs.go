package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabOverview Tab = iota
	TabClients
	TabSettings
	TabKeys
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabClients:
		return "Clients"
	case TabSettings:
		return "Settings"
	case TabKeys:
		return "Keys"
	default:
		return "?"
	}
}

// shortcut is the function key that jumps to the tab.
func (t Tab) shortcut() string {
	return fmt.Sprintf("f%d", int(t)+1)
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := strings.ToUpper(i.shortcut()) + ":" + i.String()
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderStatusBar shows whether the daemon answers, and the last action
// result on the right.
func renderStatusBar(snap snapshot, flash string, width int) string {
	var status string
	if snap.err == nil && snap.status != nil {
		dot := okStyle.Render("●")
		parts := []string{
			dot + " ringwm running",
			fmt.Sprintf("workspace:%d", snap.status.Workspace),
			fmt.Sprintf("clients:%d", snap.status.Clients),
			"mode:" + snap.status.Mode,
		}
		status = strings.Join(parts, "  ")
	} else {
		dot := dimStyle.Render("●")
		status = dot + " ringwm not running"
	}
	if flash != "" {
		status += "  " + flash
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

func renderHelpBar(active Tab, width int) string {
	help := "tab/shift-tab: switch tabs  f1-f4: jump to tab  ctrl-s: save  q/ctrl-c: quit"
	switch active {
	case TabOverview:
		help = "0-9: show workspace  r: reload config  " + help
	case TabClients:
		help = "0-9: send selected window  " + help
	case TabSettings:
		help = "e: edit  " + help
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}

func placeholder(text string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}
