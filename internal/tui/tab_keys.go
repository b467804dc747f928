package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/ringwm/internal/config"
	"github.com/1broseidon/ringwm/internal/wm"
)

// keyItem is one action in the key binding list.
type keyItem struct {
	action string
	keys   []string
	source config.Source
}

func (i keyItem) Title() string {
	if len(i.keys) == 0 {
		return dimStyle.Render("·") + " " + i.action
	}
	return okStyle.Render("●") + " " + i.action
}

func (i keyItem) Description() string {
	if len(i.keys) == 0 {
		return "(unbound)"
	}
	return strings.Join(i.keys, "  ")
}

func (i keyItem) FilterValue() string { return i.action }

// KeysTab browses the key bindings of every action.
type KeysTab struct {
	list   list.Model
	width  int
	height int
}

func NewKeysTab(res *config.LoadResult) KeysTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(buildKeyItems(res), delegate, 0, 0)
	l.Title = "Key Bindings"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return KeysTab{list: l}
}

// buildKeyItems lists every action, bound or not, sorted by name.
func buildKeyItems(res *config.LoadResult) []list.Item {
	var keys map[string]config.KeyList
	if res != nil && res.Config != nil {
		keys = res.Config.Keys
	}

	names := wm.ActionNames()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		item := keyItem{action: name, keys: keys[name]}
		if res != nil {
			if _, src, err := config.Explain(res, "keys."+name); err == nil {
				item.source = src
			}
		}
		items = append(items, item)
	}
	return items
}

func (k KeysTab) Update(msg tea.Msg) (KeysTab, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		k.width = msg.Width
		k.height = msg.Height
		k.list.SetSize(k.listWidth(), k.height)
		return k, nil
	}
	var cmd tea.Cmd
	k.list, cmd = k.list.Update(msg)
	return k, cmd
}

func (k KeysTab) listWidth() int {
	return max(k.width*2/5, 24)
}

func (k KeysTab) View() string {
	if k.width == 0 || k.height == 0 {
		return ""
	}
	leftWidth := k.listWidth()
	rightWidth := max(k.width-leftWidth, 10)

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(k.height).
		Render(k.list.View())

	var right string
	if item, ok := k.list.SelectedItem().(keyItem); ok {
		right = renderKeyDetail(item, rightWidth, k.height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderKeyDetail(item keyItem, width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(item.action))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	if len(item.keys) == 0 {
		b.WriteString(dimStyle.Render("not bound to any key"))
		b.WriteString("\n")
	}
	for _, seq := range item.keys {
		b.WriteString(labelStyle.Render("key:"))
		b.WriteString(valueStyle.Render(seq))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("source:"))
	b.WriteString(valueStyle.Render(item.source.String()))
	b.WriteString("\n")
	b.WriteString("\n")
	b.WriteString(dimStyle.Italic(true).Render("Bind it under keys: in the config file; an empty list unbinds it."))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("236")).
		Render(b.String())
}
