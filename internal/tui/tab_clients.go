package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/ringwm/internal/wm"
)

var clientColumns = []table.Column{
	{Title: "Window", Width: 10},
	{Title: "WS", Width: 3},
	{Title: "Mon", Width: 4},
	{Title: "Geometry", Width: 20},
	{Title: "Flags", Width: 24},
}

// ClientsTab lists the managed windows.
type ClientsTab struct {
	daemon  Daemon
	table   table.Model
	clients []wm.ClientInfo

	width  int
	height int
}

func NewClientsTab(daemon Daemon) ClientsTab {
	t := table.New(
		table.WithColumns(clientColumns),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Bold(false)
	t.SetStyles(styles)

	return ClientsTab{daemon: daemon, table: t}
}

// SetClients replaces the rows, keeping the cursor on the same window when it
// is still managed.
func (c *ClientsTab) SetClients(clients []wm.ClientInfo) {
	selected, hadSelection := c.selected()
	c.clients = clients
	c.table.SetRows(clientRows(clients))

	if !hadSelection {
		return
	}
	for i, info := range clients {
		if info.ID == selected {
			c.table.SetCursor(i)
			return
		}
	}
	if n := len(clients); n > 0 && c.table.Cursor() >= n {
		c.table.SetCursor(n - 1)
	}
}

func clientRows(clients []wm.ClientInfo) []table.Row {
	rows := make([]table.Row, 0, len(clients))
	for _, info := range clients {
		rows = append(rows, table.Row{
			fmt.Sprintf("%#x", uint32(info.ID)),
			strconv.Itoa(info.Workspace),
			strconv.Itoa(int(info.Monitor)),
			fmt.Sprintf("%dx%d+%d+%d", info.Width, info.Height, info.X, info.Y),
			clientFlags(info),
		})
	}
	return rows
}

func clientFlags(info wm.ClientInfo) string {
	var flags []string
	if info.Focused {
		flags = append(flags, "focused")
	}
	if info.Maxed {
		flags = append(flags, "max")
	}
	if info.Half {
		flags = append(flags, "half")
	}
	if info.Fixed {
		flags = append(flags, "fixed")
	}
	if info.Unkillable {
		flags = append(flags, "unkillable")
	}
	if info.Iconic {
		flags = append(flags, "iconic")
	}
	return strings.Join(flags, ",")
}

func (c ClientsTab) selected() (wm.Window, bool) {
	i := c.table.Cursor()
	if i < 0 || i >= len(c.clients) {
		return 0, false
	}
	return c.clients[i].ID, true
}

func (c ClientsTab) Update(msg tea.Msg) (ClientsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.table.SetWidth(c.width - 2)
		c.table.SetHeight(max(c.height-2, 3))
		return c, nil
	case tea.KeyMsg:
		if ws, ok := workspaceKey(msg.String()); ok {
			return c, c.send(ws)
		}
	}

	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

func (c ClientsTab) send(ws int) tea.Cmd {
	id, ok := c.selected()
	if !ok {
		return nil
	}
	d := c.daemon
	return func() tea.Msg {
		if err := d.SendToWorkspace(uint32(id), ws); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: fmt.Sprintf("%#x sent to workspace %d", uint32(id), ws)}
	}
}

func (c ClientsTab) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	if len(c.clients) == 0 {
		return placeholder("No managed windows", c.width, c.height)
	}
	return lipgloss.NewStyle().
		Width(c.width).
		Height(c.height).
		PaddingLeft(1).
		Render(c.table.View())
}
