package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/ringwm/internal/config"
	"github.com/1broseidon/ringwm/internal/ipc"
	"github.com/1broseidon/ringwm/internal/wm"
)

// Daemon is the part of the IPC client the TUI talks to.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	ListClients() (*ipc.ClientsData, error)
	ListMonitors() (*ipc.MonitorsData, error)
	SwitchWorkspace(ws int) error
	SendToWorkspace(window uint32, ws int) error
	Reload() error
}

const refreshInterval = time.Second

// snapshot is one poll of the running window manager.
type snapshot struct {
	status   *ipc.StatusData
	clients  []wm.ClientInfo
	monitors []ipc.MonitorInfo
	err      error
}

type (
	snapshotMsg snapshot
	tickMsg     struct{}
	// actionMsg reports the outcome of a request sent to the daemon.
	actionMsg struct {
		text string
		err  error
	}
	clearFlashMsg struct{}
)

// Run starts the TUI on the controlling terminal. A nil daemon talks to the
// default socket.
func Run(configPath string, daemon Daemon) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if daemon == nil {
		daemon = ipc.NewClient()
	}
	m := newModel(configPath, daemon)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	result     *config.LoadResult
	loadErr    error
	daemon     Daemon

	activeTab Tab

	overview OverviewTab
	clients  ClientsTab
	settings SettingsTab
	keys     KeysTab

	originalConfig *config.Config
	saveOverlay    SaveOverlay

	snap  snapshot
	flash string

	width  int
	height int
}

func newModel(configPath string, daemon Daemon) model {
	m := model{
		configPath: configPath,
		daemon:     daemon,
		activeTab:  TabOverview,
	}
	m.loadConfig()

	var cfg *config.Config
	if m.result != nil {
		cfg = m.result.Config
		m.originalConfig = cloneConfig(cfg)
	}
	m.overview = NewOverviewTab(daemon)
	m.clients = NewClientsTab(daemon)
	m.settings = NewSettingsTab(cfg)
	m.keys = NewKeysTab(m.result)
	return m
}

func (m *model) loadConfig() {
	var res *config.LoadResult
	var err error
	if m.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(m.configPath)
	}
	if err != nil {
		m.loadErr = err
		return
	}
	m.result = res
	m.loadErr = nil
}

// contentHeight returns the height available for tab content: status bar,
// tab bar with its margin and help bar take four lines.
func (m model) contentHeight() int {
	return max(m.height-4, 1)
}

func (m model) poll() tea.Cmd {
	d := m.daemon
	return func() tea.Msg {
		var snap snapshot
		snap.status, snap.err = d.GetStatus()
		if snap.err != nil {
			return snapshotMsg(snap)
		}
		if clients, err := d.ListClients(); err == nil {
			snap.clients = clients.Clients
		} else {
			snap.err = err
		}
		if monitors, err := d.ListMonitors(); err == nil {
			snap.monitors = monitors.Monitors
		}
		return snapshotMsg(snap)
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func clearFlash() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearFlashMsg{} })
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.poll(), tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = snapshot(msg)
		m.overview.SetSnapshot(m.snap)
		m.clients.SetClients(m.snap.clients)
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.poll(), tick())
	case actionMsg:
		if msg.err != nil {
			m.flash = errorStyle.Render("error: " + msg.err.Error())
		} else {
			m.flash = okStyle.Render(msg.text)
		}
		return m, tea.Batch(m.poll(), clearFlash())
	case clearFlashMsg:
		m.flash = ""
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		sub := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.overview, _ = m.overview.Update(sub)
		m.clients, _ = m.clients.Update(sub)
		m.settings, _ = m.settings.Update(sub)
		m.keys, _ = m.keys.Update(sub)
		return m, nil
	}

	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		if km, ok := msg.(tea.KeyMsg); ok {
			if km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(km, m.saveTarget())
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = cloneConfig(m.result.Config)
				return m, m.poll()
			}
		}
		return m, nil
	}

	km, isKey := msg.(tea.KeyMsg)

	if isKey && km.String() == "ctrl+s" {
		if m.result != nil {
			m.saveOverlay.Show(m.originalConfig, m.result.Config)
		}
		return m, nil
	}

	// The settings form consumes keys while editing; only ctrl+c escapes.
	if m.activeTab == TabSettings && m.settings.editing {
		if isKey && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd
	}

	if isKey {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		}
		for t := Tab(0); t < tabCount; t++ {
			if km.String() == t.shortcut() {
				m.activeTab = t
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case TabClients:
		m.clients, cmd = m.clients.Update(msg)
	case TabSettings:
		m.settings, cmd = m.settings.Update(msg)
	case TabKeys:
		m.keys, cmd = m.keys.Update(msg)
	}
	return m, cmd
}

func (m model) saveTarget() saveTarget {
	t := saveTarget{daemon: m.daemon, connected: m.snap.err == nil && m.snap.status != nil}
	if m.result != nil {
		t.cfg = m.result.Config
		t.path = m.result.Path
	}
	return t
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.snap, m.flash, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.activeTab, m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := max(m.height-usedHeight, 1)

	var content string
	switch {
	case m.saveOverlay.Active():
		content = m.saveOverlay.View(m.width, contentHeight)
	case m.loadErr != nil && (m.activeTab == TabSettings || m.activeTab == TabKeys):
		content = placeholder("Config failed to load:\n"+m.loadErr.Error(), m.width, contentHeight)
	default:
		switch m.activeTab {
		case TabOverview:
			content = m.overview.View()
		case TabClients:
			content = m.clients.View()
		case TabSettings:
			content = m.settings.View()
		case TabKeys:
			content = m.keys.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
