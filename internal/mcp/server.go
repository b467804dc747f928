package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/ringwm/internal/ipc"
)

const (
	ServerName    = "ringwm"
	ServerVersion = "0.1.0"
)

// Controller is the part of the IPC client the tools drive.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	ListClients() (*ipc.ClientsData, error)
	ListMonitors() (*ipc.MonitorsData, error)
	ListActions() ([]string, error)
	SwitchWorkspace(ws int) error
	SendToWorkspace(window uint32, ws int) error
	RunAction(action string) error
	Reload() error
}

// Server exposes the running window manager as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	wm        Controller
	log       *slog.Logger
}

// NewServer creates an MCP server that forwards tool calls to ctl. Pass
// ipc.NewClient() to talk to the running daemon.
func NewServer(ctl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		wm:  ctl,
		log: logger.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the visible workspace, the focused window, the number of managed clients and monitors, and the current interaction mode of the ringwm window manager.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_clients",
		Description: "List managed windows with their workspace, monitor, geometry and flags (focused, maximized, fixed, unkillable, iconic). Optionally filter by workspace.",
	}, s.handleListClients)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the monitors reported by RandR. Empty when RandR is unavailable and the root window is the only screen.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_actions",
		Description: "List every action name accepted by run_action and by key bindings.",
	}, s.handleListActions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Show workspace 0-9. Windows of the previous workspace are unmapped, fixed windows stay visible.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_to_workspace",
		Description: "Move a window (default: the focused one) to workspace 0-9. A fixed window loses its fixed flag.",
	}, s.handleSendToWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_action",
		Description: "Run a named window manager action as if its key binding had been pressed, for example maximize, half_left, teleport_center or focus_next.",
	}, s.handleRunAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Re-read the ringwm configuration file. An invalid file is rejected and the running configuration is kept.",
	}, s.handleReload)
}
