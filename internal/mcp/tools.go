package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/ringwm/internal/wm"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.wm.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		Workspace:     st.Workspace,
		Focused:       uint32(st.Focused),
		AlwaysOnTop:   uint32(st.Top),
		Clients:       st.Clients,
		Monitors:      st.Monitors,
		RandR:         st.RandR,
		Mode:          st.Mode,
		UptimeSeconds: st.UptimeSeconds,
		ConfigPath:    st.ConfigPath,
	}, nil
}

func (s *Server) handleListClients(_ context.Context, _ *mcpsdk.CallToolRequest, args ListClientsInput) (*mcpsdk.CallToolResult, ListClientsOutput, error) {
	if args.Workspace != nil {
		if err := checkWorkspace(*args.Workspace); err != nil {
			return nil, ListClientsOutput{}, err
		}
	}
	data, err := s.wm.ListClients()
	if err != nil {
		return nil, ListClientsOutput{}, err
	}

	out := ListClientsOutput{Clients: make([]ClientOutput, 0, len(data.Clients))}
	for _, c := range data.Clients {
		if args.Workspace != nil && !c.Fixed && c.Workspace != *args.Workspace {
			continue
		}
		out.Clients = append(out.Clients, ClientOutput{
			Window:     uint32(c.ID),
			Workspace:  c.Workspace,
			Monitor:    uint32(c.Monitor),
			X:          c.X,
			Y:          c.Y,
			Width:      c.Width,
			Height:     c.Height,
			Focused:    c.Focused,
			Maximized:  c.Maxed,
			Fixed:      c.Fixed,
			Unkillable: c.Unkillable,
			Iconic:     c.Iconic,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.wm.ListMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	out := ListMonitorsOutput{Monitors: make([]MonitorOutput, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorOutput(m))
	}
	return nil, out, nil
}

func (s *Server) handleListActions(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListActionsInput) (*mcpsdk.CallToolResult, ListActionsOutput, error) {
	actions, err := s.wm.ListActions()
	if err != nil {
		return nil, ListActionsOutput{}, err
	}
	return nil, ListActionsOutput{Actions: actions}, nil
}

func (s *Server) handleSwitchWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchWorkspaceInput) (*mcpsdk.CallToolResult, DoneOutput, error) {
	if err := checkWorkspace(args.Workspace); err != nil {
		return nil, DoneOutput{}, err
	}
	if err := s.wm.SwitchWorkspace(args.Workspace); err != nil {
		return nil, DoneOutput{}, err
	}
	s.log.Info("workspace switched", "workspace", args.Workspace)
	return nil, DoneOutput{OK: true, Message: fmt.Sprintf("workspace %d is now visible", args.Workspace)}, nil
}

func (s *Server) handleSendToWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SendToWorkspaceInput) (*mcpsdk.CallToolResult, DoneOutput, error) {
	if err := checkWorkspace(args.Workspace); err != nil {
		return nil, DoneOutput{}, err
	}
	if err := s.wm.SendToWorkspace(args.Window, args.Workspace); err != nil {
		return nil, DoneOutput{}, err
	}

	target := "focused window"
	if args.Window != 0 {
		target = fmt.Sprintf("window %#x", args.Window)
	}
	s.log.Info("client sent", "window", args.Window, "workspace", args.Workspace)
	return nil, DoneOutput{OK: true, Message: fmt.Sprintf("%s moved to workspace %d", target, args.Workspace)}, nil
}

func (s *Server) handleRunAction(_ context.Context, _ *mcpsdk.CallToolRequest, args RunActionInput) (*mcpsdk.CallToolResult, DoneOutput, error) {
	if !wm.IsAction(args.Action) {
		return nil, DoneOutput{}, fmt.Errorf("unknown action %q; call list_actions for the %d valid names", args.Action, len(wm.ActionNames()))
	}
	if err := s.wm.RunAction(args.Action); err != nil {
		return nil, DoneOutput{}, err
	}
	s.log.Info("action run", "action", args.Action)
	return nil, DoneOutput{OK: true, Message: fmt.Sprintf("ran %s", args.Action)}, nil
}

func (s *Server) handleReload(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadInput) (*mcpsdk.CallToolResult, DoneOutput, error) {
	if err := s.wm.Reload(); err != nil {
		return nil, DoneOutput{}, err
	}
	return nil, DoneOutput{OK: true, Message: "configuration reloaded"}, nil
}

func checkWorkspace(ws int) error {
	if ws < 0 || ws >= wm.Workspaces {
		return fmt.Errorf("workspace must be between 0 and %d, got %d", wm.Workspaces-1, ws)
	}
	return nil
}
