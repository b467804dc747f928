package mcp

// StatusInput is the input for the get_status tool.
type StatusInput struct{}

// StatusOutput is the output for the get_status tool.
type StatusOutput struct {
	Workspace     int    `json:"workspace"`
	Focused       uint32 `json:"focused"`
	AlwaysOnTop   uint32 `json:"always_on_top"`
	Clients       int    `json:"clients"`
	Monitors      int    `json:"monitors"`
	RandR         bool   `json:"randr"`
	Mode          string `json:"mode"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	ConfigPath    string `json:"config_path,omitempty"`
}

// ListClientsInput is the input for the list_clients tool.
type ListClientsInput struct {
	Workspace *int `json:"workspace,omitempty" jsonschema:"Only list clients on this workspace (0-9). Fixed clients are listed on every workspace."`
}

// ClientOutput describes one managed window.
type ClientOutput struct {
	Window     uint32 `json:"window"`
	Workspace  int    `json:"workspace"`
	Monitor    uint32 `json:"monitor"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Focused    bool   `json:"focused"`
	Maximized  bool   `json:"maximized"`
	Fixed      bool   `json:"fixed"`
	Unkillable bool   `json:"unkillable"`
	Iconic     bool   `json:"iconic"`
}

// ListClientsOutput is the output for the list_clients tool.
type ListClientsOutput struct {
	Clients []ClientOutput `json:"clients"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorOutput describes one monitor.
type MonitorOutput struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorOutput `json:"monitors"`
}

// ListActionsInput is the input for the list_actions tool.
type ListActionsInput struct{}

// ListActionsOutput is the output for the list_actions tool.
type ListActionsOutput struct {
	Actions []string `json:"actions"`
}

// SwitchWorkspaceInput is the input for the switch_workspace tool.
type SwitchWorkspaceInput struct {
	Workspace int `json:"workspace" jsonschema:"required,Workspace to show (0-9)"`
}

// SendToWorkspaceInput is the input for the send_to_workspace tool.
type SendToWorkspaceInput struct {
	Workspace int    `json:"workspace" jsonschema:"required,Target workspace (0-9)"`
	Window    uint32 `json:"window,omitempty" jsonschema:"X window id to move (default: the focused window)"`
}

// RunActionInput is the input for the run_action tool.
type RunActionInput struct {
	Action string `json:"action" jsonschema:"required,Action name as listed by list_actions (e.g. maximize, half_left, workspace_3)"`
}

// ReloadInput is the input for the reload_config tool.
type ReloadInput struct{}

// DoneOutput is returned by tools that only report success.
type DoneOutput struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
