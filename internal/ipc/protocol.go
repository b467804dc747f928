package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/ringwm/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing            CommandType = "PING"
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandListClients     CommandType = "LIST_CLIENTS"
	CommandListMonitors    CommandType = "LIST_MONITORS"
	CommandListActions     CommandType = "LIST_ACTIONS"
	CommandSwitchWorkspace CommandType = "SWITCH_WORKSPACE"
	CommandSendToWorkspace CommandType = "SEND_TO_WORKSPACE"
	CommandRunAction       CommandType = "RUN_ACTION"
	CommandReload          CommandType = "RELOAD"
	CommandExit            CommandType = "EXIT"
	CommandRestart         CommandType = "RESTART"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is returned by GET_STATUS.
type StatusData struct {
	wm.Status `yaml:",inline"`

	UptimeSeconds int64  `json:"uptime_seconds"`
	ConfigPath    string `json:"config_path,omitempty"`
}

// ClientsData is returned by LIST_CLIENTS.
type ClientsData struct {
	Clients []wm.ClientInfo `json:"clients"`
}

// MonitorInfo describes one RandR output in use.
type MonitorInfo struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MonitorsData is returned by LIST_MONITORS. An empty list means the root
// window is the only screen.
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ActionsData is returned by LIST_ACTIONS.
type ActionsData struct {
	Actions []string `json:"actions"`
}

type WorkspacePayload struct {
	Workspace int `json:"workspace"`
}

// SendPayload moves Window, or the focused window when it is 0.
type SendPayload struct {
	Window    uint32 `json:"window,omitempty"`
	Workspace int    `json:"workspace"`
}

type ActionPayload struct {
	Action string `json:"action"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: command is required")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func decodePayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
