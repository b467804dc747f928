package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/1broseidon/ringwm/internal/runtimepath"
)

// ErrDaemonNotRunning is returned when nothing listens on the socket.
var ErrDaemonNotRunning = errors.New("ringwm is not running")

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; the first request surfaces it.
		socketPath = ""
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client for the socket at path.
func NewClientWithPath(path string) *Client {
	return &Client{
		socketPath: path,
		timeout:    5 * time.Second,
	}
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) || c.socketPath == "" {
			return nil, fmt.Errorf("%w (socket %s)", ErrDaemonNotRunning, c.socketPath)
		}
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == StatusError {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

// call sends command with an optional payload and decodes the response data
// into out when out is not nil.
func (c *Client) call(command CommandType, payload any, out any) error {
	req := &Request{Command: command}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", command, err)
		}
		req.Payload = raw
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	return c.call(CommandPing, nil, nil)
}

func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) ListClients() (*ClientsData, error) {
	var data ClientsData
	if err := c.call(CommandListClients, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ListMonitors() (*MonitorsData, error) {
	var data MonitorsData
	if err := c.call(CommandListMonitors, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ListActions() ([]string, error) {
	var data ActionsData
	if err := c.call(CommandListActions, nil, &data); err != nil {
		return nil, err
	}
	return data.Actions, nil
}

func (c *Client) SwitchWorkspace(ws int) error {
	return c.call(CommandSwitchWorkspace, WorkspacePayload{Workspace: ws}, nil)
}

// SendToWorkspace moves window, or the focused window when it is 0.
func (c *Client) SendToWorkspace(window uint32, ws int) error {
	return c.call(CommandSendToWorkspace, SendPayload{Window: window, Workspace: ws}, nil)
}

func (c *Client) RunAction(action string) error {
	return c.call(CommandRunAction, ActionPayload{Action: action}, nil)
}

// Reload asks the daemon to re-read its configuration.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

func (c *Client) Exit() error {
	return c.call(CommandExit, nil, nil)
}

func (c *Client) Restart() error {
	return c.call(CommandRestart, nil, nil)
}
