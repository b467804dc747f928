package ipc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1broseidon/ringwm/internal/geom"
	"github.com/1broseidon/ringwm/internal/wm"
)

// rootConn is a display with no windows. Requests the tests do not expect
// panic through the nil embedded interface.
type rootConn struct {
	wm.Conn
	current int
}

func (c *rootConn) Screen() geom.Rect { return geom.Rect{Width: 1920, Height: 1080} }
func (c *rootConn) SetCurrentDesktop(n int) { c.current = n }
func (c *rootConn) PointerChild() wm.Window { return 0 }
func (c *rootConn) Focus(wm.Window) {}
func (c *rootConn) SetActive(wm.Window) {}

type harness struct {
	client  *Client
	conn    *rootConn
	done    chan error
	reloads atomic.Int32
}

func startServer(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn := &rootConn{}
	st := wm.New(conn, wm.Options{Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	cmds := make(chan wm.Command)
	h := &harness{conn: conn, done: make(chan error, 1)}
	go func() { h.done <- st.Run(ctx, nil, cmds) }()

	socket := filepath.Join(t.TempDir(), "ringwm.sock")
	srv, err := NewServer(ServerConfig{
		SocketPath: socket,
		Commands:   cmds,
		Reload: func() error {
			h.reloads.Add(1)
			return nil
		},
		ConfigPath: "/etc/ringwm.yaml",
		Timeout:    time.Second,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		srv.Stop()
		cancel()
	})

	h.client = NewClientWithPath(socket)
	return h
}

func TestServer_PingAndStatus(t *testing.T) {
	h := startServer(t)

	if err := h.client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	status, err := h.client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Workspace != 0 || status.Clients != 0 || status.Mode != "idle" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.ConfigPath != "/etc/ringwm.yaml" {
		t.Fatalf("unexpected config path %q", status.ConfigPath)
	}
}

func TestServer_SwitchWorkspaceRunsOnLoop(t *testing.T) {
	h := startServer(t)

	if err := h.client.SwitchWorkspace(4); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	status, err := h.client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Workspace != 4 {
		t.Fatalf("expected workspace 4, got %d", status.Workspace)
	}

	if err := h.client.RunAction("workspace_next"); err != nil {
		t.Fatalf("RunAction: %v", err)
	}
	status, err = h.client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Workspace != 5 {
		t.Fatalf("expected workspace 5, got %d", status.Workspace)
	}
}

func TestServer_RejectsBadRequests(t *testing.T) {
	h := startServer(t)

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"workspace out of range", func() error { return h.client.SwitchWorkspace(wm.Workspaces) }, "workspace must be between"},
		{"unknown action", func() error { return h.client.RunAction("dance") }, `unknown action "dance"`},
		{"unknown window", func() error { return h.client.SendToWorkspace(0x1234, 1) }, "no managed window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestServer_ListsAndReload(t *testing.T) {
	h := startServer(t)

	clients, err := h.client.ListClients()
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients.Clients) != 0 {
		t.Fatalf("expected no clients, got %v", clients.Clients)
	}

	monitors, err := h.client.ListMonitors()
	if err != nil {
		t.Fatalf("ListMonitors: %v", err)
	}
	if len(monitors.Monitors) != 0 {
		t.Fatalf("expected no monitors without randr, got %v", monitors.Monitors)
	}

	actions, err := h.client.ListActions()
	if err != nil {
		t.Fatalf("ListActions: %v", err)
	}
	if len(actions) != len(wm.ActionNames()) {
		t.Fatalf("expected %d actions, got %d", len(wm.ActionNames()), len(actions))
	}

	if err := h.client.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if n := h.reloads.Load(); n != 1 {
		t.Fatalf("expected one reload, got %d", n)
	}
}

func TestServer_ExitStopsLoop(t *testing.T) {
	h := startServer(t)

	if err := h.client.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	select {
	case err := <-h.done:
		if err != nil {
			t.Fatalf("expected a clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run loop did not stop")
	}
}

func TestServer_RestartReturnsErrRestart(t *testing.T) {
	h := startServer(t)

	if err := h.client.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	select {
	case err := <-h.done:
		if !errors.Is(err, wm.ErrRestart) {
			t.Fatalf("expected ErrRestart, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run loop did not stop")
	}
}

func TestServer_NotRespondingWhenLoopGone(t *testing.T) {
	h := startServer(t)
	if err := h.client.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	<-h.done

	_, err := h.client.GetStatus()
	if err == nil || !strings.Contains(err.Error(), ErrNotResponding.Error()) {
		t.Fatalf("expected not responding error, got %v", err)
	}
}

func TestClient_DaemonNotRunning(t *testing.T) {
	c := NewClientWithPath(filepath.Join(t.TempDir(), "missing.sock"))
	if err := c.Ping(); !errors.Is(err, ErrDaemonNotRunning) {
		t.Fatalf("expected ErrDaemonNotRunning, got %v", err)
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"RUN_ACTION","payload":{"action":"fix"}}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	var p ActionPayload
	if err := decodePayload(req.Payload, &p); err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if req.Command != CommandRunAction || p.Action != "fix" {
		t.Fatalf("unexpected request %+v / %+v", req, p)
	}

	if _, err := ParseRequest([]byte(`{"payload":{}}`)); err == nil {
		t.Fatalf("expected missing command to fail")
	}
	if err := decodePayload(nil, &p); err == nil {
		t.Fatalf("expected empty payload to fail")
	}
}
