package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/1broseidon/ringwm/internal/runtimepath"
	"github.com/1broseidon/ringwm/internal/wm"
)

// ErrNotResponding is returned when the window manager loop does not pick up
// or answer a command in time.
var ErrNotResponding = errors.New("window manager is not responding")

// ServerConfig wires the server to the rest of the daemon.
type ServerConfig struct {
	// SocketPath defaults to runtimepath.SocketPath().
	SocketPath string
	// Commands is the run loop's command channel.
	Commands chan<- wm.Command
	// Reload reloads the configuration and applies it.
	Reload func() error
	// ConfigPath is reported by GET_STATUS.
	ConfigPath string
	// Timeout bounds how long a request waits for the loop. Default 5s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Server handles IPC requests from clients
type Server struct {
	cfg       ServerConfig
	log       *slog.Logger
	listener  net.Listener
	startTime time.Time

	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server. A stale socket left by a previous run
// is removed.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Commands == nil {
		return nil, fmt.Errorf("ipc server needs a command channel")
	}
	if cfg.SocketPath == "" {
		socketPath, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
		cfg.SocketPath = socketPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	os.Remove(cfg.SocketPath)

	return &Server{
		cfg:       cfg,
		log:       logger.With("component", "ipc"),
		startTime: time.Now(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.cfg.SocketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.cfg.SocketPath), 0700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.cfg.SocketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.cfg.SocketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping() {
				return
			}
			s.log.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) stopping() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection answers the single JSON line a client sends.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * s.cfg.Timeout))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Debug("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.log.Debug("IPC request", "command", req.Command)
	s.writeResponse(conn, s.handleCommand(req))
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Debug("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandPing:
		return ok(nil)
	case CommandGetStatus:
		return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
			return StatusData{
				Status:        st.Status(),
				UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
				ConfigPath:    s.cfg.ConfigPath,
			}, nil
		}))
	case CommandListClients:
		return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
			return ClientsData{Clients: st.ClientInfos()}, nil
		}))
	case CommandListMonitors:
		return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
			return monitorsData(st.Monitors()), nil
		}))
	case CommandListActions:
		return ok(ActionsData{Actions: wm.ActionNames()})
	case CommandSwitchWorkspace:
		return s.handleSwitchWorkspace(req)
	case CommandSendToWorkspace:
		return s.handleSendToWorkspace(req)
	case CommandRunAction:
		return s.handleRunAction(req)
	case CommandReload:
		return s.handleReload()
	case CommandExit:
		return s.handleStop(req, wm.StopExit)
	case CommandRestart:
		return s.handleStop(req, wm.StopRestart)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleSwitchWorkspace(req *Request) *Response {
	var p WorkspacePayload
	if err := decodePayload(req.Payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if p.Workspace < 0 || p.Workspace >= wm.Workspaces {
		return NewErrorResponse(fmt.Sprintf("workspace must be between 0 and %d", wm.Workspaces-1))
	}
	return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
		st.SwitchWorkspace(p.Workspace)
		return nil, nil
	}))
}

func (s *Server) handleSendToWorkspace(req *Request) *Response {
	var p SendPayload
	if err := decodePayload(req.Payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
		return nil, st.SendClient(wm.Window(p.Window), p.Workspace)
	}))
}

func (s *Server) handleRunAction(req *Request) *Response {
	var p ActionPayload
	if err := decodePayload(req.Payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if !wm.IsAction(p.Action) {
		return NewErrorResponse(fmt.Sprintf("unknown action %q", p.Action))
	}
	return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
		return nil, st.RunAction(p.Action)
	}))
}

func (s *Server) handleReload() *Response {
	if s.cfg.Reload == nil {
		return NewErrorResponse("reload is not supported")
	}
	if err := s.cfg.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	s.log.Info("config reloaded over IPC")
	return ok(nil)
}

func (s *Server) handleStop(req *Request, reason wm.StopReason) *Response {
	return s.respond(s.submit(string(req.Command), func(st *wm.State) (any, error) {
		st.Stop(reason)
		return nil, nil
	}))
}

// submit runs fn on the window manager loop and waits for the result.
func (s *Server) submit(name string, fn func(*wm.State) (any, error)) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	return Submit(ctx, s.cfg.Commands, name, fn)
}

// Submit hands fn to the loop reading cmds and waits for its result.
func Submit(ctx context.Context, cmds chan<- wm.Command, name string, fn func(*wm.State) (any, error)) (any, error) {
	reply := make(chan wm.Result, 1)
	select {
	case cmds <- wm.Command{Name: name, Do: fn, Reply: reply}:
	case <-ctx.Done():
		return nil, ErrNotResponding
	}
	select {
	case res := <-reply:
		return res.Data, res.Err
	case <-ctx.Done():
		return nil, ErrNotResponding
	}
}

func (s *Server) respond(data any, err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(data)
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func monitorsData(monitors []wm.Monitor) MonitorsData {
	out := MonitorsData{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for _, m := range monitors {
		out.Monitors = append(out.Monitors, MonitorInfo{
			ID:     uint32(m.ID),
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}
	return out
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.cfg.SocketPath)
}
