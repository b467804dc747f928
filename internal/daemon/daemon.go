package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/ringwm/internal/config"
	"github.com/1broseidon/ringwm/internal/ipc"
	"github.com/1broseidon/ringwm/internal/wm"
)

// Display is the X connection as the daemon drives it.
type Display interface {
	wm.Conn
	// Manage takes over the display as its window manager.
	Manage() error
	Events(ctx context.Context) <-chan wm.Event
	Disconnect()
}

// Config holds the daemon settings that do not come from the config file.
type Config struct {
	// ConfigPath defaults to config.DefaultConfigPath().
	ConfigPath string
	// SocketPath defaults to the runtime socket path.
	SocketPath string
	// Watch enables reloading when the config files change.
	Watch bool
	// Level is adjusted to log_level on every load when set.
	Level  *slog.LevelVar
	Logger *slog.Logger
}

// Daemon runs the window manager loop together with its IPC server, the
// config watcher and signal handling.
type Daemon struct {
	cfg     Config
	log     *slog.Logger
	display Display
	cmds    chan wm.Command

	mu      sync.Mutex
	current *config.LoadResult

	rewatch chan []string
}

// New prepares a daemon for display. Nothing is touched until Run.
func New(cfg Config, display Display) (*Daemon, error) {
	if cfg.ConfigPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		cfg.ConfigPath = path
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		cfg:     cfg,
		log:     logger,
		display: display,
		cmds:    make(chan wm.Command),
		rewatch: make(chan []string, 1),
	}, nil
}

// Run manages the display until ctx is done, an exit is requested or the
// connection is lost. It returns wm.ErrRestart when the caller should
// re-exec itself.
func (d *Daemon) Run(ctx context.Context) error {
	res, err := config.LoadFromPath(d.cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	d.apply(res)
	opts, err := res.Config.Options(d.log)
	if err != nil {
		return err
	}
	d.log.Info("configuration loaded", "path", res.Path, "exists", res.Exists, "keys", len(opts.Keys))

	if err := d.display.Manage(); err != nil {
		return err
	}
	defer d.display.Disconnect()

	state := wm.New(d.display, opts)
	if err := state.Setup(); err != nil {
		return err
	}
	defer state.Close()

	server, err := ipc.NewServer(ipc.ServerConfig{
		SocketPath: d.cfg.SocketPath,
		Commands:   d.cmds,
		Reload:     d.Reload,
		ConfigPath: d.cfg.ConfigPath,
		Logger:     d.log,
	})
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if d.cfg.Watch {
		go d.watchLoop(ctx, res)
	}
	go d.signalLoop(ctx, cancel)

	err = state.Run(ctx, d.display.Events(ctx), d.cmds)
	switch {
	case errors.Is(err, wm.ErrRestart):
		d.log.Info("restarting")
	case err != nil:
		d.log.Error("event loop ended", "error", err)
	default:
		d.log.Info("shutting down")
	}
	return err
}

// Reload re-reads the configuration and applies it on the loop. A broken
// file leaves the running configuration in place.
func (d *Daemon) Reload() error {
	res, err := config.LoadFromPath(d.cfg.ConfigPath)
	if err != nil {
		d.log.Warn("config reload failed, keeping previous configuration", "error", err)
		return err
	}
	opts, err := res.Config.Options(d.log)
	if err != nil {
		d.log.Warn("config reload failed, keeping previous configuration", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = ipc.Submit(ctx, d.cmds, "reload", func(st *wm.State) (any, error) {
		st.Reconfigure(opts)
		return nil, nil
	})
	if err != nil {
		d.log.Warn("config reload not applied", "error", err)
		return err
	}
	d.log.Info("configuration reloaded", "path", res.Path)

	prev := d.apply(res)
	if prev == nil || !slices.Equal(prev.Files, res.Files) {
		select {
		case d.rewatch <- res.Files:
		default:
		}
	}
	return nil
}

// Config returns the last configuration applied.
func (d *Daemon) Config() *config.LoadResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Daemon) apply(res *config.LoadResult) *config.LoadResult {
	if d.cfg.Level != nil {
		d.cfg.Level.Set(res.Config.Level())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.current
	d.current = res
	return prev
}

// signalLoop reloads on SIGHUP and stops the daemon on SIGINT or SIGTERM.
func (d *Daemon) signalLoop(ctx context.Context, stop context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				d.log.Info("received SIGHUP, reloading config")
				d.safeReload()
			default:
				d.log.Info("received signal, shutting down", "signal", sig)
				stop()
				return
			}
		}
	}
}

// watchLoop reloads whenever a loaded config file changes. It starts a new
// watcher when a reload changes the set of files.
func (d *Daemon) watchLoop(ctx context.Context, res *config.LoadResult) {
	files := res.Files
	if len(files) == 0 {
		files = []string{res.Path}
	}

	for {
		watcher, err := config.NewWatcher(files, config.DefaultDebounce)
		if err != nil {
			d.log.Warn("config watcher disabled", "error", err)
			select {
			case <-ctx.Done():
				return
			case files = <-d.rewatch:
				continue
			}
		}

		wctx, wcancel := context.WithCancel(ctx)
		go watcher.Run(wctx)
		d.log.Debug("watching config files", "files", files)

	watching:
		for {
			select {
			case <-ctx.Done():
				wcancel()
				return
			case files = <-d.rewatch:
				break watching
			case <-watcher.Updates:
				d.log.Info("config file changed, reloading")
				d.safeReload()
			case err := <-watcher.Errors:
				d.log.Warn("config watcher error", "error", err)
			}
		}
		wcancel()
	}
}

// safeReload keeps a failing reload from taking the daemon down.
func (d *Daemon) safeReload() {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("reload panic recovered", "panic", r)
		}
	}()
	d.Reload()
}

// Reexec replaces the current process with a fresh copy of itself.
func Reexec() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	return syscall.Exec(exe, os.Args, os.Environ())
}
