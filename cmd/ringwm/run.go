package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/ringwm/internal/daemon"
	"github.com/1broseidon/ringwm/internal/wm"
	"github.com/1broseidon/ringwm/internal/x11"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Manage the X display (foreground)",
		Long: "Take over the display named by $DISPLAY as its window manager and run until\n" +
			"'ringwm exit', SIGINT or SIGTERM. SIGHUP and 'ringwm reload' re-read the config;\n" +
			"'ringwm restart' re-executes the binary in place.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runWM(flags, watch)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload automatically when the config file changes")
	return cmd
}

func runWM(flags *globalFlags, watch bool) {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	conn, err := x11.NewConnection(logger)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}

	d, err := daemon.New(daemon.Config{
		ConfigPath: flags.configPath,
		SocketPath: flags.socketPath,
		Watch:      watch,
		Level:      level,
		Logger:     logger,
	}, conn)
	if err != nil {
		conn.Disconnect()
		log.Fatalf("Failed to start ringwm: %v", err)
	}

	log.Printf("ringwm %s starting", version)
	err = d.Run(context.Background())
	switch {
	case errors.Is(err, wm.ErrRestart):
		if err := daemon.Reexec(); err != nil {
			log.Fatalf("Failed to restart: %v", err)
		}
	case errors.Is(err, wm.ErrDisconnected):
		log.Fatalf("Lost connection to the X server")
	case err != nil:
		log.Fatalf("ringwm: %v", err)
	}
}
