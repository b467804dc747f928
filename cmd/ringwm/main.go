package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/ringwm/internal/ipc"
)

const version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	socketPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "ringwm",
		Short: "A small floating window manager for X11",
		Long: "ringwm is a floating X11 window manager with ten workspaces, RandR multi-monitor\n" +
			"support, two-ring window borders and keyboard-driven moving, resizing and snapping.\n" +
			"Run 'ringwm run' from your X session; the other commands talk to the running\n" +
			"window manager over its IPC socket.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file path (default: ~/.config/ringwm/config.yaml)")
	root.PersistentFlags().StringVar(&flags.socketPath, "socket", "", "IPC socket path (default: $XDG_RUNTIME_DIR/ringwm/ringwm.sock)")

	root.AddCommand(
		newRunCmd(flags),
		newStatusCmd(flags),
		newClientsCmd(flags),
		newMonitorsCmd(flags),
		newActionsCmd(flags),
		newWorkspaceCmd(flags),
		newSendCmd(flags),
		newActionCmd(flags),
		newReloadCmd(flags),
		newExitCmd(flags),
		newRestartCmd(flags),
		newConfigCmd(flags),
		newMCPCmd(flags),
		newTUICmd(flags),
	)
	return root
}

func (f *globalFlags) client() *ipc.Client {
	if f.socketPath != "" {
		return ipc.NewClientWithPath(f.socketPath)
	}
	return ipc.NewClient()
}
