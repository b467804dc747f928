package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/ringwm/internal/wm"
)

func newStatusCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running window manager's state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			status, err := flags.client().GetStatus()
			if err != nil {
				return err
			}
			if done, err := printData(cmd.OutOrStdout(), format, status); done {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "workspace:  %d\n", status.Workspace)
			fmt.Fprintf(w, "focused:    %s\n", windowID(status.Focused))
			fmt.Fprintf(w, "on_top:     %s\n", windowID(status.Top))
			fmt.Fprintf(w, "clients:    %d\n", status.Clients)
			fmt.Fprintf(w, "monitors:   %d (randr: %s)\n", status.Monitors, yesNo(status.RandR))
			fmt.Fprintf(w, "mode:       %s\n", status.Mode)
			fmt.Fprintf(w, "uptime:     %s\n", time.Duration(status.UptimeSeconds)*time.Second)
			if status.ConfigPath != "" {
				fmt.Fprintf(w, "config:     %s\n", status.ConfigPath)
			}
			return nil
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func newClientsCmd(flags *globalFlags) *cobra.Command {
	var workspace int

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List managed windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			data, err := flags.client().ListClients()
			if err != nil {
				return err
			}
			clients := data.Clients
			if cmd.Flags().Changed("workspace") {
				if err := checkWorkspace(workspace); err != nil {
					return err
				}
				clients = filterWorkspace(clients, workspace)
			}
			if clients == nil {
				clients = []wm.ClientInfo{}
			}
			if done, err := printData(cmd.OutOrStdout(), format, clients); done {
				return err
			}
			return printTable(cmd.OutOrStdout(), []string{"WINDOW", "WS", "MON", "GEOMETRY", "FLAGS"}, clientRows(clients))
		},
	}
	cmd.Flags().IntVarP(&workspace, "workspace", "w", 0, "Only list windows visible on this workspace")
	addFormatFlag(cmd)
	return cmd
}

// filterWorkspace keeps the clients shown on ws; fixed clients are shown
// everywhere.
func filterWorkspace(clients []wm.ClientInfo, ws int) []wm.ClientInfo {
	var out []wm.ClientInfo
	for _, c := range clients {
		if c.Workspace == ws || c.Fixed {
			out = append(out, c)
		}
	}
	return out
}

func clientRows(clients []wm.ClientInfo) [][]string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		var flags []string
		for _, f := range []struct {
			on   bool
			name string
		}{
			{c.Focused, "focused"},
			{c.Maxed, "max"},
			{c.Half, "half"},
			{c.Fixed, "fixed"},
			{c.Unkillable, "unkillable"},
			{c.Iconic, "iconic"},
		} {
			if f.on {
				flags = append(flags, f.name)
			}
		}
		rows = append(rows, []string{
			windowID(c.ID),
			strconv.Itoa(c.Workspace),
			strconv.Itoa(int(c.Monitor)),
			fmt.Sprintf("%dx%d+%d+%d", c.Width, c.Height, c.X, c.Y),
			strings.Join(flags, ","),
		})
	}
	return rows
}

func newMonitorsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List the RandR outputs in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			data, err := flags.client().ListMonitors()
			if err != nil {
				return err
			}
			if done, err := printData(cmd.OutOrStdout(), format, data.Monitors); done {
				return err
			}
			if len(data.Monitors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no RandR outputs; the root window is the only screen")
				return nil
			}
			rows := make([][]string, 0, len(data.Monitors))
			for _, m := range data.Monitors {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(m.ID), 10),
					m.Name,
					fmt.Sprintf("%dx%d+%d+%d", m.Width, m.Height, m.X, m.Y),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "GEOMETRY"}, rows)
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func newActionsCmd(flags *globalFlags) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the action names usable in key and button bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := wm.ActionNames()
			if !local {
				remote, err := flags.client().ListActions()
				if err != nil {
					return err
				}
				names = remote
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "List the actions built into this binary without asking the daemon")
	return cmd
}

func newWorkspaceCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "workspace N",
		Short: "Switch to workspace N (0-9)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := parseWorkspace(args[0])
			if err != nil {
				return err
			}
			return flags.client().SwitchWorkspace(ws)
		},
	}
}

func newSendCmd(flags *globalFlags) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "send N",
		Short: "Send a window to workspace N (0-9)",
		Long:  "Send the focused window, or the one named by --window, to workspace N.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := parseWorkspace(args[0])
			if err != nil {
				return err
			}
			var id uint32
			if window != "" {
				v, err := strconv.ParseUint(window, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid window id %q", window)
				}
				id = uint32(v)
			}
			return flags.client().SendToWorkspace(id, ws)
		},
	}
	cmd.Flags().StringVar(&window, "window", "", "Window id (decimal or 0x hex); defaults to the focused window")
	return cmd
}

func newActionCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "action NAME",
		Short: "Run a named action as if its key had been pressed",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return wm.ActionNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wm.IsAction(args[0]) {
				return fmt.Errorf("unknown action %q (see 'ringwm actions')", args[0])
			}
			return flags.client().RunAction(args[0])
		},
	}
}

func newReloadCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.client().Reload(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config reloaded")
			return nil
		},
	}
}

func newExitCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "Stop the window manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.client().Exit()
		},
	}
}

func newRestartCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Re-execute the window manager in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.client().Restart()
		},
	}
}

func parseWorkspace(s string) (int, error) {
	ws, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid workspace %q", s)
	}
	return ws, checkWorkspace(ws)
}

func checkWorkspace(ws int) error {
	if ws < 0 || ws >= wm.Workspaces {
		return fmt.Errorf("workspace %d out of range 0-%d", ws, wm.Workspaces-1)
	}
	return nil
}

func windowID(w wm.Window) string {
	if w == 0 {
		return "none"
	}
	return fmt.Sprintf("%#x", uint32(w))
}
