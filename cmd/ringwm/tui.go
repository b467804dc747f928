package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/ringwm/internal/tui"
)

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Aliases: []string{"watch"},
		Short:   "Interactive dashboard and config editor",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(flags.configPath, flags.client())
		},
	}
}
