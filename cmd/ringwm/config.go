package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/ringwm/internal/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect, validate and create the config file",
	}
	cmd.AddCommand(
		newConfigPathCmd(flags),
		newConfigPrintCmd(flags),
		newConfigValidateCmd(flags),
		newConfigExplainCmd(flags),
		newConfigInitCmd(flags),
	)
	return cmd
}

func (f *globalFlags) resolveConfigPath() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.DefaultConfigPath()
}

func (f *globalFlags) loadConfig() (*config.LoadResult, error) {
	if f.configPath != "" {
		return config.LoadFromPath(f.configPath)
	}
	return config.LoadWithSources()
}

func newConfigPathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigPrintCmd(flags *globalFlags) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective config (defaults merged with the file and its includes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				res, err := flags.loadConfig()
				if err != nil {
					return err
				}
				cfg = res.Config
				for _, file := range res.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "# loaded: %s\n", file)
				}
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Print the built-in defaults without reading any file")
	return cmd
}

func newConfigValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and its includes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if !res.Exists {
				fmt.Fprintf(cmd.OutOrStdout(), "config: ok (%s not found, using defaults)\n", res.Path)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config: ok")
			return nil
		},
	}
}

func newConfigExplainCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain PATH",
		Short: "Show a setting's effective value and which file set it",
		Long: "Show the effective value of a config setting and the file, line and column\n" +
			"that set it. PATH is a YAML path such as border_width, colors.focus,\n" +
			"keys.close or buttons[0].action.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.loadConfig()
			if err != nil {
				return err
			}
			value, src, err := config.Explain(res, args[0])
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "path: %s\n", args[0])
			fmt.Fprintf(w, "source: %s\n", src)
			fmt.Fprintf(w, "value:\n%s", out)
			return nil
		},
	}
}

func newConfigInitCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.resolveConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
