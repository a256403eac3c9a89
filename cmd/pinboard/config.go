package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/pinboard/internal/config"
	"github.com/marcus/pinboard/internal/keymap"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the config file",
	}
	cmd.AddCommand(newConfigPathCmd(c), newConfigInitCmd(c), newConfigBindCmd(c))
	return cmd
}

func (c *cli) configFile() string {
	if c.configPath != "" {
		return config.ExpandPath(c.configPath)
	}
	return config.ConfigPath()
}

func newConfigPathCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), c.configFile())
		},
	}
}

func newConfigInitCmd(c *cli) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveTo(config.Default(), path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigBindCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "bind <key> <command>",
		Short: "Bind a key to a board command",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, command := args[0], args[1]
			if !keymap.Default().HasCommand(command) {
				return fmt.Errorf("unknown command %q", command)
			}
			path := c.configFile()
			if err := config.SaveKeymapOverride(path, key, command); err != nil {
				return fmt.Errorf("save binding: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bound %s to %s in %s\n", key, command, path)
			return nil
		},
	}
}
