package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"kalimba-tab/config"
)

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "write the current settings to the config file")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			p, err := config.ConfigPath()
			if err != nil {
				return err
			}
			path = p
		}

		if configInit {
			if err := cfg.SaveTo(path); err != nil {
				return fmt.Errorf("cannot write %s: %w", path, err)
			}
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", path, data)
		return nil
	},
}
