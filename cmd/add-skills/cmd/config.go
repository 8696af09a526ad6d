package cmd

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := core.NewConfigManager()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, cm.ConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := core.NewConfigManager()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			for _, p := range []string{cm.ConfigPath(), cm.TOMLConfigPath()} {
				if _, err := os.Stat(p); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", p)
				}
			}
		}

		if err := cm.Save(cm.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", cm.ConfigPath())
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configPathCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
