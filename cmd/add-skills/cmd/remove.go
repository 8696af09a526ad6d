package cmd

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/tui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <skill-name>",
	Aliases: []string{"uninstall", "rm"},
	Short:   "Remove an installed skill",
	Long: `Remove a skill link from an agent's skills directory.

Only links created by add-skills are removed. A real directory at the
install path is left alone and reported as an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		agent, err := d.agent(cmd)
		if err != nil {
			return err
		}
		projectDir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}
		scope := resolveScope(cmd)

		removed, err := core.Uninstall(args[0], agent, scope, projectDir)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(os.Stdout, "%s is not installed %s for %s.\n", args[0], scopeLabel(scope), agent.Name)
			return nil
		}

		d.logger.Debug("removed skill", "skill", args[0], "agent", agent.Name, "scope", scope.String())
		fmt.Fprintf(os.Stdout, "%s %s\n", tui.Success("Removed:"), args[0])
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the agent's global skills directory")
	removeCmd.Flags().StringP("agent", "a", "", "Target agent (default from config, else claude-code)")
	removeCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	rootCmd.AddCommand(removeCmd)
}
