package cmd

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/tui"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and their skill directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolve, _ := cmd.Flags().GetBool("resolve")

		tbl := tui.NewTable("Agent", "Name", "Project dir", "Global dir")
		for _, a := range core.ListAgents() {
			global := a.GlobalSkillsDir
			if resolve {
				global = core.ResolveAgentGlobalSkillsDir(a)
			}
			tbl.Row(a.Name, a.DisplayName, a.SkillsDir, global)
		}
		fmt.Fprint(os.Stdout, tbl.Render(tui.Width(os.Stdout)))
		return nil
	},
}

func init() {
	agentsCmd.Flags().Bool("resolve", false, "Show global directories with ~ and variables expanded")
	rootCmd.AddCommand(agentsCmd)
}
