package cmd

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <source> [skill-name]",
	Short: "Print a skill's SKILL.md",
	Long: `Print the SKILL.md of a skill found in a source, rendered as markdown.

The skill name may be omitted when the source holds exactly one skill.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		src, err := d.source(args[0])
		if err != nil {
			return err
		}
		var name string
		if len(args) == 2 {
			name = args[1]
		}
		raw, _ := cmd.Flags().GetBool("raw")

		o, err := d.orchestrator()
		if err != nil {
			return err
		}
		prepared, err := o.Prepare(cmd.Context(), src)
		if err != nil {
			printCloneHints(os.Stderr, err)
			return err
		}
		defer func() { _ = prepared.Close() }()

		skills, err := o.Discover(prepared, name)
		if err != nil {
			return err
		}
		switch len(skills) {
		case 0:
			fmt.Fprintf(os.Stdout, "%s\n", tui.Warning("No skills found in "+src.Original))
			return nil
		case 1:
		default:
			fmt.Fprint(os.Stdout, skillTable(skills).Render(tui.Width(os.Stdout)))
			return fmt.Errorf("%d skills found in %s; name the one to show", len(skills), src.Original)
		}

		data, err := os.ReadFile(skills[0].SkillFile())
		if err != nil {
			return fmt.Errorf("reading %s: %w", skills[0].SkillFile(), err)
		}
		if raw {
			_, err = os.Stdout.Write(data)
			return err
		}

		out, err := tui.RenderMarkdown(core.SkillBody(data), tui.Width(os.Stdout))
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the file without markdown rendering")
	rootCmd.AddCommand(showCmd)
}
