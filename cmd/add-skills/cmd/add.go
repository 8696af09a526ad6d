package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/tui"
	"github.com/spf13/cobra"
)

// runAdd is the root command: discover the skills in a source and install
// them for one agent.
func runAdd(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	agent, err := d.agent(cmd)
	if err != nil {
		return err
	}
	src, err := d.source(args[0])
	if err != nil {
		return err
	}
	projectDir, err := resolveTargetDir(cmd)
	if err != nil {
		return err
	}
	scope := resolveScope(cmd)
	skillName, _ := cmd.Flags().GetString("skill")
	listOnly, _ := cmd.Flags().GetBool("list")
	yes, _ := cmd.Flags().GetBool("yes")

	o, err := d.orchestrator()
	if err != nil {
		return err
	}

	if src.IsRemote() {
		fmt.Fprintf(os.Stdout, "Cloning %s...\n", src.Original)
	}
	prepared, err := o.Prepare(cmd.Context(), src)
	if err != nil {
		printCloneHints(os.Stderr, err)
		return err
	}
	defer func() {
		if err := prepared.Close(); err != nil {
			d.logger.Warn("removing temporary clone failed", "err", err)
		}
	}()

	skills, err := o.Discover(prepared, skillName)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		fmt.Fprintf(os.Stdout, "%s\n", tui.Warning("No skills found in "+src.Original))
		return nil
	}

	fmt.Fprint(os.Stdout, skillTable(skills).Render(tui.Width(os.Stdout)))
	if listOnly {
		return nil
	}

	if !yes {
		fmt.Fprintln(os.Stdout)
		question := fmt.Sprintf("Install %d skill(s) %s for %s?", len(skills), scopeLabel(scope), agent.Name)
		ok, err := tui.Confirm(cmd.Context(), os.Stdin, os.Stdout, question)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stdout, "%s\n", tui.Warning("Installation cancelled."))
			return nil
		}
	}

	fmt.Fprintln(os.Stdout)
	results := o.InstallSkills(src, skills, agent, scope, projectDir)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stdout, "%s %s - %v\n", tui.Error("Failed:"), r.Skill.Name, r.Err)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %s -> %s\n", tui.Success("Installed:"), r.Skill.Name, r.Path)
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "%s Installed %d/%d skill(s).\n", tui.Success("Done!"), core.CountInstalled(results), len(results))
	return nil
}
