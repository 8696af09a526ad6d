package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/tui"
	"github.com/spf13/cobra"
)

// joinStrings concatenates string slices with ", " separator.
func joinStrings(ss []string) string {
	return strings.Join(ss, ", ")
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// resolveTargetDir resolves the --dir flag or falls back to cwd.
func resolveTargetDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// resolveScope maps the --global flag to an install scope.
func resolveScope(cmd *cobra.Command) core.InstallScope {
	if global, _ := cmd.Flags().GetBool("global"); global {
		return core.ScopeGlobal
	}
	return core.ScopeLocal
}

func scopeLabel(scope core.InstallScope) string {
	if scope == core.ScopeGlobal {
		return "globally"
	}
	return "locally"
}

// printCloneHints writes the hints of a clone failure to w. Other errors
// are ignored; they are reported by main.
func printCloneHints(w io.Writer, err error) {
	ce, ok := core.IsCloneError(err)
	if !ok {
		return
	}
	fmt.Fprintf(w, "%s\n", tui.Muted("  command: "+ce.Command))
	for _, hint := range ce.Hints {
		fmt.Fprintf(w, "%s\n", tui.Muted("  hint: "+hint))
	}
}

// skillTable renders discovered skills as Name / Description / Globs.
func skillTable(skills []core.Skill) *tui.Table {
	tbl := tui.NewTable("Name", "Description", "Globs")
	for _, s := range skills {
		tbl.Row(s.Name, orDash(s.Description), orDash(joinStrings(s.Globs)))
	}
	return tbl
}
