package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "add-skills <source>",
	Short: "Install agent skills from a repository or local directory",
	Long: `add-skills discovers SKILL.md skills in a source and links them into an
AI coding agent's skills directory.

Sources can be:
  ./local/path                             Local directory
  owner/repo                               GitHub shorthand
  owner/repo#branch                        GitHub shorthand with a branch
  https://github.com/owner/repo            GitHub URL
  https://github.com/owner/repo/tree/b/p   Branch and subdirectory
  https://gitlab.com/group/repo            GitLab URL

Examples:
  add-skills ./my-skills
  add-skills vercel-labs/skills
  add-skills owner/repo -g -a cursor
  add-skills owner/repo --skill pdf-tools --yes`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAdd,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("add-skills %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.Flags().BoolP("global", "g", false, "Install into the agent's global skills directory")
	rootCmd.Flags().StringP("agent", "a", "", "Target agent (default from config, else claude-code)")
	rootCmd.Flags().StringP("skill", "s", "", "Install only the named skill")
	rootCmd.Flags().BoolP("list", "l", false, "List discovered skills without installing")
	rootCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.Flags().StringP("dir", "d", "", "Project directory for local installs (default: current directory)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context so in-flight clones stop and temporary directories are removed.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
