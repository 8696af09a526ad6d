package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/tui"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [keyword]",
	Short: "Search the curated skill registry",
	Long: `Search the curated skill registry by name, description and tags.

Without a keyword the whole registry is listed. Matching is a
case-insensitive substring test.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		url, _ := cmd.Flags().GetString("registry-url")
		if url == "" {
			url = d.cfg.RegistryURL
		}
		var keyword string
		if len(args) == 1 {
			keyword = strings.TrimSpace(args[0])
		}

		entries, err := core.NewRegistryClient(url, d.logger).Fetch(cmd.Context())
		if err != nil {
			return err
		}

		results := core.SearchRegistry(entries, keyword)
		if len(results) == 0 {
			if keyword != "" {
				fmt.Fprintf(os.Stdout, "No skills found matching '%s'.\n", keyword)
			} else {
				fmt.Fprintln(os.Stdout, "No skills found in registry.")
			}
			return nil
		}

		tbl := tui.NewTable("Name", "Repository", "Description")
		for _, e := range results {
			tbl.Row(e.Name, e.Repo, e.Description)
		}
		fmt.Fprint(os.Stdout, tbl.Render(tui.Width(os.Stdout)))
		return nil
	},
}

func init() {
	findCmd.Flags().String("registry-url", "", "Registry URL (default from config)")
	rootCmd.AddCommand(findCmd)
}
