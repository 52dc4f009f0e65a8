package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/jira"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Re-show the most recently viewed issue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if st == nil {
			return fmt.Errorf("view requires TREELINE_CACHE_URL to recall the last issue")
		}
		key, err := st.GetLastViewed(ctx, "show")
		if err != nil {
			return fmt.Errorf("no issue viewed yet; run 'tl show <key>' first")
		}

		rec, err := repo.GetIssue(ctx, key, jira.DefaultFields)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		issue := rec.ToModel()
		if jsonOutput {
			printJSON(issue)
		} else {
			printIssueTable(issue)
		}
		return nil
	},
}
