package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List issues matching a query as a flat table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		maxResults, _ := cmd.Flags().GetInt("max-results")
		if maxResults == 0 {
			maxResults = cfg.MaxResults
		}

		res, err := repo.SearchIssues(context.Background(), query, jira.DefaultFields, maxResults)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		issues := make([]*model.Issue, len(res.Issues))
		for i, rec := range res.Issues {
			issues[i] = rec.ToModel()
		}

		if jsonOutput {
			printJSON(issues)
		} else {
			printIssueListTable(issues, res.Total)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum matches to list (default from TREELINE_MAX_RESULTS)")
}
