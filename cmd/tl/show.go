package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/events"
	"github.com/groblegark/treeline/internal/jira"
)

var showCmd = &cobra.Command{
	Use:   "show [<key>]",
	Short: "Show a single issue",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		key, err := argOrLastViewed(ctx, args, "show")
		if err != nil {
			return err
		}

		rec, err := repo.GetIssue(ctx, key, jira.DefaultFields)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rememberLastViewed(ctx, "show", key)
		_ = pub.Publish(ctx, events.TopicIssueViewed, events.IssueViewed{Key: key, Scope: "show"})

		issue := rec.ToModel()
		if jsonOutput {
			printJSON(issue)
		} else {
			printIssueTable(issue)
		}
		return nil
	},
}
