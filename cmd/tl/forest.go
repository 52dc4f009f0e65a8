package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/events"
)

var forestCmd = &cobra.Command{
	Use:   "forest <query>",
	Short: "Build and display the hierarchy of every issue matching a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		maxResults, _ := cmd.Flags().GetInt("max-results")
		if maxResults == 0 {
			maxResults = cfg.MaxResults
		}

		ctx := context.Background()
		forest, err := builder.BuildForest(ctx, query, maxResults)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		nodes := 0
		for _, tree := range forest.Trees {
			nodes += len(tree.Nodes)
		}
		_ = pub.Publish(ctx, events.TopicHierarchyBuilt, events.HierarchyBuilt{
			PassID:      forest.PassID,
			Query:       query,
			Nodes:       nodes,
			FolderCount: forest.FolderCount,
		})

		if jsonOutput {
			printJSON(forest)
		} else {
			printForest(forest)
		}
		return nil
	},
}

func init() {
	forestCmd.Flags().Int("max-results", 0, "maximum query matches to build from (default from TREELINE_MAX_RESULTS)")
}
