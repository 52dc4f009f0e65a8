package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/events"
)

var treeCmd = &cobra.Command{
	Use:   "tree [<key>]",
	Short: "Show the hierarchy below a single issue",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")
		includeEpic, _ := cmd.Flags().GetBool("include-epic")

		ctx := context.Background()
		key, err := argOrLastViewed(ctx, args, "tree")
		if err != nil {
			return err
		}

		rooted, err := builder.BuildRooted(ctx, key, depth, includeEpic)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rememberLastViewed(ctx, "tree", key)
		_ = pub.Publish(ctx, events.TopicIssueViewed, events.IssueViewed{Key: key, Scope: "tree"})
		_ = pub.Publish(ctx, events.TopicHierarchyBuilt, events.HierarchyBuilt{
			PassID:  rooted.PassID,
			RootKey: key,
			Nodes:   len(rooted.Nodes),
		})

		if jsonOutput {
			printJSON(rooted)
		} else {
			printRooted(rooted)
		}
		return nil
	},
}

// argOrLastViewed resolves the issue key from the command line, falling back
// to the most recently viewed key in the given scope.
func argOrLastViewed(ctx context.Context, args []string, scope string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if st == nil {
		return "", fmt.Errorf("no issue key given and no cache configured to recall the last one")
	}
	key, err := st.GetLastViewed(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("no issue key given and none viewed before")
	}
	return key, nil
}

func rememberLastViewed(ctx context.Context, scope, key string) {
	if st == nil {
		return
	}
	if err := st.SetLastViewed(ctx, scope, key); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record last viewed key: %v\n", err)
	}
}

func init() {
	treeCmd.Flags().Int("depth", 0, "maximum depth to traverse (default 10, max 20)")
	treeCmd.Flags().Bool("include-epic", false, "follow epic grouping edges below the root")
}
