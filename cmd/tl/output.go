package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/treeline/internal/model"
	"github.com/groblegark/treeline/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printIssueTable(issue *model.Issue) {
	fmt.Printf("Key:      %s\n", issue.Key)
	fmt.Printf("Summary:  %s\n", issue.Summary)
	fmt.Printf("Type:     %s\n", issue.Type)
	fmt.Printf("Status:   %s\n", ui.RenderStatus(issue.Status, issue.StatusCategory))
	if issue.Priority != "" {
		fmt.Printf("Priority: %s\n", issue.Priority)
	}
	if issue.Unavailable {
		fmt.Printf("Note:     %s\n", ui.RenderMuted("record unavailable, showing partial data"))
	}
}

func printIssueListTable(issues []*model.Issue, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tSTATUS\tSUMMARY")
	for _, i := range issues {
		summary := i.Summary
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", i.Key, i.Type, i.Status, summary)
	}
	w.Flush()
	fmt.Printf("\n%d issues (%d total)\n", len(issues), total)
}

func printForest(forest *model.Forest) {
	for i, tree := range forest.Trees {
		if i > 0 {
			fmt.Println()
		}
		if tree.IsGroup {
			head := tree.Root.Key
			if tree.Root.Summary != "" {
				head += "  " + tree.Root.Summary
			}
			if len(tree.FolderPath) > 0 {
				head += "  " + ui.RenderMuted("["+strings.Join(tree.FolderPath, " / ")+"]")
			}
			fmt.Printf("== %s ==\n", head)
			printNodes(tree.Nodes[1:], 1)
		} else {
			printNodes(tree.Nodes, 0)
		}
	}
	if forest.FolderCount > 0 {
		fmt.Printf("\n%d trees across %d folders (%d issues matched)\n", len(forest.Trees), forest.FolderCount, forest.Total)
	} else {
		fmt.Printf("\n%d trees (%d issues matched)\n", len(forest.Trees), forest.Total)
	}
}

func printRooted(rooted *model.Rooted) {
	printNodes(rooted.Nodes, 0)
	if rooted.DepthLimited {
		fmt.Println(ui.RenderMuted("(depth limit reached; some branches truncated)"))
	}
}

func printNodes(nodes []model.RenderedNode, baseDepth int) {
	for _, line := range treeLines(nodes, baseDepth) {
		fmt.Println(line)
	}
}

// treeLines draws the flat node list as ASCII tree lines. baseDepth is the
// depth of the first displayed level, so section members under a group
// header start without a dangling root connector.
func treeLines(nodes []model.RenderedNode, baseDepth int) []string {
	out := make([]string, 0, len(nodes))
	lastAt := make([]bool, 0, 8)
	for _, n := range nodes {
		depth := n.Depth - baseDepth
		for len(lastAt) <= depth {
			lastAt = append(lastAt, false)
		}
		lastAt[depth] = n.IsLast

		var line strings.Builder
		if depth > 0 {
			for lvl := 1; lvl < depth; lvl++ {
				if lastAt[lvl] {
					line.WriteString("    ")
				} else {
					line.WriteString("│   ")
				}
			}
			if n.IsLast {
				line.WriteString("└── ")
			} else {
				line.WriteString("├── ")
			}
		}
		line.WriteString(nodeLabel(&n))
		out = append(out, line.String())
	}
	return out
}

func nodeLabel(n *model.RenderedNode) string {
	issue := n.Node
	if issue.Unavailable && issue.Summary == "" {
		return n.Key + " " + ui.RenderMuted("(unavailable)")
	}

	label := n.Key
	if issue.Status != "" {
		label += " [" + ui.RenderStatus(issue.Status, issue.StatusCategory) + "]"
	}
	if issue.Summary != "" {
		label += " " + issue.Summary
	}
	if n.OmittedChildren > 0 {
		label += " " + ui.RenderMuted(fmt.Sprintf("(+%d more children)", n.OmittedChildren))
	}
	return label
}
