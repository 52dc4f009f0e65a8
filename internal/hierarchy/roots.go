package hierarchy

import (
	"github.com/groblegark/treeline/internal/jira"
)

// selectForestRoots picks traversal entry points for a query-driven build.
// Group nodes become section headers, ordered by first appearance (query
// result first, then GroupLink discovery order). Ungrouped roots are result
// keys that are nobody's child and not group nodes, in result order. When the
// result holds no group nodes at all, the ungrouped roots are the only roots.
func selectForestRoots(result []*jira.Issue, g *Graph, reg *registry) (groups, roots []string) {
	groupSeen := make(map[string]struct{})
	noteGroup := func(key string) {
		if _, dup := groupSeen[key]; dup {
			return
		}
		groupSeen[key] = struct{}{}
		groups = append(groups, key)
	}

	for _, rec := range result {
		if node := reg.get(rec.Key); node != nil && node.IsGroup() {
			noteGroup(rec.Key)
		}
	}
	for _, key := range g.GroupParents() {
		noteGroup(key)
	}

	for _, rec := range result {
		if _, isGroup := groupSeen[rec.Key]; isGroup {
			continue
		}
		if g.IsChildSomewhere(rec.Key) {
			continue
		}
		roots = append(roots, rec.Key)
	}
	return groups, roots
}

// expandItem is one entry in the rooted-mode fetch worklist.
type expandItem struct {
	key   string
	depth int
}
