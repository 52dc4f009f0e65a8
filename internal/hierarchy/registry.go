package hierarchy

import "github.com/groblegark/treeline/internal/model"

// registry is the append-only node table of one build pass. A key appears at
// most once; the first registration wins (working set before stubs before
// fetches).
type registry struct {
	nodes map[string]*model.Issue
	order []string
}

func newRegistry() *registry {
	return &registry{nodes: make(map[string]*model.Issue)}
}

// add registers a node unless its key is already present. Returns true when
// the node was added.
func (r *registry) add(n *model.Issue) bool {
	if n == nil || n.Key == "" {
		return false
	}
	if _, dup := r.nodes[n.Key]; dup {
		return false
	}
	r.nodes[n.Key] = n
	r.order = append(r.order, n.Key)
	return true
}

func (r *registry) get(key string) *model.Issue {
	return r.nodes[key]
}

func (r *registry) has(key string) bool {
	_, ok := r.nodes[key]
	return ok
}
