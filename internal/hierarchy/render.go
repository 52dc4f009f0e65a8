package hierarchy

import "github.com/groblegark/treeline/internal/model"

// DefaultChildCap is the default display cap on children per node.
const DefaultChildCap = 25

// renderer performs the cycle-safe depth-first walk. One renderer spans a
// whole build call: the visited set is global, so a key reached through a
// second parent is never emitted again (first discovery wins), which flattens
// a DAG into a tree.
type renderer struct {
	g        *Graph
	reg      *registry
	visited  map[string]struct{}
	childCap int
	maxDepth int // < 0 means unbounded

	depthLimited bool
}

func newRenderer(g *Graph, reg *registry, childCap, maxDepth int) *renderer {
	if childCap <= 0 {
		childCap = DefaultChildCap
	}
	return &renderer{
		g:        g,
		reg:      reg,
		visited:  make(map[string]struct{}),
		childCap: childCap,
		maxDepth: maxDepth,
	}
}

// render walks the subtree rooted at key. Returns nil when the root was
// already rendered through an earlier entry point.
func (r *renderer) render(key string) []model.RenderedNode {
	if _, done := r.visited[key]; done {
		return nil
	}
	return r.visit(key, 0, true, nil)
}

func (r *renderer) visit(key string, depth int, isLast bool, out []model.RenderedNode) []model.RenderedNode {
	r.visited[key] = struct{}{}

	node := r.reg.get(key)
	if node == nil {
		node = &model.Issue{Key: key, Unavailable: true}
	}
	self := len(out)
	out = append(out, model.RenderedNode{Key: key, Depth: depth, IsLast: isLast, Node: node})

	pending := r.unvisitedChildren(key)
	if len(pending) == 0 {
		return out
	}
	if r.maxDepth >= 0 && depth >= r.maxDepth {
		r.depthLimited = true
		return out
	}
	if len(pending) > r.childCap {
		out[self].OmittedChildren = len(pending) - r.childCap
		pending = pending[:r.childCap]
	}

	// A child enumerated here can be consumed by an earlier sibling's
	// subtree, so last-sibling status is only known after the loop.
	lastChild := -1
	for _, c := range pending {
		if _, done := r.visited[c]; done {
			continue
		}
		lastChild = len(out)
		out = r.visit(c, depth+1, false, out)
	}
	if lastChild >= 0 {
		out[lastChild].IsLast = true
	}
	return out
}

func (r *renderer) unvisitedChildren(key string) []string {
	var pending []string
	for _, c := range r.g.Children(key) {
		if _, done := r.visited[c]; !done {
			pending = append(pending, c)
		}
	}
	return pending
}
