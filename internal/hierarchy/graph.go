package hierarchy

import "github.com/groblegark/treeline/internal/model"

// childOrder is the fixed priority in which per-kind adjacency is
// concatenated by Children. It determines render order and is part of the
// output contract.
var childOrder = []model.EdgeKind{model.EdgeGroup, model.EdgeContainment, model.EdgeCoverage}

// adjacency is one edge kind's parent → ordered, duplicate-free child list.
type adjacency struct {
	children map[string][]string
	seen     map[string]map[string]struct{}
}

func newAdjacency() *adjacency {
	return &adjacency{
		children: make(map[string][]string),
		seen:     make(map[string]map[string]struct{}),
	}
}

// add appends child under parent, keeping insertion order and dropping
// duplicates. Returns true when the pair was new.
func (a *adjacency) add(parent, child string) bool {
	set, ok := a.seen[parent]
	if !ok {
		set = make(map[string]struct{})
		a.seen[parent] = set
	}
	if _, dup := set[child]; dup {
		return false
	}
	set[child] = struct{}{}
	a.children[parent] = append(a.children[parent], child)
	return true
}

// Graph merges edges from all relationship kinds into per-node adjacency.
// Append-only within one build pass; not safe for concurrent mutation.
type Graph struct {
	byKind  map[model.EdgeKind]*adjacency
	childOf map[string]struct{}

	endpoints     []string
	endpointSeen  map[string]struct{}
	groupParents  []string
	groupSeen     map[string]struct{}
}

// NewGraph returns an empty graph for a single build pass.
func NewGraph() *Graph {
	g := &Graph{
		byKind:       make(map[model.EdgeKind]*adjacency, len(childOrder)),
		childOf:      make(map[string]struct{}),
		endpointSeen: make(map[string]struct{}),
		groupSeen:    make(map[string]struct{}),
	}
	for _, k := range childOrder {
		g.byKind[k] = newAdjacency()
	}
	return g
}

// AddEdge records an edge. Edges of unknown kinds are ignored.
func (g *Graph) AddEdge(e model.Edge) {
	adj, ok := g.byKind[e.Kind]
	if !ok || e.Parent == "" || e.Child == "" || e.Parent == e.Child {
		return
	}
	adj.add(e.Parent, e.Child)
	g.childOf[e.Child] = struct{}{}
	g.noteEndpoint(e.Parent)
	g.noteEndpoint(e.Child)
	if e.Kind == model.EdgeGroup {
		if _, dup := g.groupSeen[e.Parent]; !dup {
			g.groupSeen[e.Parent] = struct{}{}
			g.groupParents = append(g.groupParents, e.Parent)
		}
	}
}

func (g *Graph) noteEndpoint(key string) {
	if _, dup := g.endpointSeen[key]; dup {
		return
	}
	g.endpointSeen[key] = struct{}{}
	g.endpoints = append(g.endpoints, key)
}

// Children returns the union of the per-kind child lists for key,
// deduplicated, concatenated in fixed GroupLink → Containment → Coverage
// order.
func (g *Graph) Children(key string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, kind := range childOrder {
		for _, c := range g.byKind[kind].children[key] {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// ChildrenOf returns key's children for a single edge kind, in discovery order.
func (g *Graph) ChildrenOf(key string, kind model.EdgeKind) []string {
	adj, ok := g.byKind[kind]
	if !ok {
		return nil
	}
	return adj.children[key]
}

// IsChildSomewhere reports whether key appears as a child in any adjacency map.
func (g *Graph) IsChildSomewhere(key string) bool {
	_, ok := g.childOf[key]
	return ok
}

// IsGroupParent reports whether key appears as the parent of a GroupLink edge.
func (g *Graph) IsGroupParent(key string) bool {
	_, ok := g.groupSeen[key]
	return ok
}

// GroupParents returns GroupLink parents in edge discovery order.
func (g *Graph) GroupParents() []string {
	return g.groupParents
}

// Endpoints returns every key appearing on either side of any edge, in
// discovery order.
func (g *Graph) Endpoints() []string {
	return g.endpoints
}
