package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/groblegark/treeline/internal/idgen"
	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/model"
)

// Depth bounds for rooted builds.
const (
	DefaultMaxDepth = 10
	MinMaxDepth     = 1
	MaxMaxDepth     = 20
)

// Repository is the issue-lookup collaborator. Implemented by jira.HTTPClient
// and by the offline store adapter.
type Repository interface {
	GetIssue(ctx context.Context, key string, fields []string) (*jira.Issue, error)
	SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*jira.SearchResult, error)
}

// TopologyProvider serves the optional external folder grouping.
type TopologyProvider interface {
	GetFolderTopology(ctx context.Context, topologyID string, maxResults int) ([]model.FolderElement, error)
}

// Options tunes a Builder. Zero values select defaults; a nil Topology (or
// empty TopologyID) disables the folder overlay.
type Options struct {
	Topology   TopologyProvider
	TopologyID string
	ChildCap   int
}

// Builder runs hierarchy build passes. All pass state (adjacency, node
// registry, visited set) is private to a single call; a Builder may serve
// concurrent calls.
type Builder struct {
	repo       Repository
	topo       TopologyProvider
	topologyID string
	childCap   int
}

// NewBuilder returns a Builder reading from repo.
func NewBuilder(repo Repository, opts Options) *Builder {
	return &Builder{
		repo:       repo,
		topo:       opts.Topology,
		topologyID: opts.TopologyID,
		childCap:   opts.ChildCap,
	}
}

// BuildForest assembles the hierarchy of every issue matched by query.
// Group nodes become section headers annotated with folder paths when the
// topology overlay is available; overlay failures degrade to zero folders.
func (b *Builder) BuildForest(ctx context.Context, query string, maxResults int) (*model.Forest, error) {
	passID, _ := idgen.Generate()

	res, err := b.repo.SearchIssues(ctx, query, jira.DefaultFields, maxResults)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	g := NewGraph()
	reg := newRegistry()
	for _, rec := range res.Issues {
		reg.add(rec.ToModel())
	}
	for _, rec := range res.Issues {
		ext := Extract(rec)
		for _, e := range ext.Edges {
			g.AddEdge(e)
		}
		for _, stub := range ext.Stubs {
			reg.add(stub)
		}
	}

	if n := resolveMissing(ctx, b.repo, g, reg); n > 0 {
		slog.Warn("hierarchy built with partial data", "pass_id", passID, "placeholders", n)
	}

	overlay := b.loadOverlay(ctx, passID)

	groups, roots := selectForestRoots(res.Issues, g, reg)
	r := newRenderer(g, reg, b.childCap, -1)

	forest := &model.Forest{Total: res.Total, PassID: passID}
	folderPaths := make(map[string]struct{})
	for _, key := range groups {
		nodes := r.render(key)
		if nodes == nil {
			continue
		}
		tree := model.Tree{Root: reg.get(key), IsGroup: true, Nodes: nodes}
		if overlay != nil {
			if path, ok := overlay.PathForGroup(key, g.ChildrenOf(key, model.EdgeGroup)); ok {
				tree.FolderPath = path
				folderPaths[strings.Join(path, " / ")] = struct{}{}
			}
		}
		forest.Trees = append(forest.Trees, tree)
	}
	for _, key := range roots {
		nodes := r.render(key)
		if nodes == nil {
			continue
		}
		forest.Trees = append(forest.Trees, model.Tree{Root: reg.get(key), Nodes: nodes})
	}
	forest.FolderCount = len(folderPaths)
	return forest, nil
}

// BuildRooted assembles the hierarchy below a single starting key, expanding
// via depth-counted recursive fetch. GroupLink edges are followed only when
// includeEpic is set. Returns an error wrapping jira.ErrNotFound when the
// starting key itself cannot be resolved.
func (b *Builder) BuildRooted(ctx context.Context, rootKey string, maxDepth int, includeEpic bool) (*model.Rooted, error) {
	passID, _ := idgen.Generate()
	maxDepth = clampDepth(maxDepth)

	g := NewGraph()
	reg := newRegistry()
	if err := b.expandRooted(ctx, rootKey, maxDepth, includeEpic, g, reg); err != nil {
		return nil, err
	}

	r := newRenderer(g, reg, b.childCap, maxDepth)
	nodes := r.render(rootKey)
	return &model.Rooted{Nodes: nodes, DepthLimited: r.depthLimited, PassID: passID}, nil
}

// expandRooted drives the recursive-fetch procedure with an explicit
// depth-counted worklist: enqueueing stops once the depth bound is reached,
// so fan-out is bounded without recursion.
func (b *Builder) expandRooted(ctx context.Context, rootKey string, maxDepth int, includeEpic bool, g *Graph, reg *registry) error {
	queue := []expandItem{{key: rootKey, depth: 0}}
	queued := map[string]struct{}{rootKey: {}}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if reg.has(it.key) && it.depth > 0 {
			continue
		}

		rec, err := b.repo.GetIssue(ctx, it.key, jira.DefaultFields)
		if err != nil {
			if it.depth == 0 {
				return fmt.Errorf("root %s: %w", rootKey, err)
			}
			slog.Warn("issue lookup failed, registering placeholder", "key", it.key, "error", err)
			reg.add(&model.Issue{Key: it.key, Unavailable: true})
			continue
		}
		node := rec.ToModel()
		reg.add(node)

		ext := Extract(rec)
		for _, stub := range ext.Stubs {
			reg.add(stub)
		}
		for _, e := range ext.Edges {
			if e.Kind == model.EdgeGroup && !includeEpic {
				continue
			}
			g.AddEdge(e)
			// Expand downward only: the other endpoint matters when this
			// record is its parent.
			if e.Parent == it.key {
				enqueue(&queue, queued, e.Child, it.depth+1, maxDepth)
			}
		}

		// A group node's grouped issues are only discoverable from the issue
		// side; pull them in with a grouping query.
		if includeEpic && node.IsGroup() && it.depth < maxDepth {
			b.expandGroup(ctx, it.key, it.depth, maxDepth, g, reg, &queue, queued)
		}
	}
	return nil
}

// expandGroup fetches the issues grouped under an epic and records their
// GroupLink edges. Failures degrade to whatever edges are already known.
func (b *Builder) expandGroup(ctx context.Context, groupKey string, depth, maxDepth int, g *Graph, reg *registry, queue *[]expandItem, queued map[string]struct{}) {
	res, err := b.repo.SearchIssues(ctx, fmt.Sprintf("\"Epic Link\" = %s", groupKey), jira.DefaultFields, 0)
	if err != nil {
		slog.Warn("group expansion failed", "key", groupKey, "error", err)
		return
	}
	for _, rec := range res.Issues {
		g.AddEdge(model.Edge{Parent: groupKey, Child: rec.Key, Kind: model.EdgeGroup})
		enqueue(queue, queued, rec.Key, depth+1, maxDepth)
	}
}

func enqueue(queue *[]expandItem, queued map[string]struct{}, key string, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	if _, dup := queued[key]; dup {
		return
	}
	queued[key] = struct{}{}
	*queue = append(*queue, expandItem{key: key, depth: depth})
}

// loadOverlay fetches and indexes the folder topology, or returns nil when
// the overlay is unconfigured or unavailable. Unavailability is absorbed: the
// forest degrades to group-only display with zero folders.
func (b *Builder) loadOverlay(ctx context.Context, passID string) *Overlay {
	if b.topo == nil || b.topologyID == "" {
		return nil
	}
	elements, err := b.topo.GetFolderTopology(ctx, b.topologyID, 0)
	if err != nil {
		slog.Warn("folder topology unavailable, skipping overlay", "pass_id", passID, "topology_id", b.topologyID, "error", err)
		return nil
	}
	return NewOverlay(elements)
}

func clampDepth(d int) int {
	switch {
	case d == 0:
		return DefaultMaxDepth
	case d < MinMaxDepth:
		return MinMaxDepth
	case d > MaxMaxDepth:
		return MaxMaxDepth
	}
	return d
}
