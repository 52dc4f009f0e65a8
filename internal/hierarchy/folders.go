package hierarchy

import "github.com/groblegark/treeline/internal/model"

// Overlay maps group nodes onto the external folder topology. It is built
// once per pass from the provider's flat element list and consulted only
// while rendering group headers.
type Overlay struct {
	byID      map[int64]model.FolderElement
	leafByKey map[string]int64
	pathCache map[int64][]string
}

// NewOverlay indexes a flat element list.
func NewOverlay(elements []model.FolderElement) *Overlay {
	o := &Overlay{
		byID:      make(map[int64]model.FolderElement, len(elements)),
		leafByKey: make(map[string]int64),
		pathCache: make(map[int64][]string),
	}
	for _, e := range elements {
		o.byID[e.ID] = e
		if e.IsLeaf() {
			o.leafByKey[e.IssueKey] = e.ID
		}
	}
	return o
}

// PathFor returns the root-to-leaf path of folder names above the element
// with the given id, memoized per id: a folder subtree shared by many issues
// is walked once.
func (o *Overlay) PathFor(id int64) []string {
	if path, ok := o.pathCache[id]; ok {
		return path
	}

	var rev []string
	walked := make(map[int64]struct{})
	cur := id
	for {
		e, ok := o.byID[cur]
		if !ok {
			break
		}
		if _, dup := walked[cur]; dup {
			break
		}
		walked[cur] = struct{}{}
		if !e.IsLeaf() && e.Name != "" {
			rev = append(rev, e.Name)
		}
		if e.ParentID == nil {
			break
		}
		cur = *e.ParentID
	}

	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	o.pathCache[id] = path
	return path
}

// PathForIssue returns the folder path of the leaf element mapped to key.
func (o *Overlay) PathForIssue(key string) ([]string, bool) {
	id, ok := o.leafByKey[key]
	if !ok {
		return nil, false
	}
	return o.PathFor(id), true
}

// PathForGroup resolves the folder a group node belongs to: the group's own
// leaf element if it has one, otherwise the first of its group-linked issues
// that maps to a leaf. A group matching neither falls into the ungrouped
// bucket (nil, false).
func (o *Overlay) PathForGroup(groupKey string, groupChildren []string) ([]string, bool) {
	if path, ok := o.PathForIssue(groupKey); ok {
		return path, true
	}
	for _, child := range groupChildren {
		if path, ok := o.PathForIssue(child); ok {
			return path, true
		}
	}
	return nil, false
}
