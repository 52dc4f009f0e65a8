package model

// RenderedNode is one entry in the depth-annotated visit sequence produced by
// the tree renderer.
type RenderedNode struct {
	Key   string `json:"key"`
	Depth int    `json:"depth"`
	// IsLast reports whether the node is the last rendered sibling under its
	// parent, for connector drawing.
	IsLast bool   `json:"is_last,omitempty"`
	Node   *Issue `json:"node"`
	// OmittedChildren is the number of children dropped by the display cap.
	// The remainder is counted, never silently discarded.
	OmittedChildren int `json:"omitted_children,omitempty"`
}

// Tree is one rendered root: a group node acting as a section header, or an
// ungrouped top-level issue. Nodes[0] is the root itself at depth 0.
type Tree struct {
	Root    *Issue         `json:"root"`
	IsGroup bool           `json:"is_group,omitempty"`
	// FolderPath is the root-to-leaf folder path the section belongs to, per
	// the folder overlay. Empty means ungrouped (or overlay unavailable).
	FolderPath []string       `json:"folder_path,omitempty"`
	Nodes      []RenderedNode `json:"nodes"`
}

// Forest is the result of a query-driven hierarchy build.
type Forest struct {
	Trees []Tree `json:"trees"`
	// FolderCount is the number of distinct folder paths matched by group
	// sections. Zero when the topology provider was unavailable or unset.
	FolderCount int    `json:"folder_count"`
	Total       int    `json:"total"`
	PassID      string `json:"pass_id,omitempty"`
}

// Rooted is the result of a single-key hierarchy build.
type Rooted struct {
	Nodes []RenderedNode `json:"nodes"`
	// DepthLimited reports that traversal was truncated at the depth bound.
	DepthLimited bool   `json:"depth_limited,omitempty"`
	PassID       string `json:"pass_id,omitempty"`
}
