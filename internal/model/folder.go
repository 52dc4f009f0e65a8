package model

// FolderElement is one element of the external folder topology: an
// independently maintained tree used to group issues for display, orthogonal
// to the relationship graph. Elements with an issue key are leaves; the rest
// are folders. ParentID chains terminate at nil (root).
type FolderElement struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	ParentID *int64 `json:"parent_id,omitempty"`
	IssueKey string `json:"issue_key,omitempty"`
}

// IsLeaf reports whether the element maps to an issue.
func (e *FolderElement) IsLeaf() bool {
	return e.IssueKey != ""
}
