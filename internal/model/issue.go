package model

// StatusCategory buckets tracker statuses into three coarse lifecycle stages.
// Trackers define arbitrary status names ("In Review", "Blocked", ...) but every
// status maps to exactly one category.
type StatusCategory string

const (
	CategoryNew        StatusCategory = "new"
	CategoryInProgress StatusCategory = "in_progress"
	CategoryDone       StatusCategory = "done"
)

// String returns the string representation of the status category.
func (c StatusCategory) String() string {
	return string(c)
}

// IsValid checks whether the category is a known value.
func (c StatusCategory) IsValid() bool {
	switch c {
	case CategoryNew, CategoryInProgress, CategoryDone:
		return true
	}
	return false
}

// CategoryForKey maps a tracker status-category key to a StatusCategory.
// Unknown keys map to CategoryNew; trackers report "indeterminate" for
// anything between open and done.
func CategoryForKey(key string) StatusCategory {
	switch key {
	case "done":
		return CategoryDone
	case "indeterminate":
		return CategoryInProgress
	default:
		return CategoryNew
	}
}

// IssueType categorizes an issue. Types are tracker-defined and extensible;
// only the group type is given special treatment by the hierarchy builder.
type IssueType string

const (
	TypeEpic  IssueType = "Epic"
	TypeStory IssueType = "Story"
	TypeTask  IssueType = "Task"
	TypeBug   IssueType = "Bug"
)

// String returns the string representation of the issue type.
func (t IssueType) String() string {
	return string(t)
}

// IsGroup reports whether the type denotes a group node (an epic): a
// coarse-grained item rendered as a section header rather than a tree root.
func (t IssueType) IsGroup() bool {
	return t == TypeEpic
}

// Issue is a single node in the hierarchy. Identity is the key; an Issue is
// immutable once registered for a build pass.
type Issue struct {
	Key            string         `json:"key"`
	Summary        string         `json:"summary,omitempty"`
	Status         string         `json:"status,omitempty"`
	StatusCategory StatusCategory `json:"status_category,omitempty"`
	Priority       string         `json:"priority,omitempty"`
	Type           IssueType      `json:"type,omitempty"`

	// Unavailable marks a placeholder: the key was referenced by an edge but
	// its record could not be fetched. Placeholders carry whatever partial
	// data a link stub supplied.
	Unavailable bool `json:"unavailable,omitempty"`
}

// IsGroup reports whether the issue is a group node.
func (i *Issue) IsGroup() bool {
	return i.Type.IsGroup()
}
