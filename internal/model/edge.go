package model

// EdgeKind categorizes the relationship mechanism an edge came from.
type EdgeKind string

const (
	// EdgeGroup is the single grouping reference (epic link): group key → issue key.
	EdgeGroup EdgeKind = "group"
	// EdgeContainment is a typed link meaning "is the container of".
	EdgeContainment EdgeKind = "containment"
	// EdgeCoverage is a typed link meaning "is satisfied by".
	EdgeCoverage EdgeKind = "coverage"
)

// String returns the string representation of the edge kind.
func (k EdgeKind) String() string {
	return string(k)
}

// Edge is a directed relationship between two issues. Direction is normalized
// at extraction time: Parent always denotes the coarser, containing item no
// matter which side of the raw link carried that role.
type Edge struct {
	Parent string   `json:"parent"`
	Child  string   `json:"child"`
	Kind   EdgeKind `json:"kind"`
}
