package jira

import (
	"encoding/json"

	"github.com/groblegark/treeline/internal/model"
)

// Issue is a raw tracker record as returned by the REST API.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the selected fields of a record. Linked-issue payloads
// reuse the same shape with most fields absent.
type IssueFields struct {
	Summary   string  `json:"summary,omitempty"`
	Status    *Status `json:"status,omitempty"`
	Priority  *Named  `json:"priority,omitempty"`
	IssueType *Named  `json:"issuetype,omitempty"`
	Links     []Link  `json:"issuelinks,omitempty"`

	// Epic is the grouping reference. Its wire shape varies by tracker
	// version: a plain key string, an object carrying a "key" field, or an
	// opaque scalar only recoverable via string coercion. It is decoded once
	// at extraction time, never branched on downstream.
	Epic json.RawMessage `json:"epic,omitempty"`
}

// Status is an issue status with its coarse category.
type Status struct {
	Name     string          `json:"name,omitempty"`
	Category *StatusCategory `json:"statusCategory,omitempty"`
}

// StatusCategory is the tracker's three-valued status bucket.
type StatusCategory struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
}

// Named is an id/name pair (issue types, priorities).
type Named struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// LinkType identifies a typed link and its directional phrases.
type LinkType struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Inward  string `json:"inward,omitempty"`
	Outward string `json:"outward,omitempty"`
}

// Link is one typed link entry. Exactly one of InwardIssue/OutwardIssue is
// set, depending on which side of the link this record is on.
type Link struct {
	ID           string       `json:"id,omitempty"`
	Type         LinkType     `json:"type"`
	InwardIssue  *LinkedIssue `json:"inwardIssue,omitempty"`
	OutwardIssue *LinkedIssue `json:"outwardIssue,omitempty"`
}

// LinkedIssue is the partial payload embedded in a link: the other endpoint's
// key, possibly with summary/status already included.
type LinkedIssue struct {
	Key    string       `json:"key"`
	Fields *IssueFields `json:"fields,omitempty"`
}

// SearchResult holds one page of query matches.
type SearchResult struct {
	Issues []*Issue `json:"issues"`
	Total  int      `json:"total"`
}

// ToModel converts a raw record into an immutable hierarchy node.
func (i *Issue) ToModel() *model.Issue {
	out := &model.Issue{Key: i.Key, Summary: i.Fields.Summary}
	if s := i.Fields.Status; s != nil {
		out.Status = s.Name
		if s.Category != nil {
			out.StatusCategory = model.CategoryForKey(s.Category.Key)
		}
	}
	if p := i.Fields.Priority; p != nil {
		out.Priority = p.Name
	}
	if t := i.Fields.IssueType; t != nil {
		out.Type = model.IssueType(t.Name)
	}
	return out
}

// ToModel converts a linked-issue stub into a node carrying whatever partial
// data the link payload embedded.
func (l *LinkedIssue) ToModel() *model.Issue {
	stub := &Issue{Key: l.Key}
	if l.Fields != nil {
		stub.Fields = *l.Fields
	}
	return stub.ToModel()
}
