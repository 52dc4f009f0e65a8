// Package events emits build and view notifications to the event bus.
package events

import (
	"context"
)

// Event topic constants
const (
	TopicIssueViewed     = "treeline.issue.viewed"
	TopicHierarchyBuilt  = "treeline.hierarchy.built"
	TopicExportCompleted = "treeline.export.completed"
)

// Event types

// IssueViewed is emitted when a single issue is shown or used as a tree root.
type IssueViewed struct {
	Key   string `json:"key"`
	Scope string `json:"scope"` // "show" or "tree"
}

// HierarchyBuilt is emitted after a build pass completes.
type HierarchyBuilt struct {
	PassID       string `json:"pass_id"`
	Query        string `json:"query,omitempty"`
	RootKey      string `json:"root_key,omitempty"`
	Nodes        int    `json:"nodes"`
	Placeholders int    `json:"placeholders,omitempty"`
	FolderCount  int    `json:"folder_count,omitempty"`
}

// ExportCompleted is emitted after a snapshot export finishes.
type ExportCompleted struct {
	PassID      string `json:"pass_id"`
	Destination string `json:"destination"`
	Records     int    `json:"records"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
