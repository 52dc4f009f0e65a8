// Package jira provides a transport-agnostic interface for a Jira-style issue
// tracker and an HTTP/JSON implementation that talks to its REST API.
package jira

import (
	"context"
	"errors"

	"github.com/groblegark/treeline/internal/model"
)

// ErrNotFound is returned when the tracker has no record for a key.
var ErrNotFound = errors.New("issue not found")

// ErrTopologyUnavailable is returned when the folder topology cannot be
// served: missing topology, permission error, or structure endpoint absent.
// Callers degrade to group-only display.
var ErrTopologyUnavailable = errors.New("folder topology unavailable")

// DefaultFields is the field selector used when the caller passes none.
var DefaultFields = []string{"summary", "status", "priority", "issuetype", "issuelinks", "epic"}

// Client is the interface all treeline commands use to talk to the tracker.
// It is implemented by HTTPClient and by the offline store adapter.
type Client interface {
	// GetIssue fetches a single issue by key. Returns ErrNotFound when the
	// tracker has no record (or access is denied in a way the API reports
	// as absence).
	GetIssue(ctx context.Context, key string, fields []string) (*Issue, error)

	// SearchIssues runs a query and returns up to maxResults matching issues
	// plus the total match count.
	SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*SearchResult, error)

	// GetFolderTopology fetches the flat element list of an external folder
	// structure. Returns ErrTopologyUnavailable when the structure cannot be
	// served.
	GetFolderTopology(ctx context.Context, topologyID string, maxResults int) ([]model.FolderElement, error)

	// Lifecycle
	Close() error
}
