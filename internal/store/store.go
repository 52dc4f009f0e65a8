// Package store defines the local cache interface: raw tracker records,
// cached query results, and per-scope last-viewed keys.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/groblegark/treeline/internal/jira"
)

// ErrNotFound is returned when a record, query, or last-viewed entry is
// absent from the cache.
var ErrNotFound = errors.New("not found")

// Record is one cached raw tracker record with its fetch time.
type Record struct {
	Issue     *jira.Issue
	FetchedAt time.Time
}

// Store is the persistence interface for the local cache.
type Store interface {
	// Records
	SaveRecord(ctx context.Context, rec *jira.Issue) error
	GetRecord(ctx context.Context, key string) (*Record, error)

	// Query results (query text to ordered result keys)
	SaveQuery(ctx context.Context, query string, keys []string) error
	GetQuery(ctx context.Context, query string) ([]string, error)

	// Last-viewed key per scope ("tree", "show", ...)
	SetLastViewed(ctx context.Context, scope, key string) error
	GetLastViewed(ctx context.Context, scope string) (string, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
