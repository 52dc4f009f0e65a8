package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/groblegark/treeline/internal/jira"
)

// remote is the subset of the tracker client the caching adapter wraps.
type remote interface {
	GetIssue(ctx context.Context, key string, fields []string) (*jira.Issue, error)
	SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*jira.SearchResult, error)
}

// CachingRepository serves lookups from the remote tracker and writes every
// result through to the local cache. Cache write failures are logged, never
// surfaced: the cache is an accelerator, not a source of truth.
type CachingRepository struct {
	remote remote
	store  Store
}

// NewCachingRepository wraps remote with write-through caching into store.
func NewCachingRepository(remote remote, store Store) *CachingRepository {
	return &CachingRepository{remote: remote, store: store}
}

func (r *CachingRepository) GetIssue(ctx context.Context, key string, fields []string) (*jira.Issue, error) {
	rec, err := r.remote.GetIssue(ctx, key, fields)
	if err != nil {
		return nil, err
	}
	if err := r.store.SaveRecord(ctx, rec); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return rec, nil
}

func (r *CachingRepository) SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*jira.SearchResult, error) {
	res, err := r.remote.SearchIssues(ctx, query, fields, maxResults)
	if err != nil {
		return nil, err
	}

	// Records and the query mapping land together or not at all, so a cached
	// query never points at keys the cache does not hold.
	keys := make([]string, len(res.Issues))
	txErr := r.store.RunInTransaction(ctx, func(tx Store) error {
		for i, rec := range res.Issues {
			keys[i] = rec.Key
			if err := tx.SaveRecord(ctx, rec); err != nil {
				return err
			}
		}
		return tx.SaveQuery(ctx, query, keys)
	})
	if txErr != nil {
		slog.Warn("cache write failed", "query", query, "error", txErr)
	}
	return res, nil
}

// OfflineRepository serves lookups from the local cache only. Misses map to
// jira.ErrNotFound so hierarchy builds degrade exactly as they do when the
// remote cannot resolve a key.
type OfflineRepository struct {
	store Store
}

// NewOfflineRepository returns a repository reading only from store.
func NewOfflineRepository(store Store) *OfflineRepository {
	return &OfflineRepository{store: store}
}

func (r *OfflineRepository) GetIssue(ctx context.Context, key string, fields []string) (*jira.Issue, error) {
	rec, err := r.store.GetRecord(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%s not cached: %w", key, jira.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec.Issue, nil
}

func (r *OfflineRepository) SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*jira.SearchResult, error) {
	keys, err := r.store.GetQuery(ctx, query)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("query not cached: %w", jira.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	res := &jira.SearchResult{}
	for _, key := range keys {
		rec, err := r.store.GetRecord(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("cached record %s: %w", key, err)
		}
		res.Issues = append(res.Issues, rec.Issue)
	}
	res.Total = len(res.Issues)
	if maxResults > 0 && len(res.Issues) > maxResults {
		res.Issues = res.Issues[:maxResults]
	}
	return res, nil
}
