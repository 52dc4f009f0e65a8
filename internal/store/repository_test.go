package store

import (
	"context"
	"errors"
	"testing"

	"github.com/groblegark/treeline/internal/jira"
)

type stubRemote struct {
	issues   map[string]*jira.Issue
	searches map[string]*jira.SearchResult
	gets     int
}

func (r *stubRemote) GetIssue(ctx context.Context, key string, fields []string) (*jira.Issue, error) {
	r.gets++
	if rec, ok := r.issues[key]; ok {
		return rec, nil
	}
	return nil, jira.ErrNotFound
}

func (r *stubRemote) SearchIssues(ctx context.Context, query string, fields []string, maxResults int) (*jira.SearchResult, error) {
	if res, ok := r.searches[query]; ok {
		return res, nil
	}
	return &jira.SearchResult{}, nil
}

func rec(key string) *jira.Issue {
	return &jira.Issue{Key: key, Fields: jira.IssueFields{Summary: "Summary of " + key}}
}

func TestCachingRepository_WriteThrough(t *testing.T) {
	remote := &stubRemote{issues: map[string]*jira.Issue{"PROJ-1": rec("PROJ-1")}}
	cache := NewMemoryStore()
	repo := NewCachingRepository(remote, cache)

	got, err := repo.GetIssue(context.Background(), "PROJ-1", nil)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if got.Key != "PROJ-1" {
		t.Fatalf("key = %s", got.Key)
	}

	cached, err := cache.GetRecord(context.Background(), "PROJ-1")
	if err != nil {
		t.Fatalf("record not written through: %v", err)
	}
	if cached.Issue.Fields.Summary != "Summary of PROJ-1" {
		t.Errorf("cached summary = %q", cached.Issue.Fields.Summary)
	}
	if cached.FetchedAt.IsZero() {
		t.Error("fetch time not recorded")
	}
}

func TestCachingRepository_SearchCachesQueryAndRecords(t *testing.T) {
	remote := &stubRemote{searches: map[string]*jira.SearchResult{
		"project = PROJ": {Issues: []*jira.Issue{rec("PROJ-1"), rec("PROJ-2")}, Total: 2},
	}}
	cache := NewMemoryStore()
	repo := NewCachingRepository(remote, cache)

	if _, err := repo.SearchIssues(context.Background(), "project = PROJ", nil, 50); err != nil {
		t.Fatalf("SearchIssues: %v", err)
	}

	keys, err := cache.GetQuery(context.Background(), "project = PROJ")
	if err != nil {
		t.Fatalf("query not cached: %v", err)
	}
	if len(keys) != 2 || keys[0] != "PROJ-1" || keys[1] != "PROJ-2" {
		t.Errorf("cached keys = %v", keys)
	}
	if _, err := cache.GetRecord(context.Background(), "PROJ-2"); err != nil {
		t.Errorf("search result not written through: %v", err)
	}
}

func TestOfflineRepository_ServesFromCache(t *testing.T) {
	cache := NewMemoryStore()
	ctx := context.Background()
	if err := cache.SaveRecord(ctx, rec("PROJ-1")); err != nil {
		t.Fatal(err)
	}
	if err := cache.SaveQuery(ctx, "q", []string{"PROJ-1"}); err != nil {
		t.Fatal(err)
	}

	repo := NewOfflineRepository(cache)
	got, err := repo.GetIssue(ctx, "PROJ-1", nil)
	if err != nil || got.Key != "PROJ-1" {
		t.Fatalf("GetIssue = (%v, %v)", got, err)
	}

	res, err := repo.SearchIssues(ctx, "q", nil, 50)
	if err != nil || res.Total != 1 {
		t.Fatalf("SearchIssues = (%+v, %v)", res, err)
	}
}

func TestOfflineRepository_MissMapsToNotFound(t *testing.T) {
	repo := NewOfflineRepository(NewMemoryStore())
	ctx := context.Background()

	if _, err := repo.GetIssue(ctx, "PROJ-404", nil); !errors.Is(err, jira.ErrNotFound) {
		t.Errorf("GetIssue err = %v, want ErrNotFound", err)
	}
	if _, err := repo.SearchIssues(ctx, "unseen", nil, 0); !errors.Is(err, jira.ErrNotFound) {
		t.Errorf("SearchIssues err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_LastViewed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.GetLastViewed(ctx, "tree"); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty scope err = %v, want ErrNotFound", err)
	}
	if err := s.SetLastViewed(ctx, "tree", "PROJ-1"); err != nil {
		t.Fatal(err)
	}
	key, err := s.GetLastViewed(ctx, "tree")
	if err != nil || key != "PROJ-1" {
		t.Errorf("GetLastViewed = (%q, %v)", key, err)
	}
}
