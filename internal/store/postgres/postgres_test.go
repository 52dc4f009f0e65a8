package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func TestQuerySaveRecord(t *testing.T) {
	db, mock := newMockDB(t)
	rec := &jira.Issue{Key: "PROJ-1", Fields: jira.IssueFields{Summary: "A task"}}
	payload, _ := json.Marshal(rec)

	mock.ExpectExec("INSERT INTO records").
		WithArgs("PROJ-1", payload, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := querySaveRecord(context.Background(), db, rec); err != nil {
		t.Fatalf("querySaveRecord: %v", err)
	}
}

func TestQueryGetRecord(t *testing.T) {
	db, mock := newMockDB(t)
	rec := &jira.Issue{Key: "PROJ-1", Fields: jira.IssueFields{Summary: "A task"}}
	payload, _ := json.Marshal(rec)
	fetched := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("SELECT payload, fetched_at FROM records WHERE key = \\$1").
		WithArgs("PROJ-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "fetched_at"}).AddRow(payload, fetched))

	got, err := queryGetRecord(context.Background(), db, "PROJ-1")
	if err != nil {
		t.Fatalf("queryGetRecord: %v", err)
	}
	if got.Issue.Key != "PROJ-1" || got.Issue.Fields.Summary != "A task" {
		t.Errorf("record = %+v", got.Issue)
	}
	if !got.FetchedAt.Equal(fetched) {
		t.Errorf("fetched_at = %v, want %v", got.FetchedAt, fetched)
	}
}

func TestQueryGetRecord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT payload, fetched_at FROM records WHERE key = \\$1").
		WithArgs("PROJ-404").
		WillReturnError(sql.ErrNoRows)

	if _, err := queryGetRecord(context.Background(), db, "PROJ-404"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestQuerySaveAndGetQuery(t *testing.T) {
	db, mock := newMockDB(t)
	keys := []string{"PROJ-1", "PROJ-2"}

	mock.ExpectExec("INSERT INTO query_cache").
		WithArgs("project = PROJ", pq.Array(keys), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT keys FROM query_cache WHERE query = \\$1").
		WithArgs("project = PROJ").
		WillReturnRows(sqlmock.NewRows([]string{"keys"}).AddRow("{PROJ-1,PROJ-2}"))

	ctx := context.Background()
	if err := querySaveQuery(ctx, db, "project = PROJ", keys); err != nil {
		t.Fatalf("querySaveQuery: %v", err)
	}
	got, err := queryGetQuery(ctx, db, "project = PROJ")
	if err != nil {
		t.Fatalf("queryGetQuery: %v", err)
	}
	if len(got) != 2 || got[0] != "PROJ-1" || got[1] != "PROJ-2" {
		t.Errorf("keys = %v", got)
	}
}

func TestQueryLastViewed(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO last_viewed").
		WithArgs("tree", "PROJ-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT key FROM last_viewed WHERE scope = \\$1").
		WithArgs("tree").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("PROJ-1"))

	ctx := context.Background()
	if err := querySetLastViewed(ctx, db, "tree", "PROJ-1"); err != nil {
		t.Fatalf("querySetLastViewed: %v", err)
	}
	key, err := queryGetLastViewed(ctx, db, "tree")
	if err != nil || key != "PROJ-1" {
		t.Fatalf("queryGetLastViewed = (%q, %v)", key, err)
	}
}

func TestQueryGetLastViewed_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT key FROM last_viewed WHERE scope = \\$1").
		WithArgs("show").
		WillReturnError(sql.ErrNoRows)

	if _, err := queryGetLastViewed(context.Background(), db, "show"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestRunInTransaction_CommitAndRollback(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO last_viewed").
		WithArgs("tree", "PROJ-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RunInTransaction(ctx, func(tx store.Store) error {
		return tx.SetLastViewed(ctx, "tree", "PROJ-1")
	})
	if err != nil {
		t.Fatalf("commit path: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = s.RunInTransaction(ctx, func(tx store.Store) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("rollback path err = %v, want boom", err)
	}
}
