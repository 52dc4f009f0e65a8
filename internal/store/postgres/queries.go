package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/store"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func querySaveRecord(ctx context.Context, db executor, rec *jira.Issue) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.Key, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO records (key, payload, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET payload = $2, fetched_at = $3`,
		rec.Key, payload, time.Now().UTC(),
	)
	return err
}

func queryGetRecord(ctx context.Context, db executor, key string) (*store.Record, error) {
	row := db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM records WHERE key = $1`, key)

	var payload []byte
	var fetchedAt time.Time
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	var issue jira.Issue
	if err := json.Unmarshal(payload, &issue); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", key, err)
	}
	return &store.Record{Issue: &issue, FetchedAt: fetchedAt}, nil
}

func querySaveQuery(ctx context.Context, db executor, query string, keys []string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO query_cache (query, keys, cached_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (query) DO UPDATE SET keys = $2, cached_at = $3`,
		query, pq.Array(keys), time.Now().UTC(),
	)
	return err
}

func queryGetQuery(ctx context.Context, db executor, query string) ([]string, error) {
	row := db.QueryRowContext(ctx,
		`SELECT keys FROM query_cache WHERE query = $1`, query)

	var keys pq.StringArray
	if err := row.Scan(&keys); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return []string(keys), nil
}

func querySetLastViewed(ctx context.Context, db executor, scope, key string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO last_viewed (scope, key, viewed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope) DO UPDATE SET key = $2, viewed_at = $3`,
		scope, key, time.Now().UTC(),
	)
	return err
}

func queryGetLastViewed(ctx context.Context, db executor, scope string) (string, error) {
	row := db.QueryRowContext(ctx,
		`SELECT key FROM last_viewed WHERE scope = $1`, scope)

	var key string
	if err := row.Scan(&key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return key, nil
}
