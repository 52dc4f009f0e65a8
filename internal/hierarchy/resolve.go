package hierarchy

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/groblegark/treeline/internal/jira"
	"github.com/groblegark/treeline/internal/model"
)

// resolveLimit bounds the number of single-key lookups in flight at once.
const resolveLimit = 8

// resolveMissing fetches every key referenced by an edge but absent from the
// registry. Lookups for distinct keys run concurrently and are joined before
// returning. A failed lookup registers a placeholder node with Unavailable
// set rather than aborting the build. Returns the placeholder count.
func resolveMissing(ctx context.Context, repo Repository, g *Graph, reg *registry) int {
	var missing []string
	for _, key := range g.Endpoints() {
		if !reg.has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return 0
	}

	results := make([]*model.Issue, len(missing))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(resolveLimit)
	for i, key := range missing {
		eg.Go(func() error {
			rec, err := repo.GetIssue(ctx, key, jira.DefaultFields)
			if err != nil {
				slog.Warn("issue lookup failed, registering placeholder", "key", key, "error", err)
				results[i] = &model.Issue{Key: key, Unavailable: true}
				return nil
			}
			results[i] = rec.ToModel()
			return nil
		})
	}
	_ = eg.Wait()

	placeholders := 0
	for _, n := range results {
		if n.Unavailable {
			placeholders++
		}
		reg.add(n)
	}
	return placeholders
}
