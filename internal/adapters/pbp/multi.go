package pbp

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/okian/nflstats/internal/adapters/table"
	"github.com/okian/nflstats/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// Expand resolves pattern to the play tables it names, sorted by path.
// A pattern without glob metacharacters names itself even when absent, so
// the open error surfaces from Load.
func Expand(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadPlays, pattern, err)
	}
	if len(matches) == 0 {
		return []string{pattern}, nil
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadAll reads every table in paths concurrently, typically one file per
// season, and concatenates the plays in path order. Duplicates are dropped
// across files, first path wins. The first failing file cancels the rest.
func LoadAll(ctx context.Context, paths []string, opts ...Option) (Result, error) {
	if len(paths) == 1 {
		return Load(ctx, paths[0], opts...)
	}
	d := newDecoder(opts...)

	parts := make([][]model.Play, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			t, err := table.Open(gctx, path, table.WithName(datasetName), table.WithSQLTable(d.sqlTable))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrLoadPlays, err)
			}
			if err := t.Require(RequiredColumns...); err != nil {
				return err
			}
			plays, err := d.decodeRows(t)
			if err != nil {
				return err
			}
			parts[i] = plays
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	n := 0
	for _, p := range parts {
		n += len(p)
	}
	merged := make([]model.Play, 0, n)
	for _, p := range parts {
		merged = append(merged, p...)
	}
	return d.dropDuplicates(ctx, merged), nil
}
