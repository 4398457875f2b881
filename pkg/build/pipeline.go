package build

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildForwardIndex tokenizes docs concurrently across a bounded worker
// pool — concurrency matches original_source's task-group construction
// model (§5 "task group with bounded in-flight queue"): at most workers
// goroutines run at once, bounded by the errgroup's SetLimit. There is no
// separate queue of pending documents: each document is handed to the
// group as soon as one of the workers slots frees up. workers <= 0 uses
// runtime.GOMAXPROCS(0).
func BuildForwardIndex(ctx context.Context, docs []Document, tok *Tokenizer, workers int) (*ForwardIndex, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	entries := make([]ForwardEntry, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, d := range docs {
		i, d := i, d
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			entries[i] = ForwardEntry{
				ExternalID: d.ExternalID,
				Terms:      tok.Tokenize(d.Text),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ForwardIndex{Entries: entries}, nil
}
