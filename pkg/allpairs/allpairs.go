// Package allpairs drives one breadth-first search per source node and
// folds every finite pairwise distance into a [stats.Accumulator].
//
// Each source is searched exactly once and all of its targets are read off
// that single traversal, so a run costs O(V) searches of O(V + E) each.
// Unreachable pairs are never recorded.
//
// With more than one worker, sources are distributed over goroutines that
// each own a private [bfs.Searcher] and accumulator; the partial
// accumulators are merged after every worker has finished. The graph is the
// only shared state and it is read-only.
package allpairs

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/degrees/pkg/bfs"
	"github.com/matzehuels/degrees/pkg/graph"
	"github.com/matzehuels/degrees/pkg/stats"
)

// Options configures a run.
type Options struct {
	// Workers is the number of concurrent searches. Values below 2 run
	// sequentially on the calling goroutine.
	Workers int

	// Progress, if set, is called after each source completes with the
	// number of finished sources and the total. It may be called from
	// several goroutines at once.
	Progress func(done, total int)
}

// Run computes the distance histogram of g over all ordered pairs of
// distinct nodes. Cancelling ctx stops the run between sources and returns
// ctx.Err(); the computation has no other failure mode.
func Run(ctx context.Context, g *graph.Graph, opts Options) (*stats.Accumulator, error) {
	n := g.NodeCount()
	if n < 2 {
		return stats.New(), nil
	}
	if opts.Workers < 2 {
		return runSequential(ctx, g, opts)
	}
	return runParallel(ctx, g, opts)
}

func runSequential(ctx context.Context, g *graph.Graph, opts Options) (*stats.Accumulator, error) {
	n := g.NodeCount()
	acc := stats.New()
	s := bfs.NewSearcher(g)
	record := func(_, dist int) { acc.Record(dist) }

	for src := 0; src < n; src++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Visit(src, record)
		if opts.Progress != nil {
			opts.Progress(src+1, n)
		}
	}
	return acc, nil
}

func runParallel(ctx context.Context, g *graph.Graph, opts Options) (*stats.Accumulator, error) {
	n := g.NodeCount()
	workers := min(opts.Workers, n)
	partials := make([]*stats.Accumulator, workers)
	var done atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	sources := make(chan int)

	eg.Go(func() error {
		defer close(sources)
		for src := 0; src < n; src++ {
			select {
			case sources <- src:
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		acc := stats.New()
		partials[w] = acc
		eg.Go(func() error {
			s := bfs.NewSearcher(g)
			record := func(_, dist int) { acc.Record(dist) }
			for src := range sources {
				if err := egCtx.Err(); err != nil {
					return err
				}
				s.Visit(src, record)
				if opts.Progress != nil {
					opts.Progress(int(done.Add(1)), n)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := stats.New()
	for _, p := range partials {
		total.Merge(p)
	}
	return total, nil
}
