package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/degrees/pkg/allpairs"
	"github.com/matzehuels/degrees/pkg/bfs"
	"github.com/matzehuels/degrees/pkg/cache"
	pkgerrors "github.com/matzehuels/degrees/pkg/errors"
	"github.com/matzehuels/degrees/pkg/graph"
	"github.com/matzehuels/degrees/pkg/httputil"
	"github.com/matzehuels/degrees/pkg/io"
	"github.com/matzehuels/degrees/pkg/observability"
	"github.com/matzehuels/degrees/pkg/report"
)

// keyTypeReport labels report entries in cache hooks.
const keyTypeReport = "report"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLReport,
	}
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Report   *report.Report
	CacheHit bool
}

// Input is a loaded edge list together with the digest of its raw bytes.
type Input struct {
	Edges  *io.EdgeList
	Graph  *graph.Graph
	Digest string
}

// Execute runs load → compute → report, serving the report from cache when
// an identical run was stored before.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	data, err := readInput(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	digest := cache.Hash(data)
	key := r.Keyer.ReportKey(digest, opts.ReportKeyOpts())

	if !opts.Refresh {
		if rep, ok := r.cached(ctx, key, logger); ok {
			logger.Debug("report served from cache", "digest", digest[:12])
			return &Result{Report: rep, CacheHit: true}, nil
		}
	}

	in, err := r.load(ctx, opts, data, digest)
	if err != nil {
		return nil, err
	}

	rep, err := r.compute(ctx, opts, in)
	if err != nil {
		return nil, err
	}

	if payload, err := report.Marshal(rep); err == nil {
		if err := r.Cache.Set(ctx, key, payload, r.TTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeReport, len(payload))
		}
	}

	return &Result{Report: rep}, nil
}

// Load reads and parses the input without computing anything.
func (r *Runner) Load(ctx context.Context, opts Options) (*Input, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	data, err := readInput(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	return r.load(ctx, opts, data, cache.Hash(data))
}

// Distance loads the input and returns the hop distance between two node
// labels. The bool is false when to is unreachable from from.
func (r *Runner) Distance(ctx context.Context, opts Options, from, to string) (int, bool, error) {
	in, err := r.Load(ctx, opts)
	if err != nil {
		return 0, false, err
	}
	src, ok := in.Edges.ID(from)
	if !ok {
		return 0, false, pkgerrors.New(pkgerrors.ErrCodeNotFound, "unknown node %q", from)
	}
	dst, ok := in.Edges.ID(to)
	if !ok {
		return 0, false, pkgerrors.New(pkgerrors.ErrCodeNotFound, "unknown node %q", to)
	}
	d, ok := bfs.Distance(in.Graph, src, dst)
	return d, ok, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) load(ctx context.Context, opts Options, data []byte, digest string) (*Input, error) {
	logger := r.logger(opts)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Path)
	start := time.Now()

	el, err := io.ReadEdgeList(bytes.NewReader(data), opts.ReadOptions())
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Path, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("load %s: %w", opts.Path, err)
	}

	var g *graph.Graph
	if opts.Validate {
		g, err = graph.NewValidated(el.Adjacency)
		if err != nil {
			hooks.OnLoadComplete(ctx, opts.Path, 0, 0, time.Since(start), err)
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidGraph, err, "load %s", opts.Path)
		}
	} else {
		g = el.Graph()
	}

	hooks.OnLoadComplete(ctx, opts.Path, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	logger.Info("loaded edge list",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"lines", el.Lines,
		"duration", time.Since(start).Round(time.Millisecond))

	return &Input{Edges: el, Graph: g, Digest: digest}, nil
}

func (r *Runner) compute(ctx context.Context, opts Options, in *Input) (*report.Report, error) {
	logger := r.logger(opts)
	hooks := observability.Pipeline()

	symmetric := in.Graph.IsSymmetric()
	if !symmetric {
		logger.Warn("graph is not symmetric; distances follow edge direction (use --undirected to treat edges as two-way)")
	}

	hooks.OnComputeStart(ctx, in.Graph.NodeCount(), opts.Workers)
	start := time.Now()
	acc, err := allpairs.Run(ctx, in.Graph, allpairs.Options{
		Workers:  opts.Workers,
		Progress: opts.Progress,
	})
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnComputeComplete(ctx, 0, elapsed, err)
		return nil, err
	}
	hooks.OnComputeComplete(ctx, acc.Count(), elapsed, nil)

	logger.Info("computed distances",
		"pairs", acc.Count(),
		"max", acc.Max(),
		"workers", opts.Workers,
		"duration", elapsed.Round(time.Millisecond))

	return report.New(acc, report.Meta{
		Input:      opts.Path,
		Digest:     in.Digest,
		Nodes:      in.Graph.NodeCount(),
		Edges:      in.Graph.EdgeCount(),
		Symmetric:  symmetric,
		Undirected: opts.Undirected,
		Workers:    opts.Workers,
		Duration:   elapsed,
		Threshold:  *opts.Threshold,
	}), nil
}

// cached returns a stored report for key. Cache failures are logged and
// treated as misses.
func (r *Runner) cached(ctx context.Context, key string, logger *log.Logger) (*report.Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeReport)
		return nil, false
	}
	rep, err := report.Unmarshal(data)
	if err != nil {
		logger.Debug("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeReport)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeReport)
	return rep, true
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// readInput returns the raw edge-list bytes from a local file or an
// http(s) URL.
func readInput(ctx context.Context, path string) ([]byte, error) {
	if httputil.IsRemote(path) {
		return httputil.Fetch(ctx, nil, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
