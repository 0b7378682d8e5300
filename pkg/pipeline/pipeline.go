// Package pipeline runs the separation analysis end to end.
//
// It wires the edge-list loader, the all-pairs driver and the report cache
// together so that the CLI (and any other host) gets identical behavior
// from one call.
//
// # Stages
//
//  1. Load: read the edge list, hash it, map labels to dense ids
//  2. Compute: one BFS per node, fold distances into an accumulator
//  3. Report: derive statistics and wrap them with run metadata
//
// A finished report is cached under a key derived from the input digest and
// the options that affect the result, so a repeated run is a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Path: "edges.csv"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(*result.Report.Stats.Mean)
package pipeline

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/degrees/pkg/cache"
	pkgerrors "github.com/matzehuels/degrees/pkg/errors"
	"github.com/matzehuels/degrees/pkg/io"
	"github.com/matzehuels/degrees/pkg/stats"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultThreshold is the hop count for the "within k degrees" figure.
	DefaultThreshold = stats.DefaultThreshold

	// DefaultDelimiter separates the two fields of an edge-list line.
	DefaultDelimiter = ","
)

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int { return runtime.NumCPU() }

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Input
	Path       string `json:"path"`
	Delimiter  string `json:"delimiter,omitempty"`
	NoHeader   bool   `json:"no_header,omitempty"`
	Undirected bool   `json:"undirected,omitempty"`
	Validate   bool   `json:"validate,omitempty"`

	// Compute
	Threshold *int `json:"threshold,omitempty"` // nil selects DefaultThreshold
	Workers   int  `json:"workers,omitempty"`

	// Cache
	Refresh bool `json:"refresh,omitempty"` // recompute and overwrite a cached report

	// Progress is called after each source search completes. It may be
	// called concurrently from worker goroutines.
	Progress func(done, total int) `json:"-"`

	// Logger receives pipeline progress; nil uses the runner's logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Path == "" {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "input path is required")
	}
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	o.Delimiter = unescapeDelimiter(o.Delimiter)
	if err := pkgerrors.ValidateDelimiter(o.Delimiter); err != nil {
		return err
	}
	if o.Threshold == nil {
		k := DefaultThreshold
		o.Threshold = &k
	} else if err := pkgerrors.ValidateThreshold(*o.Threshold); err != nil {
		return err
	}
	if err := pkgerrors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers()
	}
	return nil
}

// unescapeDelimiter turns a backslash escape such as `\t` into the
// character it names. Anything that does not unquote is returned unchanged
// and left to validation.
func unescapeDelimiter(s string) string {
	if !strings.HasPrefix(s, `\`) {
		return s
	}
	if u, err := strconv.Unquote("'" + s + "'"); err == nil {
		return u
	}
	return s
}

// ReadOptions converts the input options for the edge-list loader.
// Call after ValidateAndSetDefaults.
func (o Options) ReadOptions() io.ReadOptions {
	return io.ReadOptions{
		Delimiter:  []rune(o.Delimiter)[0],
		Header:     !o.NoHeader,
		Undirected: o.Undirected,
	}
}

// ReportKeyOpts returns the options that take part in the cache key.
func (o Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Threshold:  *o.Threshold,
		Undirected: o.Undirected,
		Delimiter:  o.Delimiter,
		Header:     !o.NoHeader,
	}
}
