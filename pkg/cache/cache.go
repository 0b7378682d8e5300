// Package cache stores finished analysis reports so that re-running the
// same input with the same options skips the all-pairs computation.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON files under a directory (the CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]; the default keyer hashes the input digest and
// every option that changes the result.
package cache

import (
	"context"
	"time"
)

// TTLReport is the default lifetime of a cached report.
const TTLReport = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ReportKeyOpts lists the options that change a report's contents.
// Worker count and validation do not affect the result and are not keyed.
type ReportKeyOpts struct {
	Threshold  int    `json:"threshold"`
	Undirected bool   `json:"undirected"`
	Delimiter  string `json:"delimiter"`
	Header     bool   `json:"header"`
}

// Keyer derives cache keys.
type Keyer interface {
	ReportKey(digest string, opts ReportKeyOpts) string
}

// DefaultKeyer produces "report:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey hashes the input digest together with opts.
func (DefaultKeyer) ReportKey(digest string, opts ReportKeyOpts) string {
	return hashKey("report", digest, opts)
}
