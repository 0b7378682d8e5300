// Package cli implements the degrees command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/degrees/pkg/buildinfo"
	"github.com/matzehuels/degrees/pkg/cache"
	"github.com/matzehuels/degrees/pkg/observability"
	"github.com/matzehuels/degrees/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "degrees"

	// redisPingTimeout bounds the reachability check of a redis cache.
	redisPingTimeout = 2 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the default location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Degrees measures how closely the nodes of a graph are connected",
		Long: `Degrees reads an edge list, computes the shortest hop distance between every
ordered pair of nodes and summarizes the result: the share of connections at
each distance, the mean separation, its standard deviation and the share of
pairs within a threshold.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := &logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/degrees/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg CacheConfig, noCache bool) *pipeline.Runner {
	var keyer cache.Keyer
	if cfg.Backend == backendRedis {
		// A redis server may be shared with other tools.
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	}
	r := pipeline.NewRunner(c.newCache(ctx, cfg, noCache), keyer, c.Logger)
	r.TTL = cfg.TTL.Duration
	return r
}

// newCache builds the configured cache. An unusable cache is logged and
// replaced by a NullCache; caching never fails a run.
func (c *CLI) newCache(ctx context.Context, cfg CacheConfig, noCache bool) cache.Cache {
	if noCache || cfg.Backend == backendNone {
		return cache.NewNullCache()
	}

	if cfg.Backend == backendRedis {
		rc := cache.NewRedisCache(cache.RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			_ = rc.Close()
			return cache.NewNullCache()
		}
		return rc
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/degrees/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
