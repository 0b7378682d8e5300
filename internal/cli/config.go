package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/degrees/pkg/cache"
	pkgerrors "github.com/matzehuels/degrees/pkg/errors"
	"github.com/matzehuels/degrees/pkg/pipeline"
)

// Cache backends accepted in the [cache] section.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// configFileName is looked up under the user config directory.
const configFileName = "config.toml"

// Config mirrors config.toml. Zero values mean "use the default", except
// for Threshold where an explicit 0 is honoured.
type Config struct {
	Threshold  *int   `toml:"threshold"`
	Workers    int    `toml:"workers"`
	Delimiter  string `toml:"delimiter"`
	Header     *bool  `toml:"header"`
	Undirected bool   `toml:"undirected"`
	Validate   bool   `toml:"validate"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the report cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	TTL       duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// duration decodes TOML strings such as "36h" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: backendFile,
			TTL:     duration{cache.TTLReport},
		},
	}
}

// configPath returns the default config file location using the XDG
// standard (~/.config/degrees/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFileName), nil
}

// loadConfig reads the config file at path. An empty path means the default
// location, where a missing file is not an error. An explicitly named file
// must exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = backendFile
	case backendFile, backendRedis, backendNone:
	default:
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
	}
	if c.Cache.TTL.Duration < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = cache.TTLReport
	}
	return nil
}

// options converts the file settings into pipeline options for path.
func (c *Config) options(path string) pipeline.Options {
	opts := pipeline.Options{
		Path:       path,
		Threshold:  c.Threshold,
		Workers:    c.Workers,
		Delimiter:  c.Delimiter,
		Undirected: c.Undirected,
		Validate:   c.Validate,
	}
	if c.Header != nil {
		opts.NoHeader = !*c.Header
	}
	return opts
}

// =============================================================================
// Flag Overrides
// =============================================================================

// inputFlags are the edge-list flags shared by analyze and path.
type inputFlags struct {
	delimiter  string
	noHeader   bool
	undirected bool
	validate   bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.delimiter, "delimiter", pipeline.DefaultDelimiter, "field delimiter of the edge list")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "the first line is data, not a header")
	cmd.Flags().BoolVar(&f.undirected, "undirected", false, "treat every edge as two-way")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "check node ids before computing")
}

// apply copies the flags the user actually set onto opts, so that explicit
// flags win over config file values and untouched flags do not.
func (f *inputFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		opts.Delimiter = f.delimiter
	}
	if flags.Changed("no-header") {
		opts.NoHeader = f.noHeader
	}
	if flags.Changed("undirected") {
		opts.Undirected = f.undirected
	}
	if flags.Changed("validate") {
		opts.Validate = f.validate
	}
}
