// Package config holds the settings of a manipulation run.
//
// Settings come from a TOML or YAML file (chosen by extension), start from
// [Default] and may be overridden by environment variables for connection
// strings and by CLI flags. Nothing here is global: the CLI loads a Config
// and passes the relevant parts to each package.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/coalition/pkg/errors"
)

// Environment variables that override file values.
const (
	EnvRedisURL = "COALITION_REDIS_URL"
	EnvMongoURI = "COALITION_MONGO_URI"
)

// Config is the complete run configuration.
type Config struct {
	Election ElectionConfig `toml:"election" yaml:"election"`
	Search   SearchConfig   `toml:"search" yaml:"search"`
	Orders   OrdersConfig   `toml:"orders" yaml:"orders"`
	Results  ResultsConfig  `toml:"results" yaml:"results"`
	Metrics  MetricsConfig  `toml:"metrics" yaml:"metrics"`
}

// ElectionConfig locates and shapes the ballot data.
type ElectionConfig struct {
	Votes       string `toml:"votes" yaml:"votes"`
	HeaderLines int    `toml:"header_lines" yaml:"header_lines"`
	Candidates  int    `toml:"candidates" yaml:"candidates"`
}

// SearchConfig bounds the manipulation search.
type SearchConfig struct {
	InitialCoalitionSize int    `toml:"initial_coalition_size" yaml:"initial_coalition_size"`
	MaxCoalitionSize     int    `toml:"max_coalition_size" yaml:"max_coalition_size"`
	AttemptsPerSize      int    `toml:"attempts_per_size" yaml:"attempts_per_size"`
	Seed                 uint64 `toml:"seed" yaml:"seed"`
	Workers              int    `toml:"workers" yaml:"workers"`
	MaxDuration          string `toml:"max_duration" yaml:"max_duration"`
}

// OrdersConfig selects the order set and its cache.
type OrdersConfig struct {
	// Limit materializes at most Limit orders; 0 samples all C! lazily.
	Limit    int    `toml:"limit" yaml:"limit"`
	Cache    string `toml:"cache" yaml:"cache"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	TTL      string `toml:"ttl" yaml:"ttl"`
}

// ResultsConfig selects where manipulations are stored.
type ResultsConfig struct {
	Backend         string `toml:"backend" yaml:"backend"`
	Dir             string `toml:"dir" yaml:"dir"`
	SQLitePath      string `toml:"sqlite_path" yaml:"sqlite_path"`
	MongoURI        string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database" yaml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection" yaml:"mongo_collection"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	File string `toml:"file" yaml:"file"`
}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

var (
	validCaches   = []string{CacheFile, CacheRedis, CacheNone}
	validBackends = []string{"file", "sqlite", "mongo", "none"}
)

// Default returns the settings of the reference experiment: 11 candidates,
// a 23-line header, coalitions from 55 voters upward and 75 attempts per
// size.
func Default() *Config {
	return &Config{
		Election: ElectionConfig{
			Votes:       "votes.toi",
			HeaderLines: 23,
			Candidates:  11,
		},
		Search: SearchConfig{
			InitialCoalitionSize: 55,
			AttemptsPerSize:      75,
			Seed:                 1,
			Workers:              1,
		},
		Orders: OrdersConfig{
			Cache: CacheFile,
			TTL:   "720h",
		},
		Results: ResultsConfig{
			Backend:         "file",
			Dir:             ".",
			SQLitePath:      "coalition.db",
			MongoDatabase:   "coalition",
			MongoCollection: "manipulations",
		},
	}
}

// Load reads path over [Default]. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "config %s: use a .toml, .yaml or .yml file", path)
	}
	return nil
}

// Save writes c to path as TOML or YAML depending on the extension.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "config %s: use a .toml, .yaml or .yml file", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv(EnvRedisURL); url != "" {
		c.Orders.RedisURL = url
	}
	if uri := os.Getenv(EnvMongoURI); uri != "" {
		c.Results.MongoURI = uri
	}
}

// MaxDuration returns the search time budget, zero for unlimited.
func (c *Config) MaxDuration() time.Duration {
	d, _ := parseDuration(c.Search.MaxDuration)
	return d
}

// OrdersTTL returns how long cached order sets live, zero for the default.
func (c *Config) OrdersTTL() time.Duration {
	d, _ := parseDuration(c.Orders.TTL)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := errors.ValidateCandidateCount(c.Election.Candidates); err != nil {
		return err
	}
	if c.Election.HeaderLines < 0 {
		return invalid("election.header_lines must not be negative, got %d", c.Election.HeaderLines)
	}
	if err := c.validatePaths(); err != nil {
		return err
	}

	s := c.Search
	if s.InitialCoalitionSize < 0 {
		return invalid("search.initial_coalition_size must not be negative, got %d", s.InitialCoalitionSize)
	}
	if s.MaxCoalitionSize < 0 {
		return invalid("search.max_coalition_size must not be negative, got %d", s.MaxCoalitionSize)
	}
	if s.MaxCoalitionSize > 0 && s.MaxCoalitionSize < s.InitialCoalitionSize {
		return invalid("search.max_coalition_size %d is below initial_coalition_size %d",
			s.MaxCoalitionSize, s.InitialCoalitionSize)
	}
	if s.AttemptsPerSize < 1 {
		return invalid("search.attempts_per_size must be positive, got %d", s.AttemptsPerSize)
	}
	if s.Workers < 1 {
		return invalid("search.workers must be positive, got %d", s.Workers)
	}
	if d, err := parseDuration(s.MaxDuration); err != nil || d < 0 {
		return invalid("search.max_duration %q is not a valid duration", s.MaxDuration)
	}

	o := c.Orders
	if o.Limit < 0 {
		return invalid("orders.limit must not be negative, got %d", o.Limit)
	}
	if !slices.Contains(validCaches, o.Cache) {
		return invalid("orders.cache %q must be one of %v", o.Cache, validCaches)
	}
	if o.Cache == CacheRedis {
		if err := errors.ValidateURI(o.RedisURL, "redis", "rediss"); err != nil {
			return err
		}
	}
	if d, err := parseDuration(o.TTL); err != nil || d < 0 {
		return invalid("orders.ttl %q is not a valid duration", o.TTL)
	}

	r := c.Results
	if !slices.Contains(validBackends, r.Backend) {
		return invalid("results.backend %q must be one of %v", r.Backend, validBackends)
	}
	if r.Backend == "mongo" {
		if err := errors.ValidateURI(r.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// validatePaths checks the local paths a run reads or writes. Empty optional
// paths mean "not used" and are skipped.
func (c *Config) validatePaths() error {
	paths := []struct {
		key, path string
		required  bool
	}{
		{"election.votes", c.Election.Votes, true},
		{"results.dir", c.Results.Dir, false},
		{"results.sqlite_path", c.Results.SQLitePath, false},
		{"metrics.file", c.Metrics.File, false},
	}
	for _, p := range paths {
		if p.path == "" && !p.required {
			continue
		}
		if err := errors.ValidatePath(p.path); err != nil {
			return fmt.Errorf("%s: %w", p.key, err)
		}
	}
	return nil
}
