package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coalition/pkg/buildinfo"
	"github.com/matzehuels/coalition/pkg/cache"
	"github.com/matzehuels/coalition/pkg/config"
	"github.com/matzehuels/coalition/pkg/orders"
)

// appName names the binary, the cache directory and the Redis key prefix.
const appName = "coalition"

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the state shared by all commands: the logger and the
// persistent flags.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New returns a CLI logging to w at level.
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
		Short: "Coalition searches for strategic manipulations of STV elections",
		Long: `Coalition simulates strategic voting under the Single Transferable Vote.

Given a profile of ranked ballots it looks for a small coalition of voters
that, by casting one insincere ranking together, changes the STV winner.
The search is heuristic: it samples elimination orders and grows the
coalition until some order can be forced.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		c.tallyCommand(),
		c.manipulateCommand(),
		c.ordersCommand(),
		c.compareCommand(),
		c.configCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// loadConfig reads the --config file over the defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newOrdersCache opens the cache backend selected by cfg.
func newOrdersCache(ctx context.Context, cfg config.OrdersConfig) (cache.Cache, error) {
	switch cfg.Cache {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL, Prefix: appName + ":"})
	default:
		dir := cfg.CacheDir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// loadOrders resolves the order set for cfg, reporting whether the cache hit.
func (c *CLI) loadOrders(ctx context.Context, cfg *config.Config) (orders.Set, bool, error) {
	if cfg.Orders.Limit <= 0 {
		return orders.Load(ctx, orders.LoadOptions{Candidates: cfg.Election.Candidates})
	}
	store, err := newOrdersCache(ctx, cfg.Orders)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()
	return orders.Load(ctx, orders.LoadOptions{
		Candidates: cfg.Election.Candidates,
		Limit:      cfg.Orders.Limit,
		Seed:       cfg.Search.Seed,
		Cache:      store,
		TTL:        cfg.OrdersTTL(),
		Logger:     c.Logger,
	})
}

// cacheDir returns the cache directory using XDG standard (~/.cache/coalition/).
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
