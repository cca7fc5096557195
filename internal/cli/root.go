package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/coalition/pkg/config"
	pkgio "github.com/matzehuels/coalition/pkg/io"
)

// =============================================================================
// Flag Groups
// =============================================================================
//
// Flags override the config file only when set on the command line, so each
// group keeps its own storage and copies values over in apply.

// electionFlags locate and shape the ballot file.
type electionFlags struct {
	headerLines int
	candidates  int
}

func (f *electionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.headerLines, "header-lines", pkgio.DefaultHeaderLines, "lines to skip at the top of the ballot file")
	cmd.Flags().IntVarP(&f.candidates, "candidates", "n", 11, "number of candidates")
}

func (f *electionFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("header-lines") {
		cfg.Election.HeaderLines = f.headerLines
	}
	if cmd.Flags().Changed("candidates") {
		cfg.Election.Candidates = f.candidates
	}
}

// ordersFlags select the elimination order set.
type ordersFlags struct {
	limit int
	seed  uint64
	cache string
}

func (f *ordersFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 0, "materialize at most this many orders (0 samples all C! orders)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&f.cache, "cache", config.CacheFile, "order-set cache: file, redis or none")
}

func (f *ordersFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("limit") {
		cfg.Orders.Limit = f.limit
	}
	if cmd.Flags().Changed("seed") {
		cfg.Search.Seed = f.seed
	}
	if cmd.Flags().Changed("cache") {
		cfg.Orders.Cache = f.cache
	}
}

// =============================================================================
// Config Resolution
// =============================================================================

// resolveConfig loads the --config file, lets apply copy flag values over
// it and validates the result. A positional votes argument replaces
// election.votes.
func (c *CLI) resolveConfig(cmd *cobra.Command, args []string, apply ...func(*cobra.Command, *config.Config)) (*config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Election.Votes = args[0]
	}
	for _, fn := range apply {
		fn(cmd, cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
