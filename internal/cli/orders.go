package cli

import (
	"context"
	"fmt"
	"math/big"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/config"
	pkgio "github.com/matzehuels/coalition/pkg/io"
	"github.com/matzehuels/coalition/pkg/orders"
)

// ordersCommand creates the orders command group.
func (c *CLI) ordersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and materialize elimination orders",
		Long: `An elimination order ranks all candidates from first eliminated to
winner. The search draws orders uniformly from the full set of C! orders,
or from a materialized subset when orders.limit is set.`,
	}

	cmd.AddCommand(c.ordersCountCommand())
	cmd.AddCommand(c.ordersSampleCommand())
	cmd.AddCommand(c.ordersGenerateCommand())

	return cmd
}

// ordersCountCommand creates the "orders count" subcommand.
func (c *CLI) ordersCountCommand() *cobra.Command {
	var election electionFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of elimination orders (C!)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd, nil, election.apply)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, countOrders(cfg.Election.Candidates))
			return nil
		},
	}

	election.register(cmd)
	return cmd
}

// countOrders returns c! in decimal.
func countOrders(c int) string {
	return new(big.Int).MulRange(1, int64(c)).String()
}

// ordersSampleCommand creates the "orders sample" subcommand.
func (c *CLI) ordersSampleCommand() *cobra.Command {
	var (
		election electionFlags
		ord      ordersFlags
		count    int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print random elimination orders, winner last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd, nil, election.apply, ord.apply)
			if err != nil {
				return err
			}
			return c.runOrdersSample(cmd.Context(), cfg, count)
		},
	}

	election.register(cmd)
	ord.register(cmd)
	cmd.Flags().IntVar(&count, "count", 5, "number of orders to print")

	return cmd
}

func (c *CLI) runOrdersSample(ctx context.Context, cfg *config.Config, count int) error {
	if count < 1 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}
	set, _, err := c.loadOrders(ctx, cfg)
	if err != nil {
		return err
	}
	seed := cfg.Search.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	sample := make([]ballot.Order, count)
	for i := range sample {
		sample[i] = set.Sample(rng)
	}
	return pkgio.WriteOrders(sample, stdout)
}

// ordersGenerateCommand creates the "orders generate" subcommand.
func (c *CLI) ordersGenerateCommand() *cobra.Command {
	var (
		election electionFlags
		ord      ordersFlags
		output   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a materialized order set to a file",
		Long: `Write elimination orders to a file, one space-separated order per line.

Without --limit every permutation is written, which is only practical for
small candidate counts. With --limit the orders are drawn at random and
the set is cached for later searches.`,
		Example: `  coalition orders generate -n 6 -o orders.txt
  coalition orders generate --limit 100000 -o orders.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd, nil, election.apply, ord.apply)
			if err != nil {
				return err
			}
			return c.runOrdersGenerate(cmd.Context(), cfg, output)
		},
	}

	election.register(cmd)
	ord.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "orders.txt", "output file")

	return cmd
}

func (c *CLI) runOrdersGenerate(ctx context.Context, cfg *config.Config, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin := startSpinner(ctx, "Generating orders...")
	list, hit, err := c.materializeOrders(ctx, cfg)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("Generated %d orders", list.Len())

	if err := pkgio.ExportOrders(list.Orders(), output); err != nil {
		return err
	}
	printSuccess("Wrote %d orders", list.Len())
	printStats(0, list.Candidates(), fmt.Sprintf("%d of %s orders", list.Len(), countOrders(list.Candidates())), &hit)
	printFile(output)
	return nil
}

// materializeOrders returns every order for an unlimited config and the
// cached random subset otherwise.
func (c *CLI) materializeOrders(ctx context.Context, cfg *config.Config) (*orders.List, bool, error) {
	if cfg.Orders.Limit <= 0 {
		list, err := orders.Generate(cfg.Election.Candidates, 0, cfg.Search.Seed)
		return list, false, err
	}
	set, hit, err := c.loadOrders(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	list, ok := set.(*orders.List)
	if !ok {
		return nil, false, fmt.Errorf("order set for limit %d is not materialized", cfg.Orders.Limit)
	}
	return list, hit, nil
}
