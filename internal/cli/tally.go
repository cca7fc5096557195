package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/config"
	pkgio "github.com/matzehuels/coalition/pkg/io"
	"github.com/matzehuels/coalition/pkg/stv"
)

// tallyOptions holds the output options of the tally command.
type tallyOptions struct {
	svg string
	dot string
}

// tallyCommand creates the tally command for running a sincere STV count.
func (c *CLI) tallyCommand() *cobra.Command {
	var (
		election electionFlags
		opts     tallyOptions
	)

	cmd := &cobra.Command{
		Use:   "tally [votes-file]",
		Short: "Run the STV count and show every elimination round",
		Long: `Run the Single Transferable Vote count on a ballot file.

Each round tallies the first preferences of the remaining candidates and
eliminates the lowest; ties go to the lowest candidate id. The votes file
defaults to election.votes from the config.`,
		Example: `  coalition tally votes.toi
  coalition tally votes.toi --svg rounds.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd, args, election.apply)
			if err != nil {
				return err
			}
			return c.runTally(cmd.Context(), cfg, opts)
		},
	}

	election.register(cmd)
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write the elimination rounds as SVG")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the elimination rounds as Graphviz DOT")

	return cmd
}

func (c *CLI) runTally(ctx context.Context, cfg *config.Config, opts tallyOptions) error {
	profile, err := c.loadProfile(ctx, cfg)
	if err != nil {
		return err
	}

	res, err := stv.Trace(profile, cfg.Election.Candidates)
	if err != nil {
		return err
	}

	printStats(len(profile), cfg.Election.Candidates, "", nil)
	printNewline()
	printRounds(res)
	printNewline()
	printSuccess("Winner: candidate %s", StyleHighlight.Render(res.Winner.String()))
	printDetail("Elimination order: %s", res.Order())

	if opts.dot != "" {
		if err := os.WriteFile(opts.dot, []byte(res.ToDOT(nil)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.dot, err)
		}
		printFile(opts.dot)
	}
	if opts.svg != "" {
		spin := startSpinner(ctx, "Rendering SVG...")
		svg, err := res.RenderSVG(ctx, nil)
		spin.Stop()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		printFile(opts.svg)
	}
	return nil
}

// loadProfile reads the configured ballot file behind a spinner.
func (c *CLI) loadProfile(ctx context.Context, cfg *config.Config) (ballot.Profile, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin := startSpinner(ctx, "Reading ballots...")
	profile, err := pkgio.ImportBallots(cfg.Election.Votes, pkgio.ReadOptions{
		HeaderLines: cfg.Election.HeaderLines,
		Candidates:  cfg.Election.Candidates,
	})
	spin.Stop()
	if err != nil {
		return nil, err
	}

	prog.done("Loaded %d ballots from %s", len(profile), cfg.Election.Votes)
	return profile, nil
}

// printRounds prints one table row per elimination round with the tally of
// every candidate still standing.
func printRounds(res *stv.Result) {
	header := []string{"Round"}
	for c := 1; c <= res.Candidates; c++ {
		header = append(header, fmt.Sprint(c))
	}
	header = append(header, "Out")

	rows := make([][]string, len(res.Rounds))
	for i, rd := range res.Rounds {
		row := []string{fmt.Sprint(i + 1)}
		for c := 1; c <= res.Candidates; c++ {
			cand := ballot.Candidate(c)
			if rd.Tally.Pinned(cand) {
				row = append(row, "·")
				continue
			}
			row = append(row, formatVotes(rd.Tally.Get(cand)))
		}
		rows[i] = append(row, rd.Eliminated.String())
	}

	printTable(header, rows, func(row, col int) bool {
		return row < len(res.Rounds) && col == int(res.Rounds[row].Eliminated)
	})
}

// formatVotes drops the fraction of whole counts.
func formatVotes(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
