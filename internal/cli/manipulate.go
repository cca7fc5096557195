package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coalition/pkg/config"
	"github.com/matzehuels/coalition/pkg/observability"
	"github.com/matzehuels/coalition/pkg/observability/prom"
	"github.com/matzehuels/coalition/pkg/orders"
	"github.com/matzehuels/coalition/pkg/results"
	"github.com/matzehuels/coalition/pkg/search"
)

// manipulateFlags override the search, results and metrics sections.
type manipulateFlags struct {
	initialSize int
	maxSize     int
	attempts    int
	workers     int
	maxDuration time.Duration
	backend     string
	outDir      string
	metricsFile string
	tui         bool
}

func (f *manipulateFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.initialSize, "initial-size", "k", 55, "first coalition size to try")
	fl.IntVar(&f.maxSize, "max-size", 0, "largest coalition size to try (0 = number of ballots)")
	fl.IntVarP(&f.attempts, "attempts", "a", 75, "attempts per coalition size")
	fl.IntVarP(&f.workers, "workers", "w", 1, "concurrent attempts per coalition size")
	fl.DurationVar(&f.maxDuration, "max-duration", 0, "stop searching after this long (0 = no limit)")
	fl.StringVar(&f.backend, "backend", results.BackendFile, "results backend: file, sqlite, mongo or none")
	fl.StringVarP(&f.outDir, "output", "o", ".", "directory for original.txt and manipulated.txt")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")
	fl.BoolVar(&f.tui, "tui", false, "show live search progress")
}

func (f *manipulateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("initial-size") {
		cfg.Search.InitialCoalitionSize = f.initialSize
	}
	if fl.Changed("max-size") {
		cfg.Search.MaxCoalitionSize = f.maxSize
	}
	if fl.Changed("attempts") {
		cfg.Search.AttemptsPerSize = f.attempts
	}
	if fl.Changed("workers") {
		cfg.Search.Workers = f.workers
	}
	if fl.Changed("max-duration") {
		cfg.Search.MaxDuration = f.maxDuration.String()
	}
	if fl.Changed("backend") {
		cfg.Results.Backend = f.backend
	}
	if fl.Changed("output") {
		cfg.Results.Dir = f.outDir
	}
	if fl.Changed("metrics-file") {
		cfg.Metrics.File = f.metricsFile
	}
}

// manipulateCommand creates the manipulate command, the main search entry point.
func (c *CLI) manipulateCommand() *cobra.Command {
	var (
		election electionFlags
		ord      ordersFlags
		flags    manipulateFlags
	)

	cmd := &cobra.Command{
		Use:   "manipulate [votes-file]",
		Short: "Search for a coalition that changes the STV winner",
		Long: `Search for a strategic manipulation of an STV election.

Starting at --initial-size, each coalition size gets a fixed number of
attempts. An attempt draws a random elimination order, frees that many
ballots and rewrites them so the count follows the order. The search stops
at the first attempt that changes the winner, at --max-size, or when
--max-duration elapses.

With the file backend the unchanged and manipulated profiles are written
to original.txt and manipulated.txt in the output directory.`,
		Example: `  coalition manipulate votes.toi
  coalition manipulate votes.toi -k 40 --attempts 200 --workers 4
  coalition manipulate --config run.toml --tui --metrics-file coalition.prom`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd, args, election.apply, ord.apply, flags.apply)
			if err != nil {
				return err
			}
			return c.runManipulate(cmd.Context(), cfg, flags.tui)
		},
	}

	election.register(cmd)
	ord.register(cmd)
	flags.register(cmd)

	return cmd
}

func (c *CLI) runManipulate(ctx context.Context, cfg *config.Config, tui bool) error {
	logger := loggerFromContext(ctx)

	var metrics *prom.Hooks
	if cfg.Metrics.File != "" {
		metrics = prom.New()
		observability.SetSearchHooks(metrics)
		observability.SetCacheHooks(metrics)
		defer observability.Reset()
	}

	profile, err := c.loadProfile(ctx, cfg)
	if err != nil {
		return err
	}

	spin := startSpinner(ctx, "Loading elimination orders...")
	set, hit, err := c.loadOrders(ctx, cfg)
	if err != nil {
		spin.Stop()
		return err
	}
	spin.SetMessage(fmt.Sprintf("Opening %s results store...", cfg.Results.Backend))
	sink, err := results.Open(ctx, resultsOptions(cfg))
	spin.Stop()
	if err != nil {
		return err
	}
	defer sink.Close()
	printOrderStats(len(profile), set, hit)

	// Log lines would tear the TUI apart.
	searchLogger := logger
	if tui {
		searchLogger = log.New(io.Discard)
	}

	searcher, err := search.New(search.Config{
		Profile:    profile,
		Candidates: cfg.Election.Candidates,
		Orders:     set,
		Seed:       cfg.Search.Seed,
		Workers:    cfg.Search.Workers,
		Sink:       sink,
		Logger:     searchLogger,
	})
	if err != nil {
		return err
	}
	printInfo("Sincere winner: candidate %s", StyleHighlight.Render(searcher.Winner().String()))

	driver := &search.Driver{
		Searcher:    searcher,
		InitialSize: cfg.Search.InitialCoalitionSize,
		MaxSize:     cfg.Search.MaxCoalitionSize,
		Attempts:    cfg.Search.AttemptsPerSize,
		MaxDuration: cfg.MaxDuration(),
		Logger:      searchLogger,
	}

	var report *search.Report
	if tui {
		var extra []observability.SearchHooks
		if metrics != nil {
			extra = append(extra, metrics)
		}
		report, err = runSearchTUI(ctx, driver, extra)
	} else {
		report, err = driver.Run(ctx)
	}

	if metrics != nil {
		if werr := metrics.WriteTextfile(cfg.Metrics.File); werr != nil {
			logger.Warn("write metrics", "file", cfg.Metrics.File, "error", werr)
		} else {
			logger.Debug("metrics written", "file", cfg.Metrics.File)
		}
	}

	if report != nil {
		printNewline()
		printReport(report, cfg, sink)
	}
	return err
}

// runSearchTUI runs the driver in the background while a bubbletea program
// renders its progress. Quitting the program cancels the run.
func runSearchTUI(ctx context.Context, d *search.Driver, extra []observability.SearchHooks) (*search.Report, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSearchModel(d.Searcher.Winner(), cancel), tea.WithOutput(os.Stderr))
	hooks := append(observability.MultiSearchHooks{tuiHooks{send: p.Send}}, extra...)
	observability.SetSearchHooks(hooks)
	defer observability.SetSearchHooks(observability.NoopSearchHooks{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		report, err := d.Run(runCtx)
		p.Send(runDoneMsg{report: report, err: err})
	}()

	final, err := p.Run()
	cancel()
	<-done
	if err != nil {
		return nil, fmt.Errorf("run progress view: %w", err)
	}
	m := final.(SearchModel)
	return m.Report, m.Err
}

// resultsOptions maps the results section onto sink options.
func resultsOptions(cfg *config.Config) results.Options {
	return results.Options{
		Backend:    cfg.Results.Backend,
		Dir:        cfg.Results.Dir,
		SQLitePath: cfg.Results.SQLitePath,
		Mongo: results.MongoConfig{
			URI:        cfg.Results.MongoURI,
			Database:   cfg.Results.MongoDatabase,
			Collection: cfg.Results.MongoCollection,
		},
	}
}

func printOrderStats(ballots int, set orders.Set, hit bool) {
	if set.Len() == 0 {
		printStats(ballots, set.Candidates(), "all orders", nil)
		return
	}
	if _, full := set.(*orders.Full); full {
		printStats(ballots, set.Candidates(), fmt.Sprintf("%d orders", set.Len()), nil)
		return
	}
	printStats(ballots, set.Candidates(), fmt.Sprintf("%d orders", set.Len()), &hit)
}

// printReport summarizes a finished run.
func printReport(r *search.Report, cfg *config.Config, sink results.Sink) {
	if r.Found {
		out := r.Outcome
		printSuccess("Winner changed from %s to %s",
			StyleHighlight.Render(r.OriginalWinner.String()), StyleHighlight.Render(out.NewWinner.String()))
		printKeyValue("Coalition", fmt.Sprintf("%d voters", out.CoalitionSize))
		printKeyValue("Attempt", fmt.Sprint(out.Attempt))
		printKeyValue("Order", out.Order.String())
		if out.RecordID != "" {
			printKeyValue("Record", out.RecordID)
		}
	} else {
		switch r.Reason {
		case search.StopDeadline:
			printWarning("No manipulation found before the time budget ran out")
		case search.StopCanceled:
			printWarning("Search canceled")
		default:
			printWarning("No manipulation found up to coalition size %d", r.Outcome.CoalitionSize)
		}
	}
	printDetail("%d attempts over %d coalition sizes in %s",
		r.TotalAttempts(), len(r.Sizes), r.Elapsed.Round(time.Millisecond))

	if fs, ok := sink.(*results.FileSink); ok && r.Found {
		printNewline()
		printFile(fs.OriginalPath())
		printFile(fs.ManipulatedPath())
		printNextStep("Compare", fmt.Sprintf("%s compare %s %s", appName, fs.OriginalPath(), fs.ManipulatedPath()))
	} else if r.Found && cfg.Results.Backend == results.BackendSQLite {
		printFile(cfg.Results.SQLitePath)
	}
}
