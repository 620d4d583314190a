package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/scoring"
	"github.com/dotcommander/compfinder/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dataSource   string
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string

	levelFlag     string
	ownFlag       []string
	ownedFileFlag string
	minFlag       int
	sortFlag      string
	limitFlag     int
)

// exitFunc is replaced in tests
var exitFunc = os.Exit

// errReported marks failures that were already printed to the user
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "compfinder",
	Short: "Rank team comps by how many of their units you own",
	Long: `compfinder loads a dataset of team compositions grouped by level and ranks
the comps of one level by how many of their units you already own.

By default compfinder ranks the first level of the dataset. Mark owned units
with --own (repeatable or comma separated) or --owned-file, pick a level with
--level and a sort order with --sort (closest|bronze|missing).`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRank(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

// Execute runs the command tree with a context cancelled on SIGINT/SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		exitFunc(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&dataSource, "data", "d", "best_levels_2_5.json", "Dataset file path or http(s) URL")
	flags.StringVarP(&rootPath, "root", "r", "", "Directory searched by check when no files are given")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown|xlsx)")
	flags.StringVarP(&outputFile, "output", "o", "", "Output file for reports (required for xlsx)")

	flags.StringVar(&levelFlag, "level", "", "Level to rank (defaults to the first level)")
	flags.StringSliceVar(&ownFlag, "own", nil, "Owned units, repeatable or comma separated")
	flags.StringVar(&ownedFileFlag, "owned-file", "", "YAML file listing owned units")
	flags.IntVar(&minFlag, "min", 0, "Minimum number of owned units per comp")
	flags.StringVar(&sortFlag, "sort", "closest", "Sort mode (closest|bronze|missing)")
	flags.IntVar(&limitFlag, "limit", 0, "Show at most this many comps (0 shows all)")

	viper.BindPFlag("data", flags.Lookup("data"))
	viper.BindPFlag("quiet", flags.Lookup("quiet"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("level", flags.Lookup("level"))
	viper.BindPFlag("owned", flags.Lookup("own"))
	viper.BindPFlag("ownedFile", flags.Lookup("owned-file"))
	viper.BindPFlag("minOwned", flags.Lookup("min"))
	viper.BindPFlag("sort", flags.Lookup("sort"))
	viper.BindPFlag("limit", flags.Lookup("limit"))
}

// fail prints err unless it was already reported and exits with status 1
func fail(w io.Writer, err error) {
	if !errors.Is(err, errReported) {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	exitFunc(1)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Workspace root: %s\n", cfg.Root)
	}
	return cfg, nil
}

// cliPresenter reports the dataset load outcome on stderr
type cliPresenter struct {
	errOut  io.Writer
	source  string
	verbose bool
}

func (p *cliPresenter) OnDatasetLoaded(ds *dataset.Dataset) {
	if p.verbose {
		fmt.Fprintf(p.errOut, "Loaded %d levels and %d units from %s\n", len(ds.Levels), len(ds.Units()), p.source)
	}
}

func (p *cliPresenter) OnDatasetLoadFailed(message string) {
	fmt.Fprintf(p.errOut, "Error: %s\n", message)
}

// startSession loads the configured dataset and applies the configured
// owned units, level, sort mode and threshold.
func startSession(ctx context.Context, cfg *config.Config, fetcher session.Fetcher, errOut io.Writer) (*session.Controller, error) {
	if cfg.Verbose && dataset.IsRemote(cfg.Data) {
		fmt.Fprintf(errOut, "Fetching %s\n", cfg.Data)
	}

	presenter := &cliPresenter{errOut: errOut, source: cfg.Data, verbose: cfg.Verbose}
	ctrl, err := session.Start(ctx, fetcher, cfg.Data, presenter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errReported, err)
	}

	applyConfig(ctrl, cfg, errOut)
	return ctrl, nil
}

func applyConfig(ctrl *session.Controller, cfg *config.Config, errOut io.Writer) {
	known := make(map[string]bool)
	for _, u := range ctrl.Dataset().Units() {
		known[u] = true
	}
	for _, unit := range cfg.Owned {
		if !known[unit] && !cfg.Quiet {
			fmt.Fprintf(errOut, "Warning: unit %q does not appear in any comp\n", unit)
		}
		ctrl.Own(unit)
	}

	if cfg.Level != "" {
		if !dataset.HasLevel(ctrl.Dataset(), cfg.Level) && !cfg.Quiet {
			fmt.Fprintf(errOut, "Warning: level %q not found in dataset\n", cfg.Level)
		}
		ctrl.SelectLevel(cfg.Level)
	}

	mode, ok := scoring.ParseSortMode(cfg.Sort)
	if !ok && cfg.Verbose {
		fmt.Fprintf(errOut, "Unknown sort mode %q, using %s\n", cfg.Sort, mode)
	}
	ctrl.SetSortMode(mode)

	if got := ctrl.SetMinOwned(cfg.MinOwned); got != cfg.MinOwned && cfg.Verbose {
		fmt.Fprintf(errOut, "Minimum owned %d clamped to %d\n", cfg.MinOwned, got)
	}
}
