package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/output"
	"github.com/dotcommander/compfinder/internal/outputters"
	"github.com/dotcommander/compfinder/internal/session"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the comps of one level (default command)",
	Long: `Rank the comps of one level by how many of their units you own.

SORT MODES:
  closest  most owned first, then fewest missing, then most bronze traits
  bronze   most bronze traits first, then most owned, then fewest missing
  missing  fewest missing first, then most owned, then most bronze traits

EXAMPLES:
  compfinder rank --level 3 --own Ahri,Bard --sort missing
  compfinder --owned-file owned.yaml --min 2 --limit 10
  compfinder -f xlsx -o comps.xlsx --level 4`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRank(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(ctx context.Context, out, errOut io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return rankWith(ctx, cfg, dataset.NewLoader(), out, errOut)
}

func rankWith(ctx context.Context, cfg *config.Config, fetcher session.Fetcher, out, errOut io.Writer) error {
	ctrl, err := startSession(ctx, cfg, fetcher, errOut)
	if err != nil {
		return err
	}

	report := &output.Report{
		Source:      cfg.Data,
		GeneratedAt: ctrl.Dataset().GeneratedAt,
		TopN:        ctrl.Dataset().TopN,
		View:        ctrl.View(),
		Limit:       cfg.Limit,
	}

	outputter := outputters.NewOutputter(cfg, out)
	if err := outputter.FormatReport(report, cfg.Format); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	if cfg.Output != "" && !cfg.Quiet {
		fmt.Fprintf(errOut, "Report written to %s\n", cfg.Output)
	}
	return nil
}
