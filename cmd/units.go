package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/session"
	"github.com/spf13/cobra"
)

var unitsSearch string

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List every unit that appears in a comp",
	Long: `List the unit catalog: every unit that appears in any team, once, in
alphabetical order. Units given with --own or --owned-file are marked.

EXAMPLES:
  compfinder units
  compfinder units --search ah
  compfinder units --own Ahri -f json`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err == nil {
			err = listUnits(cmd.Context(), cfg, dataset.NewLoader(), unitsSearch, cmd.OutOrStdout(), cmd.ErrOrStderr())
		}
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

func init() {
	unitsCmd.Flags().StringVarP(&unitsSearch, "search", "s", "", "Only list units whose name contains this text")
	rootCmd.AddCommand(unitsCmd)
}

// UnitInfo is one catalog entry
type UnitInfo struct {
	Name  string `json:"name"`
	Owned bool   `json:"owned"`
}

func listUnits(ctx context.Context, cfg *config.Config, fetcher session.Fetcher, query string, out, errOut io.Writer) error {
	ctrl, err := startSession(ctx, cfg, fetcher, errOut)
	if err != nil {
		return err
	}
	ctrl.SetSearch(query)

	units := ctrl.PickerUnits()
	infos := make([]UnitInfo, len(units))
	for i, u := range units {
		infos[i] = UnitInfo{Name: u, Owned: ctrl.IsOwned(u)}
	}

	if cfg.Format == "json" {
		return writeJSON(out, infos)
	}
	writeUnits(out, infos)
	if !cfg.Quiet {
		fmt.Fprintf(out, "\n%d units\n", len(infos))
	}
	return nil
}

func writeUnits(out io.Writer, infos []UnitInfo) {
	owned := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	for _, info := range infos {
		if info.Owned {
			fmt.Fprintf(out, "%s %s\n", owned.Render("✓"), owned.Render(info.Name))
			continue
		}
		fmt.Fprintf(out, "  %s\n", info.Name)
	}
}
