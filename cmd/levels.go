package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/session"
	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the dataset levels in numeric order",
	Long: `List the levels of the dataset in numeric order with the number of comps
and the longest team at each level. Use --format json for machine output.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err == nil {
			err = listLevels(cmd.Context(), cfg, dataset.NewLoader(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		}
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}

// LevelInfo summarises one level
type LevelInfo struct {
	Level       string `json:"level"`
	Comps       int    `json:"comps"`
	MaxTeamSize int    `json:"max_team_size"`
}

func collectLevels(ds *dataset.Dataset) []LevelInfo {
	levels := dataset.ListLevels(ds)
	infos := make([]LevelInfo, 0, len(levels))
	for _, id := range levels {
		comps := dataset.SelectLevel(ds, id)
		longest := 0
		for _, c := range comps {
			longest = max(longest, len(c.Team))
		}
		infos = append(infos, LevelInfo{Level: id, Comps: len(comps), MaxTeamSize: longest})
	}
	return infos
}

func listLevels(ctx context.Context, cfg *config.Config, fetcher session.Fetcher, out, errOut io.Writer) error {
	ctrl, err := startSession(ctx, cfg, fetcher, errOut)
	if err != nil {
		return err
	}
	infos := collectLevels(ctrl.Dataset())

	if cfg.Format == "json" {
		return writeJSON(out, infos)
	}
	writeLevels(out, infos, cfg.Quiet)
	return nil
}

func writeLevels(out io.Writer, infos []LevelInfo, quiet bool) {
	bold := lipgloss.NewStyle().Bold(true)
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	for _, info := range infos {
		if quiet {
			fmt.Fprintln(out, info.Level)
			continue
		}
		fmt.Fprintf(out, "%s  %s\n",
			bold.Render(fmt.Sprintf("Level %-3s", info.Level)),
			gray.Render(fmt.Sprintf("%d comps, max team %d", info.Comps, info.MaxTeamSize)))
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	return nil
}
