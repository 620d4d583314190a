package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/cue"
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/discovery"
	"github.com/dotcommander/compfinder/internal/outputters"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check dataset documents against the dataset schema",
	Long: `Check the structure of dataset documents against the embedded CUE schema.

Without arguments, check discovers documents below --root using the configured
glob patterns (default: *.json and data/**/*.json). When nothing is found the
configured --data file is checked.

Errors are exactly the problems that stop a document from loading: invalid
JSON, a missing levels object, level keys that are not integers, levels that
are neither lists nor null. Warnings flag content the loader tolerates and
repairs: comps that are not objects, teams or bronze traits that are not
string lists, a non-numeric bronze_count, a team_size that disagrees with the
team.

With --verbose, named files that discovery would not find are noted on stderr.

Exit status is 1 when any document has errors.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
			return
		}
		failed, err := runCheck(cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
			return
		}
		if failed {
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// collectCheckFiles resolves the documents to check from args or discovery.
// In verbose mode named files that discovery would skip are noted on errOut.
func collectCheckFiles(cfg *config.Config, args []string, errOut io.Writer) ([]discovery.File, error) {
	if len(args) > 0 {
		files := make([]discovery.File, 0, len(args))
		for _, arg := range args {
			f, err := discovery.ReadFile(arg)
			if err != nil {
				return nil, err
			}
			if cfg.Verbose && !discoverable(cfg, f.Path) {
				fmt.Fprintf(errOut, "Note: %s is outside the discovery patterns and is skipped when check runs without arguments\n", arg)
			}
			f.RelPath = arg
			files = append(files, f)
		}
		return files, nil
	}

	files, err := discovery.NewFileDiscovery(cfg.Root).DiscoverFiles(cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("error discovering documents: %w", err)
	}
	if len(files) > 0 {
		return files, nil
	}

	if dataset.IsRemote(cfg.Data) {
		return nil, fmt.Errorf("no dataset documents found under %s", cfg.Root)
	}
	if _, err := os.Stat(cfg.Data); err != nil {
		return nil, fmt.Errorf("no dataset documents found under %s", cfg.Root)
	}
	f, err := discovery.ReadFile(cfg.Data)
	if err != nil {
		return nil, err
	}
	f.RelPath = cfg.Data
	return []discovery.File{f}, nil
}

// discoverable reports whether path lies under the root and matches one of
// the configured patterns
func discoverable(cfg *config.Config, path string) bool {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return discovery.MatchesAny(cfg.Patterns, rel)
}

// runCheck validates every document and reports whether any had errors
func runCheck(cfg *config.Config, args []string, out, errOut io.Writer) (bool, error) {
	files, err := collectCheckFiles(cfg, args, errOut)
	if err != nil {
		return false, err
	}

	validator := cue.NewValidator()
	if err := validator.LoadSchemas(); err != nil {
		return false, fmt.Errorf("error loading schemas: %w", err)
	}

	summary := cue.NewCheckSummary()
	for _, f := range files {
		result, err := validator.CheckDocument(f.RelPath, f.Contents)
		if err != nil {
			return false, fmt.Errorf("error checking %s: %w", f.RelPath, err)
		}
		summary.Add(result)
	}

	outputter := outputters.NewOutputter(cfg, out)
	if err := outputter.FormatCheck(summary, cfg.Format); err != nil {
		return false, fmt.Errorf("error formatting output: %w", err)
	}
	return summary.FailedFiles > 0, nil
}
