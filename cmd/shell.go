package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dotcommander/compfinder/internal/config"
	"github.com/dotcommander/compfinder/internal/dataset"
	"github.com/dotcommander/compfinder/internal/output"
	"github.com/dotcommander/compfinder/internal/scoring"
	"github.com/dotcommander/compfinder/internal/session"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session: mark owned units and re-rank as you go",
	Long: `Start an interactive session on the dataset. Every command that changes the
owned units, the level, the sort mode or the threshold re-ranks the current
level and prints the result. Type "help" for the command list.

Unit arguments are comma separated so names may contain spaces:
  own Ahri, Miss Fortune`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err == nil {
			err = runShell(cmd.Context(), cfg, dataset.NewLoader(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		}
		if err != nil {
			fail(cmd.ErrOrStderr(), err)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `Commands:
  own <unit>[, <unit>...]     mark units as owned
  disown <unit>[, <unit>...]  unmark units
  toggle <unit>[, <unit>...]  flip ownership
  clear                       unmark every unit
  level <id>                  switch level (resets min)
  sort closest|bronze|missing change the sort mode
  min <n>                     minimum owned units per comp
  search [text]               filter the unit list (no text clears)
  units                       list units matching the search
  owned                       list owned units
  show                        print the ranked comps
  levels                      list levels
  help                        this text
  quit                        leave the shell`

// shell is one interactive session writing to out
type shell struct {
	ctrl    *session.Controller
	out     io.Writer
	console *output.ConsoleFormatter
	source  string
	limit   int
}

func runShell(ctx context.Context, cfg *config.Config, fetcher session.Fetcher, in io.Reader, out, errOut io.Writer) error {
	ctrl, err := startSession(ctx, cfg, fetcher, errOut)
	if err != nil {
		return err
	}

	sh := &shell{
		ctrl:    ctrl,
		out:     out,
		console: output.NewConsoleFormatter(out, false, cfg.Verbose, ""),
		source:  cfg.Data,
		limit:   cfg.Limit,
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "compfinder shell on %s. Type \"help\" for commands.\n", cfg.Data)
	}
	sh.show()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)

	for {
		if !cfg.Quiet {
			fmt.Fprint(out, "> ")
		}
		select {
		case <-ctx.Done():
			if !cfg.Quiet {
				fmt.Fprintln(out)
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("error reading input: %w", err)
					}
				default:
				}
				return nil
			}
			if done := sh.exec(line); done {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine so a blocked read cannot hold the
// session past cancellation. The error channel receives the scanner error
// before lines is closed at end of input.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

// exec runs one command line and reports whether the session should end
func (s *shell) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "own":
		for _, u := range parseUnits(rest) {
			s.ctrl.Own(u)
		}
		s.show()
	case "disown":
		for _, u := range parseUnits(rest) {
			s.ctrl.Disown(u)
		}
		s.show()
	case "toggle":
		for _, u := range parseUnits(rest) {
			s.ctrl.Toggle(u)
		}
		s.show()
	case "clear":
		s.ctrl.Clear()
		s.show()
	case "level":
		if rest == "" {
			fmt.Fprintf(s.out, "Current level: %s\n", s.ctrl.Level())
			return false
		}
		if !dataset.HasLevel(s.ctrl.Dataset(), rest) {
			fmt.Fprintf(s.out, "Warning: level %q not found\n", rest)
		}
		s.ctrl.SelectLevel(rest)
		s.show()
	case "sort":
		mode, ok := scoring.ParseSortMode(rest)
		if !ok {
			fmt.Fprintf(s.out, "Unknown sort mode %q, using %s\n", rest, mode)
		}
		s.ctrl.SetSortMode(mode)
		s.show()
	case "min":
		n, err := strconv.Atoi(rest)
		if err != nil {
			fmt.Fprintf(s.out, "min needs a whole number, got %q\n", rest)
			return false
		}
		s.ctrl.SetMinOwned(n)
		s.show()
	case "search":
		s.ctrl.SetSearch(rest)
		s.units()
	case "units":
		s.units()
	case "owned":
		owned := s.ctrl.OwnedUnits()
		if len(owned) == 0 {
			fmt.Fprintln(s.out, "No units owned")
			return false
		}
		fmt.Fprintln(s.out, strings.Join(owned, ", "))
	case "show":
		s.show()
	case "levels":
		writeLevels(s.out, collectLevels(s.ctrl.Dataset()), false)
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type \"help\" for commands.\n", name)
	}
	return false
}

func (s *shell) show() {
	report := &output.Report{
		Source:      s.source,
		GeneratedAt: s.ctrl.Dataset().GeneratedAt,
		TopN:        s.ctrl.Dataset().TopN,
		View:        s.ctrl.View(),
		Limit:       s.limit,
	}
	if err := s.console.FormatReport(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func (s *shell) units() {
	units := s.ctrl.PickerUnits()
	infos := make([]UnitInfo, len(units))
	for i, u := range units {
		infos[i] = UnitInfo{Name: u, Owned: s.ctrl.IsOwned(u)}
	}
	writeUnits(s.out, infos)
	fmt.Fprintf(s.out, "%d units\n", len(infos))
}

// parseUnits splits a comma separated unit list, dropping blanks
func parseUnits(s string) []string {
	var units []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			units = append(units, part)
		}
	}
	return units
}
