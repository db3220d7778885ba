package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/rfind/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently recorded searches",
		Long: `List searches recorded with --history (or history.enabled in the config),
most recent first.

Examples:
  rfind history
  rfind history --limit 5`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of searches to show (0 = all)")
	cmd.Flags().String("config", "", "Path to config file (default: .rfind/config.yaml)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("invalid --limit %d, must be >= 0", limit)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath, err := cfg.ResolveHistoryDBPath()
	if err != nil {
		return fmt.Errorf("failed to get history database path: %w", err)
	}

	// Opening would create an empty database
	if dbPath != ":memory:" {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			fmt.Fprintf(output, "No recorded searches found\n")
			fmt.Fprintf(output, "Database path: %s\n", dbPath)
			return nil
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list recent searches: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(output, "No recorded searches found\n")
		return nil
	}

	printRuns(output, runs)
	return nil
}

// printRuns writes one block per recorded search
func printRuns(w io.Writer, runs []*history.Run) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	cyan.Fprintf(w, "\n=== Recent Searches (%d) ===\n", len(runs))

	for _, run := range runs {
		fmt.Fprintf(w, "\n%s  %s\n", run.StartedAt.Local().Format(time.DateTime), run.ID)
		fmt.Fprintf(w, "  Sources: %s\n", strings.Join(run.Sources, " "))
		fmt.Fprintf(w, "  Found: ")
		green.Fprintf(w, "%d file(s), %d dir(s)", run.FilesFound, run.DirsFound)
		fmt.Fprintf(w, " in %s\n", (time.Duration(run.DurationMs) * time.Millisecond).String())
		if run.Errors > 0 || run.InvalidSources > 0 {
			fmt.Fprintf(w, "  Problems: ")
			red.Fprintf(w, "%d error(s), %d invalid source(s)\n", run.Errors, run.InvalidSources)
		}
	}
}
