package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harrison/rfind/internal/action"
	"github.com/harrison/rfind/internal/config"
	"github.com/harrison/rfind/internal/display"
	"github.com/harrison/rfind/internal/history"
	"github.com/harrison/rfind/internal/logger"
	"github.com/harrison/rfind/internal/models"
	"github.com/harrison/rfind/internal/search"
	"github.com/spf13/cobra"
)

// errNoValidSource is returned when every source failed to compile
var errNoValidSource = errors.New("no valid source")

// addSearchFlags registers the search flags on cmd
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("files", "f", false, "Search for files")
	cmd.Flags().BoolP("dirs", "d", false, "Search for directories")
	cmd.Flags().String("type", "", "Entry type to search: f (files) or d (directories), also -type")
	cmd.Flags().Bool("print", false, "Print each match (the default action), also -print")
	cmd.Flags().BoolP("verbose", "v", false, "Show unreadable directories and the final summary")
	cmd.Flags().BoolP("recurse", "r", false, "Search sources without a separator recursively")
	cmd.Flags().String("export", "", "Also write matches to this file")
	cmd.Flags().String("config", "", "Path to config file (default: .rfind/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for run log files")
	cmd.Flags().Bool("no-ignore", false, "Do not skip ignored directories such as .git")
	cmd.Flags().Bool("history", false, "Record this search in the history database")
	cmd.Flags().Bool("patterns", false, "Show the pattern syntax and exit")
}

// loadConfig loads the configuration from --config, RFIND_CONFIG or the rfind home
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	path, err := config.ResolveConfigPath(explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// searchTypes resolves -f, -d and --type into the kinds of entries to report
func searchTypes(cmd *cobra.Command) (files bool, dirs bool, err error) {
	files, _ = cmd.Flags().GetBool("files")
	dirs, _ = cmd.Flags().GetBool("dirs")

	typ, _ := cmd.Flags().GetString("type")
	switch typ {
	case "":
	case "f":
		files = true
	case "d":
		dirs = true
	default:
		return false, false, fmt.Errorf("invalid --type %q, must be f or d", typ)
	}
	return files, dirs, nil
}

// runSearch implements the root command logic
func runSearch(cmd *cobra.Command, args []string) error {
	if showPatterns, _ := cmd.Flags().GetBool("patterns"); showPatterns {
		display.PatternHelp(cmd.OutOrStdout())
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one source is required (see rfind --help)")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logLevelFlag, _ := cmd.Flags().GetString("log-level")
	logDirFlag, _ := cmd.Flags().GetString("log-dir")
	recurseFlag, _ := cmd.Flags().GetBool("recurse")
	noIgnoreFlag, _ := cmd.Flags().GetBool("no-ignore")
	historyFlag, _ := cmd.Flags().GetBool("history")

	// Build flag pointers for merge (only explicitly set values)
	var logLevelPtr, logDirPtr *string
	if cmd.Flags().Changed("log-level") {
		logLevelPtr = &logLevelFlag
	}
	if cmd.Flags().Changed("log-dir") {
		logDirPtr = &logDirFlag
	}
	var recursePtr, noIgnorePtr, historyPtr *bool
	if cmd.Flags().Changed("recurse") {
		recursePtr = &recurseFlag
	}
	if cmd.Flags().Changed("no-ignore") {
		noIgnorePtr = &noIgnoreFlag
	}
	if cmd.Flags().Changed("history") {
		historyPtr = &historyFlag
	}

	cfg.MergeWithFlags(logLevelPtr, logDirPtr, recursePtr, noIgnorePtr, historyPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files, dirs, err := searchTypes(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	var loggers []search.Logger
	if verbose {
		loggers = append(loggers, logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	}
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		loggers = append(loggers, fileLog)
	}

	actions := []action.Action{action.NewPrint(cmd.OutOrStdout())}
	exportPath, _ := cmd.Flags().GetString("export")
	if exportPath != "" {
		actions = append(actions, action.NewExport(exportPath))
	}

	opts := search.Options{
		Sources:     args,
		SearchFiles: files,
		SearchDirs:  dirs,
		Verbose:     verbose,
		Glob:        cfg.GlobOptions(),
	}
	runner := search.NewRunner(opts, newMultiLogger(loggers...), actions...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	startedAt := time.Now()
	summary, runErr := runner.Run(ctx)

	for _, result := range summary.Results {
		if result.Status == models.StatusInvalid {
			display.WarnInvalidSource(result.Source, result.Error).Display(cmd.ErrOrStderr())
		}
	}

	if cfg.History.Enabled {
		if err := recordHistory(ctx, cfg, summary, startedAt); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record search history: %v\n", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("search failed: %w", runErr)
	}
	if summary.AllInvalid() {
		return errNoValidSource
	}
	return nil
}

// recordHistory stores the finished search in the history database
func recordHistory(ctx context.Context, cfg *config.Config, summary *models.SearchSummary, startedAt time.Time) error {
	dbPath, err := cfg.ResolveHistoryDBPath()
	if err != nil {
		return fmt.Errorf("resolve history database path: %w", err)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	sources := make([]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		sources = append(sources, result.Source)
	}

	run := &history.Run{
		Sources:        sources,
		FilesFound:     summary.FilesFound,
		DirsFound:      summary.DirsFound,
		Errors:         summary.Errors,
		InvalidSources: summary.InvalidSources,
		DurationMs:     summary.Duration.Milliseconds(),
		StartedAt:      startedAt,
	}
	// Recording must survive an interrupted search
	return store.Record(context.WithoutCancel(ctx), run)
}

// multiLogger implements search.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []search.Logger
}

func newMultiLogger(loggers ...search.Logger) *multiLogger {
	return &multiLogger{loggers: loggers}
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogSourceStart forwards to all loggers
func (ml *multiLogger) LogSourceStart(source string, root string) {
	for _, l := range ml.loggers {
		l.LogSourceStart(source, root)
	}
}

// LogSourceResult forwards to all loggers
func (ml *multiLogger) LogSourceResult(result models.SourceResult) {
	for _, l := range ml.loggers {
		l.LogSourceResult(result)
	}
}

// LogTraversalError forwards to all loggers
func (ml *multiLogger) LogTraversalError(err error) {
	for _, l := range ml.loggers {
		l.LogTraversalError(err)
	}
}

// LogInvalidSource forwards to all loggers
func (ml *multiLogger) LogInvalidSource(source string, err error) {
	for _, l := range ml.loggers {
		l.LogInvalidSource(source, err)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(summary models.SearchSummary) {
	for _, l := range ml.loggers {
		l.LogSummary(summary)
	}
}

var (
	_ search.Logger = (*multiLogger)(nil)
	_ search.Logger = (*logger.ConsoleLogger)(nil)
	_ search.Logger = (*logger.FileLogger)(nil)
)
