package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rfind
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfind [flags] source...",
		Short: "Lazy recursive file finder driven by glob patterns",
		Long: `rfind searches the filesystem for files and directories matching glob
patterns, printing each match as soon as it is found.

Each source is a pattern such as "src/**/*.go" or "C:\logs\{app,db}*".
Everything before the first wildcard component is the literal root; the rest
is matched case-insensitively, one path component at a time. Directories
named $recycle.bin, system volume information and .git are skipped unless
configured otherwise.

Configuration is loaded from .rfind/config.yaml (nearest in the working
directory or its parents, then the user's home) if present.
CLI flags override configuration file settings.

Examples:
  rfind '*.go'                      # Go files in the current directory
  rfind -r '*_test.go'              # same as '**/*_test.go'
  rfind -d 'src/**'                 # every directory below src
  rfind --type f -v 'logs/**/*.log' # files only, report unreadable dirs
  rfind --export out.txt 'docs/**/*.md'
  rfind -type f -print '*.log'      # find-style spellings are accepted
  rfind history --limit 5           # recent recorded searches`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE:    runSearch,
		// main reports the returned error, so cobra stays quiet
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addSearchFlags(cmd)

	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// findStyleFlags maps the single-dash spellings known from find(1) to
// their flag names.
var findStyleFlags = map[string]string{
	"-type":  "--type",
	"-print": "--print",
}

// NormalizeArgs rewrites find-style flags such as -type and -print into
// their double-dash form. Arguments after "--" are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "--" {
			copy(out[i:], args[i:])
			break
		}
		if long, ok := findStyleFlags[arg]; ok {
			out[i] = long
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			if long, known := findStyleFlags[name]; known {
				out[i] = long + "=" + value
				continue
			}
		}
		out[i] = arg
	}
	return out
}
