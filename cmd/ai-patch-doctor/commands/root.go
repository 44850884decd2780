package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagOutput  string
	flagNoColor bool
	flagVerbose bool
	flagExclude []string
)

var rootCmd = &cobra.Command{
	Use:   "ai-patch-doctor",
	Short: "Diagnose AI API integration problems in your code and endpoint",
	Long: `ai-patch-doctor statically scans source trees for the integration mistakes
that make AI API calls flaky and expensive (missing retries, absent timeouts,
unhandled rate limits, unsafe streaming, unbounded token spend, missing
request correlation), and can probe a live endpoint to verify streaming
behavior, rate-limit headers, and request traceability.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, markdown, html)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show per-check metrics")
	rootCmd.PersistentFlags().StringSliceVar(&flagExclude, "exclude", nil, "Additional directory names to skip (comma-separated, repeatable)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
