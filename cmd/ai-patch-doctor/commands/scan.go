package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/config"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/engine/lint"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/output"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/scanner"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

var (
	flagFailOn     string
	flagCI         bool
	flagCategories []string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Statically scan a directory for AI integration issues",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if issues at or above this severity (error, warning, info)")
	scanCmd.Flags().BoolVar(&flagCI, "ci", false, "CI mode: equivalent to --fail-on error --no-color")
	scanCmd.Flags().StringSliceVar(&flagCategories, "category", nil, "Restrict to detector categories (comma-separated, repeatable)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	targetPath := "."
	if len(args) == 1 {
		targetPath = args[0]
	}

	loadFileConfig(cmd, targetPath)
	applyCIDefaults()

	s, err := buildScanner()
	if err != nil {
		return err
	}

	result, err := s.Scan(targetPath)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	r := report.New(targetPath, "", "", result, nil)
	if err := writeOutput(r); err != nil {
		return err
	}

	return checkFailOnThreshold(result)
}

// loadFileConfig merges .ai-patch.yml settings into flags the user did not
// set explicitly. Flags always win.
func loadFileConfig(cmd *cobra.Command, targetPath string) config.Config {
	cfg, err := config.Load(targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if cmd.Flags().Lookup("fail-on") != nil && !cmd.Flags().Changed("fail-on") && cfg.FailOn != "" {
		flagFailOn = cfg.FailOn
	}
	if len(cfg.Exclude) > 0 {
		flagExclude = append(flagExclude, cfg.Exclude...)
	}
	return cfg
}

func applyCIDefaults() {
	if flagCI {
		if flagFailOn == "" {
			flagFailOn = "error"
		}
		if flagFormat == "terminal" {
			flagNoColor = true
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		flagNoColor = true
	}
}

func buildScanner() (*scanner.Scanner, error) {
	s := scanner.New()
	if len(flagExclude) > 0 {
		s.SetExcludedDirs(flagExclude)
	}
	if len(flagCategories) > 0 {
		enabled := make(map[types.Category]bool, len(flagCategories))
		for _, name := range flagCategories {
			cat := types.Category(strings.ToLower(strings.TrimSpace(name)))
			if !validCategory(cat) {
				return nil, fmt.Errorf("unknown category %q", name)
			}
			enabled[cat] = true
		}
		var detectors []lint.Detector
		for _, det := range lint.Detectors() {
			if enabled[det.Category] {
				detectors = append(detectors, det)
			}
		}
		s.SetDetectors(detectors)
	}
	return s, nil
}

func validCategory(cat types.Category) bool {
	for _, c := range types.Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func writeOutput(r *report.Report) error {
	output.ToolVersion = Version

	formatter := output.ByName(strings.ToLower(flagFormat), flagNoColor)
	if formatter == nil {
		return fmt.Errorf("unknown format %q", flagFormat)
	}
	if tf, ok := formatter.(*output.TerminalFormatter); ok {
		tf.Verbose = flagVerbose
	}

	w := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, r)
}

func checkFailOnThreshold(result *types.ScanResult) error {
	if flagFailOn == "" {
		return nil
	}
	threshold, err := types.ParseSeverity(flagFailOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	for _, issue := range result.AllIssues() {
		if issue.Severity >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
