package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
)

var shareCmd = &cobra.Command{
	Use:   "share [path]",
	Short: "Bundle the latest report into a redacted tarball",
	Long: `Share packages the most recent report under ai-patch-reports/ into a
gzipped tarball with API keys and Authorization headers redacted, ready to
attach to a support ticket or issue.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	latest, err := report.FindLatest(root)
	if err != nil {
		return fmt.Errorf("finding latest report: %w", err)
	}
	if latest == "" {
		return fmt.Errorf("no reports found under %s; run doctor first", filepath.Join(root, report.DirName))
	}

	out := flagOutput
	if out == "" {
		out = "ai-patch-report.tar.gz"
	}
	if err := report.Bundle(filepath.Dir(latest), out); err != nil {
		return fmt.Errorf("bundling report: %w", err)
	}

	fmt.Printf("wrote %s (API keys redacted)\n", out)
	return nil
}
