package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/update"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

const repo = "michaelbrinkworth/ai-patch-doctor"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ai-patch-doctor %s (commit: %s)\n", Version, Commit)

		if result := update.CheckLatest(Version, repo); result != nil && result.NeedsUpdate() {
			fmt.Printf("update available: %s (run %s)\n", result.Latest, result.UpdateURL)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
