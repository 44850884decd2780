package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Run a single live check against the configured endpoint",
	Long: `Check runs one probe (streaming, retries, cost, or trace) without the
static scan. Useful for verifying an endpoint or gateway in isolation.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider (openai-compatible, anthropic, gemini; default: auto-detect)")
	checkCmd.Flags().StringVar(&flagModel, "model", "", "Model to probe with (default: provider default)")
	checkCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Endpoint base URL (default: provider default or gateway env)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))
	if probe.ByName(name) == nil {
		return fmt.Errorf("unknown check %q (want one of %s)", args[0], strings.Join(probe.CheckNames, ", "))
	}

	fileCfg := loadFileConfig(cmd, ".")
	applyCIDefaults()

	endpoint, err := resolveEndpoint(fileCfg)
	if err != nil {
		return err
	}
	if !endpoint.Valid() {
		return fmt.Errorf("check %q needs credentials: set %s", name, endpoint.MissingVars())
	}

	checks := runChecks([]string{name}, endpoint)
	r := report.New("", endpoint.Provider, endpoint.BaseURL, nil, checks)

	if err := writeOutput(r); err != nil {
		return err
	}
	if checks[name].Status == probe.StatusFail {
		os.Exit(1)
	}
	return nil
}
