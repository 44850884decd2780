package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/config"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/output"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
)

var (
	flagTarget   string
	flagProvider string
	flagModel    string
	flagBaseURL  string
	flagSaveKey  string
	flagForce    bool
	flagNoSave   bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [path]",
	Short: "Scan your code and probe the live endpoint",
	Long: `Doctor runs the static scan and then probes the configured endpoint with
single real requests to verify streaming timing, rate-limit headers, cost
configuration, and request traceability. The combined report is persisted
under ai-patch-reports/ for later sharing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&flagTarget, "target", "all", `Live checks to run ("all", "none", or comma-separated names)`)
	doctorCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider (openai-compatible, anthropic, gemini; default: auto-detect)")
	doctorCmd.Flags().StringVar(&flagModel, "model", "", "Model to probe with (default: provider default)")
	doctorCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Endpoint base URL (default: provider default or gateway env)")
	doctorCmd.Flags().StringVar(&flagSaveKey, "save-key", "", "Store this API key in ~/.ai-patch/config.json (requires --force)")
	doctorCmd.Flags().BoolVar(&flagForce, "force", false, "Confirm storing the API key on disk")
	doctorCmd.Flags().BoolVar(&flagNoSave, "no-save-report", false, "Do not persist the report under ai-patch-reports/")
	doctorCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if scan issues at or above this severity (error, warning, info)")
	doctorCmd.Flags().BoolVar(&flagCI, "ci", false, "CI mode: equivalent to --fail-on error --no-color, never prompts")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	targetPath := "."
	if len(args) == 1 {
		targetPath = args[0]
	}

	fileCfg := loadFileConfig(cmd, targetPath)
	applyCIDefaults()
	output.ToolVersion = Version

	if flagSaveKey != "" {
		if !flagForce {
			return fmt.Errorf("refusing to store an API key on disk without --force")
		}
		fields, err := config.SaveSaved(config.Saved{APIKey: flagSaveKey, Provider: flagProvider, BaseURL: flagBaseURL})
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %s to ~/.ai-patch/config.json\n", strings.Join(fields, ", "))
	}

	s, err := buildScanner()
	if err != nil {
		return err
	}
	scanResult, err := s.Scan(targetPath)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	endpoint, err := resolveEndpoint(fileCfg)
	if err != nil {
		return err
	}

	names, err := checkTargets(flagTarget)
	if err != nil {
		return err
	}

	var checks map[string]probe.CheckResult
	if len(names) > 0 {
		if !endpoint.Valid() {
			if flagCI || !isTerminal(os.Stdin) {
				fmt.Fprintf(os.Stderr, "skipping live checks: set %s\n", endpoint.MissingVars())
			} else {
				return fmt.Errorf("live checks need credentials: set %s, pass --save-key with --force, or run with --target none", endpoint.MissingVars())
			}
		} else {
			checks = runChecks(names, endpoint)
		}
	}

	r := report.New(targetPath, endpoint.Provider, endpoint.BaseURL, scanResult, checks)

	if !flagNoSave {
		saveReport(targetPath, r)
	}

	if err := writeOutput(r); err != nil {
		return err
	}

	if r.Summary.Status == "error" {
		os.Exit(1)
	}
	return checkFailOnThreshold(scanResult)
}

// resolveEndpoint layers the probe target: flags beat the config file,
// which beats the saved home config, which beats environment detection.
// The API key itself never comes from .ai-patch.yml.
func resolveEndpoint(fileCfg config.Config) (config.Endpoint, error) {
	saved := config.LoadSaved()

	providerName := flagProvider
	if providerName == "" {
		providerName = fileCfg.Provider
	}
	if providerName == "" {
		providerName = saved.Provider
	}
	provider, err := config.ParseProvider(providerName)
	if err != nil {
		return config.Endpoint{}, err
	}

	e := config.DetectEndpoint(provider)
	switch {
	case flagBaseURL != "":
		e.BaseURL = flagBaseURL
	case fileCfg.BaseURL != "":
		e.BaseURL = fileCfg.BaseURL
	case saved.BaseURL != "":
		e.BaseURL = saved.BaseURL
	}
	if e.APIKey == "" {
		e.APIKey = saved.APIKey
	}
	if flagModel != "" {
		e.Model = flagModel
	} else if fileCfg.Model != "" {
		e.Model = fileCfg.Model
	}
	return e, nil
}

// checkTargets expands a --target value into probe names in execution order.
func checkTargets(target string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", "none":
		return nil, nil
	case "all":
		return probe.CheckNames, nil
	}

	requested := make(map[string]bool)
	for _, name := range strings.Split(target, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if probe.ByName(name) == nil {
			return nil, fmt.Errorf("unknown check %q (want one of %s)", name, strings.Join(probe.CheckNames, ", "))
		}
		requested[name] = true
	}

	var names []string
	for _, name := range probe.CheckNames {
		if requested[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

func runChecks(names []string, e config.Endpoint) map[string]probe.CheckResult {
	cfg := probe.Config{BaseURL: e.BaseURL, APIKey: e.APIKey, Model: e.Model}

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	var spin *output.Spinner
	if isTerminal(os.Stderr) && !flagNoColor {
		spin = output.NewSpinner(os.Stderr)
		spin.Start("running live checks")
		defer spin.Stop()
	}

	results := make(map[string]probe.CheckResult, len(names))
	for _, name := range names {
		if spin != nil {
			spin.Update(fmt.Sprintf("checking %s", name))
		}
		results[name] = probe.ByName(name).Run(ctx, cfg)
	}
	return results
}

func saveReport(targetPath string, r *report.Report) {
	var md bytes.Buffer
	if err := (&output.MarkdownFormatter{}).Format(&md, r); err != nil {
		fmt.Fprintf(os.Stderr, "warning: rendering report: %v\n", err)
		return
	}
	dir, err := report.Save(targetPath, r, md.Bytes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving report: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "report saved to %s\n", dir)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
