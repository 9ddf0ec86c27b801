package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pyqc-dev/pyqc/app"
	"github.com/pyqc-dev/pyqc/domain"
	"github.com/pyqc-dev/pyqc/internal/config"
	"github.com/pyqc-dev/pyqc/service"
	"github.com/spf13/cobra"
)

var (
	checkOutput          string
	checkShowPerformance bool
	checkWorkers         int
	checkConfigPath      string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Run quality checks on Python code",
		Long: `Run ruff lint, ruff format, and mypy type checks against Python files.

Exit codes:
  0 - No issues found
  1 - Issues found
  2 - One or more files failed to execute

Examples:
  # Check the current directory
  pyqc check

  # Check a specific package with performance metrics
  pyqc check src/ --show-performance

  # JSON output for machine parsing
  pyqc check --output json src/

  # GitHub Actions annotations for CI logs
  pyqc check --output github src/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&checkOutput, "output", "o", "text",
		"Output format: text, json, github")
	cmd.Flags().BoolVar(&checkShowPerformance, "show-performance", false,
		"Include performance metrics in the report")
	cmd.Flags().IntVar(&checkWorkers, "workers", 0,
		"Maximum parallel workers (0 = auto)")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, paths[0])
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	files, err := app.NewFileHelper().CollectPythonFiles(paths, cfg.Exclude)
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("failed to collect files: %v", err)}
	}
	if len(files) == 0 {
		color.Yellow("No Python files found in %s", paths[0])
		return nil
	}

	// Progress bars would corrupt json/github output
	pm := service.NewProgressManager(checkOutput == "text")
	defer pm.Close()

	runner, err := service.NewRunnerWithProgress(cfg, pm)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	if checkOutput == "text" {
		fmt.Printf("Checking %d Python file(s)...\n", len(files))
	}

	results := runner.CheckFilesParallel(context.Background(), files, checkWorkers)

	switch checkOutput {
	case "json":
		if err := service.WriteJSON(os.Stdout, service.GenerateJSONReport(results, checkShowPerformance)); err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
		}
	case "github":
		if report := service.GenerateGitHubActionsReport(results); report != "" {
			fmt.Println(report)
		}
	case "text":
		printFileStatuses(results)
		fmt.Println(service.GenerateTextReport(results, checkShowPerformance))
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unsupported output format: %s", checkOutput)}
	}

	totalIssues, failedFiles := tallyResults(results)
	if failedFiles > 0 {
		return &ExitError{Code: 2}
	}
	if totalIssues > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// printFileStatuses shows a one-line status per file for multi-file runs.
func printFileStatuses(results []*domain.CheckResult) {
	if len(results) < 2 {
		return
	}
	for _, result := range results {
		switch {
		case !result.Success:
			color.Red("  %s: failed (%s)", result.Path, result.ErrorMessage)
		case len(result.Issues) > 0:
			color.Yellow("  %s: %d issue(s)", result.Path, len(result.Issues))
		default:
			color.Green("  %s: ok", result.Path)
		}
	}
}

// tallyResults counts issues and failed files for exit-code derivation.
func tallyResults(results []*domain.CheckResult) (totalIssues, failedFiles int) {
	for _, result := range results {
		totalIssues += len(result.Issues)
		if !result.Success {
			failedFiles++
		}
	}
	return totalIssues, failedFiles
}
