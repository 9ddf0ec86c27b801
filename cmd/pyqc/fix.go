package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/pyqc-dev/pyqc/app"
	"github.com/pyqc-dev/pyqc/internal/config"
	"github.com/pyqc-dev/pyqc/service"
	"github.com/spf13/cobra"
)

var (
	fixDryRun     bool
	fixWorkers    int
	fixConfigPath string
)

func fixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Automatically fix formatting issues",
		Long: `Run the ruff formatter over Python files.

With --dry-run no file is modified; the command reports which files
would change.`,
		RunE:          runFix,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&fixDryRun, "dry-run", false,
		"Show what would be fixed without modifying files")
	cmd.Flags().IntVar(&fixWorkers, "workers", 0,
		"Maximum parallel workers (0 = auto)")
	cmd.Flags().StringVarP(&fixConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := config.LoadConfigWithTarget(fixConfigPath, paths[0])
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

	action := "Fixing"
	if fixDryRun {
		action = "Would fix"
	}
	fmt.Printf("%s %d Python file(s)...\n", action, len(files))

	pm := service.NewProgressManager(true)
	defer pm.Close()

	runner, err := service.NewRunnerWithProgress(cfg, pm)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	results := runner.FixFilesParallel(context.Background(), files, fixDryRun, fixWorkers)

	fixedFiles := 0
	failedFiles := 0
	for _, result := range results {
		switch {
		case result.Success && slices.Contains(result.ChecksRun, service.CheckNameFormatFix):
			fixedFiles++
			status := "Fixed"
			if fixDryRun {
				status = "Would fix"
			}
			color.Green("  %s: %s", status, result.Path)
		case result.Success:
			fmt.Printf("  No fixes needed: %s\n", result.Path)
		default:
			failedFiles++
			color.Red("  Error fixing %s: %s", result.Path, result.ErrorMessage)
		}
	}

	if fixDryRun {
		fmt.Printf("\nSummary: %d file(s) would be fixed, %d errors\n", fixedFiles, failedFiles)
	} else {
		fmt.Printf("\nSummary: %d file(s) fixed, %d errors\n", fixedFiles, failedFiles)
	}

	if failedFiles > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}
