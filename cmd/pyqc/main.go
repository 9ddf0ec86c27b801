package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pyqc-dev/pyqc/internal/version"
	"github.com/spf13/cobra"
)

// ExitError carries an explicit process exit code out of a command.
// Check and fix use it to distinguish "issues found" (1) from
// "execution failed" (2).
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyqc",
		Short: "pyqc - integrated Python code quality checks",
		Long: `pyqc runs ruff lint, ruff format, and mypy type checks against
Python code concurrently and merges their findings into one report.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(fixCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			// Output already printed; exit silently with the code
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("pyqc version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
