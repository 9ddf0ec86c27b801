package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pyqc-dev/pyqc/domain"
)

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 2, Message: "something broke"}
	if err.Error() != "something broke" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	wrapped := fmt.Errorf("check: %w", err)
	var exitErr *ExitError
	if !errors.As(wrapped, &exitErr) {
		t.Fatal("errors.As should unwrap ExitError")
	}
	if exitErr.Code != 2 {
		t.Errorf("unexpected code: %d", exitErr.Code)
	}
}

func TestTallyResults(t *testing.T) {
	clean := domain.NewCheckResult("clean.py")

	flagged := domain.NewCheckResult("flagged.py")
	flagged.AddIssues([]domain.RawIssue{
		{"line": 1, "message": "a"},
		{"line": 2, "message": "b"},
	}, "ruff-lint")

	failed := domain.NewCheckResult("failed.py")
	failed.RecordFailure("Type check failed: crash")

	tests := []struct {
		name       string
		results    []*domain.CheckResult
		wantIssues int
		wantFailed int
	}{
		{"empty", nil, 0, 0},
		{"all clean", []*domain.CheckResult{clean}, 0, 0},
		{"issues only", []*domain.CheckResult{clean, flagged}, 2, 0},
		{"failure only", []*domain.CheckResult{clean, failed}, 0, 1},
		{"mixed", []*domain.CheckResult{clean, flagged, failed}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, failedFiles := tallyResults(tt.results)
			if issues != tt.wantIssues || failedFiles != tt.wantFailed {
				t.Errorf("tallyResults() = (%d, %d), want (%d, %d)",
					issues, failedFiles, tt.wantIssues, tt.wantFailed)
			}
		})
	}
}

func TestCheckCommandFlags(t *testing.T) {
	cmd := checkCmd()

	for _, name := range []string{"output", "show-performance", "workers", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("check command missing --%s flag", name)
		}
	}
	if cmd.Flags().Lookup("output").DefValue != "text" {
		t.Errorf("output default = %q", cmd.Flags().Lookup("output").DefValue)
	}
}

func TestFixCommandFlags(t *testing.T) {
	cmd := fixCmd()

	for _, name := range []string{"dry-run", "workers", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("fix command missing --%s flag", name)
		}
	}
}

func TestConfigCommandSubcommands(t *testing.T) {
	cmd := configCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"show", "init"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("config command missing %q subcommand, have %v", want, names)
		}
	}
}
