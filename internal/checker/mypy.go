package checker

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/pyqc-dev/pyqc/domain"
	"github.com/pyqc-dev/pyqc/internal/config"
)

const mypyExecutable = "mypy"

// mypyLinePattern matches mypy's single-line diagnostic format:
//
//	filename:line: severity: message [error-code]
var mypyLinePattern = regexp.MustCompile(`^(.+):(\d+):\s*(error|warning|note):\s*(.+?)(?:\s*\[([^\]]+)\])?$`)

// MypyChecker adapts mypy to the type checker contract.
type MypyChecker struct {
	cfg    *config.MypyConfig
	runner CommandRunner
}

// NewMypyChecker creates a mypy adapter with the given configuration.
func NewMypyChecker(cfg *config.MypyConfig) *MypyChecker {
	return &MypyChecker{cfg: cfg, runner: execRunner{}}
}

// CheckTypes runs mypy against one file. Exit code 1 means type issues
// were found; 2 and above means mypy itself failed.
func (c *MypyChecker) CheckTypes(ctx context.Context, path string) ([]domain.RawIssue, error) {
	result, err := c.runner.Run(ctx, mypyExecutable, c.buildArgs(path)...)
	if err != nil {
		return nil, err
	}
	if result.ExitCode >= 2 {
		return nil, &domain.ExecutionError{Tool: mypyExecutable, Detail: strings.TrimSpace(result.Stderr)}
	}
	return parseMypyOutput(result.Stdout), nil
}

func (c *MypyChecker) buildArgs(path string) []string {
	// Fixed flags keep mypy's output in the line format we parse
	args := []string{"--show-error-codes", "--no-error-summary"}
	if c.cfg != nil {
		if c.cfg.Strict {
			args = append(args, "--strict")
		}
		if c.cfg.IgnoreMissingImports {
			args = append(args, "--ignore-missing-imports")
		}
	}
	return append(args, path)
}

// parseMypyOutput converts mypy's text diagnostics into raw issues.
// Lines that do not match the diagnostic format are skipped.
func parseMypyOutput(output string) []domain.RawIssue {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil
	}
	if strings.Contains(trimmed, "Success:") && strings.Contains(trimmed, "no issues found") {
		return nil
	}

	var issues []domain.RawIssue
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := mypyLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		lineNumber, _ := strconv.Atoi(match[2])
		raw := domain.RawIssue{
			"filename": match[1],
			"line":     lineNumber,
			"severity": match[3],
			"message":  strings.TrimSpace(match[4]),
		}
		if match[5] != "" {
			raw["code"] = match[5]
		}
		issues = append(issues, raw)
	}
	return issues
}
