package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pyqc-dev/pyqc/domain"
	"github.com/pyqc-dev/pyqc/internal/config"
)

const ruffExecutable = "ruff"

// RuffChecker adapts the ruff linter and formatter to the checker
// contracts. One instance serves both the lint and format capabilities.
type RuffChecker struct {
	cfg    *config.RuffConfig
	runner CommandRunner
}

// NewRuffChecker creates a ruff adapter with the given configuration.
func NewRuffChecker(cfg *config.RuffConfig) *RuffChecker {
	return &RuffChecker{cfg: cfg, runner: execRunner{}}
}

// ruffDiagnostic mirrors one entry of ruff's JSON diagnostics output.
type ruffDiagnostic struct {
	Filename string       `json:"filename"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location ruffLocation `json:"location"`
	Fix      *ruffFix     `json:"fix"`
	Severity string       `json:"severity"`
}

type ruffLocation struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type ruffFix struct {
	Message string `json:"message"`
}

// CheckLint runs `ruff check` and parses its JSON diagnostics.
// Exit code 1 means issues were found, which is not a failure.
func (c *RuffChecker) CheckLint(ctx context.Context, path string) ([]domain.RawIssue, error) {
	result, err := c.runner.Run(ctx, ruffExecutable, c.buildCheckArgs(path)...)
	if err != nil {
		return nil, err
	}
	if result.ExitCode >= 2 {
		return nil, &domain.ExecutionError{Tool: ruffExecutable, Detail: strings.TrimSpace(result.Stderr)}
	}
	return parseRuffDiagnostics(result.Stdout)
}

// CheckFormat runs `ruff format --check`. A "would reformat" outcome is
// one synthetic finding, not an error.
func (c *RuffChecker) CheckFormat(ctx context.Context, path string) ([]domain.RawIssue, error) {
	result, err := c.runner.Run(ctx, ruffExecutable, c.buildFormatArgs(path, true)...)
	if err != nil {
		return nil, err
	}
	switch {
	case result.ExitCode == 0:
		return nil, nil
	case result.ExitCode == 1:
		return []domain.RawIssue{{
			"type":     "format",
			"filename": path,
			"message":  "File would be reformatted",
		}}, nil
	default:
		return nil, &domain.ExecutionError{Tool: ruffExecutable, Detail: strings.TrimSpace(result.Stderr)}
	}
}

// FixFormat reformats the file in place. Dry-run mode runs the check
// variant instead, so no file is ever mutated.
func (c *RuffChecker) FixFormat(ctx context.Context, path string, dryRun bool) (bool, error) {
	result, err := c.runner.Run(ctx, ruffExecutable, c.buildFormatArgs(path, dryRun)...)
	if err != nil {
		return false, err
	}
	if result.ExitCode >= 2 {
		return false, &domain.ExecutionError{Tool: ruffExecutable, Detail: strings.TrimSpace(result.Stderr)}
	}
	if dryRun {
		// Exit 1 just means the file would change
		return true, nil
	}
	return result.ExitCode == 0, nil
}

func (c *RuffChecker) buildCheckArgs(path string) []string {
	args := []string{"check", "--output-format=json"}
	if c.cfg != nil {
		if c.cfg.LineLength > 0 {
			args = append(args, fmt.Sprintf("--line-length=%d", c.cfg.LineLength))
		}
		if len(c.cfg.ExtendSelect) > 0 {
			args = append(args, "--extend-select="+strings.Join(c.cfg.ExtendSelect, ","))
		}
		if len(c.cfg.Ignore) > 0 {
			args = append(args, "--ignore="+strings.Join(c.cfg.Ignore, ","))
		}
	}
	return append(args, path)
}

func (c *RuffChecker) buildFormatArgs(path string, check bool) []string {
	args := []string{"format"}
	if check {
		args = append(args, "--check")
	}
	if c.cfg != nil && c.cfg.LineLength > 0 {
		args = append(args, fmt.Sprintf("--line-length=%d", c.cfg.LineLength))
	}
	return append(args, path)
}

// parseRuffDiagnostics converts ruff's JSON output into raw issues.
func parseRuffDiagnostics(output string) ([]domain.RawIssue, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}

	var diagnostics []ruffDiagnostic
	if err := json.Unmarshal([]byte(trimmed), &diagnostics); err != nil {
		return nil, &domain.MalformedOutputError{Tool: ruffExecutable, Err: err}
	}

	issues := make([]domain.RawIssue, 0, len(diagnostics))
	for _, d := range diagnostics {
		raw := domain.RawIssue{
			"line":    d.Location.Row,
			"message": d.Message,
		}
		if d.Filename != "" {
			raw["filename"] = d.Filename
		}
		if d.Location.Column != 0 {
			raw["column"] = d.Location.Column
		}
		if d.Code != "" {
			raw["code"] = d.Code
		}
		if d.Severity != "" {
			raw["severity"] = d.Severity
		}
		if d.Fix != nil {
			raw["fix"] = true
		}
		issues = append(issues, raw)
	}
	return issues, nil
}
