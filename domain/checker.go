package domain

import (
	"context"
	"errors"
	"fmt"
)

// LintChecker runs lint analysis against one file.
type LintChecker interface {
	// CheckLint returns raw lint findings for the file
	CheckLint(ctx context.Context, path string) ([]RawIssue, error)
}

// FormatChecker verifies and repairs code formatting.
type FormatChecker interface {
	// CheckFormat returns a single synthetic "format" finding when the
	// file would be reformatted, nothing when it is clean
	CheckFormat(ctx context.Context, path string) ([]RawIssue, error)

	// FixFormat reformats the file. In dry-run mode no file is mutated;
	// the return value reports whether the fix (or simulated fix) took
	FixFormat(ctx context.Context, path string, dryRun bool) (bool, error)
}

// TypeChecker runs static type analysis against one file.
type TypeChecker interface {
	// CheckTypes returns raw type findings for the file
	CheckTypes(ctx context.Context, path string) ([]RawIssue, error)
}

// ToolMissingError reports that a checker's underlying executable could
// not be found. It is a recoverable condition: the orchestrator records
// a skip and keeps going.
type ToolMissingError struct {
	Tool string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Tool)
}

// IsToolMissing reports whether err is (or wraps) a ToolMissingError.
func IsToolMissing(err error) bool {
	var missing *ToolMissingError
	return errors.As(err, &missing)
}

// ExecutionError reports that a tool ran but signaled an internal
// failure, as opposed to finding issues. It marks the file failed while
// later checkers still run.
type ExecutionError struct {
	Tool   string
	Detail string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s execution failed: %s", e.Tool, e.Detail)
}

// MalformedOutputError reports tool output that could not be parsed into
// the expected shape. It is handled exactly like an execution failure.
type MalformedOutputError struct {
	Tool string
	Err  error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s produced unparsable output: %v", e.Tool, e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// ProgressManager creates progress tasks for long-running operations.
type ProgressManager interface {
	// StartTask creates a progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress output is shown
	IsInteractive() bool

	// Close cleans up any active tasks
	Close()
}

// TaskProgress tracks completion of one running task.
type TaskProgress interface {
	// Increment adds n completed units
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task finished
	Complete()
}
