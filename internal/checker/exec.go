package checker

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/pyqc-dev/pyqc/domain"
)

// CommandResult captures one finished tool invocation.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner launches an external tool and waits for it. The seam
// exists so checker tests can substitute canned results for real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// execRunner is the production CommandRunner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is a normal outcome for analysis tools;
			// the caller decides what each exit code means
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return result, &domain.ToolMissingError{Tool: name}
		}
		return result, err
	}
	return result, nil
}
