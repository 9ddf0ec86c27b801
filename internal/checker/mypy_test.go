package checker

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/pyqc-dev/pyqc/domain"
	"github.com/pyqc-dev/pyqc/internal/config"
)

func newTestMypy(cfg *config.MypyConfig, runner CommandRunner) *MypyChecker {
	return &MypyChecker{cfg: cfg, runner: runner}
}

func TestCheckTypesParsesDiagnostics(t *testing.T) {
	output := `test.py:5: error: Incompatible types in assignment (expression has type "str", variable has type "int")  [assignment]
test.py:12: warning: Returning Any from function declared to return "int"  [no-any-return]
test.py:20: note: Revealed type is "builtins.str"
`
	runner := &fakeRunner{result: CommandResult{ExitCode: 1, Stdout: output}}
	mypy := newTestMypy(nil, runner)

	issues, err := mypy.CheckTypes(context.Background(), "test.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}

	first := issues[0]
	if first["filename"] != "test.py" || first["line"] != 5 || first["severity"] != "error" {
		t.Errorf("unexpected first issue: %v", first)
	}
	if first["code"] != "assignment" {
		t.Errorf("error code should be extracted, got %v", first["code"])
	}

	if issues[1]["severity"] != "warning" || issues[1]["code"] != "no-any-return" {
		t.Errorf("unexpected second issue: %v", issues[1])
	}

	third := issues[2]
	if third["severity"] != "note" {
		t.Errorf("note lines should be kept: %v", third)
	}
	if _, hasCode := third["code"]; hasCode {
		t.Errorf("issue without a code must not carry one: %v", third)
	}
}

func TestCheckTypesSuccessOutput(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{ExitCode: 0, Stdout: "Success: no issues found in 1 source file\n"}}
	mypy := newTestMypy(nil, runner)

	issues, err := mypy.CheckTypes(context.Background(), "test.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("success output should yield no issues, got %v", issues)
	}
}

func TestCheckTypesSkipsUnmatchedLines(t *testing.T) {
	output := `Found 1 error in 1 file (checked 1 source file)
test.py:3: error: Name "foo" is not defined  [name-defined]
some unrelated noise
`
	runner := &fakeRunner{result: CommandResult{ExitCode: 1, Stdout: output}}
	mypy := newTestMypy(nil, runner)

	issues, err := mypy.CheckTypes(context.Background(), "test.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("only the diagnostic line should survive, got %d: %v", len(issues), issues)
	}
	if issues[0]["message"] != `Name "foo" is not defined` {
		t.Errorf("unexpected message: %v", issues[0]["message"])
	}
}

func TestCheckTypesExecutionError(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{ExitCode: 2, Stderr: "mypy: error: Cannot find config"}}
	mypy := newTestMypy(nil, runner)

	_, err := mypy.CheckTypes(context.Background(), "test.py")

	var execErr *domain.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecutionError, got %v", err)
	}
	if execErr.Tool != "mypy" {
		t.Errorf("unexpected tool attribution: %q", execErr.Tool)
	}
}

func TestCheckTypesToolMissing(t *testing.T) {
	runner := &fakeRunner{err: &domain.ToolMissingError{Tool: "mypy"}}
	mypy := newTestMypy(nil, runner)

	_, err := mypy.CheckTypes(context.Background(), "test.py")
	if !domain.IsToolMissing(err) {
		t.Errorf("expected tool-missing error, got %v", err)
	}
}

func TestCheckTypesCommandArguments(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{ExitCode: 0}}
	mypy := newTestMypy(&config.MypyConfig{Strict: true, IgnoreMissingImports: true}, runner)

	if _, err := mypy.CheckTypes(context.Background(), "pkg/mod.py"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runner.lastName != "mypy" {
		t.Errorf("expected mypy executable, got %q", runner.lastName)
	}
	for _, want := range []string{
		"--show-error-codes",
		"--no-error-summary",
		"--strict",
		"--ignore-missing-imports",
		"pkg/mod.py",
	} {
		if !slices.Contains(runner.lastArgs, want) {
			t.Errorf("args missing %q: %v", want, runner.lastArgs)
		}
	}
}

func TestCheckTypesLaxConfigOmitsFlags(t *testing.T) {
	runner := &fakeRunner{result: CommandResult{ExitCode: 0}}
	mypy := newTestMypy(&config.MypyConfig{}, runner)

	if _, err := mypy.CheckTypes(context.Background(), "test.py"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slices.Contains(runner.lastArgs, "--strict") {
		t.Errorf("strict flag must follow configuration: %v", runner.lastArgs)
	}
	if slices.Contains(runner.lastArgs, "--ignore-missing-imports") {
		t.Errorf("ignore-missing-imports flag must follow configuration: %v", runner.lastArgs)
	}
}
