package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/pyqc-dev/pyqc/domain"
	"github.com/pyqc-dev/pyqc/internal/checker"
	"github.com/pyqc-dev/pyqc/internal/config"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxWorkers bounds the worker pool when the machine's CPU count
// is unavailable. Checker work is dominated by waiting on subprocesses,
// so the pool size is a throughput knob, not a CPU-parallelism one.
const DefaultMaxWorkers = 4

// Check names as recorded in CheckResult.ChecksRun. A skipped check gets
// the "-skipped" suffix appended to its name.
const (
	CheckNameLint      = "ruff-lint"
	CheckNameFormat    = "ruff-format"
	CheckNameTypes     = "type-check"
	CheckNameFormatFix = "ruff-format-fix"

	skippedSuffix = "-skipped"
)

// Runner coordinates all checkers over one or many files. Checkers run
// in a fixed order per file; per-checker failures never cross the file
// boundary and per-file failures never abort the batch.
type Runner struct {
	cfg      *config.Config
	lint     domain.LintChecker
	format   domain.FormatChecker
	types    domain.TypeChecker
	progress domain.ProgressManager
}

// NewRunner creates a runner from configuration. The type checker
// backend is selected here, once, never at call time.
func NewRunner(cfg *config.Config) (*Runner, error) {
	ruff := checker.NewRuffChecker(&cfg.Ruff)

	var types domain.TypeChecker
	switch cfg.TypeChecker {
	case "", config.TypeCheckerMypy:
		types = checker.NewMypyChecker(&cfg.Mypy)
	default:
		return nil, fmt.Errorf("unsupported type checker: %s", cfg.TypeChecker)
	}

	return &Runner{
		cfg:      cfg,
		lint:     ruff,
		format:   ruff,
		types:    types,
		progress: &NoOpProgressManager{},
	}, nil
}

// NewRunnerWithProgress creates a runner that reports progress through pm.
func NewRunnerWithProgress(cfg *config.Config, pm domain.ProgressManager) (*Runner, error) {
	runner, err := NewRunner(cfg)
	if err != nil {
		return nil, err
	}
	if pm != nil {
		runner.progress = pm
	}
	return runner, nil
}

// CheckFile runs the lint, format, and type checks against one file, in
// that fixed order. Each call sits in its own failure boundary: a
// missing tool becomes a skip marker, any other error marks the file
// failed while the remaining checks still run.
func (r *Runner) CheckFile(ctx context.Context, path string) *domain.CheckResult {
	start := time.Now()
	result := domain.NewCheckResult(path)

	lintIssues, err := r.lint.CheckLint(ctx, path)
	if err == nil {
		// Lint findings with a fix payload can be auto-fixed
		for _, raw := range lintIssues {
			if fix, ok := raw["fix"]; ok && fix != nil && fix != false {
				raw["fixable"] = true
			}
		}
	}
	r.recordCheck(result, CheckNameLint, "Ruff lint", lintIssues, err)

	formatIssues, err := r.format.CheckFormat(ctx, path)
	if err == nil {
		// Format findings are always fixable by definition
		for _, raw := range formatIssues {
			raw["fixable"] = true
		}
	}
	r.recordCheck(result, CheckNameFormat, "Ruff format", formatIssues, err)

	typeIssues, err := r.types.CheckTypes(ctx, path)
	r.recordCheck(result, CheckNameTypes, "Type check", typeIssues, err)

	result.ExecutionTime = time.Since(start).Seconds()
	return result
}

// recordCheck applies one checker outcome to the result under the
// standard failure-boundary rules.
func (r *Runner) recordCheck(result *domain.CheckResult, name, label string, issues []domain.RawIssue, err error) {
	switch {
	case err == nil:
		result.AddIssues(issues, name)
		result.ChecksRun = append(result.ChecksRun, name)
	case domain.IsToolMissing(err):
		result.ChecksRun = append(result.ChecksRun, name+skippedSuffix)
	default:
		result.RecordFailure(fmt.Sprintf("%s failed: %v", label, err))
	}
}

// FixFile runs the format fixer against one file under the same failure
// discipline as CheckFile. Dry-run mode never mutates the file.
func (r *Runner) FixFile(ctx context.Context, path string, dryRun bool) *domain.CheckResult {
	start := time.Now()
	result := domain.NewCheckResult(path)

	fixed, err := r.format.FixFormat(ctx, path, dryRun)
	switch {
	case err == nil && fixed:
		result.ChecksRun = append(result.ChecksRun, CheckNameFormatFix)
	case err == nil:
		result.RecordFailure("Ruff format fix failed")
	case domain.IsToolMissing(err):
		result.ChecksRun = append(result.ChecksRun, CheckNameFormatFix+skippedSuffix)
	default:
		result.RecordFailure(fmt.Sprintf("Ruff format fix failed: %v", err))
	}

	result.ExecutionTime = time.Since(start).Seconds()
	return result
}

// CheckFilesParallel applies CheckFile to every path. In sequential mode
// results keep input order; in parallel mode they are sorted by path so
// output never depends on scheduling.
func (r *Runner) CheckFilesParallel(ctx context.Context, paths []string, maxWorkers int) []*domain.CheckResult {
	return r.runParallel(ctx, paths, maxWorkers, "Checking files", r.CheckFile)
}

// FixFilesParallel applies FixFile to every path with the same
// scheduling and ordering discipline as CheckFilesParallel.
func (r *Runner) FixFilesParallel(ctx context.Context, paths []string, dryRun bool, maxWorkers int) []*domain.CheckResult {
	return r.runParallel(ctx, paths, maxWorkers, "Fixing files", func(ctx context.Context, path string) *domain.CheckResult {
		return r.FixFile(ctx, path, dryRun)
	})
}

// runParallel fans fn out over a bounded worker pool, one task per path.
// A task failing inside the scheduling layer (a panic, not a checker
// error) is converted into a synthetic failed result at collection time;
// no path is ever dropped.
func (r *Runner) runParallel(ctx context.Context, paths []string, maxWorkers int, description string, fn func(context.Context, string) *domain.CheckResult) []*domain.CheckResult {
	if len(paths) == 0 {
		return []*domain.CheckResult{}
	}

	if !r.cfg.Parallel {
		results := make([]*domain.CheckResult, 0, len(paths))
		for _, path := range paths {
			results = append(results, fn(ctx, path))
		}
		return results
	}

	workers := maxWorkers
	if workers <= 0 {
		workers = defaultWorkerCount(len(paths))
	}

	pm := r.progress
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	task := pm.StartTask(description, len(paths))
	defer task.Complete()

	// Each slot is written by exactly one goroutine, so the slice needs
	// no locking; aggregation happens after Wait, single-threaded.
	results := make([]*domain.CheckResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					failed := domain.NewCheckResult(path)
					failed.RecordFailure(fmt.Sprintf("Parallel execution failed: %v", rec))
					results[i] = failed
				}
			}()
			results[i] = fn(gCtx, path)
			task.Increment(1)
			return nil
		})
	}
	_ = g.Wait()

	for i, result := range results {
		if result == nil {
			failed := domain.NewCheckResult(paths[i])
			failed.RecordFailure("Parallel execution failed: task did not complete")
			results[i] = failed
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results
}

// defaultWorkerCount sizes the pool to the smaller of the file count and
// the available parallelism.
func defaultWorkerCount(fileCount int) int {
	cpus := runtime.NumCPU()
	if cpus <= 0 {
		cpus = DefaultMaxWorkers
	}
	if fileCount < cpus {
		return fileCount
	}
	return cpus
}

// PerformanceMetrics aggregates timing statistics over a result list.
type PerformanceMetrics struct {
	TotalFiles         int     `json:"total_files"`
	SuccessfulFiles    int     `json:"successful_files"`
	FailedFiles        int     `json:"failed_files"`
	TotalExecutionTime float64 `json:"total_execution_time"`
	AverageTimePerFile float64 `json:"average_time_per_file"`
	ParallelEnabled    bool    `json:"parallel_enabled"`
	FilesPerSecond     float64 `json:"files_per_second"`
}

// PerformanceMetrics computes aggregate statistics for a result list. An
// empty list yields a zero-valued record; no division by zero occurs.
func (r *Runner) PerformanceMetrics(results []*domain.CheckResult) PerformanceMetrics {
	if len(results) == 0 {
		return PerformanceMetrics{}
	}

	metrics := PerformanceMetrics{
		TotalFiles:      len(results),
		ParallelEnabled: r.cfg.Parallel,
	}
	for _, result := range results {
		metrics.TotalExecutionTime += result.ExecutionTime
		if result.Success {
			metrics.SuccessfulFiles++
		} else {
			metrics.FailedFiles++
		}
	}
	metrics.AverageTimePerFile = metrics.TotalExecutionTime / float64(len(results))
	if metrics.TotalExecutionTime > 0 {
		metrics.FilesPerSecond = float64(len(results)) / metrics.TotalExecutionTime
	}
	return metrics
}
