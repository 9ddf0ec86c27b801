package service

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pyqc-dev/pyqc/domain"
	"github.com/schollz/progressbar/v3"
)

// ProgressManagerImpl shows interactive progress bars on stderr.
type ProgressManagerImpl struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// NewProgressManager creates a progress manager. Progress bars are only
// shown when enabled and stderr is an interactive terminal outside CI;
// otherwise every operation is a no-op.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return &ProgressManagerImpl{writer: os.Stderr}
	}
	return &NoOpProgressManager{}
}

// IsInteractiveEnvironment reports whether stderr is a terminal and the
// process is not running under CI.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// StartTask creates a new progress task with a description and total count.
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	pm.tasks = append(pm.tasks, bar)
	return &TaskProgressImpl{bar: bar}
}

// IsInteractive returns true for the interactive implementation.
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes all outstanding tasks.
func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.tasks {
		_ = bar.Finish()
	}
	pm.tasks = nil
}

// TaskProgressImpl tracks one task with a progress bar.
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

// Increment adds n to the current progress.
func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe updates the current item description.
func (tp *TaskProgressImpl) Describe(description string) {
	tp.bar.Describe(description)
}

// Complete marks the task as finished.
func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager is the silent fallback used for JSON output,
// non-TTY environments, and tests.
type NoOpProgressManager struct{}

// StartTask returns a no-op task progress.
func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

// IsInteractive returns false for the no-op manager.
func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

// Close is a no-op.
func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress ignores all progress updates.
type NoOpTaskProgress struct{}

// Increment is a no-op.
func (tp *NoOpTaskProgress) Increment(_ int) {}

// Describe is a no-op.
func (tp *NoOpTaskProgress) Describe(_ string) {}

// Complete is a no-op.
func (tp *NoOpTaskProgress) Complete() {}
