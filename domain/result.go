package domain

// CheckResult is the aggregate outcome of running checks against one
// file. It is mutated only by the task that owns it; once handed back to
// the orchestrator's collection step it is treated as read-only.
type CheckResult struct {
	// Path is the file path exactly as requested, not resolved
	Path string

	// Issues in the order checks ran (no concurrency within one file)
	Issues []Issue

	// ChecksRun lists check names attempted, including "<name>-skipped"
	// markers for checks whose underlying tool was unavailable
	ChecksRun []string

	// ExecutionTime is wall-clock seconds for the whole file
	ExecutionTime float64

	// Success is false once any checker fails for a non-skip reason
	Success bool

	// ErrorMessage accumulates one entry per failing checker, joined
	// with "; " so no failure detail is lost
	ErrorMessage string
}

// NewCheckResult creates an empty result for one file.
func NewCheckResult(path string) *CheckResult {
	return &CheckResult{Path: path, Success: true}
}

// AddIssues normalizes raw checker findings and appends them, tagging
// each with the checker name. No deduplication, no line-order validation.
func (r *CheckResult) AddIssues(raw []RawIssue, checkerName string) {
	for _, data := range raw {
		r.Issues = append(r.Issues, NewIssueFromRaw(data, r.Path, checkerName))
	}
}

// RecordFailure marks the result failed and appends the message to any
// earlier failure detail.
func (r *CheckResult) RecordFailure(message string) {
	r.Success = false
	if r.ErrorMessage != "" {
		r.ErrorMessage += "; " + message
	} else {
		r.ErrorMessage = message
	}
}

// SeverityCount holds per-severity issue totals. All four canonical
// severities are always present (possibly zero).
type SeverityCount struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
	Note    int `json:"note"`
}

// Count tallies one issue of the given severity. Anything outside the
// four canonical values counts as an error.
func (c *SeverityCount) Count(severity Severity) {
	switch severity {
	case SeverityWarning:
		c.Warning++
	case SeverityInfo:
		c.Info++
	case SeverityNote:
		c.Note++
	default:
		c.Error++
	}
}

// Add merges another count into this one.
func (c *SeverityCount) Add(other SeverityCount) {
	c.Error += other.Error
	c.Warning += other.Warning
	c.Info += other.Info
	c.Note += other.Note
}

// Total returns the sum across all severities.
func (c SeverityCount) Total() int {
	return c.Error + c.Warning + c.Info + c.Note
}

// IssueCountBySeverity summarizes the result's issues by severity.
func (r *CheckResult) IssueCountBySeverity() SeverityCount {
	var counts SeverityCount
	for _, issue := range r.Issues {
		counts.Count(issue.Severity)
	}
	return counts
}

// FixableIssues returns the automatically fixable issues in their
// original order.
func (r *CheckResult) FixableIssues() []Issue {
	var fixable []Issue
	for _, issue := range r.Issues {
		if issue.Fixable {
			fixable = append(fixable, issue)
		}
	}
	return fixable
}

// ResultReport is the serialized form of a CheckResult used in JSON
// reports. The field set and names are a compatibility contract for
// downstream tooling.
type ResultReport struct {
	Path          string        `json:"path"`
	Issues        []Issue       `json:"issues"`
	ChecksRun     []string      `json:"checks_run"`
	ExecutionTime float64       `json:"execution_time"`
	Success       bool          `json:"success"`
	ErrorMessage  *string       `json:"error_message"`
	Summary       SeverityCount `json:"summary"`
}

// ReportShape converts the result into its serialized report form.
func (r *CheckResult) ReportShape() ResultReport {
	report := ResultReport{
		Path:          r.Path,
		Issues:        r.Issues,
		ChecksRun:     r.ChecksRun,
		ExecutionTime: r.ExecutionTime,
		Success:       r.Success,
		Summary:       r.IssueCountBySeverity(),
	}
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	if report.ChecksRun == nil {
		report.ChecksRun = []string{}
	}
	if r.ErrorMessage != "" {
		message := r.ErrorMessage
		report.ErrorMessage = &message
	}
	return report
}
