package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pyqc-dev/pyqc/domain"
)

// ReportSummary is the aggregate header of a JSON report.
type ReportSummary struct {
	FilesChecked    int                  `json:"files_checked"`
	SuccessfulFiles int                  `json:"successful_files"`
	TotalIssues     int                  `json:"total_issues"`
	SeverityCounts  domain.SeverityCount `json:"severity_counts"`
}

// ReportPerformance is the optional timing block of a JSON report.
type ReportPerformance struct {
	TotalExecutionTime float64 `json:"total_execution_time"`
	AverageTimePerFile float64 `json:"average_time_per_file"`
	FilesPerSecond     float64 `json:"files_per_second"`
	ParallelExecution  bool    `json:"parallel_execution"`
}

// JSONReport is the machine-readable report shape. Field names are a
// compatibility contract for downstream tooling.
type JSONReport struct {
	Summary     ReportSummary         `json:"summary"`
	Results     []domain.ResultReport `json:"results"`
	Performance *ReportPerformance    `json:"performance,omitempty"`
}

// WriteJSON writes data as indented JSON to the writer.
func WriteJSON(writer io.Writer, data any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// aggregateSeverityCounts sums per-result severity counts.
func aggregateSeverityCounts(results []*domain.CheckResult) domain.SeverityCount {
	var counts domain.SeverityCount
	for _, result := range results {
		counts.Add(result.IssueCountBySeverity())
	}
	return counts
}

func totalIssueCount(results []*domain.CheckResult) int {
	total := 0
	for _, result := range results {
		total += len(result.Issues)
	}
	return total
}

func successfulFileCount(results []*domain.CheckResult) int {
	count := 0
	for _, result := range results {
		if result.Success {
			count++
		}
	}
	return count
}

func totalExecutionTime(results []*domain.CheckResult) float64 {
	total := 0.0
	for _, result := range results {
		total += result.ExecutionTime
	}
	return total
}

// GenerateTextReport renders a human-readable report. The result list is
// expected to be in the orchestrator's deterministic order already.
func GenerateTextReport(results []*domain.CheckResult, showPerformance bool) string {
	if len(results) == 0 {
		return "No files checked."
	}

	var lines []string
	lines = append(lines, "PyQC Report", strings.Repeat("=", 50))

	totalFiles := len(results)
	totalIssues := totalIssueCount(results)

	lines = append(lines,
		fmt.Sprintf("Files checked: %d", totalFiles),
		fmt.Sprintf("Successful: %d", successfulFileCount(results)),
		fmt.Sprintf("Total issues: %d", totalIssues),
	)

	if showPerformance {
		totalTime := totalExecutionTime(results)
		filesPerSecond := 0.0
		if totalTime > 0 {
			filesPerSecond = float64(totalFiles) / totalTime
		}
		lines = append(lines,
			fmt.Sprintf("Total time: %.2fs", totalTime),
			fmt.Sprintf("Average time per file: %.3fs", totalTime/float64(totalFiles)),
			fmt.Sprintf("Files per second: %.1f", filesPerSecond),
		)
	}
	lines = append(lines, "")

	counts := aggregateSeverityCounts(results)
	lines = append(lines, "Issues by severity:")
	for _, entry := range []struct {
		severity string
		count    int
	}{
		{"error", counts.Error},
		{"warning", counts.Warning},
		{"info", counts.Info},
		{"note", counts.Note},
	} {
		if entry.count > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", entry.severity, entry.count))
		}
	}
	lines = append(lines, "")

	if totalIssues > 0 {
		lines = append(lines, "Issues found:", strings.Repeat("-", 30))
		for _, result := range results {
			for _, issue := range result.Issues {
				lines = append(lines, fmt.Sprintf("%s: %s: %s %s",
					issueLocation(issue), issue.Severity, issue.Message, issueCheckerInfo(issue)))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// GenerateJSONReport builds the machine-readable report structure.
func GenerateJSONReport(results []*domain.CheckResult, includePerformance bool) *JSONReport {
	report := &JSONReport{
		Summary: ReportSummary{
			FilesChecked:    len(results),
			SuccessfulFiles: successfulFileCount(results),
			TotalIssues:     totalIssueCount(results),
			SeverityCounts:  aggregateSeverityCounts(results),
		},
		Results: make([]domain.ResultReport, 0, len(results)),
	}
	for _, result := range results {
		report.Results = append(report.Results, result.ReportShape())
	}

	if includePerformance {
		totalTime := totalExecutionTime(results)
		performance := &ReportPerformance{
			TotalExecutionTime: totalTime,
			// More than one file implies the pool was in play
			ParallelExecution: len(results) > 1,
		}
		if len(results) > 0 {
			performance.AverageTimePerFile = totalTime / float64(len(results))
		}
		if totalTime > 0 {
			performance.FilesPerSecond = float64(len(results)) / totalTime
		}
		report.Performance = performance
	}

	return report
}

// GenerateGitHubActionsReport renders one CI annotation line per issue:
//
//	::error file=path,line=1,col=2::message [checker:code]
//
// Severities other than error are rendered as warning. Empty input
// yields an empty string.
func GenerateGitHubActionsReport(results []*domain.CheckResult) string {
	var lines []string
	for _, result := range results {
		for _, issue := range result.Issues {
			annotationType := "warning"
			if issue.Severity == domain.SeverityError {
				annotationType = "error"
			}

			location := fmt.Sprintf("file=%s,line=%d", issue.Filename, issue.Line)
			if issue.Column != nil && *issue.Column != 0 {
				location += fmt.Sprintf(",col=%d", *issue.Column)
			}

			lines = append(lines, fmt.Sprintf("::%s %s::%s %s",
				annotationType, location, issue.Message, issueCheckerInfo(issue)))
		}
	}
	return strings.Join(lines, "\n")
}

// issueLocation formats "filename:line" with the column appended when
// the tool reported one.
func issueLocation(issue domain.Issue) string {
	location := fmt.Sprintf("%s:%d", issue.Filename, issue.Line)
	if issue.Column != nil && *issue.Column != 0 {
		location += fmt.Sprintf(":%d", *issue.Column)
	}
	return location
}

// issueCheckerInfo formats "[checker]" or "[checker:code]".
func issueCheckerInfo(issue domain.Issue) string {
	if issue.Code != nil && *issue.Code != "" {
		return fmt.Sprintf("[%s:%s]", issue.Checker, *issue.Code)
	}
	return fmt.Sprintf("[%s]", issue.Checker)
}
