package domain

// Severity classifies how serious an issue is
type Severity string

const (
	// SeverityError represents issues that must be fixed
	SeverityError Severity = "error"

	// SeverityWarning represents issues that should be fixed
	SeverityWarning Severity = "warning"

	// SeverityInfo represents informational findings
	SeverityInfo Severity = "info"

	// SeverityNote represents supplementary notes attached to other findings
	SeverityNote Severity = "note"
)

// Issue is one normalized finding from one checker on one file.
// The Checker field is always set by the aggregation step, never taken
// from raw tool output, so merged issues stay distinguishable by origin.
type Issue struct {
	// Filename is the file the issue was reported against, as given
	Filename string `json:"filename"`

	// Line is the 1-based line number, 0 when the tool reported none
	Line int `json:"line"`

	// Column is the column number if the tool provided one
	Column *int `json:"column"`

	// Severity is the raw severity; values outside the four canonical
	// ones are coerced to error only when counted
	Severity Severity `json:"severity"`

	// Message is the human-readable description
	Message string `json:"message"`

	// Code is the checker-specific diagnostic code (e.g. E501)
	Code *string `json:"code"`

	// Checker names the producing checker (e.g. "ruff-lint")
	Checker string `json:"checker"`

	// Fixable indicates the issue can be resolved automatically
	Fixable bool `json:"fixable"`
}

// RawIssue is the loosely-typed issue shape produced by checker adapters.
// It exists only at the adapter boundary; everything past AddIssues deals
// in Issue values.
type RawIssue map[string]any

// NewIssueFromRaw normalizes a raw checker finding into an Issue.
// Construction never fails: missing fields get defaults and the checker
// attribution always comes from the caller.
func NewIssueFromRaw(raw RawIssue, fallbackFilename string, checkerName string) Issue {
	issue := Issue{
		Filename: raw.stringOr("filename", fallbackFilename),
		Line:     raw.intOr("line", 0),
		Severity: Severity(raw.stringOr("severity", string(SeverityError))),
		Message:  raw.stringOr("message", "Unknown issue"),
		Checker:  checkerName,
		Fixable:  raw.boolOr("fixable", false),
	}

	if column, ok := raw.intValue("column"); ok {
		issue.Column = &column
	}
	if code, ok := raw["code"].(string); ok && code != "" {
		issue.Code = &code
	}

	return issue
}

func (r RawIssue) stringOr(key, fallback string) string {
	if s, ok := r[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func (r RawIssue) boolOr(key string, fallback bool) bool {
	if b, ok := r[key].(bool); ok {
		return b
	}
	return fallback
}

func (r RawIssue) intOr(key string, fallback int) int {
	if n, ok := r.intValue(key); ok {
		return n
	}
	return fallback
}

// intValue handles both native ints and the float64 values produced by
// encoding/json when raw issues round-trip through JSON.
func (r RawIssue) intValue(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
