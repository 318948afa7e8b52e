package klpgit

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Severity grades a validation issue.
type Severity string

// Severities.
const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IssueKind identifies a validation rule.
type IssueKind string

// Validation rules, in report order.
const (
	IssueFileTooLarge       IssueKind = "fileTooLarge"
	IssueLongLines          IssueKind = "longLines"
	IssueTrailingWhitespace IssueKind = "trailingWhitespace"
	IssueMissingNewline     IssueKind = "missingNewline"
	IssueTodoComments       IssueKind = "todoComments"
	IssueConsoleStatements  IssueKind = "consoleStatements"
	IssueMixedIndentation   IssueKind = "mixedIndentation"
)

// Validation thresholds.
const (
	MaxFileSize   = 100 * 1024
	MaxLineLength = 120
)

// ValidationIssue is the result of one triggered rule. Lines is nil for the
// file-level rules.
type ValidationIssue struct {
	Severity Severity  `json:"severity"`
	Kind     IssueKind `json:"kind"`
	Count    int       `json:"count"`
	Lines    []int     `json:"lines,omitempty"`
}

var (
	todoPattern    = regexp.MustCompile(`(?i)\b(TODO|FIXME|HACK|XXX)\b`)
	consolePattern = regexp.MustCompile(`console\.(log|warn|error|debug|info|trace)\s*\(`)
)

// Validate runs the hygiene rules over content and returns one issue per
// triggered rule, in the fixed rule order. It returns nil for clean content.
func Validate(content string) []ValidationIssue {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	var issues []ValidationIssue

	if len(content) > MaxFileSize {
		issues = append(issues, ValidationIssue{Severity: SeverityWarning, Kind: IssueFileTooLarge, Count: 1})
	}

	issues = appendLineIssue(issues, SeverityWarning, IssueLongLines, lines, func(l string) bool {
		return utf8.RuneCountInString(l) > MaxLineLength
	})
	issues = appendLineIssue(issues, SeverityWarning, IssueTrailingWhitespace, lines, hasTrailingSpace)

	if !strings.HasSuffix(content, "\n") {
		issues = append(issues, ValidationIssue{Severity: SeverityInfo, Kind: IssueMissingNewline, Count: 1})
	}

	issues = appendLineIssue(issues, SeverityInfo, IssueTodoComments, lines, todoPattern.MatchString)
	issues = appendLineIssue(issues, SeverityWarning, IssueConsoleStatements, lines, consolePattern.MatchString)

	if hasMixedIndentation(lines) {
		issues = append(issues, ValidationIssue{Severity: SeverityWarning, Kind: IssueMixedIndentation, Count: 1})
	}

	return issues
}

// appendLineIssue appends an issue for kind when match holds on at least one line.
func appendLineIssue(issues []ValidationIssue, sev Severity, kind IssueKind, lines []string, match func(string) bool) []ValidationIssue {
	var nums []int
	for i, l := range lines {
		if match(l) {
			nums = append(nums, i+1)
		}
	}
	if len(nums) == 0 {
		return issues
	}
	return append(issues, ValidationIssue{Severity: sev, Kind: kind, Count: len(nums), Lines: nums})
}

func hasTrailingSpace(l string) bool {
	if l == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(l)
	return unicode.IsSpace(r)
}

func hasMixedIndentation(lines []string) bool {
	var spaces, tabs bool
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "  "):
			spaces = true
		case strings.HasPrefix(l, "\t"):
			tabs = true
		}
		if spaces && tabs {
			return true
		}
	}
	return false
}
