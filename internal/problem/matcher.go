// Package problem provides problem matcher definitions for task output.
//
// A problem matcher describes how to recognize compiler and linter
// diagnostics in the output of a task: a set of regular expression
// patterns plus the capture-group indexes that carry the file, position,
// severity and message of each problem. Matchers are either built in
// (see Builtins) or parsed from user-authored definitions (see Parse).
package problem

import (
	"regexp"
	"strconv"
)

// Severity indicates the severity of a matched problem.
type Severity string

const (
	// SeverityError is an error.
	SeverityError Severity = "error"
	// SeverityWarning is a warning.
	SeverityWarning Severity = "warning"
	// SeverityInfo is informational.
	SeverityInfo Severity = "info"
)

// FileLocation indicates how matched file paths are interpreted.
type FileLocation string

const (
	// FileLocationRelative resolves paths against the working directory.
	FileLocationRelative FileLocation = "relative"
	// FileLocationAbsolute treats paths as absolute.
	FileLocationAbsolute FileLocation = "absolute"
)

// Problem represents a detected problem from task output.
type Problem struct {
	// File is the file path where the problem occurred.
	File string

	// Line is the line number (1-based).
	Line int

	// Column is the column number (1-based, 0 if unknown).
	Column int

	// EndLine is the end line for multi-line problems (0 if single line).
	EndLine int

	// EndColumn is the end column for multi-line problems.
	EndColumn int

	// Severity indicates error, warning, or info.
	Severity Severity

	// Code is an optional error code.
	Code string

	// Message is the problem description.
	Message string

	// Source is the tool that reported the problem.
	Source string
}

// Pattern is a compiled regex pattern with capture-group indexes.
// A group index of 0 means the corresponding field is not captured.
type Pattern struct {
	// Regexp is the compiled pattern.
	Regexp *regexp.Regexp

	// File is the capture group for the file path.
	File int

	// Line is the capture group for the line number.
	Line int

	// Column is the capture group for the column number.
	Column int

	// EndLine is the capture group for the end line.
	EndLine int

	// EndColumn is the capture group for the end column.
	EndColumn int

	// Severity is the capture group for the severity.
	Severity int

	// Code is the capture group for the error code.
	Code int

	// Message is the capture group for the message.
	Message int
}

// Matcher is a named, compiled problem matcher.
type Matcher struct {
	// Name is the matcher name, referenced in task configurations
	// as "$name". Empty for anonymous matchers.
	Name string

	// Owner identifies the tool (e.g., "go", "gcc").
	Owner string

	// DefaultSeverity is used when a pattern has no severity group.
	DefaultSeverity Severity

	// FileLocation indicates how file paths are interpreted.
	FileLocation FileLocation

	// Patterns are the compiled patterns, tried in order.
	Patterns []Pattern
}

// Clone returns a copy of the matcher. The compiled patterns are shared;
// they are immutable once built.
func (m *Matcher) Clone() *Matcher {
	c := *m
	c.Patterns = make([]Pattern, len(m.Patterns))
	copy(c.Patterns, m.Patterns)
	return &c
}

// Match attempts to match a line and extract a problem.
func (m *Matcher) Match(line string) (Problem, bool) {
	for _, p := range m.Patterns {
		matches := p.Regexp.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		problem := Problem{
			Source: m.Owner,
		}

		if p.File > 0 && p.File < len(matches) {
			problem.File = matches[p.File]
		}
		problem.Line = matchInt(matches, p.Line)
		problem.Column = matchInt(matches, p.Column)
		problem.EndLine = matchInt(matches, p.EndLine)
		problem.EndColumn = matchInt(matches, p.EndColumn)

		if p.Severity > 0 && p.Severity < len(matches) {
			problem.Severity = ParseSeverity(matches[p.Severity])
		} else {
			problem.Severity = m.DefaultSeverity
			if problem.Severity == "" {
				problem.Severity = SeverityError
			}
		}

		if p.Code > 0 && p.Code < len(matches) {
			problem.Code = matches[p.Code]
		}
		if p.Message > 0 && p.Message < len(matches) {
			problem.Message = matches[p.Message]
		}

		return problem, true
	}

	return Problem{}, false
}

// matchInt extracts an integer capture group, returning 0 when the group
// is absent or not numeric.
func matchInt(matches []string, group int) int {
	if group <= 0 || group >= len(matches) {
		return 0
	}
	n, err := strconv.Atoi(matches[group])
	if err != nil {
		return 0
	}
	return n
}

// ParseSeverity maps a severity string to a Severity. Unrecognized
// strings map to SeverityError.
func ParseSeverity(s string) Severity {
	switch s {
	case "error", "Error", "ERROR", "fatal", "Fatal", "FATAL":
		return SeverityError
	case "warning", "Warning", "WARNING", "warn", "Warn", "WARN":
		return SeverityWarning
	case "info", "Info", "INFO", "note", "Note", "NOTE":
		return SeverityInfo
	default:
		return SeverityError
	}
}
