package validator

import "strings"

// Severity buckets a failure for reporting.
type Severity string

const (
	// SeverityCorrectness marks templates likely to fail at run time.
	SeverityCorrectness Severity = "bug"
	// SeverityMaintainability marks likely author mistakes that still render.
	SeverityMaintainability Severity = "code_smell"
)

// severityOrder ranks severities (higher = more severe).
var severityOrder = map[Severity]int{
	SeverityMaintainability: 1,
	SeverityCorrectness:     2,
}

// ParseSeverity converts a string to Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case string(SeverityCorrectness):
		return SeverityCorrectness, true
	case string(SeverityMaintainability):
		return SeverityMaintainability, true
	}
	return "", false
}

// AtLeast reports whether s is at least as severe as floor.
func (s Severity) AtLeast(floor Severity) bool {
	return severityOrder[s] >= severityOrder[floor]
}

// Classify maps a failure kind to its severity bucket.
func Classify(kind Kind) Severity {
	switch kind {
	case TrivialTemplate, MissingItemIndex, UnusedArgument:
		return SeverityMaintainability
	default:
		return SeverityCorrectness
	}
}

// ShouldReport applies the reporting rule of the caller: TrivialTemplate is
// only reported for operations whose name says they format (Format,
// MustFormat, ...), so printing a literal string stays silent.
func ShouldReport(f *Failure, operation string) bool {
	if f == nil {
		return false
	}
	if f.Kind == TrivialTemplate {
		return strings.Contains(strings.ToLower(operation), "format")
	}
	return true
}
