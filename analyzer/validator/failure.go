package validator

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies a validation failure.
type Kind int

const (
	NullTemplate Kind = iota + 1
	InvalidCharAfterOpenBrace
	UnbalancedBraces
	ItemMalformed
	ItemIndexNotInteger
	ItemAlignmentNotInteger
	ItemIndexTooHigh
	TrivialTemplate
	UnknownFailure
	MissingItemIndex
	UnusedArgument
)

var kindNames = map[Kind]string{
	NullTemplate:              "null_template",
	InvalidCharAfterOpenBrace: "invalid_char_after_open_brace",
	UnbalancedBraces:          "unbalanced_braces",
	ItemMalformed:             "item_malformed",
	ItemIndexNotInteger:       "item_index_not_integer",
	ItemAlignmentNotInteger:   "item_alignment_not_integer",
	ItemIndexTooHigh:          "item_index_too_high",
	TrivialTemplate:           "trivial_template",
	UnknownFailure:            "unknown_failure",
	MissingItemIndex:          "missing_item_index",
	UnusedArgument:            "unused_argument",
}

var kindMessages = map[Kind]string{
	NullTemplate:              "Invalid string format, the format string cannot be null.",
	InvalidCharAfterOpenBrace: "Invalid string format, opening curly brace can only be followed by a digit or an opening curly brace.",
	UnbalancedBraces:          "Invalid string format, unbalanced curly brace count.",
	ItemMalformed:             "Invalid string format, all format items should comply with the following pattern '{index[,alignment][:formatString]}'.",
	ItemIndexNotInteger:       "Invalid string format, all format item indexes should be numbers.",
	ItemAlignmentNotInteger:   "Invalid string format, all format item alignments should be numbers.",
	ItemIndexTooHigh:          "Invalid string format, the highest string format item index should not be greater than the arguments count.",
	TrivialTemplate:           "Remove this formatting call and simply use the input string.",
	UnknownFailure:            "Invalid string format, the format string is invalid and is likely to throw at runtime.",
	MissingItemIndex:          "The format string might be wrong, the following item indexes are missing: ",
	UnusedArgument:            "The format string might be wrong, the following arguments are unused: ",
}

// Kinds lists every failure kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := NullTemplate; k <= UnusedArgument; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the stable snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown failure kind %q", text)
	}
	*k = kind
	return nil
}

// carriesData reports whether failures of this kind carry a list.
func (k Kind) carriesData() bool {
	return k == MissingItemIndex || k == UnusedArgument
}

// Failure is the single outcome of a failed validation. Data is only set for
// MissingItemIndex (missing indexes) and UnusedArgument (argument labels).
//
// A nil *Failure means the template is valid.
type Failure struct {
	Kind Kind     `json:"kind"`
	Data []string `json:"data,omitempty"`
}

func newFailure(kind Kind) *Failure {
	return &Failure{Kind: kind}
}

func newFailureWithData(kind Kind, data []string) *Failure {
	return &Failure{Kind: kind, Data: slices.Clone(data)}
}

// Message renders the human-readable message. For the list-carrying kinds
// the list is appended comma-separated and terminated by a period.
func (f *Failure) Message() string {
	msg := kindMessages[f.Kind]
	if !f.Kind.carriesData() {
		return msg
	}
	return msg + strings.Join(f.Data, ", ") + "."
}

func (f *Failure) Error() string {
	return f.Message()
}

// Is matches failures by kind, so errors.Is(err, &Failure{Kind: k}) works.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}
