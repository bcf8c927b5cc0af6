package validator

import (
	"strconv"
	"strings"
)

// UnknownArraySize marks an array argument whose length cannot be
// determined statically.
const UnknownArraySize = -1

// FormatItem is one {index[,alignment][:formatSpec]} placeholder parsed out
// of a template.
type FormatItem struct {
	// Index is the zero-based argument index.
	Index int `json:"index"`
	// Alignment is the optional padding width (negative means left-aligned).
	Alignment *int `json:"alignment,omitempty"`
	// FormatSpec is the optional text following the colon.
	FormatSpec *string `json:"formatSpec,omitempty"`
}

// String renders the item back in template syntax.
func (it FormatItem) String() string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(strconv.Itoa(it.Index))
	if it.Alignment != nil {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(*it.Alignment))
	}
	if it.FormatSpec != nil {
		b.WriteByte(':')
		b.WriteString(*it.FormatSpec)
	}
	b.WriteByte('}')
	return b.String()
}

// FormatArgument describes one call-site argument following the template.
type FormatArgument struct {
	// Label is the display name of the argument, usually its source text.
	Label string `json:"label"`
	// IsArray reports whether the argument is an array forwarded as the
	// whole argument list.
	IsArray bool `json:"isArray"`
	// ArraySize is the static element count when IsArray is set, or
	// UnknownArraySize.
	ArraySize int `json:"arraySize"`
}

// Arg returns a plain (non-array) argument.
func Arg(label string) FormatArgument {
	return FormatArgument{Label: label}
}

// ArrayArg returns an array argument of the given static size. Pass
// UnknownArraySize when the length is not known.
func ArrayArg(label string, size int) FormatArgument {
	return FormatArgument{Label: label, IsArray: true, ArraySize: size}
}
