package validator

import (
	"strconv"
	"strings"
)

// ParseItem parses the text between the braces of one format item:
//
//	index[,alignment][:formatSpec]
//
// The text is split on every ',' and ':'. The item is malformed when a colon
// comes before the comma, or when the text has more fields than the grammar
// has room for: one for the index plus one per section present. "0:a:b" and
// "0,1,2" are therefore malformed.
//
// A colon inside the format spec is rejected even though the composite
// engine would render it: "{0:HH:mm}" is ItemMalformed. Write such layouts
// with a format spec free of colons, or pass a preformatted value.
//
// Index and alignment accept surrounding white space and an optional sign.
func ParseItem(text string) (FormatItem, *Failure) {
	comma := strings.IndexByte(text, ',')
	colon := strings.IndexByte(text, ':')
	fields := splitItem(text)

	maxFields := 1
	if comma >= 0 {
		maxFields++
	}
	if colon >= 0 {
		maxFields++
	}
	if (comma >= 0 && colon >= 0 && colon < comma) || len(fields) > maxFields {
		return FormatItem{}, newFailure(ItemMalformed)
	}

	index, ok := parseInt(fields[0])
	if !ok {
		return FormatItem{}, newFailure(ItemIndexNotInteger)
	}
	item := FormatItem{Index: index}

	if comma >= 0 {
		alignment, ok := parseInt(fields[1])
		if !ok {
			return FormatItem{}, newFailure(ItemAlignmentNotInteger)
		}
		item.Alignment = &alignment
	}

	if colon >= 0 {
		specField := 1
		if comma >= 0 {
			specField = 2
		}
		spec := fields[specField]
		item.FormatSpec = &spec
	}

	return item, nil
}

// splitItem splits on every ',' and ':', keeping empty fields.
func splitItem(text string) []string {
	fields := make([]string, 0, 3)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ',' || text[i] == ':' {
			fields = append(fields, text[start:i])
			start = i + 1
		}
	}
	return append(fields, text[start:])
}

// parseInt parses a 32-bit decimal integer, ignoring surrounding white space.
func parseInt(s string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
