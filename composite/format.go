// Package composite renders composite format templates such as
// "Hello {0}, total {1,10:N2}".
//
// A template is literal text mixed with format items:
//
//	{index[,alignment][:formatSpec]}
//
// Literal braces are written as "{{" and "}}". index selects an argument,
// alignment pads the rendered value to a minimum width (left-aligned when
// negative) and formatSpec is handed to the value's renderer.
//
// Both index and the absolute alignment must be lower than IndexLimit.
package composite

import (
	"io"
	"os"
	"strings"
)

// IndexLimit bounds item indexes and alignments.
const IndexLimit = 1_000_000

// Format renders template with args.
func Format(template string, args ...any) (string, error) {
	var b strings.Builder
	b.Grow(len(template) + 8*len(args))
	if err := execute(&b, template, sliceArgs(args)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustFormat is like Format but panics on a malformed template.
func MustFormat(template string, args ...any) string {
	s, err := Format(template, args...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fprint renders template with args and writes the result to w.
// Nothing is written when the template is malformed.
func Fprint(w io.Writer, template string, args ...any) (int, error) {
	s, err := Format(template, args...)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, s)
}

// Print renders template with args to standard output.
func Print(template string, args ...any) (int, error) {
	return Fprint(os.Stdout, template, args...)
}

// Check runs the renderer over template with argc placeholder arguments and
// discards the output. It returns the same error Format would return for a
// call with argc arguments.
//
// The placeholder list is virtual, so argc may be as large as IndexLimit
// without allocating it.
func Check(template string, argc int) error {
	return execute(discard{}, template, placeholders(argc))
}

// sink receives rendered output. strings.Builder and discard never fail,
// so write errors are not inspected.
type sink interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

type discard struct{}

func (discard) WriteString(s string) (int, error) { return len(s), nil }
func (discard) WriteByte(byte) error              { return nil }

type argList interface {
	Len() int
	At(i int) any
}

type sliceArgs []any

func (a sliceArgs) Len() int     { return len(a) }
func (a sliceArgs) At(i int) any { return a[i] }

// placeholders is an argument list of n empty strings.
type placeholders int

func (p placeholders) Len() int   { return int(p) }
func (p placeholders) At(int) any { return "" }

func execute(w sink, template string, args argList) error {
	n := len(template)
	pos := 0

	for pos < n {
		switch template[pos] {
		case '}':
			if pos+1 < n && template[pos+1] == '}' {
				w.WriteByte('}')
				pos += 2
				continue
			}
			return newError(template, pos, ErrUnexpectedBrace)

		case '{':
			if pos+1 < n && template[pos+1] == '{' {
				w.WriteByte('{')
				pos += 2
				continue
			}
			end, err := executeItem(w, template, pos, args)
			if err != nil {
				return err
			}
			pos = end

		default:
			next := strings.IndexAny(template[pos:], "{}")
			if next < 0 {
				w.WriteString(template[pos:])
				return nil
			}
			w.WriteString(template[pos : pos+next])
			pos += next
		}
	}

	return nil
}

// executeItem renders the item whose opening brace is at start and returns
// the offset just past its closing brace.
func executeItem(w sink, template string, start int, args argList) (int, error) {
	n := len(template)

	index, pos, ok := scanNumber(template, start+1)
	if !ok {
		return 0, newError(template, pos, ErrInvalidIndex)
	}
	if index >= IndexLimit {
		return 0, newError(template, pos, ErrIndexLimit)
	}
	pos = skipSpaces(template, pos)

	width, leftAlign := 0, false
	if pos < n && template[pos] == ',' {
		pos = skipSpaces(template, pos+1)
		if pos < n && template[pos] == '-' {
			leftAlign = true
			pos++
		}
		width, pos, ok = scanNumber(template, pos)
		if !ok {
			return 0, newError(template, pos, ErrInvalidAlignment)
		}
		if width >= IndexLimit {
			return 0, newError(template, pos, ErrIndexLimit)
		}
		pos = skipSpaces(template, pos)
	}

	spec := ""
	if pos < n && template[pos] == ':' {
		specStart := pos + 1
		end := strings.IndexAny(template[specStart:], "{}")
		if end < 0 {
			return 0, newError(template, n, ErrUnclosedItem)
		}
		pos = specStart + end
		if template[pos] == '{' {
			return 0, newError(template, pos, ErrInvalidFormatSpec)
		}
		spec = template[specStart:pos]
	}

	if pos >= n || template[pos] != '}' {
		return 0, newError(template, pos, ErrUnclosedItem)
	}
	if index >= args.Len() {
		return 0, newError(template, start, ErrArgumentIndex)
	}

	writePadded(w, formatValue(args.At(index), spec), width, leftAlign)
	return pos + 1, nil
}

// scanNumber reads a run of ASCII digits starting at pos. Values at or above
// IndexLimit are clamped to IndexLimit.
func scanNumber(s string, pos int) (value, end int, ok bool) {
	end = pos
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		if value < IndexLimit {
			value = value*10 + int(s[end]-'0')
		}
		end++
	}
	return min(value, IndexLimit), end, end > pos
}

func skipSpaces(s string, pos int) int {
	for pos < len(s) && s[pos] == ' ' {
		pos++
	}
	return pos
}

func writePadded(w sink, s string, width int, leftAlign bool) {
	pad := width - len([]rune(s))
	if pad <= 0 {
		w.WriteString(s)
		return
	}
	if leftAlign {
		w.WriteString(s)
		writeSpaces(w, pad)
		return
	}
	writeSpaces(w, pad)
	w.WriteString(s)
}

const spaces = "                                "

func writeSpaces(w sink, n int) {
	for n > len(spaces) {
		w.WriteString(spaces)
		n -= len(spaces)
	}
	w.WriteString(spaces[:n])
}
