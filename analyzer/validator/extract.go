package validator

import (
	"unicode/utf8"
)

// ExtractItems scans template left to right and parses every {…} region into
// a FormatItem.
//
// The scan keeps a signed brace balance, one rune of lookbehind and an item
// buffer that is open between an unescaped '{' and the next '}':
//
//   - "{{" undoes the balance of the first brace and drops the open buffer.
//     A third '{' is not an escape, it starts a new item.
//   - "}}" is the symmetric escape for closing braces.
//   - the rune right after an unescaped '{' must be a digit while the buffer
//     is open.
//   - every '}' closes and parses the open buffer, if any.
//
// Parse failures are returned as soon as they occur; a non-zero balance at the
// end of the scan yields UnbalancedBraces.
//
// Thread-safety: Pure function, safe for concurrent calls.
func ExtractItems(template string) ([]FormatItem, *Failure) {
	var (
		items         []FormatItem
		balance       int
		buf           []byte
		inItem        bool
		escapingOpen  bool
		escapingClose bool
		prev          rune
	)

	for _, ch := range template {
		switch {
		case ch == '{':
			if prev == '{' && !escapingOpen {
				balance--
				escapingOpen = true
				inItem = false
				buf = buf[:0]
				break
			}
			balance++
			escapingOpen = false
			inItem = true

		case inItem && prev == '{' && !isDigit(ch):
			return nil, newFailure(InvalidCharAfterOpenBrace)

		case ch == '}':
			escapingClose = prev == '}' && !escapingClose
			if escapingClose {
				balance++
			} else {
				balance--
			}

			if inItem {
				item, failure := ParseItem(string(buf))
				if failure != nil {
					return nil, failure
				}
				items = append(items, item)
				inItem = false
				buf = buf[:0]
			}

		case inItem:
			buf = utf8.AppendRune(buf, ch)
		}

		prev = ch
	}

	if balance != 0 {
		return nil, newFailure(UnbalancedBraces)
	}
	return items, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
