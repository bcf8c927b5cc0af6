package composite

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ItemFormatter is implemented by values that render themselves for a
// format item. spec is the text after the colon, or "" when absent.
type ItemFormatter interface {
	FormatItem(spec string) string
}

// Number rendering is culture-invariant.
var numberPrinter = message.NewPrinter(language.English)

func formatValue(v any, spec string) string {
	switch x := v.(type) {
	case nil:
		return ""
	case ItemFormatter:
		return x.FormatItem(spec)
	}

	if spec != "" {
		if s, ok := formatNumber(v, spec); ok {
			return s
		}
	}
	return fmt.Sprint(v)
}

// formatNumber applies a standard numeric specifier: a letter among
// D, X, F, N, E, P, G (either case) followed by an optional precision.
func formatNumber(v any, spec string) (string, bool) {
	letter := spec[0]
	precision := -1
	if len(spec) > 1 {
		p, err := strconv.Atoi(spec[1:])
		if err != nil || p < 0 || p > 99 {
			return "", false
		}
		precision = p
	}

	rv := reflect.ValueOf(v)
	var (
		isInt, isUint bool
		i             int64
		u             uint64
		f             float64
	)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		isInt = true
		i = rv.Int()
		f = float64(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		isUint = true
		u = rv.Uint()
		f = float64(u)
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	default:
		return "", false
	}

	switch letter {
	case 'D', 'd':
		switch {
		case isInt:
			return padDigits(strconv.FormatInt(i, 10), precision), true
		case isUint:
			return padDigits(strconv.FormatUint(u, 10), precision), true
		}
		return "", false

	case 'X', 'x':
		if !isInt && !isUint {
			return "", false
		}
		if isInt {
			u = uint64(i)
		}
		s := strconv.FormatUint(u, 16)
		if letter == 'X' {
			s = strings.ToUpper(s)
		}
		return padDigits(s, precision), true

	case 'F', 'f':
		return strconv.FormatFloat(f, 'f', defaultPrecision(precision, 2), 64), true

	case 'N', 'n':
		return groupDigits(f, defaultPrecision(precision, 2)), true

	case 'P', 'p':
		return groupDigits(f*100, defaultPrecision(precision, 2)) + " %", true

	case 'E', 'e':
		return strconv.FormatFloat(f, letter, defaultPrecision(precision, 6), 64), true

	case 'G', 'g':
		if isInt {
			return strconv.FormatInt(i, 10), true
		}
		if isUint {
			return strconv.FormatUint(u, 10), true
		}
		return strconv.FormatFloat(f, letter, precision, 64), true
	}

	return "", false
}

func defaultPrecision(p, def int) int {
	if p < 0 {
		return def
	}
	return p
}

// padDigits left-pads the digits of s with zeros to width, keeping a
// leading minus sign in front.
func padDigits(s string, width int) string {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func groupDigits(f float64, precision int) string {
	return numberPrinter.Sprint(number.Decimal(f,
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision),
	))
}
