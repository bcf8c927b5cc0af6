package ast

import (
	"bytes"
	goast "go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// BuildArguments describes the arguments that follow the template of a
// tracked call.
//
// Labels are the source text of each argument. A spread final argument
// (Format(t, values...)) becomes one array argument whose size is known only
// when it is spelled out as a composite literal without keys, or as nil.
// Anything else, a variable or a function result, reports
// validator.UnknownArraySize so the validator abstains instead of guessing.
//
// info may be nil; nil detection then falls back to the identifier name.
// fset may be nil too, in which case labels come from types.ExprString and
// literals are abbreviated.
func BuildArguments(call *goast.CallExpr, op Operation, info *types.Info, fset *token.FileSet) []validator.FormatArgument {
	if op.FormatIndex+1 >= len(call.Args) {
		return nil
	}
	rest := call.Args[op.FormatIndex+1:]

	args := make([]validator.FormatArgument, 0, len(rest))
	for i, expr := range rest {
		label := sourceText(expr, fset)
		if call.Ellipsis.IsValid() && i == len(rest)-1 {
			args = append(args, validator.ArrayArg(label, staticLength(expr, info)))
			continue
		}
		args = append(args, validator.Arg(label))
	}
	return args
}

// sourceText renders expr as written. Multi-line expressions are joined
// onto one line.
func sourceText(expr goast.Expr, fset *token.FileSet) string {
	if fset == nil {
		return types.ExprString(expr)
	}

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return types.ExprString(expr)
	}
	text := buf.String()
	if strings.ContainsRune(text, '\n') {
		text = strings.Join(strings.Fields(text), " ")
	}
	return text
}

// staticLength returns the element count of a spread argument, or
// validator.UnknownArraySize.
func staticLength(expr goast.Expr, info *types.Info) int {
	expr = goast.Unparen(expr)

	switch e := expr.(type) {
	case *goast.CompositeLit:
		for _, elt := range e.Elts {
			// [...]{5: x} sizes are driven by the keys.
			if _, ok := elt.(*goast.KeyValueExpr); ok {
				return validator.UnknownArraySize
			}
		}
		return len(e.Elts)

	case *goast.Ident:
		if isNil(e, info) {
			return 0
		}
	}

	return validator.UnknownArraySize
}

func isNil(id *goast.Ident, info *types.Info) bool {
	if info != nil {
		if tv, ok := info.Types[id]; ok {
			return tv.IsNil()
		}
	}
	return id.Name == "nil"
}
