package ast

import (
	goast "go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/abiiranathan/go-format-lint/analyzer/config"
)

// Resolver answers the two questions the call-site layer cannot answer from
// syntax alone: is this call a tracked formatting operation, and is this
// expression a compile-time constant string.
//
// The validator core never sees syntax; implementations of Resolver are the
// only place that does.
type Resolver interface {
	// TrackedCall reports whether call invokes a tracked formatting
	// operation and, if so, which argument is the template.
	TrackedCall(call *goast.CallExpr) (Operation, bool)
	// ConstantString returns the value of expr when it is a constant string.
	ConstantString(expr goast.Expr) (string, bool)
}

// TypesResolver resolves calls through go/types information.
//
// Thread-safety: read-only after construction, safe for concurrent calls as
// long as info is not mutated.
type TypesResolver struct {
	info  *types.Info
	funcs map[string]config.FunctionSpec
}

// NewTypesResolver tracks the functions in specs using info. info must carry
// Types, Uses and Selections.
func NewTypesResolver(info *types.Info, specs []config.FunctionSpec) *TypesResolver {
	funcs := make(map[string]config.FunctionSpec, len(specs))
	for _, s := range specs {
		funcs[s.Name] = s
	}
	return &TypesResolver{info: info, funcs: funcs}
}

// TrackedCall implements Resolver.
func (r *TypesResolver) TrackedCall(call *goast.CallExpr) (Operation, bool) {
	fn, ok := typeutil.Callee(r.info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return Operation{}, false
	}

	name := QualifiedName(fn)
	spec, ok := r.funcs[name]
	if !ok {
		return Operation{}, false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return Operation{}, false
	}

	idx := spec.FormatIndex
	if idx == config.AutoFormatIndex {
		if idx, ok = templateParam(sig); !ok {
			return Operation{}, false
		}
	}
	if idx < 0 || idx >= sig.Params().Len() || !isString(sig.Params().At(idx).Type()) {
		return Operation{}, false
	}
	if idx >= len(call.Args) {
		return Operation{}, false
	}

	return Operation{Name: name, FuncName: fn.Name(), FormatIndex: idx}, true
}

// ConstantString implements Resolver.
func (r *TypesResolver) ConstantString(expr goast.Expr) (string, bool) {
	tv, ok := r.info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}

// QualifiedName returns "import/path.Func" for functions and
// "import/path.Type.Method" for methods.
func QualifiedName(fn *types.Func) string {
	sig, _ := fn.Type().(*types.Signature)
	if sig != nil && sig.Recv() != nil {
		recv := sig.Recv().Type()
		if ptr, ok := recv.(*types.Pointer); ok {
			recv = ptr.Elem()
		}
		if named, ok := types.Unalias(recv).(*types.Named); ok {
			return fn.Pkg().Path() + "." + named.Obj().Name() + "." + fn.Name()
		}
	}
	return fn.Pkg().Path() + "." + fn.Name()
}

// templateParam finds the template in signatures shaped like
// func(..., template string, args ...any).
func templateParam(sig *types.Signature) (int, bool) {
	params := sig.Params()
	if !sig.Variadic() || params.Len() < 2 {
		return 0, false
	}

	variadic, ok := params.At(params.Len() - 1).Type().(*types.Slice)
	if !ok {
		return 0, false
	}
	if _, ok := variadic.Elem().Underlying().(*types.Interface); !ok {
		return 0, false
	}

	idx := params.Len() - 2
	if !isString(params.At(idx).Type()) {
		return 0, false
	}
	return idx, true
}

func isString(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsString != 0
}
