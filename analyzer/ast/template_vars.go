package ast

import (
	goast "go/ast"
	"go/constant"
	"go/token"
	"go/types"
)

// TemplateVars maps local string variables to the constant templates assigned
// to them within one function, so that
//
//	layout := "{0}"
//	if wide {
//		layout = "{0,-20}"
//	}
//	composite.Format(layout, name)
//
// validates both candidates. A variable that is ever assigned a non-constant
// value or has its address taken maps to nil and is not resolved. Parameters
// and range variables are never resolved either.
type TemplateVars map[*types.Var][]string

// CollectTemplateVars walks body (usually a *goast.FuncDecl) and records every
// constant string assigned to a local variable. Nested function literals are
// included since they can reassign captured variables.
func CollectTemplateVars(body goast.Node, info *types.Info) TemplateVars {
	vars := make(TemplateVars, 8)
	if info == nil {
		return vars
	}

	goast.Inspect(body, func(n goast.Node) bool {
		switch node := n.(type) {
		case *goast.AssignStmt:
			vars.processAssignStmt(node, info)

		case *goast.GenDecl:
			vars.processGenDecl(node, info)

		case *goast.RangeStmt:
			vars.poison(node.Key, info)
			vars.poison(node.Value, info)

		case *goast.UnaryExpr:
			if node.Op == token.AND {
				vars.poison(node.X, info)
			}

		case *goast.FuncDecl:
			vars.poisonFields(node.Recv, info)

		case *goast.FuncType:
			// Parameters and results start with unknown values.
			vars.poisonFields(node.Params, info)
			vars.poisonFields(node.Results, info)
		}
		return true
	})
	return vars
}

// processAssignStmt records "x := const" and "x = const". Tuple assignments
// from a call and compound operators ("x += y") poison their targets.
func (v TemplateVars) processAssignStmt(assign *goast.AssignStmt, info *types.Info) {
	pairwise := len(assign.Lhs) == len(assign.Rhs) &&
		(assign.Tok == token.DEFINE || assign.Tok == token.ASSIGN)

	for i, lhs := range assign.Lhs {
		if !pairwise {
			v.poison(lhs, info)
			continue
		}
		v.record(lhs, assign.Rhs[i], info)
	}
}

// processGenDecl records "var x = const". Declarations without a value do not
// contribute a candidate; the zero value is normally overwritten.
func (v TemplateVars) processGenDecl(decl *goast.GenDecl, info *types.Info) {
	if decl.Tok != token.VAR {
		return
	}

	for _, spec := range decl.Specs {
		vspec, ok := spec.(*goast.ValueSpec)
		if !ok || len(vspec.Values) == 0 {
			continue
		}
		for i, name := range vspec.Names {
			if len(vspec.Values) != len(vspec.Names) {
				v.poison(name, info)
				continue
			}
			v.record(name, vspec.Values[i], info)
		}
	}
}

func (v TemplateVars) record(lhs, rhs goast.Expr, info *types.Info) {
	obj := localVar(lhs, info)
	if obj == nil {
		return
	}

	if candidates, seen := v[obj]; seen && candidates == nil {
		return
	}

	tv, ok := info.Types[rhs]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		v[obj] = nil
		return
	}
	v[obj] = append(v[obj], constant.StringVal(tv.Value))
}

func (v TemplateVars) poison(expr goast.Expr, info *types.Info) {
	if obj := localVar(expr, info); obj != nil {
		v[obj] = nil
	}
}

func (v TemplateVars) poisonFields(fields *goast.FieldList, info *types.Info) {
	if fields == nil {
		return
	}
	for _, field := range fields.List {
		for _, name := range field.Names {
			v.poison(name, info)
		}
	}
}

// Candidates returns the distinct templates expr may hold, in assignment
// order, or nil when expr is not a resolvable local variable.
func (v TemplateVars) Candidates(expr goast.Expr, info *types.Info) []string {
	obj := localVar(expr, info)
	if obj == nil {
		return nil
	}

	seen := make(map[string]bool, len(v[obj]))
	var out []string
	for _, s := range v[obj] {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// localVar returns the function-local variable expr names, if any.
func localVar(expr goast.Expr, info *types.Info) *types.Var {
	if expr == nil {
		return nil
	}
	ident, ok := goast.Unparen(expr).(*goast.Ident)
	if !ok || ident.Name == "_" {
		return nil
	}

	obj, ok := info.ObjectOf(ident).(*types.Var)
	if !ok || obj.IsField() || obj.Pkg() == nil {
		return nil
	}
	// Package-level variables can be assigned from anywhere.
	if obj.Parent() == obj.Pkg().Scope() {
		return nil
	}
	return obj
}
