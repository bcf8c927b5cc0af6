package ast

import (
	goast "go/ast"
	"go/token"
	"go/types"

	"go.uber.org/zap"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// Checker validates tracked call sites.
//
// Thread-safety: safe for concurrent calls; the only shared state is the
// outcome cache, which is internally locked.
type Checker struct {
	resolver    Resolver
	info        *types.Info
	fset        *token.FileSet
	minSeverity validator.Severity
	cache       *outcomeCache
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithMinSeverity drops findings less severe than s.
func WithMinSeverity(s validator.Severity) CheckerOption {
	return func(c *Checker) { c.minSeverity = s }
}

// WithCacheSize memoizes up to size outcomes. Zero disables the cache.
func WithCacheSize(size int) CheckerOption {
	return func(c *Checker) { c.cache = newOutcomeCache(size) }
}

// NewChecker returns a Checker resolving calls with resolver. info is used to
// recognise nil spreads and may be nil; fset turns positions into lines and
// columns and may be nil when only Pos/End are needed.
func NewChecker(resolver Resolver, info *types.Info, fset *token.FileSet, opts ...CheckerOption) *Checker {
	c := &Checker{
		resolver:    resolver,
		info:        info,
		fset:        fset,
		minSeverity: validator.SeverityMaintainability,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// callResult is what CheckCall learned about one call expression.
type callResult int

const (
	callIgnored callResult = iota // not a tracked operation
	callSkipped                   // tracked, but the template is not known
	callChecked                   // tracked and validated
)

// CheckCall validates call and reports a finding when it should be reported.
func (c *Checker) CheckCall(call *goast.CallExpr) (Finding, bool) {
	return c.CheckCallWith(call, nil)
}

// CheckCallWith is CheckCall with templates held in the local variables of
// vars. A variable with several candidate templates reports the first
// candidate that fails.
func (c *Checker) CheckCallWith(call *goast.CallExpr, vars TemplateVars) (Finding, bool) {
	f, res := c.checkCall(call, vars)
	return f, res == callChecked && f.Kind != 0
}

func (c *Checker) checkCall(call *goast.CallExpr, vars TemplateVars) (Finding, callResult) {
	op, ok := c.resolver.TrackedCall(call)
	if !ok {
		return Finding{}, callIgnored
	}

	templateExpr := call.Args[op.FormatIndex]
	templates := c.templates(templateExpr, vars)
	if len(templates) == 0 {
		zap.L().Debug("skipping non-constant template",
			zap.String("operation", op.Name),
			zap.String("expr", types.ExprString(templateExpr)),
		)
		return Finding{}, callSkipped
	}

	args := BuildArguments(call, op, c.info, c.fset)
	for _, template := range templates {
		failure := c.cache.validate(template, args)
		if !validator.ShouldReport(failure, op.FuncName) {
			continue
		}

		severity := validator.Classify(failure.Kind)
		if !severity.AtLeast(c.minSeverity) {
			continue
		}

		return c.newFinding(op, templateExpr, template, failure, severity), callChecked
	}
	return Finding{}, callChecked
}

// templates returns the constant value of expr, or the candidates of the
// local variable it names.
func (c *Checker) templates(expr goast.Expr, vars TemplateVars) []string {
	if template, ok := c.resolver.ConstantString(expr); ok {
		return []string{template}
	}
	if vars == nil || c.info == nil {
		return nil
	}
	return vars.Candidates(expr, c.info)
}

func (c *Checker) newFinding(op Operation, expr goast.Expr, template string, failure *validator.Failure, severity validator.Severity) Finding {
	f := Finding{
		Operation: op.Name,
		Template:  template,
		Kind:      failure.Kind,
		Message:   failure.Message(),
		Severity:  severity,
		Data:      failure.Data,
		Pos:       expr.Pos(),
		End:       expr.End(),
	}
	if c.fset != nil {
		pos := c.fset.Position(expr.Pos())
		f.File = pos.Filename
		f.Line = pos.Line
		f.Column = pos.Column
		f.TemplateStartCol, f.TemplateEndCol = getExprColumnRange(c.fset, expr)
	}
	return f
}

// getExprColumnRange calculates the column span of an expression for editor
// highlighting.
func getExprColumnRange(fset *token.FileSet, expr goast.Expr) (startCol, endCol int) {
	pos := fset.Position(expr.Pos())
	endPos := fset.Position(expr.End())
	return pos.Column, endPos.Column
}
