// Package formatcheck defines an Analyzer that reports malformed composite
// format templates, so the linter can run under go vet and gopls.
package formatcheck

import (
	"fmt"
	goast "go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/abiiranathan/go-format-lint/analyzer/ast"
	"github.com/abiiranathan/go-format-lint/analyzer/config"
	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

const doc = `check composite format templates

The compositeformat analyzer reports calls to formatting functions such as
composite.Format whose constant template is malformed ("{0"), references an
argument that is not passed ("{2}" with two arguments), skips an index, leaves
an argument unused, or contains no format item at all.`

// Analyzer reports problems in composite format templates.
var Analyzer = &analysis.Analyzer{
	Name:     "compositeformat",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	funcsFlag    string
	severityFlag string
)

func init() {
	Analyzer.Flags.StringVar(&funcsFlag, "funcs", defaultFuncs(),
		"comma-separated qualified names of functions taking a composite format template")
	Analyzer.Flags.StringVar(&severityFlag, "severity", string(validator.SeverityMaintainability),
		"lowest severity to report (bug or code_smell)")
}

func defaultFuncs() string {
	names := make([]string, 0, len(config.DefaultFunctions))
	for _, fn := range config.DefaultFunctions {
		names = append(names, fn.Name)
	}
	return strings.Join(names, ",")
}

func run(pass *analysis.Pass) (any, error) {
	minSeverity, ok := validator.ParseSeverity(severityFlag)
	if !ok {
		return nil, fmt.Errorf("invalid -severity %q", severityFlag)
	}

	resolver := ast.NewTypesResolver(pass.TypesInfo, config.ParseFunctionList(funcsFlag))
	checker := ast.NewChecker(resolver, pass.TypesInfo, pass.Fset, ast.WithMinSeverity(minSeverity))

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	nodeFilter := []goast.Node{
		(*goast.FuncDecl)(nil),
		(*goast.CallExpr)(nil),
	}

	var vars ast.TemplateVars
	insp.Preorder(nodeFilter, func(n goast.Node) {
		if fn, ok := n.(*goast.FuncDecl); ok {
			vars = ast.CollectTemplateVars(fn, pass.TypesInfo)
			return
		}

		finding, ok := checker.CheckCallWith(n.(*goast.CallExpr), vars)
		if !ok {
			return
		}
		pass.Report(analysis.Diagnostic{
			Pos:      finding.Pos,
			End:      finding.End,
			Category: finding.Kind.String(),
			Message:  fmt.Sprintf("%s [%s]", finding.Message, finding.Kind),
		})
	})
	return nil, nil
}
