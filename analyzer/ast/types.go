package ast

import (
	"go/token"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// Operation is a resolved call to a tracked formatting function.
type Operation struct {
	// Name is the fully qualified name of the callee (e.g. "fmtx.Format").
	Name string `json:"name"`
	// FuncName is the bare function or method name. It decides whether a
	// trivial template is worth reporting.
	FuncName string `json:"funcName"`
	// FormatIndex is the index of the template among the call arguments.
	FormatIndex int `json:"formatIndex"`
}

// Finding is a reported problem at a formatting call site.
type Finding struct {
	// File is the path to the Go file, relative to the analyzed directory when possible.
	File string `json:"file"`
	// Line is the line of the template argument.
	Line int `json:"line"`
	// Column is the column of the template argument.
	Column int `json:"column"`
	// TemplateStartCol is the first column of the template argument.
	TemplateStartCol int `json:"templateStartCol,omitempty"`
	// TemplateEndCol is the column just past the template argument.
	TemplateEndCol int `json:"templateEndCol,omitempty"`
	// Operation is the qualified name of the formatting function.
	Operation string `json:"operation"`
	// Template is the resolved constant template.
	Template string `json:"template"`
	// Kind is the failure kind.
	Kind validator.Kind `json:"kind"`
	// Message is the rendered failure message.
	Message string `json:"message"`
	// Severity is "bug" or "code_smell".
	Severity validator.Severity `json:"severity"`
	// Data carries missing indexes or unused argument labels.
	Data []string `json:"data,omitempty"`

	// Pos and End delimit the template argument in the analyzed file set.
	Pos token.Pos `json:"-"`
	End token.Pos `json:"-"`
}

// AnalysisResult is the top-level output of AnalyzeDir.
type AnalysisResult struct {
	// Findings lists reported problems sorted by file, line and column.
	Findings []Finding `json:"findings"`
	// Calls counts the tracked call sites that were examined.
	Calls int `json:"calls"`
	// Skipped counts tracked call sites whose template is not a constant.
	Skipped int `json:"skipped"`
	// Errors contains non-fatal errors encountered during loading.
	Errors []string `json:"errors"`
}
