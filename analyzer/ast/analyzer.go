// Package ast finds calls to composite formatting functions in Go source and
// validates their constant templates against the call arguments:
//  1. Load and type-check the packages under a directory
//  2. Resolve tracked formatting calls (see Resolver)
//  3. Describe the arguments that follow each template
//  4. Validate, classify and collect findings
package ast

import (
	"cmp"
	goast "go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abiiranathan/go-format-lint/analyzer/config"
	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// AnalyzeDir loads every package under dir and reports problems in the
// composite format templates passed to the functions cfg tracks.
//
// The analysis proceeds in phases:
//   - Load and type-check packages
//   - Merge type information and drop skipped packages
//   - Inspect files for tracked calls (concurrent)
//   - Sort findings by position
//
// Load failures are reported in AnalysisResult.Errors; AnalyzeDir itself
// never fails.
func AnalyzeDir(dir string, cfg config.Config) AnalysisResult {
	result := AnalysisResult{}
	fset := token.NewFileSet()

	pkgs, err := loadPackages(dir, fset)
	if err != nil {
		result.Errors = append(result.Errors, "load error: "+err.Error())
		return result
	}

	info, files := mergeTypeInfo(pkgs, cfg.SkipPackages, &result)
	zap.L().Debug("packages loaded",
		zap.String("dir", dir),
		zap.Int("packages", len(pkgs)),
		zap.Int("files", len(files)),
	)

	checker := NewCheckerFromConfig(info, fset, cfg)
	scans := inspectFilesConcurrently(files, checker, cfg.Workers)
	for _, s := range scans {
		result.Findings = append(result.Findings, s.findings...)
		result.Calls += s.calls
		result.Skipped += s.skipped
	}

	for i := range result.Findings {
		result.Findings[i].File = resolveRelativePath(result.Findings[i].File, dir)
	}
	sortFindings(result.Findings)

	zap.L().Debug("analysis finished",
		zap.Int("calls", result.Calls),
		zap.Int("skipped", result.Skipped),
		zap.Int("findings", len(result.Findings)),
		zap.Int("cachedOutcomes", checker.cache.Len()),
	)
	return result
}

// fileScan is the result of inspecting one chunk of files.
type fileScan struct {
	findings []Finding
	calls    int
	skipped  int
}

// inspectFilesConcurrently distributes files across workers in contiguous
// chunks. Each worker writes only its own slot of the result slice.
//
// Concurrency model:
//   - workers goroutines (one per CPU when workers <= 0)
//   - no shared mutable state besides the checker's locked cache
func inspectFilesConcurrently(files []*goast.File, checker *Checker, workers int) []fileScan {
	if len(files) == 0 {
		return nil
	}

	numWorkers := workers
	if numWorkers <= 0 {
		numWorkers = max(runtime.NumCPU(), 1)
	}
	numWorkers = min(numWorkers, len(files))
	chunkSize := (len(files) + numWorkers - 1) / numWorkers

	scans := make([]fileScan, numWorkers)
	var g errgroup.Group
	g.SetLimit(numWorkers)

	for w := range numWorkers {
		start := w * chunkSize
		if start >= len(files) {
			break
		}
		chunk := files[start:min(start+chunkSize, len(files))]

		g.Go(func() error {
			for _, f := range chunk {
				inspectFile(f, checker, &scans[w])
			}
			return nil
		})
	}
	_ = g.Wait()

	return scans
}

// inspectFile walks one file and validates every call expression. Template
// variables are collected once per function declaration.
func inspectFile(f *goast.File, checker *Checker, scan *fileScan) {
	var vars TemplateVars

	goast.Inspect(f, func(n goast.Node) bool {
		switch node := n.(type) {
		case *goast.FuncDecl:
			vars = CollectTemplateVars(node, checker.info)
			return true
		case *goast.CallExpr:
			finding, res := checker.checkCall(node, vars)
			switch res {
			case callSkipped:
				scan.calls++
				scan.skipped++
			case callChecked:
				scan.calls++
				if finding.Kind != 0 {
					scan.findings = append(scan.findings, finding)
				}
			}
		}
		return true
	})
}

// NewCheckerFromConfig builds a Checker for the functions, severity floor and
// cache size in cfg.
func NewCheckerFromConfig(info *types.Info, fset *token.FileSet, cfg config.Config) *Checker {
	minSeverity, ok := validator.ParseSeverity(cfg.MinSeverity)
	if !ok {
		minSeverity = validator.SeverityMaintainability
	}
	return NewChecker(
		NewTypesResolver(info, cfg.Functions),
		info,
		fset,
		WithMinSeverity(minSeverity),
		WithCacheSize(cfg.CacheSize),
	)
}

func sortFindings(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
		)
	})
}

// resolveRelativePath attempts to convert an absolute path to a path
// relative to the specified directory. Falls back to the original path
// if conversion fails.
func resolveRelativePath(absPath, baseDir string) string {
	if abs, err := filepath.Abs(absPath); err == nil {
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return absPath
}
