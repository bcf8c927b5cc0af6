package ast

import (
	"fmt"
	goast "go/ast"
	"go/token"
	"go/types"
	"maps"
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadMode is what the resolver needs: syntax plus full type information.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedTypesSizes |
	packages.NeedImports

// loadPackages loads every package under dir.
func loadPackages(dir string, fset *token.FileSet) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:  loadMode,
		Dir:   dir,
		Fset:  fset,
		Tests: false,
	}
	return packages.Load(cfg, "./...")
}

// mergeTypeInfo consolidates type information from all loaded packages into
// a single unified types.Info structure, so one resolver serves every file.
//
// Also collects all AST files and non-import-related errors.
//
// Performance: Skips packages matching skip (vendor, generated code) to reduce
// processing time.
func mergeTypeInfo(pkgs []*packages.Package, skip []string, result *AnalysisResult) (*types.Info, []*goast.File) {
	// Pre-calculate total sizes to avoid map growth
	totalTypes, totalDefs, totalUses, totalSelections := 0, 0, 0, 0
	for _, pkg := range pkgs {
		if shouldSkipPackage(pkg.PkgPath, skip) || pkg.TypesInfo == nil {
			continue
		}
		totalTypes += len(pkg.TypesInfo.Types)
		totalDefs += len(pkg.TypesInfo.Defs)
		totalUses += len(pkg.TypesInfo.Uses)
		totalSelections += len(pkg.TypesInfo.Selections)
	}

	info := &types.Info{
		Types:      make(map[goast.Expr]types.TypeAndValue, totalTypes),
		Defs:       make(map[*goast.Ident]types.Object, totalDefs),
		Uses:       make(map[*goast.Ident]types.Object, totalUses),
		Selections: make(map[*goast.SelectorExpr]*types.Selection, totalSelections),
		Instances:  make(map[*goast.Ident]types.Instance),
	}

	allFiles := make([]*goast.File, 0, len(pkgs)*4)

	for _, pkg := range pkgs {
		if shouldSkipPackage(pkg.PkgPath, skip) {
			continue
		}

		for _, e := range pkg.Errors {
			if !isImportRelatedError(e.Msg) {
				result.Errors = append(result.Errors, fmt.Sprintf("type error: %v", e.Msg))
			}
		}

		allFiles = append(allFiles, pkg.Syntax...)

		if pkg.TypesInfo != nil {
			maps.Copy(info.Types, pkg.TypesInfo.Types)
			maps.Copy(info.Defs, pkg.TypesInfo.Defs)
			maps.Copy(info.Uses, pkg.TypesInfo.Uses)
			maps.Copy(info.Selections, pkg.TypesInfo.Selections)
			maps.Copy(info.Instances, pkg.TypesInfo.Instances)
		}
	}

	return info, allFiles
}

// shouldSkipPackage determines if a package should be skipped. skip holds
// path fragments such as "/vendor/"; generated-code suffixes and test
// packages are always skipped.
func shouldSkipPackage(pkgPath string, skip []string) bool {
	lower := strings.ToLower(pkgPath)

	for _, fragment := range skip {
		if fragment != "" && strings.Contains(lower, strings.ToLower(fragment)) {
			return true
		}
	}

	// Skip common generated package suffixes
	if strings.HasSuffix(lower, "_generated") || strings.HasSuffix(lower, ".pb") {
		return true
	}

	// Skip test packages (already handled by Tests: false in config)
	return strings.HasSuffix(lower, "_test")
}

// isImportRelatedError checks if an error message is about import resolution.
// These errors are typically environmental and not actionable here.
func isImportRelatedError(msg string) bool {
	lower := strings.ToLower(msg)
	importPhrases := []string{
		"could not import",
		"can't find import",
		"cannot find package",
		"no required module provides",
		"build constraints exclude all go files",
	}

	for _, phrase := range importPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
