package ast

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/abiiranathan/go-format-lint/analyzer/config"
	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

const fmtxSource = `package fmtx

func Format(template string, args ...any) string { return template }

func Print(template string, args ...any) {}
`

// writeModule lays out a throwaway module with a local fmtx package.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	files["go.mod"] = "module example.com/test\ngo 1.21\n"
	files["fmtx/fmtx.go"] = fmtxSource

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return tmpDir
}

func fmtxConfig() config.Config {
	cfg := config.Default()
	cfg.Functions = config.ParseFunctionList("example.com/test/fmtx.Format,example.com/test/fmtx.Print")
	return cfg
}

// TestAnalyzeDirFindings verifies that every reported kind surfaces with its
// position and data.
func TestAnalyzeDirFindings(t *testing.T) {
	mainContent := `package main

import "example.com/test/fmtx"

const header = "{0} of {1}"

func run(name string) {
	_ = fmtx.Format("{0} {1}", name, 1)
	_ = fmtx.Format("{0} {2}", name, 1, 2)
	_ = fmtx.Format(header, name)
	_ = fmtx.Format("{0}", name, name+"!")
	fmtx.Print("done")
	_ = fmtx.Format("done")
	_ = fmtx.Format(name, 1)
}

func main() { run("x") }
`
	dir := writeModule(t, map[string]string{"main.go": mainContent})

	result := AnalyzeDir(dir, fmtxConfig())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	if result.Calls != 7 {
		t.Errorf("expected 7 tracked calls, got %d", result.Calls)
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped call, got %d", result.Skipped)
	}

	expected := []struct {
		line int
		kind validator.Kind
	}{
		{9, validator.MissingItemIndex},
		{10, validator.ItemIndexTooHigh},
		{11, validator.UnusedArgument},
		{13, validator.TrivialTemplate},
	}

	if len(result.Findings) != len(expected) {
		t.Fatalf("expected %d findings, got %d: %+v", len(expected), len(result.Findings), result.Findings)
	}

	for i, want := range expected {
		got := result.Findings[i]
		if got.File != "main.go" {
			t.Errorf("finding %d: expected file main.go, got %s", i, got.File)
		}
		if got.Line != want.line || got.Kind != want.kind {
			t.Errorf("finding %d: expected %s at line %d, got %s at line %d", i, want.kind, want.line, got.Kind, got.Line)
		}
		if got.Operation != "example.com/test/fmtx.Format" {
			t.Errorf("finding %d: unexpected operation %s", i, got.Operation)
		}
	}

	if got := result.Findings[2].Data; len(got) != 1 || got[0] != `name + "!"` {
		t.Errorf("expected unused argument label name + \"!\", got %v", got)
	}
	if got := result.Findings[1].Template; got != "{0} of {1}" {
		t.Errorf("expected the constant to be resolved, got %q", got)
	}
}

// TestAnalyzeDirTemplateVariables verifies that templates held in local
// variables are validated for every constant assigned to them.
func TestAnalyzeDirTemplateVariables(t *testing.T) {
	mainContent := `package main

import (
	"os"

	"example.com/test/fmtx"
)

func main() {
	layout := "{0}"
	if len(os.Args) > 1 {
		layout = "{0} {1}"
	}
	_ = fmtx.Format(layout, os.Args[0])

	dynamic := "{0}"
	dynamic = os.Args[0]
	_ = fmtx.Format(dynamic, 1)

	fixed := "{0}"
	_ = fmtx.Format(fixed, 1)
}
`
	dir := writeModule(t, map[string]string{"main.go": mainContent})

	result := AnalyzeDir(dir, fmtxConfig())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	if result.Calls != 3 || result.Skipped != 1 {
		t.Errorf("expected 3 calls with 1 skipped, got %d and %d", result.Calls, result.Skipped)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(result.Findings), result.Findings)
	}

	got := result.Findings[0]
	if got.Kind != validator.ItemIndexTooHigh || got.Template != "{0} {1}" || got.Line != 14 {
		t.Errorf("expected item_index_too_high for \"{0} {1}\" at line 14, got %s for %q at line %d", got.Kind, got.Template, got.Line)
	}
}

// TestAnalyzeDirSkipPackages verifies that skipped package fragments are honoured.
func TestAnalyzeDirSkipPackages(t *testing.T) {
	bad := `package %s

import "example.com/test/fmtx"

var _ = fmtx.Format("{3}")
`
	dir := writeModule(t, map[string]string{
		"main.go":              "package main\n\nfunc main() {}\n",
		"internal/report/r.go": fmt.Sprintf(bad, "report"),
		"internal/legacy/l.go": fmt.Sprintf(bad, "legacy"),
	})

	cfg := fmtxConfig()
	cfg.SkipPackages = append(cfg.SkipPackages, "/legacy")

	result := AnalyzeDir(dir, cfg)

	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(result.Findings), result.Findings)
	}
	if got := result.Findings[0].File; got != "internal/report/r.go" {
		t.Errorf("expected finding in internal/report/r.go, got %s", got)
	}
}

// TestAnalyzeDirSeverityFloor verifies that code smells are dropped when the
// floor is "bug".
func TestAnalyzeDirSeverityFloor(t *testing.T) {
	mainContent := `package main

import "example.com/test/fmtx"

func main() {
	_ = fmtx.Format("{0}", 1, 2)
	_ = fmtx.Format("{1}", 1)
}
`
	dir := writeModule(t, map[string]string{"main.go": mainContent})

	cfg := fmtxConfig()
	cfg.MinSeverity = string(validator.SeverityCorrectness)
	cfg.Workers = 1

	result := AnalyzeDir(dir, cfg)
	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(result.Findings), result.Findings)
	}
	if result.Findings[0].Kind != validator.ItemIndexTooHigh {
		t.Errorf("expected item_index_too_high, got %s", result.Findings[0].Kind)
	}
}

// TestAnalyzeDirLoadError verifies that a missing directory is reported, not fatal.
func TestAnalyzeDirLoadError(t *testing.T) {
	result := AnalyzeDir(filepath.Join(t.TempDir(), "missing"), fmtxConfig())
	if len(result.Errors) == 0 {
		t.Fatal("expected a load error")
	}
	if len(result.Findings) != 0 {
		t.Errorf("expected no findings, got %d", len(result.Findings))
	}
}

func TestShouldSkipPackage(t *testing.T) {
	skip := []string{"/vendor/", "/Generated/"}

	tests := []struct {
		pkgPath string
		want    bool
	}{
		{"example.com/app/handlers", false},
		{"example.com/app/vendor/lib", true},
		{"example.com/app/generated/api", true},
		{"example.com/app/api_generated", true},
		{"example.com/app/proto.pb", true},
		{"example.com/app/handlers_test", true},
	}

	for _, tt := range tests {
		if got := shouldSkipPackage(tt.pkgPath, skip); got != tt.want {
			t.Errorf("shouldSkipPackage(%q) = %v, want %v", tt.pkgPath, got, tt.want)
		}
	}
}

// TestAnalyzeSample runs the default configuration on the sample handlers.
func TestAnalyzeSample(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "..", "sample"))
	if err != nil {
		t.Fatal(err)
	}

	result := AnalyzeDir(dir, config.Default())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	expected := []validator.Kind{
		validator.MissingItemIndex,
		validator.UnusedArgument,
		validator.TrivialTemplate,
		validator.UnbalancedBraces,
		validator.ItemIndexTooHigh,
		validator.ItemIndexTooHigh,
	}
	if len(result.Findings) != len(expected) {
		t.Fatalf("expected %d findings, got %d: %+v", len(expected), len(result.Findings), result.Findings)
	}
	for i, kind := range expected {
		if got := result.Findings[i]; got.Kind != kind || got.File != "handler.go" {
			t.Errorf("finding %d: expected %s in handler.go, got %s in %s", i, kind, got.Kind, got.File)
		}
	}
	if result.Skipped != 0 {
		t.Errorf("expected no skipped calls, got %d", result.Skipped)
	}
}
