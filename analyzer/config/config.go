// Package config loads the linter configuration: which functions take a
// composite format template, which packages to skip and how much to report.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CompositePackage is the import path of the bundled formatting engine.
const CompositePackage = "github.com/abiiranathan/go-format-lint/composite"

// AutoFormatIndex asks the resolver to find the template parameter from the
// callee's signature.
const AutoFormatIndex = -1

// FunctionSpec names one tracked formatting operation.
type FunctionSpec struct {
	// Name is the fully qualified name: "import/path.Func" or
	// "import/path.Type.Method".
	Name string `yaml:"name" json:"name" validate:"required,contains=."`
	// FormatIndex is the zero-based parameter index of the template.
	// AutoFormatIndex (the default) picks the string parameter right before
	// the variadic ...any.
	FormatIndex int `yaml:"formatIndex" json:"formatIndex" validate:"min=-1"`
}

// Config is the YAML configuration of the linter.
type Config struct {
	// Functions lists the tracked formatting operations.
	Functions []FunctionSpec `yaml:"functions" json:"functions" validate:"required,min=1,dive"`
	// SkipPackages holds substrings of package paths that are not analyzed.
	SkipPackages []string `yaml:"skipPackages" json:"skipPackages"`
	// MinSeverity drops findings below this severity ("bug" or "code_smell").
	MinSeverity string `yaml:"minSeverity" json:"minSeverity" validate:"oneof=bug code_smell"`
	// CacheSize bounds the per-analysis outcome memo. Zero disables it.
	CacheSize int `yaml:"cacheSize" json:"cacheSize" validate:"min=0"`
	// Workers bounds concurrent file inspection. Zero means one per CPU.
	Workers int `yaml:"workers" json:"workers" validate:"min=0"`
}

// DefaultFunctions are the composite package entry points.
var DefaultFunctions = []FunctionSpec{
	{Name: CompositePackage + ".Format", FormatIndex: AutoFormatIndex},
	{Name: CompositePackage + ".MustFormat", FormatIndex: AutoFormatIndex},
	{Name: CompositePackage + ".Fprint", FormatIndex: AutoFormatIndex},
	{Name: CompositePackage + ".Print", FormatIndex: AutoFormatIndex},
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Functions:    append([]FunctionSpec(nil), DefaultFunctions...),
		SkipPackages: []string{"/vendor/", "/generated/"},
		MinSeverity:  "code_smell",
		CacheSize:    1024,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the YAML file at path on top of Default. An empty path returns
// Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data on top of Default and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	// Entries without formatIndex mean "auto", not parameter 0.
	var raw struct {
		Functions []struct {
			Name        string `yaml:"name"`
			FormatIndex *int   `yaml:"formatIndex"`
		} `yaml:"functions"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	for i, fn := range raw.Functions {
		if i < len(cfg.Functions) && fn.FormatIndex == nil {
			cfg.Functions[i].FormatIndex = AutoFormatIndex
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ParseFunctionList parses a comma-separated list of qualified names into
// specs with automatic template detection.
func ParseFunctionList(list string) []FunctionSpec {
	var specs []FunctionSpec
	for name := range strings.SplitSeq(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		specs = append(specs, FunctionSpec{Name: name, FormatIndex: AutoFormatIndex})
	}
	return specs
}
