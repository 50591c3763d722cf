package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	definitions "github.com/goliatone/go-definitions"
)

// DefaultScope is the settings scope read when none is given.
const DefaultScope = definitions.PackageName

const (
	PluralizerSuffix  = "suffix"
	PluralizerInflect = "inflect"
)

// Settings is the per-scope generator configuration.
type Settings struct {
	Verbose     bool     `yaml:"verbose" json:"verbose"`
	Pluralizer  string   `yaml:"pluralizer" json:"pluralizer"`
	Scalars     []string `yaml:"scalars" json:"scalars"`
	Definitions []string `yaml:"definitions" json:"definitions"`
	Out         string   `yaml:"out" json:"out"`
	Concurrency int      `yaml:"concurrency" json:"concurrency"`
}

type file struct {
	Packages map[string]Settings `yaml:"packages"`
}

// Defaults returns the settings used for keys a scope leaves empty.
func Defaults() Settings {
	return Settings{
		Pluralizer:  PluralizerSuffix,
		Out:         "generated",
		Concurrency: 4,
	}
}

// Load reads packages.<scope> from a YAML (or JSON) settings file and merges it over
// Defaults. Environment variables in the file are expanded. Relative paths are resolved
// against the file's directory. An empty path returns Defaults; a missing scope is not
// an error.
func Load(path, scope string) (Settings, error) {
	settings := Defaults()
	if strings.TrimSpace(path) == "" {
		return settings, nil
	}
	if scope == "" {
		scope = DefaultScope
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var f file
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	scoped, ok := f.Packages[scope]
	if !ok {
		return settings, nil
	}

	if err := mergo.Merge(&settings, scoped, mergo.WithOverride); err != nil {
		return Settings{}, fmt.Errorf("merge settings: %w", err)
	}

	settings.resolvePaths(filepath.Dir(path))
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *Settings) resolvePaths(base string) {
	for i, p := range s.Definitions {
		if p != "" && !filepath.IsAbs(p) {
			s.Definitions[i] = filepath.Join(base, p)
		}
	}
	if s.Out != "" && !filepath.IsAbs(s.Out) {
		s.Out = filepath.Join(base, s.Out)
	}
}

// Validate reports settings the generator cannot use.
func (s Settings) Validate() error {
	switch s.Pluralizer {
	case "", PluralizerSuffix, PluralizerInflect:
	default:
		return fmt.Errorf("unknown pluralizer %q (expected %q or %q)", s.Pluralizer, PluralizerSuffix, PluralizerInflect)
	}
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	return nil
}

// Options converts the settings into compiler options.
func (s Settings) Options() []definitions.Option {
	opts := []definitions.Option{
		definitions.WithVerbose(s.Verbose),
		definitions.WithScalars(s.Scalars...),
		definitions.WithConcurrency(s.Concurrency),
	}
	if s.Pluralizer == PluralizerInflect {
		opts = append(opts, definitions.WithPluralizer(definitions.InflectPluralizer))
	}
	return opts
}
